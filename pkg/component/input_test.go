package component

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14ui/pkg/layout"
	"l14ui/pkg/native"
	"l14ui/pkg/native/headless"
	"l14ui/pkg/style"
)

func newTestInput(t *testing.T) (*Input, *headless.Input, Node) {
	t.Helper()
	ctx, _ := newTestContext(t)
	root := mustNew(t, ctx, native.KindView)
	in := mustNew(t, ctx, native.KindInput).(*Input)
	require.NoError(t, in.SetParent(root))
	return in, in.Widget().(*headless.Input), root
}

func TestInputPlaceholderAlphaIsHalf(t *testing.T) {
	in, w, root := newTestInput(t)
	root.(*View).SetStyleProperty(style.PropColor, String("rgba(10, 20, 30, 0.8)"))

	root.ResolveStyle(true)
	c := in.PlaceholderStyle().GetColor(style.PropColor)
	assert.Equal(t, style.Color{R: 10, G: 20, B: 30, A: 0.4}, c)
	assert.Equal(t, c, w.PlaceholderColor())

	// changing the text color re-derives on the next resolve
	root.(*View).SetStyleProperty(style.PropColor, String("#ff0000"))
	root.ResolveStyle(true)
	assert.Equal(t, style.Color{R: 255, A: 0.5}, in.PlaceholderStyle().GetColor(style.PropColor))

	// an explicit placeholder color never survives resolution
	in.PlaceholderStyle().Set(style.PropColor, "green")
	in.ResolveStyle(false)
	assert.Equal(t, style.Color{R: 255, A: 0.5}, in.PlaceholderStyle().GetColor(style.PropColor))
}

func TestInputValueReappliesPlaceholder(t *testing.T) {
	in, w, root := newTestInput(t)
	root.ResolveStyle(true)
	w.SetPlaceholderColor(style.White)

	require.NoError(t, in.SetProperty("value", String("typed")))

	assert.Equal(t, "typed", in.Value())
	assert.Equal(t, style.Color{A: 0.5}, w.PlaceholderColor())
}

func TestInputValueBypassesChange(t *testing.T) {
	in, w, _ := newTestInput(t)
	var changes []any
	in.SetEventListener("onChange", func(args ...any) { changes = append(changes, args...) })

	require.NoError(t, in.SetProperty("value", String("quiet")))
	assert.Empty(t, changes)

	w.Edit("loud")
	assert.Equal(t, []any{"loud"}, changes)
}

func TestInputUnbindLeavesNoListeners(t *testing.T) {
	in, w, _ := newTestInput(t)
	fired := 0
	in.SetEventListener("onChange", func(...any) { fired++ })
	in.SetEventListener("onChange", func(...any) { fired += 10 })
	require.Equal(t, 1, w.ListenerCount(native.EventChange))

	in.SetEventListener("onChange", nil)

	assert.Equal(t, 0, w.ListenerCount(native.EventChange))
	w.Edit("anything")
	assert.Equal(t, 0, fired)
}

func TestInputEventPayloads(t *testing.T) {
	in, w, _ := newTestInput(t)
	got := map[string][]any{}
	record := func(name string) Callback {
		return func(args ...any) { got[name] = args }
	}
	for _, name := range []string{"onEndEdit", "onSubmit", "onTextSelection", "onEndTextSelection"} {
		in.SetEventListener(name, record(name))
	}

	w.SetValue("hello world")
	w.Select(0, 5)
	w.EndSelect(6, 11)
	w.Submit()
	w.EndEdit()

	assert.Equal(t, []any{"hello world", 0, 5}, got["onTextSelection"])
	assert.Equal(t, []any{"hello world", 6, 11}, got["onEndTextSelection"])
	assert.Equal(t, []any{"hello world"}, got["onSubmit"])
	assert.Equal(t, []any{"hello world"}, got["onEndEdit"])
}

func TestInputClickFallsThroughToBase(t *testing.T) {
	in, w, _ := newTestInput(t)
	clicked := false
	in.SetEventListener("onClick", func(...any) { clicked = true })
	w.Click()
	assert.True(t, clicked)
}

func TestInputProperties(t *testing.T) {
	in, w, _ := newTestInput(t)

	require.NoError(t, in.SetProperty("placeholder", String("Search")))
	require.NoError(t, in.SetProperty("characterLimit", Number(12.5)))
	require.NoError(t, in.SetProperty("lineLimit", String("3")))
	require.NoError(t, in.SetProperty("readonly", String("TRUE")))
	require.NoError(t, in.SetProperty("richText", Bool(false)))
	require.NoError(t, in.SetProperty("contentType", Number(2)))
	require.NoError(t, in.SetProperty("keyboardType", Number(4)))
	require.NoError(t, in.SetProperty("lineType", Number(1)))
	require.NoError(t, in.SetProperty("validation", Number(3)))

	assert.Equal(t, "Search", w.Placeholder())
	assert.Equal(t, 12, w.CharacterLimit())
	assert.Equal(t, 3, w.LineLimit())
	assert.True(t, w.ReadOnly())
	assert.False(t, w.RichText())
	assert.Equal(t, native.ContentType(2), w.ContentType())
	assert.Equal(t, native.KeyboardType(4), w.KeyboardType())
	assert.Equal(t, native.LineType(1), w.LineType())
	assert.Equal(t, native.Validation(3), w.Validation())
}

func TestInputCoercionLeavesStateUnchanged(t *testing.T) {
	in, w, _ := newTestInput(t)
	require.NoError(t, in.SetProperty("characterLimit", Number(8)))
	require.NoError(t, in.SetProperty("contentType", Number(1)))

	cases := []struct {
		name string
		val  Value
	}{
		{"characterLimit", String("lots")},
		{"characterLimit", Null()},
		{"contentType", Number(99)},
		{"contentType", String("email")},
		{"readonly", String("yes")},
	}
	for _, tc := range cases {
		t.Run(tc.name+"/"+tc.val.Describe(), func(t *testing.T) {
			err := in.SetProperty(tc.name, tc.val)
			var ce *PropertyCoercionError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tc.name, ce.Property)
		})
	}
	assert.Equal(t, 8, w.CharacterLimit())
	assert.Equal(t, native.ContentType(1), w.ContentType())
	assert.False(t, w.ReadOnly())
}

func TestInputWebSupport(t *testing.T) {
	in, w, _ := newTestInput(t)

	require.NoError(t, in.SetProperty("webSupport", Bool(false)))
	assert.False(t, w.HasCapability(native.CapabilityWebInput))

	require.NoError(t, in.SetProperty("webSupport", Bool(true)))
	assert.True(t, w.HasCapability(native.CapabilityWebInput))

	require.NoError(t, in.SetProperty("webSupport", Number(0)))
	assert.False(t, w.HasCapability(native.CapabilityWebInput))
}

func TestInputMeasuresOnlyWhenWidthAuto(t *testing.T) {
	in, _, _ := newTestInput(t)
	assert.True(t, in.Box().HasMeasure())

	require.NoError(t, in.SetLayoutProperty("width", Number(300)))
	assert.False(t, in.Box().HasMeasure())

	require.NoError(t, in.SetLayoutProperty("width", String("auto")))
	assert.True(t, in.Box().HasMeasure())
}

func TestInputDefaults(t *testing.T) {
	in, _, root := newTestInput(t)
	root.ResolveStyle(true)

	lay := in.Box().Style()
	assert.Equal(t, layout.All(layout.Pt(8)), lay.Padding)
	assert.Equal(t, layout.Pt(40), lay.MinHeight)
	assert.Equal(t, layout.Pt(200), lay.MinWidth)
	assert.Equal(t, layout.Pct(100), lay.MaxWidth)
	assert.Equal(t, layout.OverflowHidden, lay.Overflow)

	vis := in.Style().Visual()
	assert.Equal(t, style.White, vis.BackgroundColor)
	assert.Equal(t, 8.0, vis.BorderRadius)
	assert.Equal(t, 24.0, vis.FontSize)
	assert.Equal(t, "text", vis.Cursor)
	assert.Equal(t, 24.0, in.TextStyle().Visual().FontSize)
}

func TestInputFocus(t *testing.T) {
	in, w, _ := newTestInput(t)
	in.Focus()
	assert.True(t, w.Focused())
}
