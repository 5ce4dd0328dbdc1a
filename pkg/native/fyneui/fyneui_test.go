package fyneui

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

func newWidget(t *testing.T, tk *Toolkit, kind native.Kind) native.Widget {
	t.Helper()
	w, err := tk.NewWidget(kind)
	require.NoError(t, err)
	return w
}

func TestAttachOrdersChildBoxes(t *testing.T) {
	test.NewTempApp(t)
	tk := New(nil)
	root := newWidget(t, tk, native.KindView)
	a := newWidget(t, tk, native.KindText)
	b := newWidget(t, tk, native.KindImage)

	root.Attach(a, -1)
	root.Attach(b, 0)

	box := root.(*Widget).box
	fixed := root.(*Widget).fixed
	require.Len(t, box.Objects, fixed+2)
	assert.Same(t, b.(*Image).box, box.Objects[fixed])
	assert.Same(t, a.(*Text).box, box.Objects[fixed+1])

	root.Detach(b)
	assert.Len(t, box.Objects, fixed+1)
	a.Destroy()
	assert.Len(t, box.Objects, fixed)
}

func TestGeometryAndVisual(t *testing.T) {
	test.NewTempApp(t)
	tk := New(nil)
	w := newWidget(t, tk, native.KindButton).(*Text)
	w.SetGeometry(10, 20, 100, 30)
	assert.Equal(t, fyne.NewPos(10, 20), w.box.Position())
	assert.Equal(t, fyne.NewSize(100, 30), w.bg.Size())

	w.SetText("Go")
	w.SetVisual(style.Visual{
		Color:           style.Black,
		BackgroundColor: style.White,
		BorderWidth:     1,
		BorderRadius:    4,
		FontSize:        18,
		Bold:            true,
		TextAlign:       "center",
		Opacity:         1,
		Cursor:          "pointer",
	})
	assert.Equal(t, "Go", w.Text())
	assert.Equal(t, float32(18), w.label.TextSize)
	assert.Equal(t, fyne.TextAlignCenter, w.label.Alignment)
	assert.Equal(t, float32(4), w.bg.CornerRadius)
	assert.Equal(t, cursorFor("pointer"), w.tap.Cursor())

	w.SetVisual(style.Visual{Hidden: true, Opacity: 1})
	assert.False(t, w.box.Visible())
}

func TestTapEmitsClick(t *testing.T) {
	test.NewTempApp(t)
	tk := New(nil)
	w := newWidget(t, tk, native.KindView).(*Widget)
	clicks := 0
	id := w.Listen(native.EventClick, func(native.Payload) { clicks++ })

	test.Tap(w.tap)
	assert.Equal(t, 1, clicks)

	w.SetDisabled(true)
	test.Tap(w.tap)
	assert.Equal(t, 1, clicks)

	w.SetDisabled(false)
	w.Unlisten(id)
	test.Tap(w.tap)
	assert.Equal(t, 1, clicks)
}

func TestInputEvents(t *testing.T) {
	test.NewTempApp(t)
	tk := New(nil)
	in := newWidget(t, tk, native.KindInput).(*Input)
	win := test.NewWindow(in.box)
	defer win.Close()

	var changes []string
	in.Listen(native.EventChange, func(p native.Payload) { changes = append(changes, p.Text) })
	var submitted string
	in.Listen(native.EventSubmit, func(p native.Payload) { submitted = p.Text })

	in.SetValue("quiet")
	assert.Empty(t, changes)
	assert.Equal(t, "quiet", in.Value())

	in.SetValue("")
	in.SetCharacterLimit(2)
	test.Type(in.field, "abc")
	assert.Equal(t, "ab", in.Value())
	assert.Equal(t, []string{"a", "ab", "ab"}, changes)

	in.field.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.Equal(t, "ab", submitted)
}

func TestInputPropertiesMapToEntry(t *testing.T) {
	test.NewTempApp(t)
	tk := New(nil)
	in := newWidget(t, tk, native.KindInput).(*Input)

	in.SetPlaceholder("name")
	assert.Equal(t, "name", in.field.PlaceHolder)

	in.SetPlaceholderColor(style.Color{R: 255, A: 0.5})
	got := in.theme.Color(theme.ColorNamePlaceHolder, theme.VariantLight)
	assert.Equal(t, color.NRGBA{R: 255, A: 128}, got)

	in.SetContentType(native.ContentPassword)
	assert.True(t, in.field.Password)
	in.SetLineType(native.LineMultiNewline)
	assert.True(t, in.field.MultiLine)
	in.SetReadOnly(true)
	assert.True(t, in.field.Disabled())
	in.SetValidation(native.ValidationDigit)
	require.NotNil(t, in.field.Validator)
	assert.Error(t, in.field.Validator("12a"))
	assert.NoError(t, in.field.Validator("123"))

	in.AddCapability(native.CapabilityWebInput)
	assert.True(t, in.HasCapability(native.CapabilityWebInput))
	assert.True(t, in.RemoveCapability(native.CapabilityWebInput))
	assert.False(t, in.RemoveCapability(native.CapabilityWebInput))
}

func TestReadOnlySurvivesEnable(t *testing.T) {
	test.NewTempApp(t)
	tk := New(nil)
	in := newWidget(t, tk, native.KindInput).(*Input)

	in.SetReadOnly(true)
	in.SetDisabled(true)
	in.SetDisabled(false)
	assert.True(t, in.field.Disabled(), "read-only input stays locked")

	in.SetReadOnly(false)
	assert.False(t, in.field.Disabled())
	in.SetDisabled(true)
	in.SetReadOnly(false)
	assert.True(t, in.field.Disabled(), "disabled input stays locked")
}

func TestSelectionStartUsesCursor(t *testing.T) {
	in := &Input{}
	text := []rune("abcabc")

	assert.Equal(t, 3, in.selectionStart(text, []rune("abc"), 6))
	assert.Equal(t, 0, in.selectionStart(text, []rune("abc"), 0))
	assert.Equal(t, 1, in.selectionStart(text, []rune("bc"), 1))

	in.selecting, in.selStart, in.selEnd = true, 2, 4
	assert.Equal(t, 2, in.selectionStart([]rune("aaaa"), []rune("aa"), 2))
	in.selStart, in.selEnd = 0, 2
	assert.Equal(t, 0, in.selectionStart([]rune("aaaa"), []rune("aa"), 2))
}

func TestCursorOffsetCountsRows(t *testing.T) {
	text := []rune("ab\ncde\nf")
	assert.Equal(t, 1, cursorOffset(text, 0, 1))
	assert.Equal(t, 5, cursorOffset(text, 1, 2))
	assert.Equal(t, 7, cursorOffset(text, 2, 0))
	assert.Equal(t, len(text), cursorOffset(text, 2, 9))
}
