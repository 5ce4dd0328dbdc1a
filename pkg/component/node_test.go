package component

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"l14ui/pkg/layout"
	"l14ui/pkg/native"
	"l14ui/pkg/native/headless"
	"l14ui/pkg/style"
)

func newTestContext(t *testing.T) (*Context, *headless.Toolkit) {
	t.Helper()
	tk := headless.New()
	return NewContext(tk, zap.NewNop()), tk
}

func mustNew(t *testing.T, ctx *Context, kind native.Kind) Node {
	t.Helper()
	n, err := New(ctx, kind)
	require.NoError(t, err)
	return n
}

func ids(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func TestSetParentMovesToEnd(t *testing.T) {
	ctx, _ := newTestContext(t)
	a := mustNew(t, ctx, native.KindView)
	b := mustNew(t, ctx, native.KindView)
	x := mustNew(t, ctx, native.KindView)
	y := mustNew(t, ctx, native.KindView)
	z := mustNew(t, ctx, native.KindView)
	w := mustNew(t, ctx, native.KindView)
	for _, c := range []Node{x, y, z} {
		require.NoError(t, c.SetParent(a))
	}
	require.NoError(t, w.SetParent(b))

	require.NoError(t, y.SetParent(b))

	assert.Equal(t, []string{x.ID(), z.ID()}, ids(a.Children()))
	assert.Equal(t, []string{w.ID(), y.ID()}, ids(b.Children()))
	assert.Same(t, b.(*View), y.Parent().(*View))

	// widgets and layout boxes follow the component tree
	bw := b.Widget().(*headless.Widget)
	require.Len(t, bw.Children(), 2)
	assert.Equal(t, y.Widget(), bw.Children()[1])
	assert.Len(t, a.(*View).Box().Children(), 2)
	assert.Same(t, b.(*View).Box(), y.(*View).Box().Parent())
}

func TestSetParentRejectsCycle(t *testing.T) {
	ctx, _ := newTestContext(t)
	root := mustNew(t, ctx, native.KindView)
	mid := mustNew(t, ctx, native.KindView)
	leaf := mustNew(t, ctx, native.KindView)
	require.NoError(t, mid.SetParent(root))
	require.NoError(t, leaf.SetParent(mid))

	err := root.SetParent(leaf)
	var se *StructuralError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "setParent", se.Op)

	err = mid.SetParent(mid)
	require.True(t, errors.As(err, &se))

	assert.Nil(t, root.Parent())
	assert.Equal(t, []string{mid.ID()}, ids(root.Children()))
	assert.Equal(t, []string{leaf.ID()}, ids(mid.Children()))
}

func TestSetParentNilDetaches(t *testing.T) {
	ctx, tk := newTestContext(t)
	root := mustNew(t, ctx, native.KindView)
	child := mustNew(t, ctx, native.KindText)
	require.NoError(t, child.SetParent(root))

	require.NoError(t, child.SetParent(nil))
	assert.Empty(t, root.Children())
	assert.Nil(t, child.Parent())
	assert.Equal(t, 2, tk.Live())
	assert.False(t, child.(*Text).Destroyed())
}

func TestRemoveDestroysSubtree(t *testing.T) {
	ctx, tk := newTestContext(t)
	root := mustNew(t, ctx, native.KindView)
	mid := mustNew(t, ctx, native.KindView)
	leaf := mustNew(t, ctx, native.KindButton)
	require.NoError(t, mid.SetParent(root))
	require.NoError(t, leaf.SetParent(mid))
	clicks := 0
	leaf.SetEventListener("onClick", func(...any) { clicks++ })
	require.Equal(t, 3, tk.Live())

	mid.Remove()

	assert.Equal(t, 1, tk.Live())
	assert.Empty(t, root.Children())
	lw := leaf.Widget().(*headless.Text)
	assert.True(t, lw.Destroyed())
	assert.Equal(t, 0, lw.ListenerCount(native.EventClick))
	assert.Equal(t, 0, lw.Click())
	assert.Equal(t, 0, clicks)

	var se *StructuralError
	assert.True(t, errors.As(leaf.SetParent(root), &se))
}

func TestClickBindingReplaces(t *testing.T) {
	ctx, _ := newTestContext(t)
	btn := mustNew(t, ctx, native.KindButton)
	var got []string
	btn.SetEventListener("onClick", func(...any) { got = append(got, "first") })
	btn.SetEventListener("onClick", func(...any) { got = append(got, "second") })

	w := btn.Widget().(*headless.Text)
	assert.Equal(t, 1, w.ListenerCount(native.EventClick))
	w.Click()
	assert.Equal(t, []string{"second"}, got)

	btn.SetEventListener("onClick", nil)
	assert.Equal(t, 0, w.Click())
}

func TestUnknownEventIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ctx := NewContext(headless.New(), zap.New(core))
	v := mustNew(t, ctx, native.KindView)

	v.SetEventListener("onHover", func(...any) {})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "unsupported event", entry.Message)
	assert.Equal(t, "onHover", entry.ContextMap()["event"])
}

func TestBaseProperties(t *testing.T) {
	ctx, _ := newTestContext(t)
	v := mustNew(t, ctx, native.KindView)

	require.NoError(t, v.SetProperty("name", String("sidebar")))
	require.NoError(t, v.SetProperty("hidden", Bool(true)))
	require.NoError(t, v.SetProperty("disabled", Number(1)))
	require.NoError(t, v.SetProperty("data-role", Number(3)))

	view := v.(*View)
	assert.Equal(t, "sidebar", view.Name())
	assert.Equal(t, layout.DisplayNone, view.Box().Style().Display)
	assert.True(t, v.Widget().(*headless.Widget).Disabled())
	attr, ok := view.Attr("data-role")
	assert.True(t, ok)
	assert.Equal(t, "3", attr)

	err := v.SetProperty("hidden", String("maybe"))
	var ce *PropertyCoercionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "hidden", ce.Property)
	assert.Equal(t, layout.DisplayNone, view.Box().Style().Display)
}

func TestLayoutPropertyRejectsGarbage(t *testing.T) {
	ctx, _ := newTestContext(t)
	v := mustNew(t, ctx, native.KindView).(*View)
	require.NoError(t, v.SetLayoutProperty("width", String("120")))
	assert.Equal(t, layout.Pt(120), v.Box().Style().Width)

	err := v.SetLayoutProperty("width", String("wide"))
	var ce *PropertyCoercionError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, layout.Pt(120), v.Box().Style().Width)
}

func TestResolveStyleCascadesThroughTree(t *testing.T) {
	ctx, _ := newTestContext(t)
	root := mustNew(t, ctx, native.KindView)
	mid := mustNew(t, ctx, native.KindView)
	leaf := mustNew(t, ctx, native.KindText)
	require.NoError(t, mid.SetParent(root))
	require.NoError(t, leaf.SetParent(mid))
	root.(*View).SetStyleProperty(style.PropColor, String("red"))
	root.(*View).SetStyleProperty(style.PropBackgroundColor, String("blue"))

	root.ResolveStyle(true)
	Walk(root, func(n Node) { n.ApplyStyles() })

	got, _ := leaf.Style().Get(style.PropColor)
	assert.Equal(t, "red", got)
	bg, _ := leaf.Style().Get(style.PropBackgroundColor)
	assert.Equal(t, "transparent", bg)
	vis := leaf.Widget().(*headless.Text).Visual()
	assert.Equal(t, style.Color{R: 255, A: 1}, vis.Color)
}

func TestButtonDefaults(t *testing.T) {
	ctx, _ := newTestContext(t)
	btn := mustNew(t, ctx, native.KindButton)
	btn.ResolveStyle(false)
	cursor, _ := btn.Style().Get(style.PropCursor)
	assert.Equal(t, "pointer", cursor)

	btn.(*Text).SetStyleProperty(style.PropCursor, String("default"))
	btn.ResolveStyle(false)
	cursor, _ = btn.Style().Get(style.PropCursor)
	assert.Equal(t, "default", cursor)
}

func TestTextAndImageProperties(t *testing.T) {
	ctx, _ := newTestContext(t)
	txt := mustNew(t, ctx, native.KindText)
	img := mustNew(t, ctx, native.KindImage)

	require.NoError(t, txt.SetProperty("text", String("hello")))
	require.NoError(t, img.SetProperty("source", String("logo.png")))

	assert.Equal(t, "hello", txt.(*Text).Text())
	assert.Equal(t, "hello", txt.Widget().(*headless.Text).Text())
	assert.Equal(t, "logo.png", img.Widget().(*headless.Image).Source())
	assert.True(t, txt.(*Text).Box().HasMeasure())
}

func TestLayoutPushesGeometry(t *testing.T) {
	ctx, _ := newTestContext(t)
	root := mustNew(t, ctx, native.KindView)
	a := mustNew(t, ctx, native.KindView)
	b := mustNew(t, ctx, native.KindView)
	require.NoError(t, a.SetParent(root))
	require.NoError(t, b.SetParent(root))
	require.NoError(t, a.(*View).SetLayoutProperty("height", Number(50)))
	require.NoError(t, b.(*View).SetLayoutProperty("flexGrow", Number(1)))

	Layout(ctx, root, 200, 300)

	x, y, w, h := b.Widget().(*headless.Widget).Bounds()
	assert.Equal(t, []float64{0, 50, 200, 250}, []float64{x, y, w, h})
	_, _, rw, rh := root.Widget().(*headless.Widget).Bounds()
	assert.Equal(t, 200.0, rw)
	assert.Equal(t, 300.0, rh)
}

func TestNewUnknownKind(t *testing.T) {
	ctx, tk := newTestContext(t)
	_, err := New(ctx, native.Kind("video"))
	assert.Error(t, err)
	assert.Equal(t, 0, tk.Live())
}
