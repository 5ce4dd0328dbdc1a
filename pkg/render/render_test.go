package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"l14ui/pkg/images"
	"l14ui/pkg/native"
	"l14ui/pkg/native/headless"
	"l14ui/pkg/style"
)

func widget(t *testing.T, tk *headless.Toolkit, kind native.Kind) native.Widget {
	t.Helper()
	w, err := tk.NewWidget(kind)
	require.NoError(t, err)
	return w
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRenderPaintsNestedBackgrounds(t *testing.T) {
	tk := headless.New()
	root := widget(t, tk, native.KindView)
	root.SetGeometry(0, 0, 100, 100)
	root.SetVisual(style.Visual{BackgroundColor: style.Color{R: 255, A: 1}, Opacity: 1})

	child := widget(t, tk, native.KindView)
	child.SetGeometry(50, 50, 20, 20)
	child.SetVisual(style.Visual{BackgroundColor: style.Color{B: 255, A: 1}, Opacity: 1})
	root.Attach(child, -1)

	inner := widget(t, tk, native.KindView)
	inner.SetGeometry(5, 5, 5, 5)
	inner.SetVisual(style.Visual{BackgroundColor: style.Color{G: 255, A: 1}, Opacity: 1})
	child.Attach(inner, -1)

	r := NewRenderer(120, 120, nil, nil, nil)
	r.Render(context.Background(), root)
	img := r.Image()

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgba(img, 10, 10))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgba(img, 52, 52))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, rgba(img, 57, 57), "children are offset by their parent")
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(img, 110, 110))
}

func TestRenderSkipsHiddenSubtrees(t *testing.T) {
	tk := headless.New()
	root := widget(t, tk, native.KindView)
	root.SetGeometry(0, 0, 40, 40)
	root.SetVisual(style.Visual{BackgroundColor: style.Black, Opacity: 1, Hidden: true})

	r := NewRenderer(40, 40, nil, nil, nil)
	r.Render(context.Background(), root)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgba(r.Image(), 20, 20))
}

func TestRenderTextAndPlaceholder(t *testing.T) {
	tk := headless.New()
	root := widget(t, tk, native.KindView)
	root.SetGeometry(0, 0, 200, 100)

	label := widget(t, tk, native.KindText).(*headless.Text)
	label.SetGeometry(0, 0, 200, 40)
	label.SetVisual(style.Visual{Color: style.Black, FontSize: 26, Opacity: 1})
	label.SetText("MMMM")
	root.Attach(label, -1)

	in := widget(t, tk, native.KindInput).(*headless.Input)
	in.SetGeometry(0, 50, 200, 40)
	in.SetVisual(style.Visual{Color: style.Black, FontSize: 26, Opacity: 1})
	in.SetPlaceholder("WWWW")
	in.SetPlaceholderColor(style.Color{R: 255, A: 1})
	root.Attach(in, -1)

	r := NewRenderer(200, 100, nil, nil, nil)
	r.Render(context.Background(), root)
	img := r.Image()

	var dark, red bool
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			c := rgba(img, x, y)
			if y < 40 && c.R < 100 && c.G < 100 && c.B < 100 {
				dark = true
			}
			if y >= 50 && c.R > 200 && c.G < 100 && c.B < 100 {
				red = true
			}
		}
	}
	assert.True(t, dark, "label text should be painted")
	assert.True(t, red, "placeholder should be painted in its color")
}

func TestRenderBrokenImageAndPNG(t *testing.T) {
	tk := headless.New()
	img := widget(t, tk, native.KindImage).(*headless.Image)
	img.SetGeometry(0, 0, 30, 30)
	img.SetVisual(style.Visual{Opacity: 1})
	img.SetSource("data:image/png;base64,aGVsbG8=")

	r := NewRenderer(30, 30, nil, images.NewLoader(nil, nil), nil)
	r.Render(context.Background(), img)
	c := rgba(r.Image(), 15, 3)
	assert.InDelta(t, 229, int(c.R), 2, "placeholder fill")

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 30, decoded.Bounds().Dx())
}
