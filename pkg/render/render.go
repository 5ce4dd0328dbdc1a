// Package render rasterises a headless widget scene to an image.
package render

import (
	"context"
	"image"
	"io"

	"github.com/fogleman/gg"
	"go.uber.org/zap"

	"l14ui/pkg/images"
	"l14ui/pkg/native"
	"l14ui/pkg/native/headless"
	"l14ui/pkg/style"
	"l14ui/pkg/text"
)

// Renderer paints widgets with gg. Widgets are drawn in tree order, parents
// beneath their children.
type Renderer struct {
	context  *gg.Context
	measurer *text.Measurer
	images   *images.Loader
	logger   *zap.Logger
}

// NewRenderer creates a renderer with a width x height canvas. loader may
// be nil, in which case images draw as placeholders.
func NewRenderer(width, height int, measurer *text.Measurer, loader *images.Loader, logger *zap.Logger) *Renderer {
	if measurer == nil {
		measurer = text.NewMeasurer("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		context:  gg.NewContext(width, height),
		measurer: measurer,
		images:   loader,
		logger:   logger.Named("render"),
	}
}

// Render clears the canvas to white and paints the scene rooted at root.
func (r *Renderer) Render(ctx context.Context, root native.Widget) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()
	r.drawWidget(ctx, root, 0, 0, 1)
}

// Image returns the rendered canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

func (r *Renderer) drawWidget(ctx context.Context, w native.Widget, offX, offY, opacity float64) {
	hw, ok := widgetOf(w)
	if !ok || hw.Destroyed() {
		return
	}
	v := hw.Visual()
	if v.Hidden {
		return
	}
	x, y, width, height := hw.Bounds()
	x += offX
	y += offY
	if v.Opacity > 0 {
		opacity *= v.Opacity
	}

	r.drawBackground(v, x, y, width, height, opacity)
	switch tw := w.(type) {
	case *headless.Image:
		r.drawImage(ctx, tw.Source(), x, y, width, height)
	case *headless.Text:
		r.drawText(tw.Text(), v, v.Color, x, y, width, opacity)
	case *headless.Input:
		if value := tw.Value(); value != "" {
			r.drawText(value, v, v.Color, x, y, width, opacity)
		} else {
			r.drawText(tw.Placeholder(), v, tw.PlaceholderColor(), x, y, width, opacity)
		}
	}
	for _, c := range hw.Children() {
		r.drawWidget(ctx, c, x, y, opacity)
	}
}

func widgetOf(w native.Widget) (*headless.Widget, bool) {
	switch tw := w.(type) {
	case *headless.Widget:
		return tw, true
	case *headless.Text:
		return tw.Widget, true
	case *headless.Image:
		return tw.Widget, true
	case *headless.Input:
		return tw.Widget, true
	}
	return nil, false
}

func (r *Renderer) setColor(c style.Color, opacity float64) {
	red, green, blue, alpha := c.RGBA()
	r.context.SetRGBA(red, green, blue, alpha*opacity)
}

func (r *Renderer) drawBackground(v style.Visual, x, y, width, height, opacity float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if v.BackgroundColor.A > 0 {
		r.setColor(v.BackgroundColor, opacity)
		r.rect(x, y, width, height, v.BorderRadius)
		r.context.Fill()
	}
	if v.BorderWidth > 0 && v.BorderColor.A > 0 {
		half := v.BorderWidth / 2
		r.setColor(v.BorderColor, opacity)
		r.context.SetLineWidth(v.BorderWidth)
		r.rect(x+half, y+half, width-v.BorderWidth, height-v.BorderWidth, v.BorderRadius)
		r.context.Stroke()
	}
}

func (r *Renderer) rect(x, y, width, height, radius float64) {
	if radius > 0 {
		r.context.DrawRoundedRectangle(x, y, width, height, radius)
		return
	}
	r.context.DrawRectangle(x, y, width, height)
}

// drawText wraps s to the widget width and aligns each line.
func (r *Renderer) drawText(s string, v style.Visual, c style.Color, x, y, width, opacity float64) {
	if s == "" {
		return
	}
	fontSize := v.FontSize
	if fontSize <= 0 {
		fontSize = 16
	}
	r.setColor(c, opacity)
	lineHeight := r.measurer.LineHeight(fontSize)
	for i, line := range r.measurer.BreakLines(s, fontSize, width) {
		lineX := x
		if v.TextAlign == "center" || v.TextAlign == "right" || v.TextAlign == "end" {
			lw, _ := r.measurer.Measure(line, fontSize, 0)
			if v.TextAlign == "center" {
				lineX += (width - lw) / 2
			} else {
				lineX += width - lw
			}
		}
		r.measurer.Draw(r.context, line, fontSize, lineX, y+fontSize+float64(i)*lineHeight)
	}
}

func (r *Renderer) drawImage(ctx context.Context, src string, x, y, width, height float64) {
	if src == "" || width <= 0 || height <= 0 {
		return
	}
	var img image.Image
	if r.images != nil {
		var err error
		if img, err = r.images.Load(ctx, src); err != nil {
			r.logger.Debug("drawing image placeholder", zap.String("src", src), zap.Error(err))
		}
	}
	if img == nil {
		// Broken image: grey box with a cross.
		r.context.SetRGB(0.9, 0.9, 0.9)
		r.context.DrawRectangle(x, y, width, height)
		r.context.Fill()
		r.context.SetRGB(0.5, 0.5, 0.5)
		r.context.SetLineWidth(2)
		r.context.DrawLine(x, y, x+width, y+height)
		r.context.DrawLine(x+width, y, x, y+height)
		r.context.Stroke()
		return
	}
	b := img.Bounds()
	r.context.Push()
	r.context.Translate(x, y)
	r.context.Scale(width/float64(b.Dx()), height/float64(b.Dy()))
	r.context.DrawImage(img, 0, 0)
	r.context.Pop()
}
