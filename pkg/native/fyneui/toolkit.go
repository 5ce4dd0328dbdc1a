// Package fyneui backs components with fyne canvas objects. Every widget is
// a container without a layout so the flex engine owns all positioning.
//
// Like the rest of fyne, widgets must only be touched from the fyne main
// goroutine; hosts drive cycles through fyne.Do.
package fyneui

import (
	"fmt"
	"image/color"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"go.uber.org/zap"

	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

// Toolkit creates fyne-backed widgets.
type Toolkit struct {
	nextID atomic.Uint64
	logger *zap.Logger
}

func New(logger *zap.Logger) *Toolkit {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Toolkit{logger: logger.Named("fyneui")}
}

// NewWidget implements native.Toolkit.
func (t *Toolkit) NewWidget(kind native.Kind) (native.Widget, error) {
	switch kind {
	case native.KindView:
		w := t.newWidget(kind, nil)
		w.addTapLayer()
		return w, nil
	case native.KindText, native.KindButton:
		label := canvas.NewText("", color.Black)
		w := &Text{Widget: t.newWidget(kind, label), label: label}
		w.addTapLayer()
		return w, nil
	case native.KindImage:
		img := &canvas.Image{FillMode: canvas.ImageFillContain}
		w := &Image{Widget: t.newWidget(kind, img), img: img}
		w.addTapLayer()
		return w, nil
	case native.KindInput:
		return t.newInput(), nil
	}
	return nil, fmt.Errorf("fyneui: unknown widget kind %q", kind)
}

// CanvasObject returns the fyne object for a widget created by this package,
// typically the root to hand to Window.SetContent.
func CanvasObject(w native.Widget) (fyne.CanvasObject, bool) {
	b, ok := w.(baser)
	if !ok {
		return nil, false
	}
	return b.base().box, true
}

func (t *Toolkit) newWidget(kind native.Kind, content fyne.CanvasObject) *Widget {
	bg := canvas.NewRectangle(color.Transparent)
	objects := []fyne.CanvasObject{bg}
	if content != nil {
		objects = append(objects, content)
	}
	return &Widget{
		tk:      t,
		kind:    kind,
		bg:      bg,
		content: content,
		box:     container.NewWithoutLayout(objects...),
		caps:    make(map[string]bool),
		logger:  t.logger.With(zap.String("kind", string(kind))),
	}
}

func (t *Toolkit) listenerID() native.ListenerID {
	return native.ListenerID(t.nextID.Add(1))
}

// toColor converts a style color to the form fyne draws with.
func toColor(c style.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(c.A*255 + 0.5)}
}
