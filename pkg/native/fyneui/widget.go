package fyneui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"l14ui/pkg/native"
	"l14ui/pkg/style"
	stdnet "l14ui/std/net"
)

type listener struct {
	id      native.ListenerID
	event   native.Event
	handler native.Handler
}

// Widget is a positioned box with a background rectangle, optional content
// and child widgets drawn above it.
type Widget struct {
	tk      *Toolkit
	kind    native.Kind
	bg      *canvas.Rectangle
	content fyne.CanvasObject
	tap     *tapLayer
	box     *fyne.Container
	// fixed counts the leading box objects that are not child widgets.
	fixed int

	visual    style.Visual
	disabled  bool
	destroyed bool

	parent    *Widget
	children  []native.Widget
	listeners []listener
	caps      map[string]bool
	logger    *zap.Logger
}

type baser interface{ base() *Widget }

func (w *Widget) base() *Widget { return w }

func (w *Widget) Kind() native.Kind { return w.kind }

func (w *Widget) SetGeometry(x, y, width, height float64) {
	size := fyne.NewSize(float32(width), float32(height))
	w.box.Move(fyne.NewPos(float32(x), float32(y)))
	w.box.Resize(size)
	w.bg.Resize(size)
	if w.content != nil {
		w.content.Resize(size)
	}
	if w.tap != nil {
		w.tap.Resize(size)
	}
}

func (w *Widget) SetVisual(v style.Visual) {
	w.visual = v
	fill := v.BackgroundColor
	fill.A *= v.Opacity
	w.bg.FillColor = toColor(fill)
	w.bg.StrokeColor = toColor(v.BorderColor)
	w.bg.StrokeWidth = float32(v.BorderWidth)
	w.bg.CornerRadius = float32(v.BorderRadius)
	w.bg.Refresh()
	if v.Hidden {
		w.box.Hide()
	} else {
		w.box.Show()
	}
}

func (w *Widget) SetDisabled(disabled bool) { w.disabled = disabled }

func (w *Widget) Attach(child native.Widget, index int) {
	cb := child.(baser).base()
	if cb.parent != nil {
		cb.parent.Detach(child)
	}
	if index < 0 || index > len(w.children) {
		index = len(w.children)
	}
	w.children = append(w.children, nil)
	copy(w.children[index+1:], w.children[index:])
	w.children[index] = child
	cb.parent = w
	w.syncObjects()
}

func (w *Widget) Detach(child native.Widget) {
	for i, c := range w.children {
		if c == child {
			w.children = append(w.children[:i], w.children[i+1:]...)
			child.(baser).base().parent = nil
			w.syncObjects()
			return
		}
	}
}

// syncObjects rebuilds the container's object list so child boxes follow
// the fixed objects in child order.
func (w *Widget) syncObjects() {
	objects := append([]fyne.CanvasObject(nil), w.box.Objects[:w.fixed]...)
	for _, c := range w.children {
		objects = append(objects, c.(baser).base().box)
	}
	w.box.Objects = objects
	w.box.Refresh()
}

func (w *Widget) Listen(ev native.Event, h native.Handler) native.ListenerID {
	id := w.tk.listenerID()
	w.listeners = append(w.listeners, listener{id: id, event: ev, handler: h})
	return id
}

func (w *Widget) Unlisten(id native.ListenerID) {
	for i, l := range w.listeners {
		if l.id == id {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return
		}
	}
}

func (w *Widget) emit(ev native.Event, p native.Payload) {
	var hs []native.Handler
	for _, l := range w.listeners {
		if l.event == ev {
			hs = append(hs, l.handler)
		}
	}
	for _, h := range hs {
		h(p)
	}
}

// Capabilities have no fyne counterpart; they are tracked so components can
// query them.
func (w *Widget) AddCapability(name string) { w.caps[name] = true }

func (w *Widget) RemoveCapability(name string) bool {
	if !w.caps[name] {
		return false
	}
	delete(w.caps, name)
	return true
}

func (w *Widget) HasCapability(name string) bool { return w.caps[name] }

func (w *Widget) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	if w.parent != nil {
		for _, c := range w.parent.children {
			if c.(baser).base() == w {
				w.parent.Detach(c)
				break
			}
		}
	}
	w.listeners = nil
	w.box.Hide()
}

// addTapLayer puts a transparent tappable object above the content so
// clicks reach the widget's listeners.
func (w *Widget) addTapLayer() {
	w.tap = newTapLayer(w)
	w.box.Objects = append(w.box.Objects, w.tap)
	w.fixed = len(w.box.Objects)
}

// tapLayer turns pointer taps into click events and reports the cursor
// chosen by style.
type tapLayer struct {
	widget.BaseWidget
	owner *Widget
}

var (
	_ fyne.Tappable      = (*tapLayer)(nil)
	_ desktop.Cursorable = (*tapLayer)(nil)
)

func newTapLayer(owner *Widget) *tapLayer {
	t := &tapLayer{owner: owner}
	t.ExtendBaseWidget(t)
	return t
}

func (t *tapLayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

func (t *tapLayer) Tapped(*fyne.PointEvent) {
	if t.owner.disabled {
		return
	}
	t.owner.emit(native.EventClick, native.Payload{})
}

func (t *tapLayer) Cursor() desktop.Cursor {
	return cursorFor(t.owner.visual.Cursor)
}

func cursorFor(name string) desktop.Cursor {
	switch name {
	case "pointer":
		return desktop.PointerCursor
	case "text":
		return desktop.TextCursor
	case "crosshair":
		return desktop.CrosshairCursor
	case "none":
		return desktop.HiddenCursor
	}
	return desktop.DefaultCursor
}

// Text backs text and button components with a canvas.Text.
type Text struct {
	*Widget
	label *canvas.Text
}

func (t *Text) SetText(s string) {
	t.label.Text = s
	t.label.Refresh()
}

func (t *Text) Text() string { return t.label.Text }

func (t *Text) SetVisual(v style.Visual) {
	t.Widget.SetVisual(v)
	fg := v.Color
	fg.A *= v.Opacity
	t.label.Color = toColor(fg)
	t.label.TextSize = float32(v.FontSize)
	t.label.TextStyle = fyne.TextStyle{Bold: v.Bold, Italic: v.Italic}
	switch v.TextAlign {
	case "center":
		t.label.Alignment = fyne.TextAlignCenter
	case "right", "end":
		t.label.Alignment = fyne.TextAlignTrailing
	default:
		t.label.Alignment = fyne.TextAlignLeading
	}
	t.label.Refresh()
}

// Image backs image components. Network and file URLs load through fyne's
// storage layer; anything else is treated as a local path.
type Image struct {
	*Widget
	img    *canvas.Image
	source string
}

func (i *Image) SetSource(src string) {
	i.source = src
	i.img.Resource = nil
	i.img.File = ""
	i.img.Image = nil
	if stdnet.IsNetworkURL(src) || stdnet.IsFileURL(src) {
		u, err := storage.ParseURI(src)
		if err != nil {
			i.logger.Warn("bad image source", zap.String("src", src), zap.Error(err))
			return
		}
		if stdnet.IsFileURL(src) {
			i.img.File = u.Path()
		} else {
			res, err := storage.LoadResourceFromURI(u)
			if err != nil {
				i.logger.Warn("image load failed", zap.String("src", src), zap.Error(err))
				return
			}
			i.img.Resource = res
		}
	} else {
		i.img.File = src
	}
	i.img.Refresh()
}

// Source returns the image resource last set.
func (i *Image) Source() string { return i.source }
