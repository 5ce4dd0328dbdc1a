// Package headless is an in-memory widget backend. It keeps the full scene
// graph so it can be inspected by tests and rasterised by pkg/render.
package headless

import (
	"fmt"
	"sync"

	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

// Toolkit creates headless widgets and tracks how many are alive.
type Toolkit struct {
	mu     sync.Mutex
	nextID native.ListenerID
	live   int
}

func New() *Toolkit {
	return &Toolkit{}
}

// NewWidget implements native.Toolkit.
func (t *Toolkit) NewWidget(kind native.Kind) (native.Widget, error) {
	base := &Widget{tk: t, kind: kind, caps: make(map[string]bool)}
	t.mu.Lock()
	t.live++
	t.mu.Unlock()

	switch kind {
	case native.KindView:
		return base, nil
	case native.KindText, native.KindButton:
		return &Text{Widget: base}, nil
	case native.KindImage:
		return &Image{Widget: base}, nil
	case native.KindInput:
		return &Input{Widget: base}, nil
	}
	t.mu.Lock()
	t.live--
	t.mu.Unlock()
	return nil, fmt.Errorf("headless: unknown widget kind %q", kind)
}

// Live returns the number of widgets created and not yet destroyed.
func (t *Toolkit) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.live
}

func (t *Toolkit) listenerID() native.ListenerID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	return t.nextID
}

type listener struct {
	id      native.ListenerID
	event   native.Event
	handler native.Handler
}

// Widget is a plain container widget; the other kinds embed it.
type Widget struct {
	tk   *Toolkit
	kind native.Kind

	x, y, width, height float64
	visual              style.Visual
	disabled            bool
	destroyed           bool

	parent    *Widget
	children  []native.Widget
	listeners []listener
	caps      map[string]bool
}

func (w *Widget) base() *Widget { return w }

type baser interface{ base() *Widget }

func (w *Widget) Kind() native.Kind { return w.kind }

func (w *Widget) SetGeometry(x, y, width, height float64) {
	w.x, w.y, w.width, w.height = x, y, width, height
}

// Bounds returns the geometry relative to the parent widget.
func (w *Widget) Bounds() (x, y, width, height float64) {
	return w.x, w.y, w.width, w.height
}

func (w *Widget) SetVisual(v style.Visual) { w.visual = v }

// Visual returns the last visual pushed by the component.
func (w *Widget) Visual() style.Visual { return w.visual }

func (w *Widget) SetDisabled(disabled bool) { w.disabled = disabled }

func (w *Widget) Disabled() bool { return w.disabled }

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
}

func (w *Widget) Detach(child native.Widget) {
	for i, c := range w.children {
		if c == child {
			w.children = append(w.children[:i], w.children[i+1:]...)
			child.(baser).base().parent = nil
			return
		}
	}
}

// Children returns attached child widgets in paint order.
func (w *Widget) Children() []native.Widget { return w.children }

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

// ListenerCount returns how many handlers are registered for ev.
func (w *Widget) ListenerCount(ev native.Event) int {
	n := 0
	for _, l := range w.listeners {
		if l.event == ev {
			n++
		}
	}
	return n
}

// Emit delivers a native event to every handler registered for it, in
// registration order. It returns how many handlers ran.
func (w *Widget) Emit(ev native.Event, p native.Payload) int {
	var hs []native.Handler
	for _, l := range w.listeners {
		if l.event == ev {
			hs = append(hs, l.handler)
		}
	}
	for _, h := range hs {
		h(p)
	}
	return len(hs)
}

// Click simulates a pointer click.
func (w *Widget) Click() int {
	if w.disabled {
		return 0
	}
	return w.Emit(native.EventClick, native.Payload{})
}

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
		w.parent.Detach(w.self())
	}
	w.listeners = nil
	w.tk.mu.Lock()
	w.tk.live--
	w.tk.mu.Unlock()
}

// self finds the outer widget value registered in the parent, which may be
// a wrapper embedding w.
func (w *Widget) self() native.Widget {
	if w.parent != nil {
		for _, c := range w.parent.children {
			if c.(baser).base() == w {
				return c
			}
		}
	}
	return w
}

// Destroyed reports whether Destroy has run.
func (w *Widget) Destroyed() bool { return w.destroyed }

// Text backs text and button components.
type Text struct {
	*Widget
	text string
}

func (t *Text) SetText(s string) { t.text = s }
func (t *Text) Text() string { return t.text }

// Image backs image components.
type Image struct {
	*Widget
	source string
}

func (i *Image) SetSource(src string) { i.source = src }

// Source returns the image resource last set.
func (i *Image) Source() string { return i.source }
