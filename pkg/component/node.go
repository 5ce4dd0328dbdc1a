package component

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"l14ui/pkg/layout"
	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

// Callback receives event arguments forwarded from a native listener.
type Callback func(args ...any)

// StyleableNode participates in the style cascade.
type StyleableNode interface {
	Style() *style.Node
	ResolveStyle(recursive bool)
	ApplyStyles()
}

// EventBindable binds script callbacks to native events.
type EventBindable interface {
	SetEventListener(name string, cb Callback)
}

// LayoutParticipant pushes geometry properties to the layout engine.
type LayoutParticipant interface {
	Layout() *layout.Node
	ApplyLayoutStyles()
	ApplyGeometry()
}

// PropertySetter accepts kind-specific properties.
type PropertySetter interface {
	SetProperty(name string, v Value) error
}

// Node is a composition-tree node. Each kind implements the capability
// interfaces and hands names it does not know to *Base explicitly.
type Node interface {
	StyleableNode
	EventBindable
	LayoutParticipant
	PropertySetter

	ID() string
	Kind() native.Kind
	Parent() Node
	Children() []Node
	SetParent(parent Node) error
	Remove()
	Widget() native.Widget
	SetStyleProperty(name string, v Value)
	SetLayoutProperty(name string, v Value) error

	base() *Base
}

// Base holds the state shared by every kind and implements the default
// behavior kinds fall back to.
type Base struct {
	ctx      *Context
	id       string
	kind     native.Kind
	self     Node
	parent   Node
	children []Node

	style    *style.Node
	defaults style.Defaults
	layout   layout.Node
	box      *layout.Box
	widget   native.Widget

	listeners map[string][]native.ListenerID
	attrs     map[string]string
	name      string
	destroyed bool
	logger    *zap.Logger
}

// newBase creates the widget and layout box for a node. self is the outer
// kind value so that tree operations store the right interface.
func newBase(ctx *Context, kind native.Kind, self Node, defaults style.Defaults, lay layout.Node) (*Base, error) {
	w, err := ctx.Toolkit.NewWidget(kind)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	b := &Base{
		ctx:       ctx,
		id:        id,
		kind:      kind,
		self:      self,
		style:     style.NewNode(),
		defaults:  defaults,
		layout:    lay,
		box:       ctx.Layout.NewBox(),
		widget:    w,
		listeners: make(map[string][]native.ListenerID),
		attrs:     make(map[string]string),
		logger:    ctx.Logger.With(zap.String("node", id), zap.String("kind", string(kind))),
	}
	return b, nil
}

func (b *Base) base() *Base { return b }
func (b *Base) ID() string { return b.id }
func (b *Base) Kind() native.Kind { return b.kind }
func (b *Base) Parent() Node { return b.parent }
func (b *Base) Widget() native.Widget { return b.widget }
func (b *Base) Style() *style.Node { return b.style }
func (b *Base) Layout() *layout.Node { return &b.layout }
func (b *Base) Box() *layout.Box { return b.box }
func (b *Base) Name() string { return b.name }
func (b *Base) Destroyed() bool { return b.destroyed }

// Attr returns a property stored without kind-specific meaning.
func (b *Base) Attr(name string) (string, bool) {
	v, ok := b.attrs[name]
	return v, ok
}

// Children returns a copy of the child sequence.
func (b *Base) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// SetParent moves the node to the end of parent's children. A nil parent
// detaches without destroying. Making a node its own ancestor fails with a
// *StructuralError and leaves the tree unchanged.
func (b *Base) SetParent(parent Node) error {
	if b.destroyed {
		return NewStructuralError("setParent", b.id, "node has been destroyed")
	}
	if parent != nil {
		if parent.base().destroyed {
			return NewStructuralError("setParent", b.id, "parent has been destroyed")
		}
		for p := parent; p != nil; p = p.Parent() {
			if p.base() == b {
				return NewStructuralError("setParent", b.id, "node cannot become its own ancestor")
			}
		}
	}

	b.detach()
	if parent == nil {
		return nil
	}
	pb := parent.base()
	pb.children = append(pb.children, b.self)
	b.parent = parent
	pb.widget.Attach(b.widget, -1)
	pb.box.Append(b.box)

	applyLayoutTree(b.self)
	return nil
}

func (b *Base) detach() {
	if b.parent == nil {
		return
	}
	pb := b.parent.base()
	for i, c := range pb.children {
		if c.base() == b {
			pb.children = append(pb.children[:i], pb.children[i+1:]...)
			break
		}
	}
	pb.widget.Detach(b.widget)
	pb.box.Remove(b.box)
	b.parent = nil
}

// Remove detaches the node and destroys it with its whole subtree: native
// widgets are released and every listener is unbound.
func (b *Base) Remove() {
	if b.destroyed {
		return
	}
	b.detach()
	b.destroy()
}

func (b *Base) destroy() {
	for _, c := range b.children {
		c.base().destroy()
	}
	b.children = nil
	for name := range b.listeners {
		b.unbind(name)
	}
	for _, c := range b.box.Children() {
		b.box.Remove(c)
	}
	b.widget.Destroy()
	b.destroyed = true
}

// ResolveStyle recomputes the effective style from the parent's effective
// style and, if recursive, continues into every child in order. Ancestors
// must already be current.
func (b *Base) ResolveStyle(recursive bool) {
	var parent *style.Node
	if b.parent != nil {
		parent = b.parent.Style()
	}
	b.ctx.Resolver.Resolve(b.style, parent, b.defaults)
	if recursive {
		for _, c := range b.children {
			c.ResolveStyle(true)
		}
	}
}

// ApplyStyles pushes the resolved style into the widget.
func (b *Base) ApplyStyles() {
	b.widget.SetVisual(b.style.Visual())
}

// ApplyLayoutStyles pushes the layout node into the engine box. Calling it
// repeatedly is harmless.
func (b *Base) ApplyLayoutStyles() {
	b.box.Apply(b.layout)
}

// ApplyGeometry copies the last computed rect into the widget.
func (b *Base) ApplyGeometry() {
	r := b.box.Layout()
	b.widget.SetGeometry(r.X, r.Y, r.Width, r.Height)
}

// SetLayoutProperty sets one layout property from its script-facing name and
// re-applies layout styles.
func (b *Base) SetLayoutProperty(name string, v Value) error {
	next := b.layout
	if err := next.SetProperty(name, v.String()); err != nil {
		return coercionError(name, "layout value", v, err)
	}
	b.layout = next
	b.self.ApplyLayoutStyles()
	return nil
}

// SetStyleProperty declares (or, with a null value, clears) an explicit style
// value. It takes effect on the next ResolveStyle.
func (b *Base) SetStyleProperty(name string, v Value) {
	if v.Kind() == ValueNull {
		b.style.Unset(name)
		return
	}
	b.style.Set(name, v.String())
}

// SetEventListener handles the events every kind supports. Unknown names are
// logged and ignored.
func (b *Base) SetEventListener(name string, cb Callback) {
	switch name {
	case "onClick":
		b.bind(name, native.EventClick, cb, func(native.Payload) []any { return nil })
	default:
		b.logger.Warn("unsupported event", zap.String("event", name))
	}
}

// SetProperty handles properties every kind supports. Unknown names are
// stored as string attributes.
func (b *Base) SetProperty(name string, v Value) error {
	switch name {
	case "name":
		b.name = v.String()
	case "disabled":
		d, err := v.AsBool()
		if err != nil {
			return coercionError(name, "boolean", v, err)
		}
		b.widget.SetDisabled(d)
	case "hidden":
		h, err := v.AsBool()
		if err != nil {
			return coercionError(name, "boolean", v, err)
		}
		if h {
			b.layout.Display = layout.DisplayNone
		} else {
			b.layout.Display = layout.DisplayFlex
		}
		b.self.ApplyLayoutStyles()
	default:
		b.attrs[name] = v.String()
	}
	return nil
}

// bind replaces every native listener registered under name with one that
// forwards to cb. A nil cb only unbinds.
func (b *Base) bind(name string, ev native.Event, cb Callback, args func(native.Payload) []any) {
	b.unbind(name)
	if cb == nil {
		return
	}
	id := b.widget.Listen(ev, func(p native.Payload) {
		cb(args(p)...)
	})
	b.listeners[name] = append(b.listeners[name], id)
}

func (b *Base) unbind(name string) {
	for _, id := range b.listeners[name] {
		b.widget.Unlisten(id)
	}
	delete(b.listeners, name)
}

// Walk visits n and its descendants in pre-order.
func Walk(n Node, fn func(Node)) {
	fn(n)
	for _, c := range n.base().children {
		Walk(c, fn)
	}
}

func applyLayoutTree(n Node) {
	Walk(n, func(c Node) { c.ApplyLayoutStyles() })
}
