package layout

// MeasureFunc reports the intrinsic content size of a leaf box given the
// width available to it.
type MeasureFunc func(maxWidth float64) (width, height float64)

// Box is the engine-side node that mirrors one component. Components push
// their Node into it and read the resolved Rect back after Calculate.
type Box struct {
	style    Node
	parent   *Box
	children []*Box
	measure  MeasureFunc
	layout   Rect
	dirty    bool
}

// Engine computes geometry for trees of boxes.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// NewBox allocates a detached box with default properties.
func (e *Engine) NewBox() *Box {
	return &Box{style: NewNode(), dirty: true}
}

// Apply replaces the box's properties. Applying the same node twice is a no-op.
func (b *Box) Apply(n Node) {
	if b.style == n {
		return
	}
	b.style = n
	b.markDirty()
}

// Style returns the properties last applied.
func (b *Box) Style() Node {
	return b.style
}

// SetMeasure installs or (with nil) removes the intrinsic size callback.
func (b *Box) SetMeasure(fn MeasureFunc) {
	b.measure = fn
	b.markDirty()
}

// HasMeasure reports whether the box sizes itself from content.
func (b *Box) HasMeasure() bool {
	return b.measure != nil
}

// Insert attaches child at index, detaching it from any previous parent.
// An out-of-range index appends.
func (b *Box) Insert(child *Box, index int) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	if index < 0 || index > len(b.children) {
		index = len(b.children)
	}
	b.children = append(b.children, nil)
	copy(b.children[index+1:], b.children[index:])
	b.children[index] = child
	child.parent = b
	b.markDirty()
}

// Append attaches child as the last child.
func (b *Box) Append(child *Box) {
	b.Insert(child, -1)
}

// Remove detaches child. It returns false when child is not a child of b.
func (b *Box) Remove(child *Box) bool {
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			child.parent = nil
			b.markDirty()
			return true
		}
	}
	return false
}

// Children returns the attached children in order.
func (b *Box) Children() []*Box {
	return b.children
}

// Parent returns the box this one is attached to, or nil.
func (b *Box) Parent() *Box {
	return b.parent
}

// Layout returns the geometry computed by the last Calculate, relative to the
// parent box's border-box origin.
func (b *Box) Layout() Rect {
	return b.layout
}

// Dirty reports whether the box changed since the last Calculate.
func (b *Box) Dirty() bool {
	return b.dirty
}

func (b *Box) markDirty() {
	for n := b; n != nil && !n.dirty; n = n.parent {
		n.dirty = true
	}
	b.dirty = true
}

// Calculate lays out the tree rooted at root inside a viewport of the given size.
func (e *Engine) Calculate(root *Box, width, height float64) {
	s := root.style
	w, ok := s.Width.Resolve(width)
	if !ok {
		w = width
	}
	h, ok := s.Height.Resolve(height)
	if !ok {
		h = height
	}
	w = clamp(w, s.MinWidth, s.MaxWidth, width)
	h = clamp(h, s.MinHeight, s.MaxHeight, height)
	root.layout = Rect{Width: w, Height: h}
	e.layoutChildren(root)
}

func clamp(v float64, min, max Value, ref float64) float64 {
	if m, ok := max.Resolve(ref); ok && v > m {
		v = m
	}
	if m, ok := min.Resolve(ref); ok && v < m {
		v = m
	}
	if v < 0 {
		v = 0
	}
	return v
}
