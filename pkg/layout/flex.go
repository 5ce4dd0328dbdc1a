package layout

import "math"

type flexItem struct {
	box        *Box
	main       float64
	cross      float64
	mainStart  float64 // leading margin on the main axis
	mainEnd    float64
	crossStart float64
	crossEnd   float64
}

func (b *Box) isRow() bool {
	return b.style.FlexDirection == Row || b.style.FlexDirection == RowReverse
}

func (b *Box) isReverse() bool {
	return b.style.FlexDirection == RowReverse || b.style.FlexDirection == ColumnReverse
}

// layoutChildren positions b's children inside its already-sized rect and
// recurses. This is a single-line flexbox: items never wrap.
func (e *Engine) layoutChildren(b *Box) {
	s := b.style
	padL, padT, padR, padB := s.Padding.resolve(b.layout.Width)
	innerW := math.Max(0, b.layout.Width-padL-padR)
	innerH := math.Max(0, b.layout.Height-padT-padB)
	row := b.isRow()

	mainSize, crossSize := innerH, innerW
	if row {
		mainSize, crossSize = innerW, innerH
	}

	var items []*flexItem
	var absolute []*Box
	for _, c := range b.children {
		switch {
		case c.style.Display == DisplayNone:
			c.layout = Rect{}
			c.dirty = false
		case c.style.Position == PositionAbsolute:
			absolute = append(absolute, c)
		default:
			items = append(items, e.newFlexItem(c, row, innerW, innerH))
		}
	}

	e.resolveFlexibleLengths(items, mainSize, row, innerW, innerH)

	for _, it := range items {
		cs := it.box.style
		crossLen, crossRef := cs.Width, innerW
		if row {
			crossLen, crossRef = cs.Height, innerH
		}
		if v, ok := crossLen.Resolve(crossRef); ok {
			it.cross = v
		} else if alignFor(s, cs) == AlignStretch {
			it.cross = crossSize - it.crossStart - it.crossEnd
		} else {
			w, h := e.intrinsic(it.box, innerW, innerH, it.main, row)
			if row {
				it.cross = h
			} else {
				it.cross = w
			}
		}
		if row {
			it.cross = clamp(it.cross, cs.MinHeight, cs.MaxHeight, innerH)
		} else {
			it.cross = clamp(it.cross, cs.MinWidth, cs.MaxWidth, innerW)
		}
	}

	e.distributeMainAxis(b, items, mainSize, crossSize, row, padL, padT)

	for _, it := range items {
		e.layoutChildren(it.box)
	}
	for _, c := range absolute {
		e.layoutAbsolute(c, innerW, innerH, padL, padT)
	}
	b.dirty = false
}

func (e *Engine) newFlexItem(c *Box, row bool, innerW, innerH float64) *flexItem {
	cs := c.style
	ml, mt, mr, mb := cs.Margin.resolve(innerW)
	it := &flexItem{box: c}
	if row {
		it.mainStart, it.mainEnd, it.crossStart, it.crossEnd = ml, mr, mt, mb
	} else {
		it.mainStart, it.mainEnd, it.crossStart, it.crossEnd = mt, mb, ml, mr
	}

	mainRef, mainLen := innerH, cs.Height
	if row {
		mainRef, mainLen = innerW, cs.Width
	}
	if v, ok := cs.FlexBasis.Resolve(mainRef); ok {
		it.main = v
	} else if v, ok := mainLen.Resolve(mainRef); ok {
		it.main = v
	} else {
		w, h := e.intrinsic(c, innerW, innerH, -1, row)
		if row {
			it.main = w
		} else {
			it.main = h
		}
	}
	it.main = e.clampMain(it, row, innerW, innerH)
	return it
}

func (e *Engine) clampMain(it *flexItem, row bool, innerW, innerH float64) float64 {
	cs := it.box.style
	if row {
		return clamp(it.main, cs.MinWidth, cs.MaxWidth, innerW)
	}
	return clamp(it.main, cs.MinHeight, cs.MaxHeight, innerH)
}

// resolveFlexibleLengths grows or shrinks items so their outer sizes fill
// the container's main axis.
func (e *Engine) resolveFlexibleLengths(items []*flexItem, mainSize float64, row bool, innerW, innerH float64) {
	used := 0.0
	for _, it := range items {
		used += it.main + it.mainStart + it.mainEnd
	}
	free := mainSize - used
	switch {
	case free > 0:
		totalGrow := 0.0
		for _, it := range items {
			totalGrow += it.box.style.FlexGrow
		}
		if totalGrow == 0 {
			return
		}
		for _, it := range items {
			if g := it.box.style.FlexGrow; g > 0 {
				it.main += free * g / totalGrow
				it.main = e.clampMain(it, row, innerW, innerH)
			}
		}
	case free < 0:
		totalShrink := 0.0
		for _, it := range items {
			totalShrink += it.box.style.FlexShrink * it.main
		}
		if totalShrink == 0 {
			return
		}
		for _, it := range items {
			if sh := it.box.style.FlexShrink; sh > 0 {
				it.main += free * sh * it.main / totalShrink
				it.main = e.clampMain(it, row, innerW, innerH)
			}
		}
	}
}

// distributeMainAxis applies justify-content and cross-axis alignment and
// writes each item's rect.
func (e *Engine) distributeMainAxis(b *Box, items []*flexItem, mainSize, crossSize float64, row bool, padL, padT float64) {
	used := 0.0
	for _, it := range items {
		used += it.main + it.mainStart + it.mainEnd
	}
	remaining := mainSize - used
	offset, gap := 0.0, 0.0
	if remaining > 0 && len(items) > 0 {
		n := float64(len(items))
		switch b.style.JustifyContent {
		case JustifyCenter:
			offset = remaining / 2
		case JustifyEnd:
			offset = remaining
		case JustifySpaceBetween:
			if len(items) > 1 {
				gap = remaining / (n - 1)
			}
		case JustifySpaceAround:
			gap = remaining / n
			offset = gap / 2
		case JustifySpaceEvenly:
			gap = remaining / (n + 1)
			offset = gap
		}
	}

	ordered := items
	if b.isReverse() {
		ordered = make([]*flexItem, len(items))
		for i, it := range items {
			ordered[len(items)-1-i] = it
		}
	}

	pos := offset
	for _, it := range ordered {
		pos += it.mainStart
		crossPos := it.crossStart
		free := crossSize - it.cross - it.crossStart - it.crossEnd
		switch alignFor(b.style, it.box.style) {
		case AlignCenter:
			crossPos += free / 2
		case AlignEnd:
			crossPos += free
		}
		if row {
			it.box.layout = Rect{X: padL + pos, Y: padT + crossPos, Width: it.main, Height: it.cross}
		} else {
			it.box.layout = Rect{X: padL + crossPos, Y: padT + pos, Width: it.cross, Height: it.main}
		}
		pos += it.main + it.mainEnd + gap
	}
}

func (e *Engine) layoutAbsolute(c *Box, innerW, innerH, padL, padT float64) {
	cs := c.style
	w, wok := cs.Width.Resolve(innerW)
	h, hok := cs.Height.Resolve(innerH)
	left, lok := cs.Offsets.Left.Resolve(innerW)
	right, rok := cs.Offsets.Right.Resolve(innerW)
	top, tok := cs.Offsets.Top.Resolve(innerH)
	bottom, bok := cs.Offsets.Bottom.Resolve(innerH)

	if !wok && lok && rok {
		w, wok = innerW-left-right, true
	}
	if !hok && tok && bok {
		h, hok = innerH-top-bottom, true
	}
	if !wok || !hok {
		iw, ih := e.intrinsic(c, innerW, innerH, -1, true)
		if !wok {
			w = iw
		}
		if !hok {
			h = ih
		}
	}
	w = clamp(w, cs.MinWidth, cs.MaxWidth, innerW)
	h = clamp(h, cs.MinHeight, cs.MaxHeight, innerH)

	x := padL
	switch {
	case lok:
		x += left
	case rok:
		x += innerW - right - w
	}
	y := padT
	switch {
	case tok:
		y += top
	case bok:
		y += innerH - bottom - h
	}
	c.layout = Rect{X: x, Y: y, Width: w, Height: h}
	e.layoutChildren(c)
}

// intrinsic returns the content-based border-box size of b. mainHint, when
// non-negative, fixes b's size along the parent's main axis.
func (e *Engine) intrinsic(b *Box, availW, availH, mainHint float64, parentRow bool) (float64, float64) {
	s := b.style
	w, wok := s.Width.Resolve(availW)
	h, hok := s.Height.Resolve(availH)
	if mainHint >= 0 {
		if parentRow {
			w, wok = mainHint, true
		} else {
			h, hok = mainHint, true
		}
	}
	if wok && hok {
		return w, h
	}

	padL, padT, padR, padB := s.Padding.resolve(availW)
	padX, padY := padL+padR, padT+padB
	var cw, ch float64
	if b.measure != nil {
		maxW := availW - padX
		if wok {
			maxW = w - padX
		}
		cw, ch = b.measure(math.Max(0, maxW))
	} else {
		row := b.isRow()
		for _, c := range b.children {
			if c.style.Display == DisplayNone || c.style.Position == PositionAbsolute {
				continue
			}
			iw, ih := e.intrinsic(c, availW-padX, availH-padY, -1, row)
			ml, mt, mr, mb := c.style.Margin.resolve(availW - padX)
			iw += ml + mr
			ih += mt + mb
			if row {
				cw += iw
				ch = math.Max(ch, ih)
			} else {
				cw = math.Max(cw, iw)
				ch += ih
			}
		}
	}
	if !wok {
		w = clamp(cw+padX, s.MinWidth, s.MaxWidth, availW)
	}
	if !hok {
		h = clamp(ch+padY, s.MinHeight, s.MaxHeight, availH)
	}
	return w, h
}

func alignFor(parent, child Node) Align {
	if child.AlignSelf != AlignAuto {
		return child.AlignSelf
	}
	if parent.AlignItems == AlignAuto {
		return AlignStretch
	}
	return parent.AlignItems
}
