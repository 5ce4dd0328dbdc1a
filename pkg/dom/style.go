package dom

import "go.uber.org/zap"

type styleOp struct {
	remove bool
	text   string
}

// StyleElement collects style text. Until the element is appended to the
// head its inserts and removals are buffered; appending flushes them to the
// registry in call order, and from then on every change is flushed at once.
type StyleElement struct {
	attributes
	doc        *Document
	pending    []styleOp
	childNodes []string
	enabled    bool
}

func newStyleElement(d *Document) *StyleElement {
	return &StyleElement{doc: d}
}

func (s *StyleElement) TagName() string { return "style" }

// ParentNode is the head even before the element is appended.
func (s *StyleElement) ParentNode() *Head { return s.doc.head }

// Enabled reports whether the element has been appended to the head.
func (s *StyleElement) Enabled() bool { return s.enabled }

// ChildNodes returns the surviving style blocks in append order.
func (s *StyleElement) ChildNodes() []string {
	out := make([]string, len(s.childNodes))
	copy(out, s.childNodes)
	return out
}

// FirstChild returns the first surviving block, if any.
func (s *StyleElement) FirstChild() (string, bool) {
	if len(s.childNodes) == 0 {
		return "", false
	}
	return s.childNodes[0], true
}

// AppendChild adds a block of style text.
func (s *StyleElement) AppendChild(text string) string {
	s.pending = append(s.pending, styleOp{text: text})
	s.childNodes = append(s.childNodes, text)
	if s.enabled {
		s.flush()
	}
	return text
}

// RemoveChild drops the first block equal to text.
func (s *StyleElement) RemoveChild(text string) string {
	s.pending = append(s.pending, styleOp{remove: true, text: text})
	for i, c := range s.childNodes {
		if c == text {
			s.childNodes = append(s.childNodes[:i], s.childNodes[i+1:]...)
			break
		}
	}
	if s.enabled {
		s.flush()
	}
	return text
}

func (s *StyleElement) appended() {
	s.enabled = true
	s.flush()
}

// removed refuses: there is no defined way to withdraw an attached style
// element, so it stays enabled with its styles registered.
func (s *StyleElement) removed() bool {
	s.doc.warn(NewUnsupportedOperationWarning("removeChild", "style elements cannot be detached"))
	return false
}

func (s *StyleElement) flush() {
	if len(s.pending) == 0 {
		return
	}
	reg := s.doc.styles
	for _, op := range s.pending {
		if reg == nil {
			continue
		}
		if op.remove {
			reg.RemoveStyle(op.text)
		} else {
			s.doc.logger.Debug("style block", zap.String("css", op.text))
			reg.InsertStyle(op.text)
		}
	}
	s.pending = nil
}
