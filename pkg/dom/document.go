// Package dom is a minimal document object for script that expects a browser:
// it supports injecting script and style elements into a head and nothing
// else. Script elements fetch and run remote code; style elements forward
// opaque style text to a registry.
package dom

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"l14ui/pkg/mainloop"
	stdnet "l14ui/std/net"
)

// Executor runs script source on the main goroutine.
type Executor interface {
	Execute(name, source string) error
}

// Fetcher loads text off the main goroutine and reports back exactly once.
type Fetcher interface {
	FetchTextAsync(ctx context.Context, url string, done func(text string, err error))
}

// StyleRegistry receives style blocks in call order.
type StyleRegistry interface {
	InsertStyle(text string)
	RemoveStyle(text string) bool
}

// Scheduler hands work to the main goroutine.
type Scheduler interface {
	Post(t mainloop.Task) bool
}

// Options wires a Document to its collaborators.
type Options struct {
	Origin   string
	Executor Executor
	Fetcher  Fetcher
	Styles   StyleRegistry
	Queue    Scheduler
	Logger   *zap.Logger
}

// Element is a proxy that can be placed in the head.
type Element interface {
	TagName() string
	ParentNode() *Head
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	appended()
	// removed reports false if the element refused to leave the head.
	removed() bool
}

// Document is the object script sees as `document`. All methods must be
// called from the main goroutine.
type Document struct {
	origin string
	head   *Head
	exec   Executor
	fetch  Fetcher
	styles StyleRegistry
	queue  Scheduler
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

func NewDocument(opts Options) *Document {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Document{
		origin: opts.Origin,
		exec:   opts.Executor,
		fetch:  opts.Fetcher,
		styles: opts.Styles,
		queue:  opts.Queue,
		logger: logger.Named("dom"),
		ctx:    ctx,
		cancel: cancel,
	}
	d.head = &Head{doc: d}
	return d
}

// Origin is the base that relative script sources are appended to.
func (d *Document) Origin() string { return d.origin }

// Head returns the document's single head.
func (d *Document) Head() *Head { return d.head }

// CreateElement returns a detached script or style element whose parent node
// is already the head. Any other tag yields nil.
func (d *Document) CreateElement(tag string) Element {
	switch strings.ToLower(tag) {
	case "script":
		return newScriptElement(d)
	case "style":
		return newStyleElement(d)
	}
	d.warn(NewUnsupportedOperationWarning("createElement", "element type "+tag))
	return nil
}

// CreateTextNode returns text unchanged. Text nodes only ever feed style
// elements, which consume raw strings.
func (d *Document) CreateTextNode(text string) string {
	return text
}

// QuerySelector matches only the literal query "head".
func (d *Document) QuerySelector(query string) *Head {
	if strings.TrimSpace(query) == "head" {
		return d.head
	}
	d.warn(NewUnsupportedOperationWarning("querySelector", "query "+query))
	return nil
}

// Execute runs source through the document's executor.
func (d *Document) Execute(name, source string) error {
	if d.exec == nil {
		return nil
	}
	return d.exec.Execute(name, source)
}

// Close tears the document down: in-flight fetches are cancelled and any
// completion that still reaches the main queue is dropped.
func (d *Document) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.cancel()
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool { return d.closed }

// resolve joins a relative source onto the origin.
func (d *Document) resolve(src string) string {
	if stdnet.IsNetworkURL(src) || stdnet.IsFileURL(src) {
		return src
	}
	return d.origin + src
}

func (d *Document) warn(w *UnsupportedOperationWarning) {
	d.logger.Warn("unsupported operation", zap.String("op", w.Op), zap.Error(w))
}

// Head is the only attachment point for script and style elements.
type Head struct {
	doc      *Document
	children []Element
}

// AppendChild attaches el, moving it to the end if it is already attached,
// and triggers its append behavior.
func (h *Head) AppendChild(el Element) Element {
	if el == nil {
		return nil
	}
	h.detach(el)
	h.children = append(h.children, el)
	el.appended()
	return el
}

// RemoveChild detaches el unless its remove behavior refuses. Refusals are
// logged as unsupported operations and leave the head unchanged.
func (h *Head) RemoveChild(el Element) Element {
	if el == nil {
		return nil
	}
	if el.removed() {
		h.detach(el)
	}
	return el
}

// ChildNodes returns the attached elements in order.
func (h *Head) ChildNodes() []Element {
	out := make([]Element, len(h.children))
	copy(out, h.children)
	return out
}

func (h *Head) detach(el Element) {
	for i, c := range h.children {
		if c == el {
			h.children = append(h.children[:i], h.children[i+1:]...)
			return
		}
	}
}

// attributes are accepted and ignored by every element.
type attributes struct{}

func (attributes) SetAttribute(name, value string) {}
func (attributes) RemoveAttribute(name string) {}
