package dom

import (
	"go.uber.org/zap"
)

// ScriptState tracks a script element's fetch.
type ScriptState int

const (
	ScriptIdle ScriptState = iota
	ScriptPending
	ScriptExecuted
	ScriptFailed
)

func (s ScriptState) String() string {
	switch s {
	case ScriptPending:
		return "pending"
	case ScriptExecuted:
		return "executed"
	case ScriptFailed:
		return "failed"
	}
	return "idle"
}

// ScriptElement fetches origin+src when appended to the head and runs the
// result on the main goroutine. Scripts appended together run in the order
// their fetches complete, not the order they were appended.
type ScriptElement struct {
	attributes
	doc   *Document
	state ScriptState

	Src         string
	Charset     string
	CrossOrigin string
}

func newScriptElement(d *Document) *ScriptElement {
	return &ScriptElement{doc: d}
}

func (s *ScriptElement) TagName() string { return "script" }

// ParentNode is the head even before the element is appended.
func (s *ScriptElement) ParentNode() *Head { return s.doc.head }

// State returns where the element is in its fetch-and-execute cycle.
func (s *ScriptElement) State() ScriptState { return s.state }

func (s *ScriptElement) appended() {
	d := s.doc
	url := d.resolve(s.Src)
	logger := d.logger.With(zap.String("url", url))
	if d.fetch == nil || d.queue == nil {
		logger.Error("script appended to a document without fetch support")
		s.state = ScriptFailed
		return
	}
	s.state = ScriptPending
	logger.Debug("fetching script")
	d.fetch.FetchTextAsync(d.ctx, url, func(text string, err error) {
		// off the main goroutine: only hand the result over
		posted := d.queue.Post(func() { s.complete(url, text, err) })
		if !posted {
			logger.Debug("script completion dropped, queue closed")
		}
	})
}

func (s *ScriptElement) complete(url, text string, err error) {
	d := s.doc
	if d.closed {
		d.logger.Debug("dropping script for closed document", zap.String("url", url))
		return
	}
	if err != nil {
		s.state = ScriptFailed
		d.logger.Error("script fetch failed", zap.String("url", url), zap.Error(err))
		return
	}
	if err := d.Execute(url, text); err != nil {
		s.state = ScriptFailed
		d.logger.Error("script execution failed", zap.String("url", url), zap.Error(err))
		return
	}
	s.state = ScriptExecuted
}

func (s *ScriptElement) removed() bool {
	if s.state == ScriptPending {
		s.doc.warn(NewUnsupportedOperationWarning("removeChild", "script "+s.Src+" is still loading"))
		return false
	}
	return true
}
