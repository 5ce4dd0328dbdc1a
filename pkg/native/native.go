// Package native defines the contract between components and a retained-mode
// widget library. Backends live in subpackages.
package native

import "l14ui/pkg/style"

// Kind selects the widget a component is backed by.
type Kind string

const (
	KindView   Kind = "view"
	KindText   Kind = "text"
	KindButton Kind = "button"
	KindImage  Kind = "image"
	KindInput  Kind = "input"
)

// Event names a native event source.
type Event string

const (
	EventClick            Event = "click"
	EventChange           Event = "change"
	EventSubmit           Event = "submit"
	EventEndEdit          Event = "end-edit"
	EventTextSelection    Event = "text-selection"
	EventEndTextSelection Event = "end-text-selection"
)

// Payload carries the arguments of a native event. Text events fill Text;
// selection events also fill Start and End.
type Payload struct {
	Text       string
	Start, End int
}

// Handler receives native events.
type Handler func(Payload)

// ListenerID identifies one registration made with Widget.Listen.
type ListenerID uint64

// Toolkit creates widgets.
type Toolkit interface {
	NewWidget(kind Kind) (Widget, error)
}

// Widget is the handle every component owns.
type Widget interface {
	Kind() Kind
	// SetGeometry places the widget relative to its parent widget.
	SetGeometry(x, y, width, height float64)
	SetVisual(v style.Visual)
	SetDisabled(disabled bool)
	// Attach inserts child at index among this widget's children; an
	// out-of-range index appends.
	Attach(child Widget, index int)
	Detach(child Widget)
	Listen(ev Event, h Handler) ListenerID
	Unlisten(id ListenerID)
	// Capabilities are optional native add-ons identified by name.
	AddCapability(name string)
	RemoveCapability(name string) bool
	HasCapability(name string) bool
	Destroy()
}

// TextWidget shows a string. Text and button widgets implement it.
type TextWidget interface {
	Widget
	SetText(s string)
	Text() string
}

// ImageWidget shows an image resource.
type ImageWidget interface {
	Widget
	SetSource(src string)
}

// InputWidget is an editable text field.
type InputWidget interface {
	Widget
	// SetValue replaces the text without emitting change events.
	SetValue(s string)
	Value() string
	SetPlaceholder(s string)
	SetPlaceholderColor(c style.Color)
	SetCharacterLimit(n int)
	SetLineLimit(n int)
	SetReadOnly(b bool)
	SetRichText(b bool)
	SetContentType(t ContentType)
	SetKeyboardType(t KeyboardType)
	SetLineType(t LineType)
	SetValidation(v Validation)
	Focus()
}

// CapabilityWebInput is the optional browser-input bridge toggled by the
// input "webSupport" property.
const CapabilityWebInput = "web-input"
