package headless

import (
	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

// Input is an editable text field. The Edit/Submit/EndEdit/Select methods
// stand in for user interaction.
type Input struct {
	*Widget

	value            string
	placeholder      string
	placeholderColor style.Color
	characterLimit   int
	lineLimit        int
	readOnly         bool
	richText         bool
	contentType      native.ContentType
	keyboardType     native.KeyboardType
	lineType         native.LineType
	validation       native.Validation
	focused          bool
}

func (in *Input) SetValue(s string) { in.value = in.limit(s) }
func (in *Input) Value() string { return in.value }
func (in *Input) SetPlaceholder(s string) { in.placeholder = s }
func (in *Input) Placeholder() string { return in.placeholder }
func (in *Input) SetPlaceholderColor(c style.Color) { in.placeholderColor = c }
func (in *Input) PlaceholderColor() style.Color { return in.placeholderColor }
func (in *Input) SetCharacterLimit(n int) { in.characterLimit = n }
func (in *Input) CharacterLimit() int { return in.characterLimit }
func (in *Input) SetLineLimit(n int) { in.lineLimit = n }
func (in *Input) LineLimit() int { return in.lineLimit }
func (in *Input) SetReadOnly(b bool) { in.readOnly = b }
func (in *Input) ReadOnly() bool { return in.readOnly }
func (in *Input) SetRichText(b bool) { in.richText = b }
func (in *Input) RichText() bool { return in.richText }
func (in *Input) SetContentType(t native.ContentType) { in.contentType = t }
func (in *Input) ContentType() native.ContentType { return in.contentType }
func (in *Input) SetKeyboardType(t native.KeyboardType) { in.keyboardType = t }
func (in *Input) KeyboardType() native.KeyboardType { return in.keyboardType }
func (in *Input) SetLineType(t native.LineType) { in.lineType = t }
func (in *Input) LineType() native.LineType { return in.lineType }
func (in *Input) SetValidation(v native.Validation) { in.validation = v }
func (in *Input) Validation() native.Validation { return in.validation }
func (in *Input) Focus() { in.focused = true }
func (in *Input) Focused() bool { return in.focused }

func (in *Input) limit(s string) string {
	if in.characterLimit > 0 {
		if r := []rune(s); len(r) > in.characterLimit {
			return string(r[:in.characterLimit])
		}
	}
	return s
}

// Edit replaces the value as if typed and emits a change event. Read-only
// inputs ignore it.
func (in *Input) Edit(s string) {
	if in.readOnly {
		return
	}
	in.value = in.limit(s)
	in.Emit(native.EventChange, native.Payload{Text: in.value})
}

// Submit emits a submit event with the current value.
func (in *Input) Submit() {
	in.Emit(native.EventSubmit, native.Payload{Text: in.value})
}

// EndEdit emits an end-edit event and drops focus.
func (in *Input) EndEdit() {
	in.focused = false
	in.Emit(native.EventEndEdit, native.Payload{Text: in.value})
}

// Select emits a text-selection event carrying the full value and the
// selected rune range.
func (in *Input) Select(start, end int) {
	in.Emit(native.EventTextSelection, native.Payload{Text: in.value, Start: start, End: end})
}

// EndSelect emits an end-text-selection event.
func (in *Input) EndSelect(start, end int) {
	in.Emit(native.EventEndTextSelection, native.Payload{Text: in.value, Start: start, End: end})
}
