package fyneui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/validation"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

var validators = map[native.Validation]fyne.StringValidator{
	native.ValidationDigit:        validation.NewRegexp(`^[0-9]*$`, "digits only"),
	native.ValidationInteger:      validation.NewRegexp(`^-?[0-9]*$`, "not an integer"),
	native.ValidationDecimal:      validation.NewRegexp(`^-?[0-9]*\.?[0-9]*$`, "not a decimal number"),
	native.ValidationAlphanumeric: validation.NewRegexp(`^[A-Za-z0-9]*$`, "letters and digits only"),
	native.ValidationName:         validation.NewRegexp(`^[\pL' -]*$`, "not a name"),
	native.ValidationEmailAddress: validation.NewRegexp(`^[^@\s]*@?[^@\s]*$`, "not an email address"),
}

// Input wraps a fyne entry in a theme override so placeholder and text
// colors follow style.
type Input struct {
	*Widget
	field *entry
	theme *inputTheme

	characterLimit int
	keyboard       native.KeyboardType
	readOnly       bool
	// quiet suppresses change events for programmatic writes.
	quiet bool

	selStart, selEnd int
	selecting        bool
}

func (t *Toolkit) newInput() *Input {
	in := &Input{theme: &inputTheme{Theme: theme.DefaultTheme()}}
	in.field = newEntry(in)
	in.Widget = t.newWidget(native.KindInput, container.NewThemeOverride(in.field, in.theme))
	in.fixed = len(in.box.Objects)
	in.field.OnChanged = in.changed
	in.field.OnSubmitted = func(s string) { in.emit(native.EventSubmit, native.Payload{Text: s}) }
	in.field.OnCursorChanged = in.cursorChanged
	return in
}

func (in *Input) changed(s string) {
	if in.quiet {
		return
	}
	if limited := in.limit(s); limited != s {
		in.write(limited)
		s = limited
	}
	in.emit(native.EventChange, native.Payload{Text: s})
}

func (in *Input) cursorChanged() {
	sel := in.field.SelectedText()
	if sel == "" {
		if in.selecting {
			in.selecting = false
			in.emit(native.EventEndTextSelection, native.Payload{Text: in.field.Text, Start: in.selStart, End: in.selEnd})
		}
		return
	}
	text := []rune(in.field.Text)
	cursor := cursorOffset(text, in.field.CursorRow, in.field.CursorColumn)
	start := in.selectionStart(text, []rune(sel), cursor)
	in.selStart, in.selEnd, in.selecting = start, start+len([]rune(sel)), true
	in.emit(native.EventTextSelection, native.Payload{Text: in.field.Text, Start: in.selStart, End: in.selEnd})
}

// cursorOffset converts the entry's row and column into a rune offset.
func cursorOffset(text []rune, row, col int) int {
	off := 0
	for row > 0 && off < len(text) {
		if text[off] == '\n' {
			row--
		}
		off++
	}
	return min(off+col, len(text))
}

// selectionStart finds where sel begins given that the cursor sits at one of
// its ends. When both ends fit, the end kept from the previous selection wins.
func (in *Input) selectionStart(text, sel []rune, cursor int) int {
	n := len(sel)
	before := cursor-n >= 0 && string(text[cursor-n:cursor]) == string(sel)
	after := cursor+n <= len(text) && string(text[cursor:cursor+n]) == string(sel)
	switch {
	case before && after:
		if in.selecting && in.selEnd == cursor+n {
			return cursor
		}
		return cursor - n
	case after:
		return cursor
	case before:
		return cursor - n
	}
	return max(cursor-n, 0)
}

func (in *Input) write(s string) {
	in.quiet = true
	in.field.SetText(s)
	in.quiet = false
}

func (in *Input) limit(s string) string {
	if in.characterLimit > 0 {
		if r := []rune(s); len(r) > in.characterLimit {
			return string(r[:in.characterLimit])
		}
	}
	return s
}

func (in *Input) SetValue(s string) { in.write(in.limit(s)) }
func (in *Input) Value() string { return in.field.Text }
func (in *Input) SetPlaceholder(s string) { in.field.SetPlaceHolder(s) }

func (in *Input) SetPlaceholderColor(c style.Color) {
	in.theme.placeholder = toColor(c)
	in.field.Refresh()
}

func (in *Input) SetCharacterLimit(n int) { in.characterLimit = n }

// SetLineLimit sets the number of visible rows; zero leaves fyne's default.
func (in *Input) SetLineLimit(n int) {
	if n > 0 {
		in.field.SetMinRowsVisible(n)
	}
}

func (in *Input) SetReadOnly(b bool) {
	in.readOnly = b
	in.syncEditable()
}

func (in *Input) syncEditable() {
	if in.readOnly || in.disabled {
		in.field.Disable()
	} else {
		in.field.Enable()
	}
}

// SetRichText has no entry equivalent and is ignored.
func (in *Input) SetRichText(bool) {}

func (in *Input) SetContentType(t native.ContentType) {
	in.field.Password = t == native.ContentPassword || t == native.ContentPin
	in.field.Refresh()
}

func (in *Input) SetKeyboardType(t native.KeyboardType) { in.keyboard = t }

func (in *Input) SetLineType(t native.LineType) {
	in.field.MultiLine = t != native.LineSingle
	in.field.Refresh()
}

func (in *Input) SetValidation(v native.Validation) {
	in.field.Validator = validators[v]
}

func (in *Input) Focus() {
	if c := fyne.CurrentApp().Driver().CanvasForObject(in.field); c != nil {
		c.Focus(in.field)
	}
}

func (in *Input) SetDisabled(disabled bool) {
	in.Widget.SetDisabled(disabled)
	in.syncEditable()
}

func (in *Input) SetVisual(v style.Visual) {
	in.Widget.SetVisual(v)
	in.theme.foreground = toColor(v.Color)
	in.theme.background = toColor(v.BackgroundColor)
	in.theme.textSize = float32(v.FontSize)
	in.field.TextStyle = fyne.TextStyle{Bold: v.Bold, Italic: v.Italic}
	in.field.Refresh()
}

func (in *Input) mobileKeyboard() mobile.KeyboardType {
	switch {
	case in.field.Password:
		return mobile.PasswordKeyboard
	case in.keyboard == native.KeyboardNumberPad || in.keyboard == native.KeyboardDecimalPad || in.keyboard == native.KeyboardPhonePad:
		return mobile.NumberKeyboard
	case !in.field.MultiLine:
		return mobile.SingleLineKeyboard
	}
	return mobile.DefaultKeyboard
}

// entry forwards focus loss and taps to the owning input.
type entry struct {
	widget.Entry
	owner *Input
}

func newEntry(owner *Input) *entry {
	e := &entry{owner: owner}
	e.ExtendBaseWidget(e)
	return e
}

func (e *entry) FocusLost() {
	e.Entry.FocusLost()
	e.owner.emit(native.EventEndEdit, native.Payload{Text: e.Text})
}

func (e *entry) Tapped(ev *fyne.PointEvent) {
	e.Entry.Tapped(ev)
	if !e.owner.disabled {
		e.owner.emit(native.EventClick, native.Payload{})
	}
}

func (e *entry) Keyboard() mobile.KeyboardType { return e.owner.mobileKeyboard() }

// inputTheme overrides the colors and text size of one entry.
type inputTheme struct {
	fyne.Theme
	placeholder, foreground, background color.Color
	textSize                            float32
}

func (t *inputTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePlaceHolder:
		if t.placeholder != nil {
			return t.placeholder
		}
	case theme.ColorNameForeground:
		if t.foreground != nil {
			return t.foreground
		}
	case theme.ColorNameInputBackground:
		if t.background != nil {
			return t.background
		}
	}
	return t.Theme.Color(name, variant)
}

func (t *inputTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText && t.textSize > 0 {
		return t.textSize
	}
	return t.Theme.Size(name)
}
