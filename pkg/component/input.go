package component

import (
	"l14ui/pkg/layout"
	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

var inputDefaults = style.Defaults{
	style.PropBackgroundColor: "white",
	style.PropBorderRadius:    "8",
	style.PropFontSize:        "24",
	style.PropCursor:          "text",
}

func inputLayout() layout.Node {
	n := layout.NewNode()
	n.Padding = layout.All(layout.Pt(8))
	n.MinHeight = layout.Pt(40)
	n.MinWidth = layout.Pt(200)
	n.MaxWidth = layout.Pct(100)
	n.Overflow = layout.OverflowHidden
	return n
}

// Input is an editable single text field. Besides its own style it keeps the
// styles of two internal parts: the value text, which inherits from the
// input, and the placeholder, whose color is always derived from the value
// text's color at half alpha.
type Input struct {
	*Base
	field       native.InputWidget
	textStyle   *style.Node
	placeholder *style.Node
	hint        string
}

func newInput(ctx *Context) (*Input, error) {
	in := &Input{
		textStyle:   style.NewNode(),
		placeholder: style.NewNode(),
	}
	b, err := newBase(ctx, native.KindInput, in, inputDefaults, inputLayout())
	if err != nil {
		return nil, err
	}
	in.Base = b
	in.field = b.widget.(native.InputWidget)
	in.ApplyLayoutStyles()
	return in, nil
}

// Value returns the current text.
func (in *Input) Value() string { return in.field.Value() }

// Placeholder returns the hint shown while the value is empty.
func (in *Input) Placeholder() string { return in.hint }

// Focus moves keyboard focus to the field.
func (in *Input) Focus() { in.field.Focus() }

// TextStyle is the style of the value text part.
func (in *Input) TextStyle() *style.Node { return in.textStyle }

// PlaceholderStyle is the derived style of the placeholder part.
func (in *Input) PlaceholderStyle() *style.Node { return in.placeholder }

func (in *Input) ResolveStyle(recursive bool) {
	in.Base.ResolveStyle(recursive)
	in.ctx.Resolver.Resolve(in.textStyle, in.style, nil)
	in.applyPlaceholderStyles()
}

func (in *Input) ApplyStyles() {
	in.Base.ApplyStyles()
	in.field.SetPlaceholderColor(in.placeholder.GetColor(style.PropColor))
}

// applyPlaceholderStyles resolves the placeholder against the input and
// overrides its color with the value text's color at half alpha.
func (in *Input) applyPlaceholderStyles() {
	in.ctx.Resolver.Resolve(in.placeholder, in.style, nil)
	c := in.textStyle.GetColor(style.PropColor)
	in.placeholder.Derive(style.PropColor, c.WithAlpha(c.A*0.5).String())
	in.field.SetPlaceholderColor(in.placeholder.GetColor(style.PropColor))
}

// ApplyLayoutStyles lets the field size itself from its text only while its
// width is auto.
func (in *Input) ApplyLayoutStyles() {
	in.Base.ApplyLayoutStyles()
	auto := in.layout.Width.IsAuto()
	switch {
	case auto && !in.box.HasMeasure():
		in.box.SetMeasure(in.measure)
	case !auto && in.box.HasMeasure():
		in.box.SetMeasure(nil)
	}
}

func (in *Input) measure(maxWidth float64) (float64, float64) {
	s := in.field.Value()
	if s == "" {
		s = in.hint
	}
	return in.ctx.Measurer.Measure(s, in.textStyle.Visual().FontSize, maxWidth)
}

func (in *Input) remeasure() {
	if in.box.HasMeasure() {
		in.box.SetMeasure(in.measure)
	}
}

func (in *Input) SetEventListener(name string, cb Callback) {
	text := func(p native.Payload) []any { return []any{p.Text} }
	selection := func(p native.Payload) []any { return []any{p.Text, p.Start, p.End} }
	switch name {
	case "onEndEdit":
		in.bind(name, native.EventEndEdit, cb, text)
	case "onSubmit":
		in.bind(name, native.EventSubmit, cb, text)
	case "onChange":
		in.bind(name, native.EventChange, cb, text)
	case "onTextSelection":
		in.bind(name, native.EventTextSelection, cb, selection)
	case "onEndTextSelection":
		in.bind(name, native.EventEndTextSelection, cb, selection)
	default:
		in.Base.SetEventListener(name, cb)
	}
}

func (in *Input) SetProperty(name string, v Value) error {
	switch name {
	case "placeholder":
		in.hint = v.String()
		in.field.SetPlaceholder(in.hint)
		in.remeasure()
	case "value":
		in.field.SetValue(v.String())
		in.applyPlaceholderStyles()
		in.remeasure()
	case "characterLimit", "lineLimit":
		n, err := v.AsInt()
		if err != nil {
			return coercionError(name, "integer", v, err)
		}
		if name == "characterLimit" {
			in.field.SetCharacterLimit(n)
		} else {
			in.field.SetLineLimit(n)
		}
	case "readonly", "richText", "webSupport":
		b, err := v.AsBool()
		if err != nil {
			return coercionError(name, "boolean", v, err)
		}
		in.setFlag(name, b)
	case "contentType", "keyboardType", "lineType", "validation":
		return in.setMode(name, v)
	default:
		return in.Base.SetProperty(name, v)
	}
	return nil
}

func (in *Input) setFlag(name string, b bool) {
	switch name {
	case "readonly":
		in.field.SetReadOnly(b)
	case "richText":
		in.field.SetRichText(b)
	case "webSupport":
		if b {
			in.field.AddCapability(native.CapabilityWebInput)
		} else {
			in.field.RemoveCapability(native.CapabilityWebInput)
		}
	}
}

func (in *Input) setMode(name string, v Value) error {
	n, err := v.AsInt()
	if err != nil {
		return coercionError(name, "integer", v, err)
	}
	switch name {
	case "contentType":
		t, err := native.ContentTypeFromInt(n)
		if err != nil {
			return coercionError(name, "content type", v, err)
		}
		in.field.SetContentType(t)
	case "keyboardType":
		t, err := native.KeyboardTypeFromInt(n)
		if err != nil {
			return coercionError(name, "keyboard type", v, err)
		}
		in.field.SetKeyboardType(t)
	case "lineType":
		t, err := native.LineTypeFromInt(n)
		if err != nil {
			return coercionError(name, "line type", v, err)
		}
		in.field.SetLineType(t)
	case "validation":
		t, err := native.ValidationFromInt(n)
		if err != nil {
			return coercionError(name, "validation", v, err)
		}
		in.field.SetValidation(t)
	}
	return nil
}
