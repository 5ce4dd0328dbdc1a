package component

import (
	"l14ui/pkg/layout"
	"l14ui/pkg/native"
	"l14ui/pkg/style"
)

var buttonDefaults = style.Defaults{
	style.PropBackgroundColor: "#e0e0e0",
	style.PropBorderColor:     "#a0a0a0",
	style.PropBorderWidth:     "1",
	style.PropBorderRadius:    "4",
	style.PropCursor:          "pointer",
	style.PropTextAlign:       "center",
}

// Text shows a string and sizes itself from it. Buttons are texts with
// different defaults and padding.
type Text struct {
	*Base
	text string
}

func newText(ctx *Context, kind native.Kind) (*Text, error) {
	t := &Text{}
	defaults := style.Defaults{}
	lay := layout.NewNode()
	if kind == native.KindButton {
		defaults = buttonDefaults
		lay.Padding = layout.Edges{Left: layout.Pt(12), Top: layout.Pt(6), Right: layout.Pt(12), Bottom: layout.Pt(6)}
		lay.AlignItems = layout.AlignCenter
		lay.JustifyContent = layout.JustifyCenter
	}
	b, err := newBase(ctx, kind, t, defaults, lay)
	if err != nil {
		return nil, err
	}
	t.Base = b
	b.box.SetMeasure(t.measure)
	return t, nil
}

func (t *Text) measure(maxWidth float64) (float64, float64) {
	return t.ctx.Measurer.Measure(t.text, t.style.Visual().FontSize, maxWidth)
}

// Text returns the displayed string.
func (t *Text) Text() string { return t.text }

func (t *Text) SetProperty(name string, v Value) error {
	switch name {
	case "text", "children":
		t.setText(v.String())
		return nil
	}
	return t.Base.SetProperty(name, v)
}

func (t *Text) setText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.widget.(native.TextWidget).SetText(s)
	// content changed: force the box to measure again
	t.box.SetMeasure(t.measure)
}
