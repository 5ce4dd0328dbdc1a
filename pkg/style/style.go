package style

import (
	"strconv"
	"strings"
)

// Node holds a component's explicit style declarations and the effective
// values computed for it by the last cascade pass.
type Node struct {
	explicit  map[string]string
	effective map[string]string
	// specified marks effective values that came from a declaration rather
	// than a registry initial value. Only these are inherited.
	specified map[string]bool
}

func NewNode() *Node {
	return &Node{
		explicit:  make(map[string]string),
		effective: make(map[string]string),
		specified: make(map[string]bool),
	}
}

// Set declares an explicit value. The effective value changes only on the
// next Resolve.
func (n *Node) Set(property, value string) {
	n.explicit[property] = value
}

// Unset removes an explicit declaration so the property cascades again.
func (n *Node) Unset(property string) {
	delete(n.explicit, property)
}

// Explicit returns the value set directly on this node, if any.
func (n *Node) Explicit(property string) (string, bool) {
	val, ok := n.explicit[property]
	return val, ok
}

// Get returns the effective value.
func (n *Node) Get(property string) (string, bool) {
	val, ok := n.effective[property]
	return val, ok
}

// Effective returns a copy of all effective values.
func (n *Node) Effective() map[string]string {
	out := make(map[string]string, len(n.effective))
	for k, v := range n.effective {
		out[k] = v
	}
	return out
}

// GetLength parses the effective value as a length in pixels ("12" or "12px").
func (n *Node) GetLength(property string) (float64, bool) {
	val, ok := n.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

func (n *Node) lengthOr(property string, def float64) float64 {
	if v, ok := n.GetLength(property); ok {
		return v
	}
	return def
}

// GetColor returns the effective color of property, or black if it is
// missing or unparseable.
func (n *Node) GetColor(property string) Color {
	if s, ok := n.Get(property); ok {
		if c, ok := ParseColor(s); ok {
			return c
		}
	}
	return Black
}

// Visual is the resolved subset of style that native widgets consume.
type Visual struct {
	Color           Color
	BackgroundColor Color
	BorderColor     Color
	BorderWidth     float64
	BorderRadius    float64
	FontSize        float64
	Bold            bool
	Italic          bool
	TextAlign       string
	Opacity         float64
	Hidden          bool
	Cursor          string
}

// Visual converts the effective values into typed form.
func (n *Node) Visual() Visual {
	weight, _ := n.Get(PropFontWeight)
	fstyle, _ := n.Get(PropFontStyle)
	align, _ := n.Get(PropTextAlign)
	vis, _ := n.Get(PropVisibility)
	cursor, _ := n.Get(PropCursor)
	bg := Transparent
	if s, ok := n.Get(PropBackgroundColor); ok {
		if c, ok := ParseColor(s); ok {
			bg = c
		}
	}
	return Visual{
		Color:           n.GetColor(PropColor),
		BackgroundColor: bg,
		BorderColor:     n.GetColor(PropBorderColor),
		BorderWidth:     n.lengthOr(PropBorderWidth, 0),
		BorderRadius:    n.lengthOr(PropBorderRadius, 0),
		FontSize:        n.lengthOr(PropFontSize, 16),
		Bold:            weight == "bold" || weight == "700" || weight == "800" || weight == "900",
		Italic:          fstyle == "italic",
		TextAlign:       align,
		Opacity:         n.lengthOr(PropOpacity, 1),
		Hidden:          vis == "hidden",
		Cursor:          cursor,
	}
}
