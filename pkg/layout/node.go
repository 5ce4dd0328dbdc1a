package layout

import (
	"fmt"
	"strconv"
	"strings"
)

type FlexDirection int

const (
	Column FlexDirection = iota
	Row
	ColumnReverse
	RowReverse
)

type Justify int

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

type Align int

const (
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
	AlignStretch
)

type PositionType int

const (
	PositionRelative PositionType = iota
	PositionAbsolute
)

type Display int

const (
	DisplayFlex Display = iota
	DisplayNone
)

type Overflow int

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// Node is the geometric description of one component. It is plain data; an
// Engine box consumes it through Box.Apply.
type Node struct {
	Width, Height       Value
	MinWidth, MinHeight Value
	MaxWidth, MaxHeight Value

	FlexDirection  FlexDirection
	JustifyContent Justify
	AlignItems     Align
	AlignSelf      Align
	FlexGrow       float64
	FlexShrink     float64
	FlexBasis      Value

	Padding  Edges
	Margin   Edges
	Position PositionType
	Offsets  Edges // left/top/right/bottom for absolute positioning

	Display  Display
	Overflow Overflow
}

// NewNode returns a node with the engine defaults: column direction,
// stretch alignment, shrink 1.
func NewNode() Node {
	return Node{
		AlignItems: AlignStretch,
		FlexShrink: 1,
		Offsets:    All(Auto),
	}
}

var directions = map[string]FlexDirection{
	"column": Column, "row": Row, "column-reverse": ColumnReverse, "row-reverse": RowReverse,
}

var justifies = map[string]Justify{
	"flex-start": JustifyStart, "start": JustifyStart, "center": JustifyCenter,
	"flex-end": JustifyEnd, "end": JustifyEnd, "space-between": JustifySpaceBetween,
	"space-around": JustifySpaceAround, "space-evenly": JustifySpaceEvenly,
}

var aligns = map[string]Align{
	"auto": AlignAuto, "flex-start": AlignStart, "start": AlignStart, "center": AlignCenter,
	"flex-end": AlignEnd, "end": AlignEnd, "stretch": AlignStretch,
}

// SetProperty sets one property from its script-facing name. Both camelCase
// and kebab-case names are accepted.
func (n *Node) SetProperty(name, value string) error {
	name = kebabToCamel(name)
	value = strings.TrimSpace(value)

	length := func(dst *Value) error {
		v, err := ParseValue(value)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	number := func(dst *float64) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
		*dst = f
		return nil
	}
	edges := func(e *Edges) error {
		v, err := ParseValue(value)
		if err != nil {
			return err
		}
		*e = All(v)
		return nil
	}

	switch name {
	case "width":
		return length(&n.Width)
	case "height":
		return length(&n.Height)
	case "minWidth":
		return length(&n.MinWidth)
	case "minHeight":
		return length(&n.MinHeight)
	case "maxWidth":
		return length(&n.MaxWidth)
	case "maxHeight":
		return length(&n.MaxHeight)
	case "flexBasis":
		return length(&n.FlexBasis)
	case "flexGrow":
		return number(&n.FlexGrow)
	case "flexShrink":
		return number(&n.FlexShrink)
	case "padding":
		return edges(&n.Padding)
	case "paddingLeft":
		return length(&n.Padding.Left)
	case "paddingTop":
		return length(&n.Padding.Top)
	case "paddingRight":
		return length(&n.Padding.Right)
	case "paddingBottom":
		return length(&n.Padding.Bottom)
	case "margin":
		return edges(&n.Margin)
	case "marginLeft":
		return length(&n.Margin.Left)
	case "marginTop":
		return length(&n.Margin.Top)
	case "marginRight":
		return length(&n.Margin.Right)
	case "marginBottom":
		return length(&n.Margin.Bottom)
	case "left":
		return length(&n.Offsets.Left)
	case "top":
		return length(&n.Offsets.Top)
	case "right":
		return length(&n.Offsets.Right)
	case "bottom":
		return length(&n.Offsets.Bottom)
	case "flexDirection":
		d, ok := directions[value]
		if !ok {
			return fmt.Errorf("invalid flex direction %q", value)
		}
		n.FlexDirection = d
	case "justifyContent":
		j, ok := justifies[value]
		if !ok {
			return fmt.Errorf("invalid justify %q", value)
		}
		n.JustifyContent = j
	case "alignItems", "alignSelf":
		a, ok := aligns[value]
		if !ok {
			return fmt.Errorf("invalid alignment %q", value)
		}
		if name == "alignItems" {
			n.AlignItems = a
		} else {
			n.AlignSelf = a
		}
	case "position":
		switch value {
		case "relative":
			n.Position = PositionRelative
		case "absolute":
			n.Position = PositionAbsolute
		default:
			return fmt.Errorf("invalid position %q", value)
		}
	case "display":
		switch value {
		case "flex":
			n.Display = DisplayFlex
		case "none":
			n.Display = DisplayNone
		default:
			return fmt.Errorf("invalid display %q", value)
		}
	case "overflow":
		switch value {
		case "visible":
			n.Overflow = OverflowVisible
		case "hidden":
			n.Overflow = OverflowHidden
		case "scroll":
			n.Overflow = OverflowScroll
		default:
			return fmt.Errorf("invalid overflow %q", value)
		}
	default:
		return fmt.Errorf("unknown layout property %q", name)
	}
	return nil
}

func kebabToCamel(s string) string {
	if !strings.Contains(s, "-") {
		return s
	}
	parts := strings.Split(s, "-")
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(p[:1]))
		sb.WriteString(p[1:])
	}
	return sb.String()
}
