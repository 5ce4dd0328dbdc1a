package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the unit of a Value.
type Unit int

const (
	UnitAuto Unit = iota
	UnitPoint
	UnitPercent
)

// Value is a length that may be auto, absolute, or a percentage of the
// containing box's inner size along the same axis.
type Value struct {
	Unit  Unit
	Value float64
}

var Auto = Value{Unit: UnitAuto}

func Pt(v float64) Value { return Value{Unit: UnitPoint, Value: v} }
func Pct(v float64) Value { return Value{Unit: UnitPercent, Value: v} }

// IsAuto reports whether v is auto.
func (v Value) IsAuto() bool { return v.Unit == UnitAuto }

// Resolve converts v to points against the given reference size.
// Auto yields ok=false.
func (v Value) Resolve(ref float64) (float64, bool) {
	switch v.Unit {
	case UnitPoint:
		return v.Value, true
	case UnitPercent:
		return ref * v.Value / 100, true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.Unit {
	case UnitPoint:
		return strconv.FormatFloat(v.Value, 'f', -1, 64)
	case UnitPercent:
		return strconv.FormatFloat(v.Value, 'f', -1, 64) + "%"
	}
	return "auto"
}

// ParseValue accepts "auto", "12", "12px" and "50%".
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "auto" || s == "" {
		return Auto, nil
	}
	unit := UnitPoint
	if strings.HasSuffix(s, "%") {
		unit = UnitPercent
		s = strings.TrimSuffix(s, "%")
	} else {
		s = strings.TrimSuffix(s, "px")
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Auto, fmt.Errorf("invalid length %q", s)
	}
	return Value{Unit: unit, Value: f}, nil
}

// Edges holds per-side lengths.
type Edges struct {
	Left, Top, Right, Bottom Value
}

// All returns Edges with every side set to v.
func All(v Value) Edges {
	return Edges{v, v, v, v}
}

func (e Edges) resolve(refWidth float64) (left, top, right, bottom float64) {
	// Percent edges resolve against the containing width on every side, as in CSS.
	left, _ = e.Left.Resolve(refWidth)
	top, _ = e.Top.Resolve(refWidth)
	right, _ = e.Right.Resolve(refWidth)
	bottom, _ = e.Bottom.Resolve(refWidth)
	return
}

// Rect is a resolved geometry rectangle, relative to the parent box's origin.
type Rect struct {
	X, Y, Width, Height float64
}
