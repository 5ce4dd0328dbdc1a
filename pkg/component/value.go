package component

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the primitive held by a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
)

func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueBool:
		return "boolean"
	}
	return "null"
}

// Value is a loosely-typed property value as it arrives from script.
// Conversion to the type a property needs is explicit and fallible.
type Value struct {
	kind ValueKind
	s    string
	n    float64
	b    bool
}

func Null() Value { return Value{} }
func String(s string) Value { return Value{kind: ValueString, s: s} }
func Number(n float64) Value { return Value{kind: ValueNumber, n: n} }
func Bool(b bool) Value { return Value{kind: ValueBool, b: b} }
func (v Value) Kind() ValueKind { return v.kind }

var (
	errNull       = errors.New("value is null")
	errNotInteger = errors.New("not an integer")
	errNotBoolean = errors.New("not a boolean")
	errNotNumber  = errors.New("not a number")
)

// String renders the value the way script would stringify it.
func (v Value) String() string {
	switch v.kind {
	case ValueString:
		return v.s
	case ValueNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.b)
	}
	return ""
}

// Describe renders the value with its kind, for error messages.
func (v Value) Describe() string {
	if v.kind == ValueString {
		return fmt.Sprintf("string %q", v.s)
	}
	if v.kind == ValueNull {
		return "null"
	}
	return v.kind.String() + " " + v.String()
}

// AsFloat converts numbers, numeric strings and booleans (1/0).
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case ValueNumber:
		return v.n, nil
	case ValueBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case ValueString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err != nil {
			return 0, errNotNumber
		}
		return f, nil
	}
	return 0, errNull
}

// AsInt converts to a 32-bit integer. Fractional numbers round half to even;
// strings must spell an integer.
func (v Value) AsInt() (int, error) {
	var f float64
	switch v.kind {
	case ValueString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 32)
		if err != nil {
			return 0, errNotInteger
		}
		return int(i), nil
	case ValueNull:
		return 0, errNull
	default:
		f, _ = v.AsFloat()
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotInteger
	}
	f = math.RoundToEven(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, errNotInteger
	}
	return int(f), nil
}

// AsBool converts booleans, numbers (non-zero is true), "true"/"false"
// strings in any case, and null (false).
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case ValueBool:
		return v.b, nil
	case ValueNumber:
		return v.n != 0 && !math.IsNaN(v.n), nil
	case ValueString:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, errNotBoolean
	}
	return false, nil
}
