package component

import "fmt"

// StructuralError reports an illegal tree mutation. The tree is left as it
// was before the call.
type StructuralError struct {
	Op      string
	NodeID  string
	Message string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.NodeID, e.Message)
}

// NewStructuralError creates a StructuralError.
func NewStructuralError(op, nodeID, message string) *StructuralError {
	return &StructuralError{Op: op, NodeID: nodeID, Message: message}
}

// PropertyCoercionError reports a property value that cannot be converted to
// the type the property needs. The property is left unchanged.
type PropertyCoercionError struct {
	Property string
	Want     string
	Got      Value
	Err      error
}

func (e *PropertyCoercionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("property %q: cannot convert %s to %s: %v", e.Property, e.Got.Describe(), e.Want, e.Err)
	}
	return fmt.Sprintf("property %q: cannot convert %s to %s", e.Property, e.Got.Describe(), e.Want)
}

// Unwrap provides the underlying conversion error for use with errors.Is/As.
func (e *PropertyCoercionError) Unwrap() error {
	return e.Err
}

func coercionError(property, want string, got Value, err error) *PropertyCoercionError {
	return &PropertyCoercionError{Property: property, Want: want, Got: got, Err: err}
}
