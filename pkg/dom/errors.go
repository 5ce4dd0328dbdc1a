package dom

import "fmt"

// UnsupportedOperationWarning describes a call the shim accepts but cannot
// honour. It is logged, never returned to script; the call is a no-op.
type UnsupportedOperationWarning struct {
	Op     string
	Detail string
}

func (w *UnsupportedOperationWarning) Error() string {
	return fmt.Sprintf("unsupported %s: %s", w.Op, w.Detail)
}

// NewUnsupportedOperationWarning creates an UnsupportedOperationWarning.
func NewUnsupportedOperationWarning(op, detail string) *UnsupportedOperationWarning {
	return &UnsupportedOperationWarning{Op: op, Detail: detail}
}
