package autodiff

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/autodiff/ops"
)

// ErrDivisionByZero is returned by Div, DivScalar and ScalarDiv when the
// divisor is exactly zero. No Node is created in that case.
var ErrDivisionByZero = ops.ErrDivisionByZero

// TraversalError reports an unknown traversal name.
type TraversalError struct {
	Name string
}

// Error implements the error interface.
func (e *TraversalError) Error() string {
	return fmt.Sprintf("unknown traversal %q (want \"topological\" or \"recursive\")", e.Name)
}
