package ops

import "errors"

// ErrDivisionByZero is returned when the divisor is exactly zero.
var ErrDivisionByZero = errors.New("division by zero")

// Div computes a / b.
//
// Local derivatives:
//   - d(a/b)/da = 1/b
//   - d(a/b)/db = -a/b²
//
// The divisor is compared against 0.0 exactly; tiny non-zero divisors are
// accepted and may overflow to ±Inf.
func Div(a, b float64) (Result, error) {
	if b == 0 {
		return Result{}, ErrDivisionByZero
	}
	return Result{
		Op:          OpDiv,
		Value:       a / b,
		Derivatives: []float64{1 / b, -a / (b * b)},
	}, nil
}

// DivScalar computes a / s for a constant s. The derivative is 1/s.
func DivScalar(a, s float64) (Result, error) {
	if s == 0 {
		return Result{}, ErrDivisionByZero
	}
	return Result{Op: OpDivScalar, Value: a / s, Derivatives: []float64{1 / s}}, nil
}
