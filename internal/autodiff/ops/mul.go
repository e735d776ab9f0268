package ops

// Mul computes a * b.
//
// Local derivatives:
//   - d(a*b)/da = b
//   - d(a*b)/db = a
func Mul(a, b float64) Result {
	return Result{Op: OpMul, Value: a * b, Derivatives: []float64{b, a}}
}

// MulScalar computes a * s for a constant s. The derivative is s.
func MulScalar(a, s float64) Result {
	return Result{Op: OpMulScalar, Value: a * s, Derivatives: []float64{s}}
}
