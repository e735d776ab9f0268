package ops

// Sub computes a - b.
//
// Local derivatives:
//   - d(a-b)/da = 1
//   - d(a-b)/db = -1
func Sub(a, b float64) Result {
	return Result{Op: OpSub, Value: a - b, Derivatives: []float64{1, -1}}
}

// SubScalar computes a - s for a constant s.
func SubScalar(a, s float64) Result {
	return Result{Op: OpSubScalar, Value: a - s, Derivatives: []float64{1}}
}
