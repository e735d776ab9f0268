package ops

// Add computes a + b.
//
// Local derivatives:
//   - d(a+b)/da = 1
//   - d(a+b)/db = 1
func Add(a, b float64) Result {
	return Result{Op: OpAdd, Value: a + b, Derivatives: []float64{1, 1}}
}

// AddScalar computes a + s for a constant s.
// The derivative with respect to a is 1; s receives no gradient.
func AddScalar(a, s float64) Result {
	return Result{Op: OpAddScalar, Value: a + s, Derivatives: []float64{1}}
}
