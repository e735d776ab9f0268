package ops

import "math"

// Log computes the natural logarithm of x.
//
// Forward:
//
//	output = log(x)
//
// Backward:
//
//	d(log(x))/dx = 1 / x
//
// No domain check is made: log of a negative value is NaN and log(0) is -Inf,
// exactly as math.Log reports them.
func Log(x float64) Result {
	return Result{Op: OpLog, Value: math.Log(x), Derivatives: []float64{1 / x}}
}
