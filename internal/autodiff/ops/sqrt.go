package ops

import "math"

// Sqrt computes the square root of x.
//
// Backward pass:
//   - d(sqrt(x))/dx = 1 / (2 * sqrt(x))
//
// Negative inputs yield NaN for both the value and the derivative.
func Sqrt(x float64) Result {
	y := math.Sqrt(x)
	return Result{Op: OpSqrt, Value: y, Derivatives: []float64{1 / (2 * y)}}
}
