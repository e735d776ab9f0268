package ops

import "math"

// Exp computes exp(x). Its derivative is exp(x) itself.
func Exp(x float64) Result {
	y := math.Exp(x)
	return Result{Op: OpExp, Value: y, Derivatives: []float64{y}}
}
