// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation over
// scalar float64 values.
//
// A Tape owns every node of the computation graph. Vars are handles to those
// nodes: arithmetic on Vars builds the graph eagerly, and Backward computes
// the gradient of a result with respect to every value it depends on.
//
// Example:
//
//	import "github.com/born-ml/gradtape/autodiff"
//
//	func main() {
//	    tape := autodiff.NewTape()
//	    x := tape.Var(2.0)
//	    y := tape.Var(3.0)
//
//	    z := x.Mul(y).Add(x.Exp())
//	    z.Backward()
//
//	    fmt.Println(x.Grad()) // y + e^x
//	    fmt.Println(y.Grad()) // x
//
//	    tape.Clear()
//	}
package autodiff

import (
	"github.com/born-ml/gradtape/internal/autodiff"
)

// Var is a handle to a node of the computation graph.
type Var = autodiff.Var

// Node is a vertex of the computation graph.
type Node = autodiff.Node

// Tape owns the nodes of a computation graph.
type Tape = autodiff.Tape

// Option configures a Tape.
type Option = autodiff.Option

// Traversal selects the backward algorithm.
type Traversal = autodiff.Traversal

// Backward algorithms.
const (
	TraversalTopological = autodiff.TraversalTopological
	TraversalRecursive   = autodiff.TraversalRecursive
)

// ErrDivisionByZero is returned when a divisor is exactly zero.
var ErrDivisionByZero = autodiff.ErrDivisionByZero

// NewTape creates an empty tape.
//
// Example:
//
//	tape := autodiff.NewTape(autodiff.WithTraversal(autodiff.TraversalRecursive))
func NewTape(opts ...Option) *Tape {
	return autodiff.NewTape(opts...)
}

// WithTraversal sets the backward algorithm of a Tape.
func WithTraversal(t Traversal) Option {
	return autodiff.WithTraversal(t)
}

// WithCapacity pre-allocates room for n nodes.
func WithCapacity(n int) Option {
	return autodiff.WithCapacity(n)
}

// ParseTraversal converts "topological" or "recursive" into a Traversal.
func ParseTraversal(s string) (Traversal, error) {
	return autodiff.ParseTraversal(s)
}

// Add returns a + b.
func Add(a, b Var) Var { return autodiff.Add(a, b) }

// Sub returns a - b.
func Sub(a, b Var) Var { return autodiff.Sub(a, b) }

// Mul returns a * b.
func Mul(a, b Var) Var { return autodiff.Mul(a, b) }

// Div returns a / b, or ErrDivisionByZero.
func Div(a, b Var) (Var, error) { return autodiff.Div(a, b) }

// Exp returns e^x.
func Exp(x Var) Var { return autodiff.Exp(x) }

// Log returns ln(x).
func Log(x Var) Var { return autodiff.Log(x) }

// Sqrt returns √x.
func Sqrt(x Var) Var { return autodiff.Sqrt(x) }

// ScalarAdd returns s + v.
func ScalarAdd(s float64, v Var) Var { return autodiff.ScalarAdd(s, v) }

// ScalarSub returns s - v.
func ScalarSub(s float64, v Var) Var { return autodiff.ScalarSub(s, v) }

// ScalarMul returns s * v.
func ScalarMul(s float64, v Var) Var { return autodiff.ScalarMul(s, v) }

// ScalarDiv returns s / v, or ErrDivisionByZero.
func ScalarDiv(s float64, v Var) (Var, error) { return autodiff.ScalarDiv(s, v) }

// Func builds a scalar function of inputs on a tape.
type Func = autodiff.Func

// GradCheck holds the outcome of a numerical gradient check.
type GradCheck = autodiff.GradCheck

// CheckGradient compares backward-pass gradients with central differences.
func CheckGradient(f Func, at []float64, eps float64, opts ...Option) (*GradCheck, error) {
	return autodiff.CheckGradient(f, at, eps, opts...)
}
