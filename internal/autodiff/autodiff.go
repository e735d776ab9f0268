// Package autodiff implements reverse-mode automatic differentiation over
// scalar float64 values.
//
// Architecture:
//   - Node: graph vertex with value, gradient, parents and local derivatives
//   - Var: user-facing handle; every operation on a Var creates a new Node
//   - Tape: ordered registry owning every Node created through it
//   - ops: the local derivative rules (one per operation)
//
// Graph construction is eager: each call computes the value and the local
// derivatives immediately. Gradients are computed on demand by Backward.
//
// Usage:
//
//	tape := autodiff.NewTape()
//	x := tape.Var(4.0)
//	y := tape.Var(3.0)
//	z, err := x.Add(y).Div(x)
//	if err != nil {
//	    return err
//	}
//	z.Backward()
//	fmt.Println(x.Grad()) // dz/dx = -y/x² = -0.1875
package autodiff

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/autodiff/ops"
)

// Var is a handle to a Node. Copying a Var aliases the same Node, so all
// copies observe the same value and gradient.
//
// The zero Var has no Node and must not be used.
type Var struct {
	node *Node
	tape *Tape
}

// Value returns the forward value of the underlying Node.
func (v Var) Value() float64 {
	return v.mustNode().value
}

// Grad returns the gradient accumulated on the underlying Node.
func (v Var) Grad() float64 {
	return v.mustNode().grad
}

// Node returns the underlying graph vertex.
func (v Var) Node() *Node {
	return v.node
}

// Tape returns the tape the Var's Node was registered on.
func (v Var) Tape() *Tape {
	return v.tape
}

// IsZero reports whether v is the zero Var.
func (v Var) IsZero() bool {
	return v.node == nil
}

// String formats the value and gradient.
func (v Var) String() string {
	if v.node == nil {
		return "Var(<nil>)"
	}
	return fmt.Sprintf("Var(value=%g, grad=%g)", v.node.value, v.node.grad)
}

func (v Var) mustNode() *Node {
	if v.node == nil {
		panic("autodiff: use of zero Var")
	}
	return v.node
}

// derive registers a new Node computed from v's tape.
func (v Var) derive(r ops.Result, parents ...*Node) Var {
	return Var{node: v.tape.record(newNode(r, parents...)), tape: v.tape}
}

// Add returns v + other.
func (v Var) Add(other Var) Var {
	return v.derive(ops.Add(v.Value(), other.Value()), v.node, other.node)
}

// AddScalar returns v + s.
func (v Var) AddScalar(s float64) Var {
	return v.derive(ops.AddScalar(v.Value(), s), v.node)
}

// Sub returns v - other.
func (v Var) Sub(other Var) Var {
	return v.derive(ops.Sub(v.Value(), other.Value()), v.node, other.node)
}

// SubScalar returns v - s.
func (v Var) SubScalar(s float64) Var {
	return v.derive(ops.SubScalar(v.Value(), s), v.node)
}

// Mul returns v * other.
func (v Var) Mul(other Var) Var {
	return v.derive(ops.Mul(v.Value(), other.Value()), v.node, other.node)
}

// MulScalar returns v * s.
func (v Var) MulScalar(s float64) Var {
	return v.derive(ops.MulScalar(v.Value(), s), v.node)
}

// Div returns v / other.
// It returns ErrDivisionByZero, and registers nothing, if other is exactly 0.
func (v Var) Div(other Var) (Var, error) {
	r, err := ops.Div(v.Value(), other.Value())
	if err != nil {
		return Var{}, fmt.Errorf("div %g / %g: %w", v.Value(), other.Value(), err)
	}
	return v.derive(r, v.node, other.node), nil
}

// DivScalar returns v / s.
// It returns ErrDivisionByZero, and registers nothing, if s is exactly 0.
func (v Var) DivScalar(s float64) (Var, error) {
	r, err := ops.DivScalar(v.Value(), s)
	if err != nil {
		return Var{}, fmt.Errorf("div %g / %g: %w", v.Value(), s, err)
	}
	return v.derive(r, v.node), nil
}

// Exp returns e^v.
func (v Var) Exp() Var {
	return v.derive(ops.Exp(v.Value()), v.node)
}

// Log returns the natural logarithm of v. Non-positive values yield NaN or
// -Inf without error.
func (v Var) Log() Var {
	return v.derive(ops.Log(v.Value()), v.node)
}

// Sqrt returns the square root of v. Negative values yield NaN without error.
func (v Var) Sqrt() Var {
	return v.derive(ops.Sqrt(v.Value()), v.node)
}

// Add returns a + b.
func Add(a, b Var) Var { return a.Add(b) }

// Sub returns a - b.
func Sub(a, b Var) Var { return a.Sub(b) }

// Mul returns a * b.
func Mul(a, b Var) Var { return a.Mul(b) }

// Div returns a / b, or ErrDivisionByZero.
func Div(a, b Var) (Var, error) { return a.Div(b) }

// Exp returns e^x.
func Exp(x Var) Var { return x.Exp() }

// Log returns ln(x).
func Log(x Var) Var { return x.Log() }

// Sqrt returns √x.
func Sqrt(x Var) Var { return x.Sqrt() }

// ScalarAdd returns s + v. Addition commutes, so this is v.AddScalar(s).
func ScalarAdd(s float64, v Var) Var {
	return v.AddScalar(s)
}

// ScalarMul returns s * v. Multiplication commutes, so this is v.MulScalar(s).
func ScalarMul(s float64, v Var) Var {
	return v.MulScalar(s)
}

// ScalarSub returns s - v.
// s is lifted into a leaf on v's tape first; that leaf's gradient is
// computed but s itself is a constant.
func ScalarSub(s float64, v Var) Var {
	return v.Tape().Var(s).Sub(v)
}

// ScalarDiv returns s / v.
// The divisor is checked before s is lifted, so a zero divisor leaves the
// tape unchanged.
func ScalarDiv(s float64, v Var) (Var, error) {
	if v.Value() == 0 {
		return Var{}, fmt.Errorf("div %g / %g: %w", s, v.Value(), ErrDivisionByZero)
	}
	return v.Tape().Var(s).Div(v)
}
