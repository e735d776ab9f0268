// Package ops defines the local derivative rules of the scalar autodiff engine.
//
// Each rule evaluates the forward value of an operation and the partial
// derivative of that value with respect to each of its inputs, positionally
// aligned with the inputs. The rules are pure: they know nothing about nodes,
// tapes or gradients.
//
// Supported operations:
//   - Add: a + b (d/da = 1, d/db = 1)
//   - Sub: a - b (d/da = 1, d/db = -1)
//   - Mul: a * b (d/da = b, d/db = a)
//   - Div: a / b (d/da = 1/b, d/db = -a/b²)
//   - Exp: exp(x) (d/dx = exp(x))
//   - Log: log(x) (d/dx = 1/x)
//   - Sqrt: sqrt(x) (d/dx = 1/(2*sqrt(x)))
//
// The *Scalar variants take a constant right operand and report a single
// derivative for the variable operand.
package ops

// Op identifies the operation that produced a value.
type Op string

// Operation kinds.
const (
	OpLeaf      Op = "leaf"
	OpAdd       Op = "add"
	OpAddScalar Op = "add_scalar"
	OpSub       Op = "sub"
	OpSubScalar Op = "sub_scalar"
	OpMul       Op = "mul"
	OpMulScalar Op = "mul_scalar"
	OpDiv       Op = "div"
	OpDivScalar Op = "div_scalar"
	OpExp       Op = "exp"
	OpLog       Op = "log"
	OpSqrt      Op = "sqrt"
)

// Result is the outcome of applying a rule: the forward value and the local
// derivative with respect to every input, in input order.
type Result struct {
	Op          Op
	Value       float64
	Derivatives []float64
}

// Arity returns the number of inputs the result was computed from.
func (r Result) Arity() int {
	return len(r.Derivatives)
}
