package expr

import (
	"fmt"
	"math"

	"github.com/born-ml/gradtape/internal/autodiff"
)

// operand is either a graph value or a folded constant.
type operand struct {
	v       autodiff.Var
	c       float64
	isConst bool
}

func constant(c float64) operand { return operand{c: c, isConst: true} }

func variable(v autodiff.Var) operand { return operand{v: v} }

// Eval builds e on tape. Every identifier must be bound in env.
// A constant-only expression is lifted into a single leaf.
func Eval(tape *autodiff.Tape, e Expr, env map[string]autodiff.Var) (autodiff.Var, error) {
	op, err := eval(tape, e, env)
	if err != nil {
		return autodiff.Var{}, err
	}
	if op.isConst {
		return tape.Var(op.c), nil
	}
	return op.v, nil
}

func eval(tape *autodiff.Tape, e Expr, env map[string]autodiff.Var) (operand, error) {
	switch n := e.(type) {
	case *Number:
		return constant(n.Value), nil
	case *Ident:
		v, ok := env[n.Name]
		if !ok || v.IsZero() {
			return operand{}, fmt.Errorf("%w %q", ErrUnknownVariable, n.Name)
		}
		return variable(v), nil
	case *Unary:
		x, err := eval(tape, n.X, env)
		if err != nil {
			return operand{}, err
		}
		if n.Op == '+' {
			return x, nil
		}
		if x.isConst {
			return constant(-x.c), nil
		}
		return variable(x.v.MulScalar(-1)), nil
	case *Call:
		x, err := eval(tape, n.Arg, env)
		if err != nil {
			return operand{}, err
		}
		return call(n.Func, x)
	case *Binary:
		l, err := eval(tape, n.L, env)
		if err != nil {
			return operand{}, err
		}
		r, err := eval(tape, n.R, env)
		if err != nil {
			return operand{}, err
		}
		return binary(tape, n.Op, l, r)
	default:
		return operand{}, fmt.Errorf("expr: unsupported node %T", e)
	}
}

func call(name string, x operand) (operand, error) {
	switch name {
	case "exp":
		if x.isConst {
			return constant(math.Exp(x.c)), nil
		}
		return variable(x.v.Exp()), nil
	case "log":
		if x.isConst {
			return constant(math.Log(x.c)), nil
		}
		return variable(x.v.Log()), nil
	case "sqrt":
		if x.isConst {
			return constant(math.Sqrt(x.c)), nil
		}
		return variable(x.v.Sqrt()), nil
	default:
		return operand{}, fmt.Errorf("%w %q", ErrUnknownFunction, name)
	}
}

func binary(tape *autodiff.Tape, op byte, l, r operand) (operand, error) {
	switch {
	case l.isConst && r.isConst:
		return foldConstants(op, l.c, r.c)
	case r.isConst:
		return varScalar(op, l.v, r.c)
	case l.isConst:
		return scalarVar(op, l.c, r.v)
	}

	switch op {
	case '+':
		return variable(l.v.Add(r.v)), nil
	case '-':
		return variable(l.v.Sub(r.v)), nil
	case '*':
		return variable(l.v.Mul(r.v)), nil
	case '/':
		v, err := l.v.Div(r.v)
		return variable(v), err
	}
	return operand{}, fmt.Errorf("expr: unknown operator %q", op)
}

func varScalar(op byte, v autodiff.Var, s float64) (operand, error) {
	switch op {
	case '+':
		return variable(v.AddScalar(s)), nil
	case '-':
		return variable(v.SubScalar(s)), nil
	case '*':
		return variable(v.MulScalar(s)), nil
	case '/':
		out, err := v.DivScalar(s)
		return variable(out), err
	}
	return operand{}, fmt.Errorf("expr: unknown operator %q", op)
}

func scalarVar(op byte, s float64, v autodiff.Var) (operand, error) {
	switch op {
	case '+':
		return variable(autodiff.ScalarAdd(s, v)), nil
	case '-':
		return variable(autodiff.ScalarSub(s, v)), nil
	case '*':
		return variable(autodiff.ScalarMul(s, v)), nil
	case '/':
		out, err := autodiff.ScalarDiv(s, v)
		return variable(out), err
	}
	return operand{}, fmt.Errorf("expr: unknown operator %q", op)
}

func foldConstants(op byte, a, b float64) (operand, error) {
	switch op {
	case '+':
		return constant(a + b), nil
	case '-':
		return constant(a - b), nil
	case '*':
		return constant(a * b), nil
	case '/':
		if b == 0 {
			return operand{}, fmt.Errorf("div %g / %g: %w", a, b, autodiff.ErrDivisionByZero)
		}
		return constant(a / b), nil
	}
	return operand{}, fmt.Errorf("expr: unknown operator %q", op)
}
