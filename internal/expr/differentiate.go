package expr

import (
	"fmt"

	"github.com/born-ml/gradtape/internal/autodiff"
)

// Result is the value of an expression and its gradient with respect to every
// variable it references.
type Result struct {
	Value    float64
	Names    []string           // referenced variables, sorted
	Grads    map[string]float64 // d(value)/d(name)
	TapeSize int                // nodes registered while evaluating
}

// Differentiate parses src, binds each referenced variable to a fresh leaf
// holding bindings[name], evaluates the expression and runs Backward.
func Differentiate(src string, bindings map[string]float64, opts ...autodiff.Option) (*Result, error) {
	e, err := Parse(src)
	if err != nil {
		return nil, err
	}
	tape := autodiff.NewTape(opts...)
	return DifferentiateOn(tape, e, bindings)
}

// DifferentiateOn is Differentiate for an already parsed expression and a
// caller-owned tape.
func DifferentiateOn(tape *autodiff.Tape, e Expr, bindings map[string]float64) (*Result, error) {
	names := Vars(e)
	env := make(map[string]autodiff.Var, len(names))
	for _, name := range names {
		x, ok := bindings[name]
		if !ok {
			return nil, fmt.Errorf("%w %q: no value bound", ErrUnknownVariable, name)
		}
		env[name] = tape.Var(x)
	}

	out, err := Eval(tape, e, env)
	if err != nil {
		return nil, err
	}
	out.Backward()

	res := &Result{
		Value:    out.Value(),
		Names:    names,
		Grads:    make(map[string]float64, len(names)),
		TapeSize: tape.Size(),
	}
	for _, name := range names {
		res.Grads[name] = env[name].Grad()
	}
	return res, nil
}

// Func adapts e into an autodiff.Func whose inputs are the variables of e in
// sorted order, for use with autodiff.CheckGradient.
func Func(e Expr) (autodiff.Func, []string) {
	names := Vars(e)
	return func(tape *autodiff.Tape, inputs []autodiff.Var) (autodiff.Var, error) {
		env := make(map[string]autodiff.Var, len(names))
		for i, name := range names {
			env[name] = inputs[i]
		}
		return Eval(tape, e, env)
	}, names
}
