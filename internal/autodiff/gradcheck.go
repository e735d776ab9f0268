package autodiff

import (
	"errors"
	"fmt"
	"math"
)

// DefaultEpsilon is the finite-difference step used when CheckGradient is
// given a non-positive epsilon.
const DefaultEpsilon = 1e-6

// Func builds a scalar function of inputs on tape.
type Func func(tape *Tape, inputs []Var) (Var, error)

// GradCheck holds the outcome of a numerical gradient check.
type GradCheck struct {
	Inputs   []float64 // point at which the gradient was evaluated
	Value    float64   // f(Inputs)
	Analytic []float64 // gradient from Backward
	Numeric  []float64 // gradient from central differences
	MaxError float64   // max |Analytic[i] - Numeric[i]|
}

// Within reports whether every component agrees to tol, measured relative to
// max(1, |analytic|).
func (g *GradCheck) Within(tol float64) bool {
	for i := range g.Analytic {
		scale := math.Max(1, math.Abs(g.Analytic[i]))
		if !(math.Abs(g.Analytic[i]-g.Numeric[i]) <= tol*scale) {
			return false
		}
	}
	return true
}

// CheckGradient compares the gradient of f computed by a backward pass with a
// central-difference estimate (f(x+h) - f(x-h)) / 2h for every input.
//
// Each evaluation runs on its own tape built with opts.
func CheckGradient(f Func, at []float64, eps float64, opts ...Option) (*GradCheck, error) {
	if f == nil {
		return nil, errors.New("gradcheck: nil function")
	}
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	tape := NewTape(opts...)
	inputs := make([]Var, len(at))
	for i, x := range at {
		inputs[i] = tape.Var(x)
	}
	out, err := f(tape, inputs)
	if err != nil {
		return nil, fmt.Errorf("gradcheck: evaluate: %w", err)
	}
	out.Backward()

	result := &GradCheck{
		Inputs:   append([]float64(nil), at...),
		Value:    out.Value(),
		Analytic: make([]float64, len(at)),
		Numeric:  make([]float64, len(at)),
	}
	for i, in := range inputs {
		result.Analytic[i] = in.Grad()
	}

	for i := range at {
		plus, err := evalAt(f, at, i, eps, opts)
		if err != nil {
			return nil, fmt.Errorf("gradcheck: input %d +h: %w", i, err)
		}
		minus, err := evalAt(f, at, i, -eps, opts)
		if err != nil {
			return nil, fmt.Errorf("gradcheck: input %d -h: %w", i, err)
		}
		result.Numeric[i] = (plus - minus) / (2 * eps)
		result.MaxError = math.Max(result.MaxError, math.Abs(result.Analytic[i]-result.Numeric[i]))
	}

	return result, nil
}

// evalAt evaluates f with input i shifted by delta.
func evalAt(f Func, at []float64, i int, delta float64, opts []Option) (float64, error) {
	tape := NewTape(opts...)
	inputs := make([]Var, len(at))
	for j, x := range at {
		if j == i {
			x += delta
		}
		inputs[j] = tape.Var(x)
	}
	out, err := f(tape, inputs)
	if err != nil {
		return 0, err
	}
	return out.Value(), nil
}
