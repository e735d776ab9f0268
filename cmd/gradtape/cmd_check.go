package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/expr"
)

var (
	checkEpsilon   float64
	checkTolerance float64
)

// checkCmd compares the backward gradient with finite differences
var checkCmd = &cobra.Command{
	Use:     "check EXPR",
	Short:   "Compare the analytic gradient with a finite-difference estimate",
	Example: `  gradtape check "exp(x / y) * sqrt(x)" --var x=1.3 --var y=2.1`,
	Args:    cobra.ExactArgs(1),
	RunE:    runCheck,
}

func init() {
	checkCmd.Flags().StringArrayVar(&varFlags, "var", nil, "Variable binding name=value (repeatable)")
	checkCmd.Flags().Float64Var(&checkEpsilon, "eps", autodiff.DefaultEpsilon, "Finite-difference step")
	checkCmd.Flags().Float64Var(&checkTolerance, "tol", 1e-5, "Relative tolerance")
}

func runCheck(cmd *cobra.Command, args []string) error {
	bindings, err := parseBindings(varFlags)
	if err != nil {
		return err
	}
	opts, err := tapeOptions()
	if err != nil {
		return err
	}
	e, err := expr.Parse(args[0])
	if err != nil {
		return err
	}

	f, names := expr.Func(e)
	at := make([]float64, len(names))
	for i, name := range names {
		v, ok := bindings[name]
		if !ok {
			return fmt.Errorf("%w %q: no value bound", expr.ErrUnknownVariable, name)
		}
		at[i] = v
	}

	res, err := autodiff.CheckGradient(f, at, checkEpsilon, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "value = %g\n", res.Value)
	for i, name := range names {
		fmt.Fprintf(out, "d/d%s analytic=%g numeric=%g\n", name, res.Analytic[i], res.Numeric[i])
	}
	fmt.Fprintf(out, "max error = %g\n", res.MaxError)

	if !res.Within(checkTolerance) {
		return fmt.Errorf("gradient check failed: max error %g exceeds tolerance %g", res.MaxError, checkTolerance)
	}
	fmt.Fprintln(out, "ok")
	return nil
}
