package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/expr"
)

var (
	varFlags  []string
	showGraph bool
)

// evalCmd differentiates one expression
var evalCmd = &cobra.Command{
	Use:   "eval EXPR",
	Short: "Evaluate an expression and print its gradient",
	Example: `  gradtape eval "x * y + exp(x)" --var x=2 --var y=3
  gradtape eval "sqrt(x)" --var x=4 --graph`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringArrayVar(&varFlags, "var", nil, "Variable binding name=value (repeatable)")
	evalCmd.Flags().BoolVar(&showGraph, "graph", false, "Print every node recorded on the tape")
}

func runEval(cmd *cobra.Command, args []string) error {
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
	tape := autodiff.NewTape(opts...)
	res, err := expr.DifferentiateOn(tape, e, bindings)
	if err != nil {
		return err
	}
	logger.Debug("evaluated expression",
		zap.String("expr", e.String()),
		zap.Stringer("traversal", tape.Traversal()),
		zap.Int("tape_size", res.TapeSize),
	)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "value = %g\n", res.Value)
	for _, name := range res.Names {
		fmt.Fprintf(out, "d/d%s = %g\n", name, res.Grads[name])
	}
	if showGraph {
		printGraph(out, tape)
	}
	return nil
}

// parseBindings turns name=value flags into a binding map.
func parseBindings(flags []string) (map[string]float64, error) {
	bindings := make(map[string]float64, len(flags))
	for _, f := range flags {
		name, raw, ok := strings.Cut(f, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q: want name=value", f)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --var %q: %w", f, err)
		}
		bindings[name] = v
	}
	return bindings, nil
}

// printGraph lists the tape in creation order with parent indices.
func printGraph(w io.Writer, tape *autodiff.Tape) {
	nodes := tape.Nodes()
	index := make(map[*autodiff.Node]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}

	fmt.Fprintf(w, "tape (%d nodes):\n", len(nodes))
	for i, n := range nodes {
		parents := make([]string, n.NumParents())
		for j := range parents {
			parents[j] = fmt.Sprintf("%d:%g", index[n.Parent(j)], n.Derivative(j))
		}
		fmt.Fprintf(w, "  #%-3d %-10s value=%-12g grad=%-12g parents=[%s]\n",
			i, n.Op(), n.Value(), n.Grad(), strings.Join(parents, " "))
	}
}
