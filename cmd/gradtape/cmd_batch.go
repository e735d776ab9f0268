package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/gradtape/internal/batch"
	"github.com/born-ml/gradtape/internal/config"
)

var batchWorkers int

// batchCmd runs a YAML job file
var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Differentiate every job of a YAML file concurrently",
	Long: `batch reads a job file of the form

  traversal: topological
  workers: 4
  jobs:
    - name: product
      expr: "x * y + exp(x)"
      vars: {x: 2, y: 3}

and evaluates each job on its own tape. --traversal and --workers override
the file, as do the GRADTAPE_TRAVERSAL and GRADTAPE_WORKERS variables.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Concurrent jobs (default: from file, else CPU count)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if traversal != "" {
		cfg.Traversal = traversal
	}
	if batchWorkers > 0 {
		cfg.Workers = batchWorkers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("running batch",
		zap.String("file", args[0]),
		zap.Int("jobs", len(cfg.Jobs)),
		zap.Int("workers", cfg.WorkerCount()),
		zap.String("traversal", cfg.Traversal),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := batch.NewRunner(cfg, logger).Run(ctx, cfg.Jobs)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tVALUE\tGRADIENT\tNODES")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror\t%v\t-\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%g\t%s\t%d\n", r.Name, r.Value, formatGrads(r.Grads), r.TapeSize)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if n := batch.Failed(results); n > 0 {
		return fmt.Errorf("%d of %d jobs failed", n, len(results))
	}
	return nil
}

func formatGrads(grads map[string]float64) string {
	names := make([]string, 0, len(grads))
	for name := range grads {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, grads[name])
	}
	return strings.Join(parts, " ")
}
