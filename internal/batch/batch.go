// Package batch differentiates many expressions concurrently.
//
// Every job is evaluated on its own tape, so jobs never share graph state
// and need no synchronization beyond collecting their results.
package batch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/born-ml/gradtape/internal/autodiff"
	"github.com/born-ml/gradtape/internal/config"
	"github.com/born-ml/gradtape/internal/expr"
	"github.com/born-ml/gradtape/internal/parallel"
)

// Result is the outcome of one job. Err is set when the job failed; the
// remaining fields are then zero.
type Result struct {
	Name     string
	Expr     string
	Value    float64
	Names    []string
	Grads    map[string]float64
	TapeSize int
	Elapsed  time.Duration
	Err      error
}

// Runner evaluates jobs with a fixed traversal and worker count.
type Runner struct {
	traversal autodiff.Traversal
	workers   int
	logger    *zap.Logger
}

// NewRunner creates a runner from a validated config.
// A nil logger disables logging.
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		traversal: cfg.TraversalMode(),
		workers:   cfg.WorkerCount(),
		logger:    logger,
	}
}

// Run evaluates every job and returns results in job order.
//
// A job that fails to parse or evaluate records its error in its Result and
// does not stop the others. Run itself only fails when ctx is done before all
// jobs have been started.
func (r *Runner) Run(ctx context.Context, jobs []config.Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	err := parallel.For(ctx, len(jobs), func(_ context.Context, i int) error {
		results[i] = r.runJob(jobs[i])
		return nil
	}, parallel.Config{NumWorkers: r.workers})
	if err != nil {
		return results, fmt.Errorf("batch: %w", err)
	}
	return results, nil
}

func (r *Runner) runJob(job config.Job) Result {
	log := r.logger.With(zap.String("job", job.Name))
	log.Debug("job started", zap.String("expr", job.Expr), zap.Stringer("traversal", r.traversal))

	start := time.Now()
	res, err := expr.Differentiate(job.Expr, job.Vars, autodiff.WithTraversal(r.traversal))
	elapsed := time.Since(start)

	if err != nil {
		log.Warn("job failed", zap.Error(err))
		return Result{Name: job.Name, Expr: job.Expr, Elapsed: elapsed, Err: err}
	}

	log.Debug("job finished",
		zap.Float64("value", res.Value),
		zap.Int("tape_size", res.TapeSize),
		zap.Duration("elapsed", elapsed),
	)
	return Result{
		Name:     job.Name,
		Expr:     job.Expr,
		Value:    res.Value,
		Names:    res.Names,
		Grads:    res.Grads,
		TapeSize: res.TapeSize,
		Elapsed:  elapsed,
	}
}

// Failed counts results with an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
