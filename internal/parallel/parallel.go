// Package parallel provides bounded fan-out helpers for independent work items.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	NumWorkers int // Maximum concurrent work items. <= 0 means runtime.NumCPU().
}

// DefaultConfig returns a config sized to the CPU count.
func DefaultConfig() Config {
	return Config{NumWorkers: runtime.NumCPU()}
}

// workers returns the effective worker limit for n items.
func (c Config) workers(n int) int {
	w := c.NumWorkers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	return max(min(w, n), 1)
}

// For executes f(ctx, i) for i in [0, n) with at most cfg.NumWorkers running
// at once. The first error cancels ctx for the remaining items and is
// returned. Items not yet started when ctx is done are skipped.
func For(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	if n <= 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers(n))

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
