package pvss

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// forEach runs fn(ctx, i) for i in [0, n) on at most workers goroutines.
// Callers write results into index-addressed slices, so output order never
// depends on completion order. Scheduling stops at the first error or when
// ctx is cancelled; the first error is returned.
func forEach(parent context.Context, workers, n int, fn func(ctx context.Context, i int) error) error {
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return parent.Err()
}
