package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// mapOrdered runs fn for indexes 0..n-1 on at most workers goroutines and
// returns the results in submission order. Each task writes only its own
// slot, so the gather needs no locking; the first error cancels the rest
// and fails the whole map.
func mapOrdered[T any](ctx context.Context, workers, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			v, err := fn(ctx, i)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
