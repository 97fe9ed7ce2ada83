// Package pool provides a bounded-concurrency mapping primitive.
package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item with at most limit invocations in flight at
// once, and returns the results in input order: out[i] is fn(items[i]).
// The first error encountered is returned after all started work finishes;
// Map itself never cancels or skips items. Callers that want partial
// failure handle errors inside fn and return a degraded value instead.
func Map[T, R any](ctx context.Context, items []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	if limit < 1 {
		limit = 1
	}

	results := make([]R, len(items))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, item := range items {
		g.Go(func() error {
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
