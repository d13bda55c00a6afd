package concurrent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs action for every element of items in its own goroutine and
// waits for all of them. The first error cancels the shared context and is
// returned after the remaining goroutines finish.
func ForEach[T any](ctx context.Context, items []T, action func(context.Context, T) error) error {
	group, ctx := errgroup.WithContext(ctx)
	for _, item := range items {
		group.Go(func() error {
			return action(ctx, item)
		})
	}
	return group.Wait()
}

// ForEachLimit behaves like ForEach but never runs more than limit
// goroutines at once. A limit <= 0 means no limit.
func ForEachLimit[T any](ctx context.Context, items []T, limit int, action func(context.Context, T) error) error {
	group, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		group.SetLimit(limit)
	}
	for _, item := range items {
		group.Go(func() error {
			return action(ctx, item)
		})
	}
	return group.Wait()
}

// Map runs transform over items concurrently and returns the results in
// input order. On error the partial results are discarded.
func Map[T, R any](ctx context.Context, items []T, transform func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(items))
	group, ctx := errgroup.WithContext(ctx)
	for i, item := range items {
		group.Go(func() error {
			r, err := transform(ctx, item)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
