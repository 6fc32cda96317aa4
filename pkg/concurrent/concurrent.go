package concurrent

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Workers normalizes a worker count: values <= 0 mean GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// ForEachChunk splits [0, n) into consecutive ranges of at most chunk indices
// and runs action on each range, with at most workers ranges in flight.
// With a single worker the ranges run inline, in order, on the caller's
// goroutine. Ranges not yet started when ctx is cancelled are skipped and the
// context error is returned. The first action error cancels the remaining
// ranges and is returned.
func ForEachChunk(ctx context.Context, n, chunk, workers int, action func(lo, hi int) error) error {
	if chunk <= 0 {
		chunk = n
	}
	workers = Workers(workers)

	if workers == 1 || n <= chunk {
		for lo := 0; lo < n; lo += chunk {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := action(lo, min(lo+chunk, n)); err != nil {
				return err
			}
		}
		return ctx.Err()
	}

	errGroup, groupCtx := errgroup.WithContext(ctx)
	errGroup.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		errGroup.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			return action(lo, hi)
		})
	}
	if err := errGroup.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// ParallelMap applies mapFn to every element of in with a bounded number of
// goroutines, preserving order.
func ParallelMap[T any, R any](ctx context.Context, in []T, workers int, mapFn func(T) R) ([]R, error) {
	out := make([]R, len(in))
	err := ForEachChunk(ctx, len(in), 1, workers, func(lo, _ int) error {
		out[lo] = mapFn(in[lo])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
