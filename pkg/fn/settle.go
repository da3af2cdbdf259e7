package fn

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Settle runs every branch concurrently and waits for all of them.  Each
// branch resolves to its own Result, in input order; one failing branch never
// cancels or hides the others.  A panicking branch settles as a failure.
func Settle[T any](ctx context.Context, branches ...func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(branches))
	// The group context is not derived: errgroup.WithContext would cancel
	// sibling branches on the first failure.
	var g errgroup.Group
	for i, branch := range branches {
		i, branch := i, branch
		g.Go(func() error {
			results[i] = settleOne(ctx, branch)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func settleOne[T any](ctx context.Context, branch func(context.Context) (T, error)) (r Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			r = Err[T](fmt.Errorf("fn: branch panicked: %v", p))
		}
	}()
	return FromPair(branch(ctx))
}

// Partition splits settled results into values and errors, preserving order.
func Partition[T any](results []Result[T]) ([]T, []error) {
	vals := make([]T, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.ok {
			vals = append(vals, r.val)
		} else {
			errs = append(errs, r.err)
		}
	}
	return vals, errs
}
