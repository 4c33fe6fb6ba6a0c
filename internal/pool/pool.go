// Package pool provides bounded worker-pool fan-out for parallelizing
// per-variant evaluation (spec.md §5: ConstraintValidator + CostCalculator
// run per variant inside a bounded goroutine pool). Grounded on the
// teacher's worker.go, which spawned a fixed goroutine count reading off a
// shared job channel and synchronized completion with a sync.WaitGroup.
package pool

import (
	"context"
	"sync"
)

// Run executes fn(items[i]) for every index across at most concurrency
// goroutines, collecting results in input order. It returns the first error
// encountered, if any was non-nil, but the others still run to completion so
// one variant's failure does not leak partial state into callers inspecting
// results[i] for i that did succeed.
func Run[T any, R any](ctx context.Context, concurrency int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}
	if concurrency == 0 {
		return nil, nil
	}

	results := make([]R, len(items))
	errs := make([]error, len(items))

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				select {
				case <-ctx.Done():
					errs[i] = ctx.Err()
					continue
				default:
				}
				r, err := fn(ctx, items[i])
				results[i] = r
				errs[i] = err
			}
		}()
	}

	for i := range items {
		indices <- i
	}
	close(indices)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
