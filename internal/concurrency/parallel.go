// Package concurrency runs per-item work on a bounded pool of goroutines.
package concurrency

import (
	"context"
	"sync"
)

// ParallelOptions configures ProcessParallel.
type ParallelOptions struct {
	// MaxWorkers caps the number of goroutines. Non-positive means 10.
	MaxWorkers int
}

func DefaultOptions() ParallelOptions {
	return ParallelOptions{
		MaxWorkers: 10,
	}
}

type result[R any] struct {
	index int
	value R
	err   error
}

// ProcessParallel calls itemFunc for every item and returns the results in
// input order. Items not processed because ctx was canceled keep the zero
// value of R, and ctx.Err() is appended to the returned errors.
func ProcessParallel[T any, R any](
	ctx context.Context,
	items []T,
	opts ParallelOptions,
	itemFunc func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	maxWorkers := opts.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 10
	}
	maxWorkers = min(maxWorkers, len(items))

	jobs := make(chan int, len(items))
	results := make(chan result[R], len(items))

	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				v, err := itemFunc(ctx, i, items[i])
				results <- result[R]{index: i, value: v, err: err}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]R, len(items))
	var errs []error
	done := 0
	for res := range results {
		done++
		if res.err != nil {
			errs = append(errs, res.err)
		}
		out[res.index] = res.value
	}
	if done < len(items) {
		errs = append(errs, ctx.Err())
	}

	return out, errs
}
