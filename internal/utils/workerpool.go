package utils

import (
	"context"
	"sync"
)

// ParallelMap applies fn to every item using up to workers goroutines.
// Results and errors are indexed like items. Items that were never started
// because ctx was cancelled get ctx.Err() as their error.
func ParallelMap[T, R any](ctx context.Context, items []T, workers int, fn func(context.Context, T) (R, error)) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return results, errs
	}

	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	started := make([]bool, len(items))
	taskChan := make(chan int, len(items))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range taskChan {
				if ctx.Err() != nil {
					continue
				}
				// each index is owned by exactly one worker
				started[idx] = true
				results[idx], errs[idx] = fn(ctx, items[idx])
			}
		}()
	}

	for i := range items {
		taskChan <- i
	}
	close(taskChan)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		for i := range items {
			if !started[i] {
				errs[i] = err
			}
		}
	}
	return results, errs
}

// ParallelForEach executes a function for each item in parallel
func ParallelForEach[T any](ctx context.Context, items []T, workers int, fn func(context.Context, T) error) []error {
	_, errs := ParallelMap(ctx, items, workers, func(ctx context.Context, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, item)
	})
	return errs
}

// CollectErrors collects all non-nil errors from a slice
func CollectErrors(errors []error) []error {
	var result []error
	for _, err := range errors {
		if err != nil {
			result = append(result, err)
		}
	}
	return result
}
