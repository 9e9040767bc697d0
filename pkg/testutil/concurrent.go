// Package testutil holds helpers shared by package tests.
package testutil

import (
	"sync"
	"sync/atomic"

	dErrors "registration/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes int32
	Invalid   int32
	Errors    int32
}

// Total returns the number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Invalid + r.Errors
}

// RunConcurrent executes fn in parallel goroutines and counts the outcomes.
// Errors carrying dErrors.CodeValidation count as Invalid.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, invalid, errs atomic.Int32

	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case dErrors.HasCode(err, dErrors.CodeValidation):
				invalid.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Invalid:   invalid.Load(),
		Errors:    errs.Load(),
	}
}

// CollectConcurrent runs fn in parallel and returns every produced value in
// index order.
func CollectConcurrent[T any](goroutines int, fn func(idx int) T) []T {
	out := make([]T, goroutines)
	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			out[idx] = fn(idx)
		}(i)
	}
	wg.Wait()
	return out
}
