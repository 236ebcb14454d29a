package adminctl

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// BatchFailure records one failed member of a batch operation.
type BatchFailure struct {
	ID  string
	Err error
}

// BatchResult is the structured outcome of a per-id fan-out standing in for
// a missing batch endpoint. Partial failure is not swallowed: callers get
// the exact succeeded and failed subsets.
type BatchResult struct {
	Succeeded []string
	Failed    []BatchFailure
}

// AllFailed reports whether not a single member succeeded.
func (r BatchResult) AllFailed() bool {
	return len(r.Succeeded) == 0 && len(r.Failed) > 0
}

// Partial reports whether the batch had both successes and failures.
func (r BatchResult) Partial() bool {
	return len(r.Succeeded) > 0 && len(r.Failed) > 0
}

// fanOut runs fn once per id, at most concurrency at a time. concurrency <= 1
// degrades to sequential execution. Individual failures are collected, not
// propagated; the caller decides how to treat a partial outcome.
func fanOut(ctx context.Context, ids []string, concurrency int, fn func(ctx context.Context, id string) error) BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		sem    = make(chan struct{}, concurrency)
		result BatchResult
	)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			result.Failed = append(result.Failed, BatchFailure{ID: id, Err: errors.WithStack(err)})
			mu.Unlock()
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()
			err := fn(ctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, BatchFailure{ID: id, Err: err})
				return
			}
			result.Succeeded = append(result.Succeeded, id)
		}(id)
	}
	wg.Wait()
	return result
}
