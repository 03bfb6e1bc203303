// Package parallel runs indexed work with bounded concurrency.
package parallel

import (
	"context"
	"errors"
	"sync"

	"github.com/hashicorp/go-multierror"
)

var ErrInvalidParallelism = errors.New("degree of parallelism must be > 0")

type Processor func(ctx context.Context, idx int) error

// ForEach calls process for every index in [0, total), at most n at a time.
// Errors from every call are coalesced into a single *multierror.Error,
// in index order.
//
// Once ctx is done, indexes that have not started are not processed,
// and the context error is reported for each of them.
//
// If callers need process to return actual data,
// they should allocate a slice of the data they need,
// and assign to the slice index while processing.
func ForEach(ctx context.Context, total int, n int, process Processor) error {
	if n <= 0 {
		return ErrInvalidParallelism
	}
	semaphore := make(chan struct{}, n)
	errs := make([]error, total)
	wg := sync.WaitGroup{}
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		select {
		case <-ctx.Done():
			errs[i] = ctx.Err()
			continue
		case semaphore <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			errs[i] = process(ctx, i)
		}(i)
	}
	wg.Wait()
	return multierror.Append(nil, errs...).ErrorOrNil()
}
