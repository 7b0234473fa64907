package worker

import (
	"context"
	"sync"

	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
	"github.com/panjf2000/ants/v2"
)

// RunOrdered calls fn for every index in [0, n) and returns the results in
// index order, whatever order the calls finish in. With workers <= 1 the
// calls run one after another on the caller's goroutine. Otherwise they run
// on an ants pool of that size; the first failure cancels the context handed
// to the remaining calls and is returned.
func RunOrdered[T any](ctx context.Context, workers, n int, fn func(ctx context.Context, i int) (T, error)) ([]T, error) {
	results := make([]T, n)

	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			r, err := fn(ctx, i)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
		return results, nil
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, errors.New(
			"WORKER_POOL_ERROR",
			"Failed to create worker pool",
			"Could not start the repository worker pool",
			err,
			errors.LevelError,
		)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}

			r, err := fn(ctx, i)
			if err != nil {
				fail(err)
				return
			}
			results[i] = r
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug("worker pool finished %d tasks on %d workers", n, workers)
	return results, nil
}
