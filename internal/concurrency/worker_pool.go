package concurrency

import (
	"context"
	"sync"
)

// WorkerFn handles task index. A non-nil error stops the pool.
type WorkerFn func(ctx context.Context, index int) error

// ForEach runs fn for every index in [0, tasks) on at most workers goroutines
// and returns the first error. Remaining tasks are skipped once an error
// occurs or ctx is cancelled.
func ForEach(ctx context.Context, workers, tasks int, fn WorkerFn) error {
	if tasks == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > tasks {
		workers = tasks
	}

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

	indexes := make(chan int)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				if ctx.Err() != nil {
					continue
				}
				if err := fn(ctx, idx); err != nil {
					fail(err)
				}
			}
		}()
	}

feed:
	for i := 0; i < tasks; i++ {
		select {
		case indexes <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
