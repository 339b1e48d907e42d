// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// ProcessOrdered runs process over items on workerCount goroutines and passes the results
// to emit in input order. At most 2*workerCount items are in flight or waiting for an
// earlier result. If emit returns an error, the pool cancels the context and stops further work.
func ProcessOrdered[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) R,
	emit func(context.Context, R) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if workerCount <= 0 {
		workerCount = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type indexed struct {
		index  int
		result R
	}

	window := workerCount * 2
	slots := make(chan struct{}, window)
	tasks := make(chan int)
	results := make(chan indexed, window)

	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				r := process(ctx, items[idx])
				select {
				case <-ctx.Done():
					return
				case results <- indexed{index: idx, result: r}:
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for idx := range items {
			select {
			case <-ctx.Done():
				return
			case slots <- struct{}{}:
			}
			select {
			case <-ctx.Done():
				return
			case tasks <- idx:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	pending := make(map[int]R, window)
	next := 0
	var emitErr error
	for res := range results {
		if emitErr != nil {
			continue
		}
		pending[res.index] = res.result
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := emit(ctx, r); err != nil {
				emitErr = err
				cancel()
				break
			}
			<-slots
			next++
		}
	}

	if emitErr != nil {
		return emitErr
	}
	if next < len(items) {
		return ctx.Err()
	}
	return nil
}
