// Package pool runs a function over a list of items with a bounded number
// of concurrent workers.
package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrPanic wraps a panic recovered from a worker function.
var ErrPanic = errors.New("worker panic")

// Result is the outcome of one item.
type Result[T any] struct {
	Item    T
	Err     error
	Elapsed time.Duration
	// Skipped is set when the context was cancelled before the item started.
	Skipped bool
}

// Func processes one item.
type Func[T any] func(ctx context.Context, item T) error

// Run calls fn for every item using at most workers goroutines and blocks
// until all have finished. Results are returned in input order. Errors are
// collected, never propagated: once ctx is cancelled, items not yet started
// are reported as skipped with ctx.Err(). workers <= 0 is treated as 1.
func Run[T any](ctx context.Context, items []T, workers int, fn Func[T]) []Result[T] {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}
	results := make([]Result[T], len(items))
	if len(items) == 0 {
		return results
	}

	type done struct {
		idx int
		res Result[T]
	}
	jobs := make(chan int)
	out := make(chan done, len(items))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out <- done{idx: idx, res: runOne(ctx, items[idx], fn)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range items {
			select {
			case jobs <- i:
			case <-ctx.Done():
				for j := i; j < len(items); j++ {
					out <- done{idx: j, res: Result[T]{Item: items[j], Err: ctx.Err(), Skipped: true}}
				}
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	for d := range out {
		results[d.idx] = d.res
	}
	return results
}

func runOne[T any](ctx context.Context, item T, fn Func[T]) (res Result[T]) {
	res.Item = item
	if err := ctx.Err(); err != nil {
		res.Err = err
		res.Skipped = true
		return res
	}
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	res.Err = fn(ctx, item)
	return res
}
