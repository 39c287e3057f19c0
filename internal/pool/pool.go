// Package pool provides the bounded fan-out primitive the scan pipeline
// runs every stage on: one unit of work per input item, never more than a
// fixed ceiling in flight, all results collected before the stage advances.
package pool

import (
	"context"
	"sync"
)

// Map runs fn once per item with at most limit goroutines in flight and
// returns the outputs for which fn reported keep=true. A dropped item never
// affects its siblings; the call returns only after every item finished.
// No ordering relationship between inputs and outputs is preserved.
func Map[I, O any](ctx context.Context, items []I, limit int, fn func(context.Context, I) (O, bool)) []O {
	work := make(chan I, len(items))
	for _, item := range items {
		work <- item
	}
	close(work)

	return MapChan(ctx, work, limit, fn)
}

// MapChan is Map over a channel, for stages whose work items are generated
// lazily rather than materialized up front. It drains in until it is closed
// or ctx is cancelled.
func MapChan[I, O any](ctx context.Context, in <-chan I, limit int, fn func(context.Context, I) (O, bool)) []O {
	if limit < 1 {
		limit = 1
	}

	var (
		mu  sync.Mutex
		out []O
	)

	var wg sync.WaitGroup
	for i := 0; i < limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range in {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result, keep := fn(ctx, item)
				if !keep {
					continue
				}

				mu.Lock()
				out = append(out, result)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return out
}
