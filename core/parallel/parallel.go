// Package parallel fans read-only work out over contiguous index ranges.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the item count at or below which work stays on the
// calling goroutine.
const DefaultThreshold = 1000

// Parallelize splits [0, items) into at most GOMAXPROCS contiguous ranges and
// calls fn(start, end) for each range on its own goroutine. It returns once
// every range has been processed. fn must only write to state owned by its
// range.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) sequentially when items does not
// exceed threshold, and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
