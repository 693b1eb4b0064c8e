package engine

import (
	"sync"
	"sync/atomic"

	"github.com/melihbirim/zson/internal/query"
)

// Run executes one end-to-end filtering pass over src: format
// detection and JSON-array normalization, newline-aligned
// partitioning, a fork-join evaluation pass (one goroutine per
// chunk, synchronized by a WaitGroup), and an ordered merge of the
// results.
func Run(src Source, filter *query.Filter, opts Options) (Result, error) {
	data := src.Bytes()
	if IsJSONArray(data) {
		normalized, err := NormalizeArrayToNDJSON(data)
		if err != nil {
			return Result{}, err
		}
		data = normalized
	}

	threads := ResolveThreads(opts.Threads)
	chunks := Partition(data, threads)
	if len(chunks) == 0 {
		if opts.Count {
			return Result{}, nil
		}
		return Result{Output: emptyOutput(opts)}, nil
	}

	results := make([]workerResult, len(chunks))
	var counter, skipped atomic.Uint64
	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for i, c := range chunks {
		i, c := i, c
		go func() {
			defer wg.Done()
			results[i] = processChunk(data, c, filter, opts, &counter, &skipped)
		}()
	}
	wg.Wait()

	if opts.Count {
		return Result{Count: counter.Load(), Skipped: skipped.Load()}, nil
	}

	out, err := merge(results, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Count: counter.Load(), Skipped: skipped.Load(), Output: out}, nil
}
