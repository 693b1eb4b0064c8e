package engine

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"

	"github.com/melihbirim/zson/internal/token"
)

// Chunk is a half-open [Start, End) byte range of a newline-delimited
// buffer, always ending exactly at a '\n' (or at len(data) for the
// final chunk), so no worker ever has to stitch a line split across
// two chunks back together.
type Chunk struct {
	Start, End int
}

// ResolveThreads clamps a requested thread count to the available
// core count: T = min(configured_threads, available_cores), floored
// at 1. requested <= 0 means "use all
// available cores". Available cores is itself the smaller of the Go
// scheduler's GOMAXPROCS and the CPU's own reported logical core
// count (cpuid sees the hardware directly; GOMAXPROCS can be capped
// lower by a container's cgroup limits) — whichever is more
// conservative wins.
func ResolveThreads(requested int) int {
	cores := runtime.GOMAXPROCS(0)
	if n := cpuid.CPU.LogicalCores; n > 0 && n < cores {
		cores = n
	}
	if requested <= 0 {
		return cores
	}
	if requested < cores {
		return requested
	}
	return cores
}

// Partition splits data into up to threads newline-aligned chunks of
// roughly equal size. A chunk boundary never falls inside a line: the
// target split point is always extended forward to the next '\n'.
func Partition(data []byte, threads int) []Chunk {
	if len(data) == 0 {
		return nil
	}
	if threads < 1 {
		threads = 1
	}
	target := len(data) / threads
	if target == 0 {
		return []Chunk{{Start: 0, End: len(data)}}
	}

	chunks := make([]Chunk, 0, threads)
	start := 0
	for start < len(data) {
		end := start + target
		if end >= len(data) {
			chunks = append(chunks, Chunk{Start: start, End: len(data)})
			break
		}
		nl := token.FindNextNewline(data, end)
		if nl == -1 {
			chunks = append(chunks, Chunk{Start: start, End: len(data)})
			break
		}
		end = nl + 1
		chunks = append(chunks, Chunk{Start: start, End: end})
		start = end
	}
	return chunks
}
