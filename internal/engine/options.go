package engine

import "github.com/melihbirim/zson/internal/output"

// Format selects the serializer merge uses for matched records.
type Format int

const (
	FormatNDJSON Format = iota
	FormatJSON
	FormatCSV
)

// Options configures one Run. Threads <= 0 means "use every available
// core"; Limit <= 0 means "no limit".
type Options struct {
	Threads    int
	Count      bool
	Limit      int
	Format     Format
	Pretty     bool
	Quiet      bool
	Projection []output.FieldSpec
}

// Result is Run's outcome: Count is always populated (even in output
// mode, as a convenience for callers that want both); Output holds the
// serialized bytes to write, and is nil in count-only mode. Skipped
// counts per-record parse errors absorbed along the way.
type Result struct {
	Count   uint64
	Skipped uint64
	Output  []byte
}
