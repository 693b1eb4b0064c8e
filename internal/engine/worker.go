package engine

import (
	"bytes"
	"sync/atomic"

	"github.com/melihbirim/zson/internal/object"
	"github.com/melihbirim/zson/internal/output"
	"github.com/melihbirim/zson/internal/query"
	"github.com/melihbirim/zson/internal/token"
)

// workerResult holds one chunk's matched output, in the shape its
// destination format needs. records holds already-serialized records
// (ndjson, json, or csv-with-a-known-header); matched holds raw
// objects instead, used only for csv without a --select projection,
// where the header can't be fixed until the first match across all
// chunks is known.
type workerResult struct {
	records [][]byte
	matched []*object.Object
}

// processChunk scans one newline-aligned byte range, parsing and
// evaluating each line independently. A line that fails to parse is
// skipped, not counted, and does not abort the run; unless opts.Quiet
// is set, warnMalformed logs the first such record once per process.
// local is flushed to counter once at the end,
// keeping the shared counter a single relaxed add per worker rather
// than one per matched record.
func processChunk(data []byte, chunk Chunk, filter *query.Filter, opts Options, counter, skipped *atomic.Uint64) workerResult {
	p := object.NewParser()
	var res workerResult
	needMatched := !opts.Count && opts.Format == FormatCSV && len(opts.Projection) == 0

	var local, localSkipped uint64
	pos := chunk.Start
	for pos < chunk.End {
		nl := token.FindNextNewline(data, pos)
		var line []byte
		var next int
		if nl == -1 || nl >= chunk.End {
			line = data[pos:chunk.End]
			next = chunk.End
		} else {
			line = data[pos:nl]
			next = nl + 1
		}
		pos = next

		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		obj, err := p.Parse(trimmed)
		if err != nil {
			localSkipped++
			if !opts.Quiet {
				warnMalformed()
			}
			continue
		}
		if !query.Eval(obj, filter) {
			continue
		}
		local++
		if opts.Count {
			continue
		}
		if needMatched {
			res.matched = append(res.matched, obj)
			continue
		}
		switch opts.Format {
		case FormatNDJSON:
			res.records = append(res.records, output.AppendNDJSON(nil, obj, opts.Projection))
		case FormatJSON:
			res.records = append(res.records, output.AppendJSONRecord(nil, obj, opts.Projection, opts.Pretty))
		case FormatCSV:
			res.records = append(res.records, output.AppendCSVRow(nil, obj, opts.Projection))
		}
	}
	counter.Add(local)
	skipped.Add(localSkipped)
	return res
}
