package engine

import (
	"fmt"

	"github.com/melihbirim/zson/internal/object"
	"github.com/melihbirim/zson/internal/output"
)

// merge combines per-chunk results, in original chunk order, into one
// destination buffer, applying --limit at record granularity first.
// Pre-serialized records are copied into a single buffer allocated at
// its final size; csv without a --select projection serializes its
// rows here instead, growing the buffer as it appends.
func merge(results []workerResult, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatNDJSON:
		recs := applyLimit(flattenRecords(results), opts.Limit)
		return concatRecords(recs), nil

	case FormatJSON:
		recs := applyLimit(flattenRecords(results), opts.Limit)
		return output.WrapJSONArray(recs, opts.Pretty), nil

	case FormatCSV:
		if len(opts.Projection) > 0 {
			recs := applyLimit(flattenRecords(results), opts.Limit)
			return concatWithHeader(output.CSVHeaderLine(opts.Projection), recs), nil
		}
		objs := applyLimitObjs(flattenMatched(results), opts.Limit)
		if len(objs) == 0 {
			return nil, nil
		}
		specs := output.FieldSpecsFromKeys(objs[0])
		dst := output.CSVHeaderLine(specs)
		for _, o := range objs {
			dst = output.AppendCSVRow(dst, o, specs)
		}
		return dst, nil

	default:
		return nil, fmt.Errorf("engine: unknown output format %d", opts.Format)
	}
}

// emptyOutput is what merge would have produced from zero chunks
// (an empty input file): an empty NDJSON stream, an empty JSON array,
// or a CSV header line when the header is knowable without any data.
func emptyOutput(opts Options) []byte {
	switch opts.Format {
	case FormatJSON:
		return []byte("[]")
	case FormatCSV:
		if len(opts.Projection) > 0 {
			return output.CSVHeaderLine(opts.Projection)
		}
		return nil
	default:
		return nil
	}
}

func flattenRecords(results []workerResult) [][]byte {
	total := 0
	for _, r := range results {
		total += len(r.records)
	}
	out := make([][]byte, 0, total)
	for _, r := range results {
		out = append(out, r.records...)
	}
	return out
}

func flattenMatched(results []workerResult) []*object.Object {
	total := 0
	for _, r := range results {
		total += len(r.matched)
	}
	out := make([]*object.Object, 0, total)
	for _, r := range results {
		out = append(out, r.matched...)
	}
	return out
}

func applyLimit(recs [][]byte, limit int) [][]byte {
	if limit > 0 && limit < len(recs) {
		return recs[:limit]
	}
	return recs
}

func applyLimitObjs(objs []*object.Object, limit int) []*object.Object {
	if limit > 0 && limit < len(objs) {
		return objs[:limit]
	}
	return objs
}

func concatRecords(recs [][]byte) []byte {
	total := 0
	for _, r := range recs {
		total += len(r)
	}
	dst := make([]byte, 0, total)
	for _, r := range recs {
		dst = append(dst, r...)
	}
	return dst
}

func concatWithHeader(header []byte, recs [][]byte) []byte {
	total := len(header)
	for _, r := range recs {
		total += len(r)
	}
	dst := make([]byte, 0, total)
	dst = append(dst, header...)
	for _, r := range recs {
		dst = append(dst, r...)
	}
	return dst
}
