package engine

import (
	"strings"
	"testing"

	"github.com/melihbirim/zson/internal/output"
	"github.com/melihbirim/zson/internal/query"
)

func compile(t *testing.T, q string) *query.Filter {
	t.Helper()
	f, err := query.Compile([]byte(q))
	if err != nil {
		t.Fatalf("Compile(%q): %v", q, err)
	}
	return f
}

func TestRunNDJSONCount(t *testing.T) {
	src := &heapSource{buf: []byte("{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n")}
	f := compile(t, `{"a":{"$gt":1}}`)
	res, err := Run(src, f, Options{Count: true, Threads: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}
}

func TestRunNDJSONOutputOrderPreserved(t *testing.T) {
	src := &heapSource{buf: []byte("{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n{\"a\":4}\n{\"a\":5}\n")}
	f := compile(t, `{}`)
	res, err := Run(src, f, Options{Threads: 3, Format: FormatNDJSON})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n{\"a\":4}\n{\"a\":5}\n"
	if string(res.Output) != want {
		t.Errorf("got %q, want %q (order must survive parallel split)", res.Output, want)
	}
}

func TestRunThreadCountIndependence(t *testing.T) {
	src1 := &heapSource{buf: []byte("{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n{\"a\":4}\n")}
	src4 := &heapSource{buf: []byte("{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n{\"a\":4}\n")}
	f := compile(t, `{"a":{"$gte":2}}`)
	r1, _ := Run(src1, f, Options{Threads: 1, Format: FormatNDJSON})
	r4, _ := Run(src4, f, Options{Threads: 4, Format: FormatNDJSON})
	if string(r1.Output) != string(r4.Output) {
		t.Errorf("thread count changed output: 1-thread=%q 4-thread=%q", r1.Output, r4.Output)
	}
}

func TestRunJSONArrayInput(t *testing.T) {
	src := &heapSource{buf: []byte(`[{"a":1},{"a":2},{"a":3}]`)}
	f := compile(t, `{"a":{"$gt":1}}`)
	res, err := Run(src, f, Options{Threads: 2, Format: FormatJSON})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(res.Output) != `[{"a":2},{"a":3}]` {
		t.Errorf("got %q", res.Output)
	}
}

func TestRunLimit(t *testing.T) {
	src := &heapSource{buf: []byte("{\"a\":1}\n{\"a\":2}\n{\"a\":3}\n")}
	f := compile(t, `{}`)
	res, err := Run(src, f, Options{Threads: 1, Format: FormatNDJSON, Limit: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(res.Output) != "{\"a\":1}\n{\"a\":2}\n" {
		t.Errorf("got %q", res.Output)
	}
}

func TestRunEmptyInputIdentity(t *testing.T) {
	src := &heapSource{buf: nil}
	f := compile(t, `{}`)
	res, err := Run(src, f, Options{Threads: 4, Format: FormatNDJSON})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Output) != 0 {
		t.Errorf("got %q, want empty", res.Output)
	}
}

func TestRunSkipsUnparseableLine(t *testing.T) {
	src := &heapSource{buf: []byte("{\"a\":1}\nnot json\n{\"a\":2}\n")}
	f := compile(t, `{}`)
	res, err := Run(src, f, Options{Threads: 1, Count: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2 (malformed line must be skipped, not counted or fatal)", res.Count)
	}
}

func TestRunCSVWithProjection(t *testing.T) {
	src := &heapSource{buf: []byte("{\"name\":\"Ann\",\"age\":30}\n{\"name\":\"Bo\",\"age\":40}\n")}
	f := compile(t, `{}`)
	res, err := Run(src, f, Options{
		Threads: 2, Format: FormatCSV,
		Projection: output.ParseSelect([]string{"name", "age"}),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "name,age\nAnn,30\nBo,40\n"
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestRunCSVWithoutProjection(t *testing.T) {
	src := &heapSource{buf: []byte("{\"x\":1,\"y\":2}\n{\"x\":3,\"y\":4}\n")}
	f := compile(t, `{}`)
	res, err := Run(src, f, Options{Threads: 1, Format: FormatCSV})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := "x,y\n1,2\n3,4\n"
	if string(res.Output) != want {
		t.Errorf("got %q, want %q", res.Output, want)
	}
}

func TestRunFormatObliviousness(t *testing.T) {
	nd := &heapSource{buf: []byte("{\"a\":1}\n{\"a\":2}\n")}
	arr := &heapSource{buf: []byte(`[{"a":1},{"a":2}]`)}
	f := compile(t, `{}`)
	r1, _ := Run(nd, f, Options{Threads: 1, Count: true})
	r2, _ := Run(arr, f, Options{Threads: 1, Count: true})
	if r1.Count != r2.Count {
		t.Errorf("NDJSON and JSON-array inputs gave different counts: %d vs %d", r1.Count, r2.Count)
	}
}

func TestRunCrossTypeNeverMatches(t *testing.T) {
	src := &heapSource{buf: []byte("{\"a\":\"x\"}\n")}
	f := compile(t, `{"a":{"$gt":5}}`)
	res, err := Run(src, f, Options{Threads: 1, Count: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Count != 0 {
		t.Errorf("Count = %d, want 0 (cross-type ordering never matches)", res.Count)
	}
}

func TestRunGzipDetectionPassThrough(t *testing.T) {
	// Uncompressed input must still pass straight through maybeDecompress.
	src, err := maybeDecompress("", []byte("{\"a\":1}\n"))
	if err != nil {
		t.Fatalf("maybeDecompress: %v", err)
	}
	if !strings.Contains(string(src.Bytes()), `"a":1`) {
		t.Errorf("got %q", src.Bytes())
	}
}
