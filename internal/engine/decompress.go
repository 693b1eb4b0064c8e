package engine

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// looksCompressed reports whether path's extension names a supported
// compression scheme, letting OpenInput choose the decompressing read
// path before it has seen a single byte.
func looksCompressed(path string) bool {
	return strings.HasSuffix(path, ".gz") || strings.HasSuffix(path, ".zst")
}

// maybeDecompress detects gzip or zstd framing by magic bytes —
// checked regardless of how the data arrived (file extension or raw
// stdin), auto-detecting by content rather than trusting extension — and
// fully decompresses into a heap buffer. Uncompressed input passes
// through unchanged.
func maybeDecompress(path string, data []byte) (Source, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: decompressing %s: %w", path, err)
		}
		return &heapSource{buf: out}, nil

	case bytes.HasPrefix(data, zstdMagic):
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: decompressing %s: %w", path, err)
		}
		return &heapSource{buf: out}, nil

	default:
		return &heapSource{buf: data}, nil
	}
}

// decompressGzip unconditionally runs data through a gzip reader,
// for --gzip: the caller asserts the format instead of relying on
// detection.
func decompressGzip(data []byte) (Source, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: decompressing: %w", err)
	}
	return &heapSource{buf: out}, nil
}
