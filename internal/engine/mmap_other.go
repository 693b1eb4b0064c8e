//go:build !linux && !darwin

package engine

import (
	"io"
	"os"
)

// mmapFile falls back to a single buffered read on platforms without
// a wired mmap syscall path.
func mmapFile(f *os.File, _ int64) (Source, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &heapSource{buf: data}, nil
}
