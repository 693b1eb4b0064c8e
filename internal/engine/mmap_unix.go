//go:build linux || darwin

package engine

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapSource is a Source backed by a read-only file mapping, grounded
// on sneller's blockfmt.mmap pattern but rendered through
// golang.org/x/sys/unix for the portability that package already
// buys the rest of this module.
type mmapSource struct {
	buf []byte
}

func (m *mmapSource) Bytes() []byte { return m.buf }

func (m *mmapSource) Close() error {
	if m.buf == nil {
		return nil
	}
	err := unix.Munmap(m.buf)
	m.buf = nil
	return err
}

func mmapFile(f *os.File, size int64) (Source, error) {
	if size <= 0 || size > 1<<40 {
		return nil, fmt.Errorf("mmap: implausible size %d", size)
	}
	buf, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &mmapSource{buf: buf}, nil
}
