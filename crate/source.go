package crate

import (
	"fmt"
	"io"
	"os"
)

// Source is the random-access byte stream §6 requires: read_at plus
// size. The decoder never assumes a shared cursor; every read is
// addressed by an absolute offset.
type Source interface {
	ReadAt(p []byte, off int64) (n int, err error)
	Size() int64
}

// readerAtSource adapts any io.ReaderAt of known size to Source.
type readerAtSource struct {
	r    io.ReaderAt
	size int64
}

// NewSource wraps an arbitrary io.ReaderAt (a byte slice via
// bytes.NewReader, an in-memory buffer, a network-backed range
// reader, ...) as a Source of the given size.
func NewSource(r io.ReaderAt, size int64) Source {
	return &readerAtSource{r: r, size: size}
}

func (s *readerAtSource) ReadAt(p []byte, off int64) (int, error) { return s.r.ReadAt(p, off) }
func (s *readerAtSource) Size() int64                             { return s.size }

// FileSource is a Source backed by an open *os.File (§6 "a random
// access file").
type FileSource struct {
	f    *os.File
	size int64
}

// OpenFile opens path for random access and stats its size.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("crate: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("crate: stat %s: %w", path, err)
	}
	return &FileSource{f: f, size: info.Size()}, nil
}

func (s *FileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *FileSource) Size() int64                             { return s.size }

// Close releases the underlying file handle.
func (s *FileSource) Close() error { return s.f.Close() }
