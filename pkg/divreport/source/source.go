// Package source acquires the input files of a report run as named byte streams.
package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// Stream is a named input whose content can be opened for reading.
type Stream struct {
	// Name is the file name used for format detection and bag-type tagging.
	Name string
	open func() (io.ReadCloser, error)
}

// Open returns a reader over the stream content. The caller closes it.
func (s Stream) Open() (io.ReadCloser, error) {
	return s.open()
}

// FromFile returns a stream backed by the file at path.
func FromFile(path string) Stream {
	return Stream{
		Name: filepath.Base(path),
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// FromBytes returns a stream over an in-memory buffer.
func FromBytes(name string, data []byte) Stream {
	return Stream{
		Name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// FromOpener returns a stream opened lazily by fn.
func FromOpener(name string, fn func() (io.ReadCloser, error)) Stream {
	return Stream{Name: name, open: fn}
}

// Source produces the ordered input streams of one run.
type Source interface {
	Streams() ([]Stream, error)
}
