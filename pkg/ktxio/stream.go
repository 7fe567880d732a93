// Package ktxio provides the random-access stream abstraction the KTX2
// codec reads and writes through. Instead of the function-pointer vtable
// used by the original C library, backends satisfy a plain Go interface.
package ktxio

import (
	"fmt"
	"io"
	"os"

	"github.com/ktx2tools/ktx2go/pkg/ktxerrors"
)

// Stream is a seekable, sizeable byte stream. All positions are absolute
// 64-bit offsets. Seeking past the end is not rejected by the backends
// here: MemStream and FileStream accept it, and a later read there
// reports io.EOF.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
	Size() (int64, error)
	Close() error
}

// OpenFile opens path with the given os.OpenFile flags and permissions,
// passed through unchanged. It is the file-path backend.
func OpenFile(path string, flag int, perm os.FileMode) (Stream, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ktxerrors.ErrFileOpen, path, err)
	}
	return &FileStream{f: f}, nil
}

// FileStream wraps an *os.File the stream owns and closes.
type FileStream struct {
	f *os.File
}

func (s *FileStream) Read(p []byte) (int, error)  { return s.f.Read(p) }
func (s *FileStream) Write(p []byte) (int, error) { return s.f.Write(p) }

func (s *FileStream) Seek(offset int64, whence int) (int64, error) {
	pos, err := s.f.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ktxerrors.ErrSeek, err)
	}
	return pos, nil
}

func (s *FileStream) Size() (int64, error) {
	info, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *FileStream) Close() error { return s.f.Close() }

// HandleStream wraps a caller-owned handle. The stream never closes it;
// Close is a no-op so callers retain lifecycle control.
type HandleStream struct {
	RWS io.ReadWriteSeeker
	Len func() (int64, error)
}

func NewHandleStream(rws io.ReadWriteSeeker, size func() (int64, error)) *HandleStream {
	return &HandleStream{RWS: rws, Len: size}
}

func (s *HandleStream) Read(p []byte) (int, error)  { return s.RWS.Read(p) }
func (s *HandleStream) Write(p []byte) (int, error) { return s.RWS.Write(p) }

func (s *HandleStream) Seek(offset int64, whence int) (int64, error) {
	pos, err := s.RWS.Seek(offset, whence)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ktxerrors.ErrSeek, err)
	}
	return pos, nil
}

func (s *HandleStream) Size() (int64, error) {
	if s.Len != nil {
		return s.Len()
	}
	cur, err := s.RWS.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.RWS.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.RWS.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

func (s *HandleStream) Close() error { return nil }

// CustomStream lets a caller plug in an arbitrary I/O backend (mmap,
// async, sandboxed) by populating function fields. A nil ReadFunc,
// WriteFunc or SeekFunc reports ktxerrors.ErrFileRead/ErrWrite/ErrSeek;
// a nil SizeFunc returns a plain error and a nil CloseFunc makes Close
// a no-op.
type CustomStream struct {
	ReadFunc  func(p []byte) (int, error)
	WriteFunc func(p []byte) (int, error)
	SeekFunc  func(offset int64, whence int) (int64, error)
	SizeFunc  func() (int64, error)
	CloseFunc func() error
}

func (s *CustomStream) Read(p []byte) (int, error) {
	if s.ReadFunc == nil {
		return 0, ktxerrors.ErrFileRead
	}
	return s.ReadFunc(p)
}

func (s *CustomStream) Write(p []byte) (int, error) {
	if s.WriteFunc == nil {
		return 0, ktxerrors.ErrWrite
	}
	return s.WriteFunc(p)
}

func (s *CustomStream) Seek(offset int64, whence int) (int64, error) {
	if s.SeekFunc == nil {
		return 0, ktxerrors.ErrSeek
	}
	return s.SeekFunc(offset, whence)
}

func (s *CustomStream) Size() (int64, error) {
	if s.SizeFunc == nil {
		return 0, fmt.Errorf("ktxio: CustomStream has no SizeFunc")
	}
	return s.SizeFunc()
}

func (s *CustomStream) Close() error {
	if s.CloseFunc == nil {
		return nil
	}
	return s.CloseFunc()
}
