package ktxio

import (
	"fmt"
	"io"

	"github.com/ktx2tools/ktx2go/pkg/ktxerrors"
)

// MemStream is an in-memory backend over a growable byte slice. Seeking
// past the end is legal for writers (the buffer grows to fit) but reads
// past the end report io.EOF from the short read, matching short-read
// semantics for the other backends.
type MemStream struct {
	buf []byte
	pos int64
}

// NewMemStream wraps data without copying it; a write past the end
// moves the contents into a newly allocated, larger buffer, and the
// caller should not mutate data concurrently.
func NewMemStream(data []byte) *MemStream {
	return &MemStream{buf: data}
}

func (s *MemStream) Read(p []byte) (int, error) {
	if s.pos >= int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[s.pos:])
	s.pos += int64(n)
	return n, nil
}

func (s *MemStream) Write(p []byte) (int, error) {
	end := s.pos + int64(len(p))
	if end > int64(len(s.buf)) {
		grown := make([]byte, end)
		copy(grown, s.buf)
		s.buf = grown
	}
	n := copy(s.buf[s.pos:end], p)
	s.pos = end
	return n, nil
}

func (s *MemStream) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = s.pos + offset
	case io.SeekEnd:
		target = int64(len(s.buf)) + offset
	default:
		return 0, fmt.Errorf("%w: unknown whence %d", ktxerrors.ErrSeek, whence)
	}
	if target < 0 {
		return 0, fmt.Errorf("%w: negative offset %d", ktxerrors.ErrSeek, target)
	}
	s.pos = target
	return s.pos, nil
}

func (s *MemStream) Size() (int64, error) { return int64(len(s.buf)), nil }

func (s *MemStream) Close() error { return nil }

// Bytes returns the underlying buffer. The returned slice is a live view,
// not a copy.
func (s *MemStream) Bytes() []byte { return s.buf }
