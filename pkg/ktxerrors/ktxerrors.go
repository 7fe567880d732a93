// Package ktxerrors defines the sentinel error categories shared by the
// stream, container, and validator layers.
package ktxerrors

import "errors"

// I/O category errors (validator issues 1001-1007).
var (
	ErrFileOpen    = errors.New("ktx: failed to open file")
	ErrFileRead    = errors.New("ktx: failed to read from file")
	ErrUnexpectEOF = errors.New("ktx: unexpected end of file")
	ErrSeek        = errors.New("ktx: failed to seek in stream")
	ErrWrite       = errors.New("ktx: failed to write to stream")
)

// Format category errors (validator issues 2001+).
var (
	ErrNotKTX2 = errors.New("ktx: not a KTX2 file")
)

// ErrInvalidFile is returned by the public decode API once DFD or
// key/value parsing reports at least one error-or-worse issue; it
// collapses the full issue stream into a single error for callers that
// did not register a report callback.
var ErrInvalidFile = errors.New("ktx: invalid KTX2 file")
