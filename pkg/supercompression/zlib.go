package supercompression

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// ZlibDecoder wraps the standard library's zlib reader. No repo in the
// reference corpus imports a dedicated zlib package (the other
// compression library present, klauspost/compress, ships flate/gzip/
// zstd/s2/brotli but no zlib wrapper), so this one concern is stdlib by
// elimination rather than by default.
type ZlibDecoder struct{}

func (ZlibDecoder) Decode(in []byte, expectedLen int) (DecodeResult, error) {
	zr, err := zlib.NewReader(bytes.NewReader(in))
	if err != nil {
		return DecodeResult{}, fmt.Errorf("supercompression: zlib: %w", err)
	}
	defer zr.Close()

	out := make([]byte, 0, expectedLen)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, zr); err != nil {
		return DecodeResult{}, fmt.Errorf("supercompression: zlib decompress: %w", err)
	}
	if expectedLen > 0 && buf.Len() != expectedLen {
		return DecodeResult{}, fmt.Errorf("supercompression: zlib produced %d bytes, expected %d", buf.Len(), expectedLen)
	}
	return DecodeResult{Data: buf.Bytes()}, nil
}
