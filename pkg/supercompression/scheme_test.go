package supercompression

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/DataDog/zstd"
)

func TestSchemeString(t *testing.T) {
	cases := map[Scheme]string{
		SchemeNone:    "NONE",
		SchemeBasisLZ: "BASIS_LZ",
		SchemeZstd:    "ZSTD",
		SchemeZLIB:    "ZLIB",
	}
	for scheme, want := range cases {
		if got := scheme.String(); got != want {
			t.Errorf("Scheme(%d).String() = %q, want %q", scheme, got, want)
		}
	}
}

func TestIsVendor(t *testing.T) {
	if SchemeZstd.IsVendor() {
		t.Error("ZSTD should not be a vendor scheme")
	}
	if !Scheme(0x10001).IsVendor() {
		t.Error("0x10001 should be a vendor scheme")
	}
}

func TestPassthroughDecoderLengthMismatch(t *testing.T) {
	d := passthroughDecoder{}
	if _, err := d.Decode([]byte{1, 2, 3}, 4); err == nil {
		t.Error("expected error on length mismatch")
	}
	res, err := d.Decode([]byte{1, 2, 3}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Data) != 3 {
		t.Errorf("expected 3 bytes, got %d", len(res.Data))
	}
}

func TestZstdDecoderRoundTrip(t *testing.T) {
	raw := []byte("the quick brown fox jumps over the lazy dog")
	compressed, err := zstd.Compress(nil, raw)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	d := ZstdDecoder{}
	res, err := d.Decode(compressed, len(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(res.Data, raw) {
		t.Errorf("round trip mismatch: got %q, want %q", res.Data, raw)
	}
}

func TestZlibDecoderRoundTrip(t *testing.T) {
	raw := []byte("compress me please")
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("write: %v", err)
	}
	zw.Close()

	d := ZlibDecoder{}
	res, err := d.Decode(buf.Bytes(), len(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(res.Data, raw) {
		t.Errorf("round trip mismatch: got %q, want %q", res.Data, raw)
	}
}

func TestParseBasisLzSGDTooShort(t *testing.T) {
	_, _, issues := ParseBasisLzSGD([]byte{1, 2, 3}, 1)
	if len(issues) == 0 {
		t.Error("expected an issue for truncated SGD")
	}
}

func TestParseBasisLzSGDValidImageFlags(t *testing.T) {
	data := make([]byte, basisLzGlobalHeaderLength+basisLzImageDescLength)
	_, images, issues := ParseBasisLzSGD(data, 1)
	if len(images) != 1 {
		t.Fatalf("expected 1 image descriptor, got %d", len(images))
	}
	foundSliceIssue := false
	for _, iss := range issues {
		if iss.Code == 8105 {
			foundSliceIssue = true
		}
		if iss.Code == 8104 {
			t.Errorf("all-zero imageFlags should be accepted, got %v", iss)
		}
	}
	if !foundSliceIssue {
		t.Error("expected zero rgbSliceByteLength to be flagged")
	}
}

func TestNewDecoderUnsupportedScheme(t *testing.T) {
	if _, err := NewDecoder(Scheme(99), nil); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}
