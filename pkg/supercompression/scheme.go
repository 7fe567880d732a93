// Package supercompression dispatches level-data decoding by the
// container's declared supercompression scheme, and parses the
// scheme-specific Supercompression Global Data (SGD) block.
package supercompression

import (
	"encoding/binary"
	"fmt"

	"github.com/DataDog/zstd"

	"github.com/ktx2tools/ktx2go/pkg/ktxerrors"
	"github.com/ktx2tools/ktx2go/pkg/issue"
)

// Scheme is the KTX2 supercompressionScheme header field.
type Scheme uint32

const (
	SchemeNone    Scheme = 0
	SchemeBasisLZ Scheme = 1
	SchemeZstd    Scheme = 2
	SchemeZLIB    Scheme = 3
)

func (s Scheme) String() string {
	switch s {
	case SchemeNone:
		return "NONE"
	case SchemeBasisLZ:
		return "BASIS_LZ"
	case SchemeZstd:
		return "ZSTD"
	case SchemeZLIB:
		return "ZLIB"
	default:
		if s >= 0x10000 {
			return fmt.Sprintf("VENDOR(%d)", uint32(s))
		}
		return fmt.Sprintf("UNKNOWN(%d)", uint32(s))
	}
}

// IsVendor reports whether s falls in the vendor-reserved range.
func (s Scheme) IsVendor() bool { return s >= 0x10000 }

// DecodeResult is the outcome of decoding one level's payload.
type DecodeResult struct {
	Data []byte
}

// Decoder decodes one level's raw bytes into its uncompressed form.
// expectedLen is the level index's uncompressedByteLength, used to
// validate the decoder's output length (issue 4008).
type Decoder interface {
	Decode(in []byte, expectedLen int) (DecodeResult, error)
}

// NewDecoder returns the Decoder for scheme, or an error if scheme is
// not one of None, BasisLZ, Zstd or ZLIB. basisu is only consulted for
// SchemeBasisLZ; pass nil when no transcoder is wired in (the decoder
// then returns the level bytes unchanged, without producing texel data).
func NewDecoder(scheme Scheme, basisu BasisTranscoder) (Decoder, error) {
	switch scheme {
	case SchemeNone:
		return passthroughDecoder{}, nil
	case SchemeZstd:
		return ZstdDecoder{}, nil
	case SchemeZLIB:
		return ZlibDecoder{}, nil
	case SchemeBasisLZ:
		return BasisLZDecoder{Transcoder: basisu}, nil
	default:
		return nil, fmt.Errorf("supercompression: unsupported scheme %v", scheme)
	}
}

type passthroughDecoder struct{}

func (passthroughDecoder) Decode(in []byte, expectedLen int) (DecodeResult, error) {
	if len(in) != expectedLen {
		return DecodeResult{}, fmt.Errorf("%w: level has %d bytes, expected %d", ktxerrors.ErrUnexpectEOF, len(in), expectedLen)
	}
	return DecodeResult{Data: in}, nil
}

// ZstdDecoder wraps github.com/DataDog/zstd, the same dependency the
// teacher used to frame its own archive payloads.
type ZstdDecoder struct{}

func (ZstdDecoder) Decode(in []byte, expectedLen int) (DecodeResult, error) {
	out, err := zstd.Decompress(make([]byte, 0, expectedLen), in)
	if err != nil {
		return DecodeResult{}, fmt.Errorf("supercompression: zstd decompress: %w", err)
	}
	if expectedLen > 0 && len(out) != expectedLen {
		return DecodeResult{}, fmt.Errorf("supercompression: zstd produced %d bytes, expected %d", len(out), expectedLen)
	}
	return DecodeResult{Data: out}, nil
}

// BasisTranscoder is the contract an injected Basis Universal/UASTC
// transcoder must satisfy; the actual transcode kernel is out of scope,
// only its dispatch contract is implemented here.
type BasisTranscoder interface {
	Transcode(level []byte, sgd []byte, targetFormat string) ([]byte, error)
}

// BasisLZDecoder invokes the Transcoder, if one is wired in, with the
// level bytes and SGD; otherwise it returns the raw level bytes
// unchanged so validation-only callers can still proceed. It does not
// parse or check the SGD itself; ParseBasisLzSGD does that.
type BasisLZDecoder struct {
	Transcoder BasisTranscoder
	SGD        []byte
}

func (d BasisLZDecoder) Decode(in []byte, expectedLen int) (DecodeResult, error) {
	if d.Transcoder == nil {
		return DecodeResult{Data: in}, nil
	}
	out, err := d.Transcoder.Transcode(in, d.SGD, "")
	if err != nil {
		return DecodeResult{}, fmt.Errorf("supercompression: basis transcode: %w", err)
	}
	return DecodeResult{Data: out}, nil
}

// UASTCDecoder dispatches UASTC-compressed levels (supercompressionScheme
// None with a UASTC DFD colorModel is not itself compressed, but UASTC
// data can additionally carry Zstd/rate-distortion-optimized
// supercompression on top) to an injected transcoder for GPU-format
// selection.
type UASTCDecoder struct {
	Transcoder BasisTranscoder
}

func (d UASTCDecoder) Decode(in []byte, expectedLen int) (DecodeResult, error) {
	if d.Transcoder == nil {
		return DecodeResult{Data: in}, nil
	}
	out, err := d.Transcoder.Transcode(in, nil, "")
	if err != nil {
		return DecodeResult{}, fmt.Errorf("supercompression: uastc transcode: %w", err)
	}
	return DecodeResult{Data: out}, nil
}

// BasisLzGlobalHeader is the fixed-size header at the start of the SGD
// block for SchemeBasisLZ.
type BasisLzGlobalHeader struct {
	EndpointCount       uint16
	SelectorCount       uint16
	EndpointsByteLength uint32
	SelectorsByteLength uint32
	TablesByteLength    uint32
	ExtendedByteLength  uint32
}

const basisLzGlobalHeaderLength = 20

// BasisLzImageDesc is one per-image descriptor following the global
// header, one per (level, layer, face, zSlice) tuple.
type BasisLzImageDesc struct {
	ImageFlags           uint32
	RGBSliceByteOffset   uint32
	RGBSliceByteLength   uint32
	AlphaSliceByteOffset uint32
	AlphaSliceByteLength uint32
}

const basisLzImageDescLength = 20

// ImageFlagPFrame marks an ETC1S image as a P-frame in an animation
// sequence.
const ImageFlagPFrame = 1 << 0

// ParseBasisLzSGD parses the BasisLZ-specific SGD layout, reporting
// structural issues (8101-8110) without attempting to cross-check
// slice offsets against level byte lengths (the caller, which has the
// level index in scope, does that).
func ParseBasisLzSGD(data []byte, imageCount uint32) (*BasisLzGlobalHeader, []BasisLzImageDesc, []issue.Issue) {
	var issues []issue.Issue
	if len(data) < basisLzGlobalHeaderLength {
		issues = append(issues, issue.IssueSGDTooShort)
		return nil, nil, issues
	}
	hdr := &BasisLzGlobalHeader{
		EndpointCount:       binary.LittleEndian.Uint16(data[0:2]),
		SelectorCount:       binary.LittleEndian.Uint16(data[2:4]),
		EndpointsByteLength: binary.LittleEndian.Uint32(data[4:8]),
		SelectorsByteLength: binary.LittleEndian.Uint32(data[8:12]),
		TablesByteLength:    binary.LittleEndian.Uint32(data[12:16]),
		ExtendedByteLength:  binary.LittleEndian.Uint32(data[16:20]),
	}

	expectedLen := uint64(basisLzGlobalHeaderLength) + uint64(imageCount)*basisLzImageDescLength +
		uint64(hdr.EndpointsByteLength) + uint64(hdr.SelectorsByteLength) +
		uint64(hdr.TablesByteLength) + uint64(hdr.ExtendedByteLength)
	if uint64(len(data)) != expectedLen {
		issues = append(issues, issue.IssueSGDTablesInvalid.Withf(
			"sgdByteLength=%d, expected=%d for imageCount=%d", len(data), expectedLen, imageCount))
	}

	descOffset := basisLzGlobalHeaderLength
	var images []BasisLzImageDesc
	for i := uint32(0); i < imageCount; i++ {
		end := descOffset + basisLzImageDescLength
		if end > len(data) {
			issues = append(issues, issue.IssueSGDTooShort)
			break
		}
		buf := data[descOffset:end]
		img := BasisLzImageDesc{
			ImageFlags:           binary.LittleEndian.Uint32(buf[0:4]),
			RGBSliceByteOffset:   binary.LittleEndian.Uint32(buf[4:8]),
			RGBSliceByteLength:   binary.LittleEndian.Uint32(buf[8:12]),
			AlphaSliceByteOffset: binary.LittleEndian.Uint32(buf[12:16]),
			AlphaSliceByteLength: binary.LittleEndian.Uint32(buf[16:20]),
		}
		if img.ImageFlags&^uint32(ImageFlagPFrame) != 0 {
			issues = append(issues, issue.IssueSGDImageFlagsInvalid.Withf("image %d: flags=0x%x", i, img.ImageFlags))
		}
		if img.RGBSliceByteLength == 0 {
			issues = append(issues, issue.IssueSGDSliceByteOffsetInvalid.Withf("image %d: zero rgbSliceByteLength", i))
		}
		images = append(images, img)
		descOffset = end
	}
	return hdr, images, issues
}
