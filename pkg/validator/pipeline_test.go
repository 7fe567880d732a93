package validator

import (
	"encoding/binary"
	"testing"

	"github.com/ktx2tools/ktx2go/pkg/container"
	"github.com/ktx2tools/ktx2go/pkg/dfd"
	"github.com/ktx2tools/ktx2go/pkg/issue"
	"github.com/ktx2tools/ktx2go/pkg/vkformat"
)

// buildMinimalFile assembles a valid single-level, uncompressed,
// metadata-free KTX2 file so the pipeline has something well-formed to
// walk before individual tests corrupt a piece of it.
func buildMinimalFile(t *testing.T) []byte {
	t.Helper()
	format := vkformat.R8G8B8A8Unorm
	basic, err := dfd.Synthesize(format, 0)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	dfdBlob := basic.Marshal()

	const levelCount = 1
	dfdOffset := container.ExpectedDFDOffset(levelCount)
	kvdOffset := dfdOffset + uint64(len(dfdBlob))

	width, height := uint32(4), uint32(4)
	levelSize := uint64(width) * uint64(height) * 4

	hdr := &container.Header{
		VKFormat:    format,
		TypeSize:    1,
		PixelWidth:  width,
		PixelHeight: height,
		FaceCount:   1,
		LevelCount:  levelCount,
		Index: container.Index{
			DFDByteOffset: uint32(dfdOffset),
			DFDByteLength: uint32(len(dfdBlob)),
			KVDByteOffset: uint32(kvdOffset),
			KVDByteLength: 0,
		},
	}
	levelDataOffset := kvdOffset
	levels := []container.LevelIndexEntry{
		{ByteOffset: levelDataOffset, ByteLength: levelSize, UncompressedByteLength: levelSize},
	}

	headerBytes, err := hdr.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var out []byte
	out = append(out, headerBytes...)
	out = append(out, container.WriteLevelIndex(levels)...)
	out = append(out, dfdBlob...)
	out = append(out, make([]byte, levelSize)...)
	return out
}

func TestValidateAcceptsWellFormedFile(t *testing.T) {
	data := buildMinimalFile(t)
	report := Validate(data, Options{})
	if !report.Valid() {
		t.Errorf("expected a valid report, got issues: %v", report.Issues)
	}
}

func TestValidateRejectsBadMagic(t *testing.T) {
	data := buildMinimalFile(t)
	data[0] = 0x00
	report := Validate(data, Options{})
	if report.Valid() {
		t.Fatal("expected identifier mismatch to be flagged")
	}
	if report.Issues[0].Code != 2001 {
		t.Errorf("code = %d, want 2001", report.Issues[0].Code)
	}
}

func TestValidateFlagsZeroWidth(t *testing.T) {
	data := buildMinimalFile(t)
	// pixelWidth is the first uint32 after vkFormat/typeSize in the header.
	for i := range data[20:24] {
		data[20+i] = 0
	}
	report := Validate(data, Options{})
	found := false
	for _, iss := range report.Issues {
		if iss.Code == 3006 {
			found = true
		}
	}
	if !found {
		t.Error("expected pixelWidth-is-zero issue 3006")
	}
}

func TestFinalizeWarningsAsErrorsPromotesSeverity(t *testing.T) {
	report := &issue.Report{Issues: []issue.Issue{issue.IssueThreeDArray}}
	finalize(report, Options{WarningsAsErrors: true})
	if report.Issues[0].Severity != issue.SeverityError {
		t.Errorf("severity = %v, want error after promotion", report.Issues[0].Severity)
	}
}

// TestValidateAcceptsRuntimeMipGenLevelCount mirrors buildMinimalFile but
// with a header levelCount of 0 (runtime mip generation requested): the
// file still carries exactly one on-wire level index entry, so every
// offset computed from it must land the same as the levelCount=1 case.
func TestValidateAcceptsRuntimeMipGenLevelCount(t *testing.T) {
	format := vkformat.R8G8B8A8Unorm
	basic, err := dfd.Synthesize(format, 0)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	dfdBlob := basic.Marshal()

	dfdOffset := container.ExpectedDFDOffset(0)
	kvdOffset := dfdOffset + uint64(len(dfdBlob))

	width, height := uint32(4), uint32(4)
	levelSize := uint64(width) * uint64(height) * 4

	hdr := &container.Header{
		VKFormat:    format,
		TypeSize:    1,
		PixelWidth:  width,
		PixelHeight: height,
		FaceCount:   1,
		LevelCount:  0,
		Index: container.Index{
			DFDByteOffset: uint32(dfdOffset),
			DFDByteLength: uint32(len(dfdBlob)),
			KVDByteOffset: uint32(kvdOffset),
			KVDByteLength: 0,
		},
	}
	levels := []container.LevelIndexEntry{
		{ByteOffset: kvdOffset, ByteLength: levelSize, UncompressedByteLength: levelSize},
	}

	headerBytes, err := hdr.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var data []byte
	data = append(data, headerBytes...)
	data = append(data, container.WriteLevelIndex(levels)...)
	data = append(data, dfdBlob...)
	data = append(data, make([]byte, levelSize)...)

	report := Validate(data, Options{})
	if !report.Valid() {
		t.Errorf("expected a valid report for levelCount=0, got issues: %v", report.Issues)
	}
}

func TestValidateFlagsProhibitedFormat(t *testing.T) {
	data := buildMinimalFile(t)
	binary.LittleEndian.PutUint32(data[12:16], uint32(vkformat.R4G4B4A4UnormPack16))
	report := Validate(data, Options{})
	if report.Valid() {
		t.Fatal("expected a prohibited vkFormat to be flagged")
	}
	found := false
	for _, iss := range report.Issues {
		if iss.Code == 3001 {
			found = true
		}
	}
	if !found {
		t.Error("expected ProhibitedFormat issue 3001")
	}
}

func TestValidateGLTFProfileFlagsNonBasisLZScheme(t *testing.T) {
	data := buildMinimalFile(t)
	report := Validate(data, Options{GLTFBasisU: true})
	found := false
	for _, iss := range report.Issues {
		if iss.Code == 3101 {
			found = true
		}
	}
	if !found {
		t.Error("expected GLTF invalid-supercompression-scheme issue 3101 when scheme is not BasisLZ")
	}
}
