// Package dfd implements the Data Format Descriptor: synthesis of the
// expected DFD for a given Vulkan format and supercompression scheme,
// binary parsing of a DFD blob read from a container, and comparison of
// a parsed DFD against the expected one.
package dfd

import (
	"encoding/binary"
	"fmt"

	"github.com/ktx2tools/ktx2go/pkg/issue"
	"github.com/ktx2tools/ktx2go/pkg/vkformat"
)

// ColorModel values from the Khronos Data Format Descriptor spec. Only
// the subset KTX2 actually emits is named.
type ColorModel uint8

const (
	ColorModelUnspecified ColorModel = 0
	ColorModelRGBSDA      ColorModel = 1
	ColorModelYUVSDA      ColorModel = 2
	ColorModelYIQSDA      ColorModel = 3
	ColorModelLabSDA      ColorModel = 4
	ColorModelCMYKA       ColorModel = 5
	ColorModelXYZSDA      ColorModel = 6
	ColorModelHSVAAng     ColorModel = 7
	ColorModelHSLAAng     ColorModel = 8
	ColorModelETC1S       ColorModel = 163
	ColorModelUASTC       ColorModel = 166
	ColorModelBC1A        ColorModel = 128
	ColorModelBC7         ColorModel = 145
	ColorModelASTC        ColorModel = 162
)

type ColorPrimaries uint8

const (
	ColorPrimariesUnspecified ColorPrimaries = 0
	ColorPrimariesBT709      ColorPrimaries = 1
	ColorPrimariesBT601EBU   ColorPrimaries = 2
	ColorPrimariesBT601SMPTE ColorPrimaries = 3
	ColorPrimariesBT2020     ColorPrimaries = 4
	ColorPrimariesCIEXYZ     ColorPrimaries = 5
	ColorPrimariesACES       ColorPrimaries = 6
	ColorPrimariesACEScc     ColorPrimaries = 7
	ColorPrimariesNTSC1953   ColorPrimaries = 8
	ColorPrimariesPAL525     ColorPrimaries = 9
	ColorPrimariesDisplayP3  ColorPrimaries = 10
	ColorPrimariesAdobeRGB   ColorPrimaries = 11
)

type TransferFunction uint8

const (
	TransferUnspecified TransferFunction = 0
	TransferLinear      TransferFunction = 1
	TransferSRGB        TransferFunction = 2
	TransferITU         TransferFunction = 3
	TransferNTSC        TransferFunction = 4
	TransferSLOG        TransferFunction = 5
	TransferSLOG2       TransferFunction = 6
	TransferBT1886      TransferFunction = 7
	TransferHLGOETF     TransferFunction = 8
	TransferHLGEOTF     TransferFunction = 9
	TransferPQEOTF      TransferFunction = 10
	TransferPQOETF      TransferFunction = 11
	TransferDCIP3       TransferFunction = 12
	TransferPALOETF     TransferFunction = 13
	TransferPAL625EOTF  TransferFunction = 14
	TransferST240       TransferFunction = 15
	TransferACEScc      TransferFunction = 16
	TransferACEScct     TransferFunction = 17
	TransferAdobeRGB    TransferFunction = 18
)

// Flags bits for the basic DFD block.
type Flags uint8

const (
	FlagsAlphaStraight      Flags = 0
	FlagsAlphaPremultiplied Flags = 1 << 0
)

// ChannelQualifier bits packed alongside a sample's channel type.
type ChannelQualifier uint8

const (
	QualifierLinear   ChannelQualifier = 1 << 0
	QualifierExponent ChannelQualifier = 1 << 1
	QualifierSigned   ChannelQualifier = 1 << 2
	QualifierFloat    ChannelQualifier = 1 << 3
)

// Sample is one 16-byte sample descriptor in a basic DFD block.
type Sample struct {
	BitOffset       uint16
	BitLength       uint8 // logical bit length; stored on the wire as length-1
	ChannelType     uint8
	Qualifiers      ChannelQualifier
	SamplePositions [4]uint8
	Lower           uint32
	Upper           uint32
}

const sampleLength = 16

func (s *Sample) marshal() []byte {
	buf := make([]byte, sampleLength)
	binary.LittleEndian.PutUint16(buf[0:2], s.BitOffset)
	bitLength := s.BitLength
	if bitLength > 0 {
		bitLength--
	}
	buf[2] = bitLength
	buf[3] = s.ChannelType | (uint8(s.Qualifiers) << 4)
	copy(buf[4:8], s.SamplePositions[:])
	binary.LittleEndian.PutUint32(buf[8:12], s.Lower)
	binary.LittleEndian.PutUint32(buf[12:16], s.Upper)
	return buf
}

func unmarshalSample(buf []byte) (Sample, error) {
	if len(buf) < sampleLength {
		return Sample{}, fmt.Errorf("dfd: truncated sample descriptor")
	}
	var s Sample
	s.BitOffset = binary.LittleEndian.Uint16(buf[0:2])
	s.BitLength = buf[2] + 1
	s.ChannelType = buf[3] & 0x0F
	s.Qualifiers = ChannelQualifier(buf[3] >> 4)
	copy(s.SamplePositions[:], buf[4:8])
	s.Lower = binary.LittleEndian.Uint32(buf[8:12])
	s.Upper = binary.LittleEndian.Uint32(buf[12:16])
	return s, nil
}

// BasicBlock is the Basic Data Format Descriptor block: the only block
// type a conformant KTX2 writer emits.
type BasicBlock struct {
	VendorID             uint32
	DescriptorType       uint32
	VersionNumber        uint16
	ColorModel           ColorModel
	ColorPrimaries       ColorPrimaries
	TransferFunction     TransferFunction
	Flags                Flags
	TexelBlockDimensions [4]uint8 // logical dimensions; stored minus one
	BytesPlanes          [8]uint8
	Samples              []Sample
}

const basicHeaderLength = 8 + 16 // DFD block header + basic block header

// marshal serializes the block header, basic header, and samples into a
// single byte slice. It does not include the leading 4-byte dfdTotalSize
// field of a full DFD blob; Marshal adds that.
func (b *BasicBlock) marshal() []byte {
	blockSize := uint16(basicHeaderLength + len(b.Samples)*sampleLength)

	buf := make([]byte, 0, blockSize)
	hdr := make([]byte, 8)
	firstWord := (b.VendorID & ((1 << 17) - 1)) | (b.DescriptorType << 17)
	binary.LittleEndian.PutUint32(hdr[0:4], firstWord)
	binary.LittleEndian.PutUint16(hdr[4:6], b.VersionNumber)
	binary.LittleEndian.PutUint16(hdr[6:8], blockSize)
	buf = append(buf, hdr...)

	basic := make([]byte, 16)
	basic[0] = uint8(b.ColorModel)
	basic[1] = uint8(b.ColorPrimaries)
	basic[2] = uint8(b.TransferFunction)
	basic[3] = uint8(b.Flags)
	dims := b.TexelBlockDimensions
	for i := range dims {
		if dims[i] > 0 {
			dims[i]--
		}
	}
	copy(basic[4:8], dims[:])
	copy(basic[8:16], b.BytesPlanes[:])
	buf = append(buf, basic...)

	for i := range b.Samples {
		buf = append(buf, b.Samples[i].marshal()...)
	}
	return buf
}

// Marshal returns the full DFD blob (4-byte dfdTotalSize prefix followed
// by the single basic block), matching what a conformant writer emits.
func (b *BasicBlock) Marshal() []byte {
	body := b.marshal()
	out := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(out)))
	copy(out[4:], body)
	return out
}

// DFD is a parsed Data Format Descriptor. Only one basic block is
// expected in a conformant KTX2 file; unrecognized trailing blocks are
// retained verbatim in OtherBlocks. Compare checks only the basic block.
type DFD struct {
	TotalSize   uint32
	Basic       *BasicBlock
	OtherBlocks [][]byte
}

const (
	maxBlocks  = 10
	maxSamples = 16
)

// Parse decodes a raw DFD blob (as stored between dfdByteOffset and
// dfdByteOffset+dfdByteLength) into a DFD, reporting issues for
// malformed structure per issues 6001-6029.
func Parse(data []byte) (*DFD, []issue.Issue) {
	var issues []issue.Issue
	if len(data) < 4 {
		issues = append(issues, issue.Issue{Code: 6004, Severity: issue.SeverityError,
			Message: "Invalid DFD data. Not enough data left to process another DFD block header."})
		return nil, issues
	}
	totalSize := binary.LittleEndian.Uint32(data[0:4])
	if int(totalSize) != len(data) {
		issues = append(issues, issue.Issue{Code: 6001, Severity: issue.SeverityError,
			Message: "Mismatching dfdTotalSize and dfdByteLength. dfdTotalSize must match dfdByteLength."})
	}

	out := &DFD{TotalSize: totalSize}
	offset := 4
	blockCount := 0
	for offset < len(data) {
		if len(data)-offset < 8 {
			issues = append(issues, issue.Issue{Code: 6004, Severity: issue.SeverityError,
				Message: "Invalid DFD data. Not enough data left to process another DFD block header."})
			break
		}
		blockCount++
		if blockCount > maxBlocks {
			issues = append(issues, issue.Issue{Code: 6002, Severity: issue.SeverityError,
				Message: "Too many DFD blocks. The number of DFD blocks exceeds the validator limit."})
			break
		}

		firstWord := binary.LittleEndian.Uint32(data[offset : offset+4])
		descriptorType := firstWord >> 17
		vendorID := firstWord & ((1 << 17) - 1)
		versionNumber := binary.LittleEndian.Uint16(data[offset+4 : offset+6])
		blockSize := binary.LittleEndian.Uint16(data[offset+6 : offset+8])
		if int(blockSize) < 8 || offset+int(blockSize) > len(data) {
			issues = append(issues, issue.Issue{Code: 6006, Severity: issue.SeverityError,
				Message: "DFD block descriptorBlockSize is too small."})
			break
		}

		// descriptorType 0 is the basic block; anything else is
		// unrecognized but not fatal on its own (issue 6003 is a
		// warning-grade heads-up, not a hard failure).
		if descriptorType == 0 {
			if out.Basic != nil {
				issues = append(issues, issue.Issue{Code: 6005, Severity: issue.SeverityError,
					Message: "Multiple basic DFD blocks."})
			} else {
				basic, basicIssues := parseBasicBlock(data[offset:offset+int(blockSize)], vendorID, descriptorType, versionNumber)
				issues = append(issues, basicIssues...)
				out.Basic = basic
			}
		} else {
			issues = append(issues, issue.Issue{Code: 6003, Severity: issue.SeverityWarning,
				Message: "Unrecognized DFD block."})
			out.OtherBlocks = append(out.OtherBlocks, data[offset:offset+int(blockSize)])
		}
		offset += int(blockSize)
	}

	if out.Basic == nil {
		issues = append(issues, issue.Issue{Code: 6008, Severity: issue.SeverityError,
			Message: "Missing basic DFD block."})
	}
	return out, issues
}

func parseBasicBlock(block []byte, vendorID, descriptorType uint32, versionNumber uint16) (*BasicBlock, []issue.Issue) {
	var issues []issue.Issue
	if len(block) < basicHeaderLength {
		issues = append(issues, issue.Issue{Code: 6010, Severity: issue.SeverityError,
			Message: "Basic DFD block descriptorBlockSize is too small."})
		return nil, issues
	}
	if versionNumber != 2 {
		issues = append(issues, issue.Issue{Code: 6011, Severity: issue.SeverityError,
			Message: "Unsupported basic DFD block version."})
	}

	b := &BasicBlock{
		VendorID:       vendorID,
		DescriptorType: descriptorType,
		VersionNumber:  versionNumber,
	}
	basic := block[8:24]
	b.ColorModel = ColorModel(basic[0])
	b.ColorPrimaries = ColorPrimaries(basic[1])
	b.TransferFunction = TransferFunction(basic[2])
	b.Flags = Flags(basic[3])
	copy(b.TexelBlockDimensions[:], basic[4:8])
	for i := range b.TexelBlockDimensions {
		b.TexelBlockDimensions[i]++
	}
	copy(b.BytesPlanes[:], basic[8:16])

	sampleBytes := block[24:]
	sampleCount := len(sampleBytes) / sampleLength
	if sampleCount > maxSamples {
		issues = append(issues, issue.Issue{Code: 6029, Severity: issue.SeverityError,
			Message: "Too many BDFD sample. The number of BDFD samples exceeds the validator limit."})
		sampleCount = maxSamples
	}
	for i := 0; i < sampleCount; i++ {
		s, err := unmarshalSample(sampleBytes[i*sampleLength : (i+1)*sampleLength])
		if err != nil {
			continue
		}
		b.Samples = append(b.Samples, s)
	}
	return b, issues
}

// Synthesize builds the expected DFD for a recognized format and
// supercompression scheme, matching calculateExpectedDFD in the
// original issue. Returns an error if format is not in the
// registry (callers should have already rejected prohibited/unknown
// formats before reaching here).
func Synthesize(format vkformat.Format, scheme uint32) (*BasicBlock, error) {
	info, ok := vkformat.Lookup(format)
	if !ok {
		return nil, fmt.Errorf("dfd: cannot synthesize DFD for unregistered format %v", format)
	}

	b := &BasicBlock{
		VersionNumber: 2,
		ColorPrimaries: ColorPrimariesBT709,
	}
	b.TexelBlockDimensions = [4]uint8{uint8(info.BlockWidth), uint8(info.BlockHeight), uint8(info.BlockDepth), 1}

	switch {
	case info.Compressed:
		b.ColorModel = colorModelForCompressed(format)
	case info.DepthOrStencil:
		b.ColorModel = ColorModelRGBSDA
	default:
		b.ColorModel = ColorModelRGBSDA
	}

	if info.SRGB {
		b.TransferFunction = TransferSRGB
	} else {
		b.TransferFunction = TransferLinear
	}

	if scheme != 0 { // anything but None: BytesPlanes are zeroed per issue 6022
		b.BytesPlanes = [8]uint8{}
	} else {
		b.BytesPlanes[0] = uint8(info.BytesPerBlock)
	}

	b.Samples = synthesizeSamples(format, info)
	return b, nil
}

func colorModelForCompressed(format vkformat.Format) ColorModel {
	switch {
	case format.IsASTC():
		return ColorModelASTC
	case format >= vkformat.BC1RGBUnormBlock && format <= vkformat.BC1RGBASrgbBlock:
		return ColorModelBC1A
	case format == vkformat.BC7UnormBlock || format == vkformat.BC7SrgbBlock:
		return ColorModelBC7
	default:
		return ColorModelRGBSDA
	}
}

// ChannelType is the low nibble of a sample's packed channelType byte.
type ChannelType = uint8

// Channel type values from the Khronos Data Format Specification's
// KHR_DF_MODEL_ETC1S and KHR_DF_MODEL_UASTC channel assignments.
const (
	channelUASTCRGBA ChannelType = 3
	channelETC1SRGB  ChannelType = 0
	channelETC1SAAA  ChannelType = 15
)

// compressedSampleQualifiers covers the BC/EAC variants whose sample
// needs a non-default qualifier: signed normalized or floating point,
// per the Khronos Data Format Specification sample conventions.
func compressedSampleQualifiers(format vkformat.Format) ChannelQualifier {
	switch format {
	case vkformat.BC4SnormBlock, vkformat.BC5SnormBlock, vkformat.EACR11SnormBlock, vkformat.EACR11G11SnormBlock:
		return QualifierSigned
	case vkformat.BC6HUfloatBlock:
		return QualifierFloat
	case vkformat.BC6HSfloatBlock:
		return QualifierFloat | QualifierSigned
	default:
		return 0
	}
}

// UASTCSamples returns the canonical single-sample template a
// KHR_DF_MODEL_UASTC basic block must carry: one 128-bit sample spanning
// the whole 4x4 block, RGBA channel type, full normalized range.
func UASTCSamples() []Sample {
	return []Sample{{BitOffset: 0, BitLength: 128, ChannelType: channelUASTCRGBA, Upper: 0xFFFFFFFF}}
}

// ETC1SSamples returns the canonical two-sample template a
// KHR_DF_MODEL_ETC1S basic block must carry when an alpha slice is
// present: a 64-bit RGB sample at bit offset 0 followed by a 64-bit
// alpha sample at bit offset 64, one 8-byte ETC1S block each.
func ETC1SSamples() []Sample {
	return []Sample{
		{BitOffset: 0, BitLength: 64, ChannelType: channelETC1SRGB, Upper: 0xFFFFFFFF},
		{BitOffset: 64, BitLength: 64, ChannelType: channelETC1SAAA, Upper: 0xFFFFFFFF},
	}
}

func synthesizeSamples(format vkformat.Format, info vkformat.Info) []Sample {
	if info.Compressed {
		// Every BC/ETC2/EAC/ASTC block format carries a single sample
		// spanning the whole block; channel type is format-specific but
		// the qualifiers and normalized range below are the common case.
		return []Sample{{
			BitOffset:  0,
			BitLength:  uint8(info.BytesPerBlock * 8),
			Qualifiers: compressedSampleQualifiers(format),
			Upper:      0xFFFFFFFF,
		}}
	}
	samples := make([]Sample, 0, info.ChannelCount)
	bitsPerChannel := (info.BytesPerBlock / maxUint32(info.ChannelCount, 1)) * 8
	offset := uint16(0)
	for i := uint32(0); i < info.ChannelCount; i++ {
		samples = append(samples, Sample{
			BitOffset:   offset,
			BitLength:   uint8(bitsPerChannel),
			ChannelType: uint8(i),
		})
		offset += uint16(bitsPerChannel)
	}
	return samples
}

func maxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// CompareOptions controls conservative allowances Compare makes when
// checking a parsed basic block against the expected one.
type CompareOptions struct {
	// Allow422XAxisExemption permits a 4:2:2 format's expected first
	// texel block dimension (the X axis) to differ from the parsed
	// value, since several real encoders emit a halved X dimension for
	// chroma-subsampled formats. It likewise leaves each sample's X-axis
	// sample position uncompared. See spec.md Open Questions.
	Allow422XAxisExemption bool
}

// Compare checks a parsed basic block against the expected one
// synthesized from the header's declared format, reporting mismatches
// per issues 6015-6028.
func Compare(parsed, expected *BasicBlock, format vkformat.Format, opts CompareOptions) []issue.Issue {
	var issues []issue.Issue
	if parsed == nil || expected == nil {
		return issues
	}
	if parsed.ColorModel != expected.ColorModel {
		issues = append(issues, issue.Issue{Code: 6015, Severity: issue.SeverityError,
			Message: "Invalid colorModel in basic DFD block for RGB VkFormat."})
	}
	if parsed.TransferFunction != expected.TransferFunction {
		issues = append(issues, issue.Issue{Code: 6013, Severity: issue.SeverityError,
			Message: "Invalid transferFunction in basic DFD block. For an sRGB VkFormat it must be KHR_DF_TRANSFER_SRGB."})
	}

	dimsMismatch := false
	for i := range parsed.TexelBlockDimensions {
		if i == 0 && format.Is422() && opts.Allow422XAxisExemption {
			continue
		}
		if parsed.TexelBlockDimensions[i] != expected.TexelBlockDimensions[i] {
			dimsMismatch = true
		}
	}
	if dimsMismatch {
		issues = append(issues, issue.Issue{Code: 6020, Severity: issue.SeverityError,
			Message: "Invalid texelBlockDimensions in basic DFD block."})
	}

	if len(parsed.Samples) != len(expected.Samples) {
		issues = append(issues, issue.Issue{Code: 6025, Severity: issue.SeverityError,
			Message: "Invalid sample count in basic DFD block. The sample count must match the expected sample count of the VkFormat."})
	}
	issues = append(issues, compareSamples(parsed.Samples, expected.Samples, format, format.Is422() && opts.Allow422XAxisExemption)...)
	return issues
}

// invalidSample reports one per-sample field mismatch (issue 6028), which
// the original tool reuses across every sample field rather than minting
// a new code per field; the field name and values in the message are
// what make each occurrence distinct.
func invalidSample(index int, field string, got, want any, format vkformat.Format) issue.Issue {
	return issue.IssueInvalidSample.Withf("sample #%d %s in basic DFD block is %v but the expected value is %v for %v", index, field, got, want, format)
}

// compareSamples walks parsed and expected sample-by-sample, emitting a
// distinct issue for every mismatching field rather than folding the
// whole sample into one generic error. Samples beyond the shorter list's
// length are skipped here; the overall count mismatch is already flagged
// by the caller. When exemptXPosition is set, SamplePositions[0] (the X
// axis) is not compared.
func compareSamples(parsed, expected []Sample, format vkformat.Format, exemptXPosition bool) []issue.Issue {
	var issues []issue.Issue
	n := len(parsed)
	if len(expected) < n {
		n = len(expected)
	}
	for i := 0; i < n; i++ {
		p, e := parsed[i], expected[i]
		if p.BitOffset != e.BitOffset {
			issues = append(issues, invalidSample(i, "bitOffset", p.BitOffset, e.BitOffset, format))
		}
		if p.BitLength != e.BitLength {
			issues = append(issues, invalidSample(i, "bitLength", p.BitLength, e.BitLength, format))
		}
		if p.ChannelType != e.ChannelType {
			issues = append(issues, invalidSample(i, "channelType", p.ChannelType, e.ChannelType, format))
		}
		if p.Qualifiers != e.Qualifiers {
			issues = append(issues, invalidSample(i, "qualifiers", p.Qualifiers, e.Qualifiers, format))
		}
		pPos, ePos := p.SamplePositions, e.SamplePositions
		if exemptXPosition {
			pPos[0], ePos[0] = 0, 0
		}
		if pPos != ePos {
			issues = append(issues, invalidSample(i, "samplePositions", p.SamplePositions, e.SamplePositions, format))
		}
		if p.Lower != e.Lower {
			issues = append(issues, invalidSample(i, "lower", p.Lower, e.Lower, format))
		}
		if p.Upper != e.Upper {
			issues = append(issues, invalidSample(i, "upper", p.Upper, e.Upper, format))
		}
	}
	return issues
}

// InterpretUndefined checks the basic block of a VK_FORMAT_UNDEFINED
// texture, where the DFD itself is the only source of format
// information: the color model must be ETC1S or UASTC, and the samples
// must match that model's template.
func InterpretUndefined(block *BasicBlock, scheme uint32) []issue.Issue {
	var issues []issue.Issue
	if block == nil {
		return issues
	}
	switch block.ColorModel {
	case ColorModelETC1S:
		// Only the two-sample (RGB + alpha) template is checked strictly;
		// an ETC1S texture without an alpha slice legitimately carries
		// only the first sample, so a length-1 block is left unflagged.
		if len(block.Samples) > 1 {
			issues = append(issues, compareSamples(block.Samples, ETC1SSamples(), vkformat.Undefined, false)...)
		}
	case ColorModelUASTC:
		issues = append(issues, compareSamples(block.Samples, UASTCSamples(), vkformat.Undefined, false)...)
	default:
		issues = append(issues, issue.Issue{Code: 6018, Severity: issue.SeverityError,
			Message: "Invalid colorModel in basic DFD block for BasisLZ supercompression."})
	}
	return issues
}
