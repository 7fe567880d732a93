// Package validator drives the fixed-order KTX2 conformance pipeline:
// Header -> Indices -> Expected DFD synthesis -> DFD -> Level Index ->
// KVD -> Paddings, following ValidationContext::validate in the
// original tool. The SGD contents are not parsed here; only its offset
// and length are checked with the other indices. The issue taxonomy itself lives in pkg/issue, which
// pkg/container, pkg/dfd, pkg/metadata, and pkg/supercompression also
// depend on; keeping it separate from this package is what lets those
// packages report issues without an import cycle back through here.
package validator

import (
	"bytes"

	"github.com/ktx2tools/ktx2go/pkg/container"
	"github.com/ktx2tools/ktx2go/pkg/dfd"
	"github.com/ktx2tools/ktx2go/pkg/issue"
	"github.com/ktx2tools/ktx2go/pkg/metadata"
	"github.com/ktx2tools/ktx2go/pkg/vkformat"
)

// Options configures a Validate run.
type Options struct {
	// WarningsAsErrors promotes warning-grade issues to errors for the
	// purpose of Report.Valid(), matching the CLI's -e flag.
	WarningsAsErrors bool
	// GLTFBasisU enables the additional KHR_texture_basisu
	// compatibility checks 3101-3103 (BasisLZ scheme, 2D only, width and
	// height multiples of 4) and 6301 (ETC1S color model). KTXorientation,
	// KTXswizzle and the mip level count are not checked for this profile.
	GLTFBasisU bool
}

// Validate runs the fixed-order pipeline over data.
func Validate(data []byte, opts Options) *issue.Report {
	report := &issue.Report{}

	if err := container.CheckIdentifier(data); err != nil {
		report.Add(issue.IssueNotKTX2)
		return finalize(report, opts)
	}

	r := bytes.NewReader(data[12:])
	hdr, err := container.ReadHeader(r)
	if err != nil {
		report.Add(issue.IssueUnexpectedEOF)
		return finalize(report, opts)
	}
	validateHeaderFields(report, hdr)

	effectiveLevelCount := container.EffectiveLevelCount(hdr.LevelCount)
	levelIndexOffset := int64(container.HeaderLength)
	levelIndexSize := int64(effectiveLevelCount) * container.LevelIndexEntryLength
	if levelIndexOffset+levelIndexSize > int64(len(data)) {
		report.Add(issue.IssueUnexpectedEOF)
		return finalize(report, opts)
	}
	levelReader := bytes.NewReader(data[levelIndexOffset : levelIndexOffset+levelIndexSize])
	levels, err := container.ReadLevelIndex(levelReader, effectiveLevelCount)
	if err != nil {
		report.Add(issue.IssueUnexpectedEOF)
		return finalize(report, opts)
	}

	validateIndices(report, hdr, uint64(len(data)))

	var expected *dfd.BasicBlock
	if hdr.VKFormat.IsValid() {
		expected, err = dfd.Synthesize(hdr.VKFormat, hdr.SupercompressionScheme)
		if err != nil {
			report.Add(issue.IssueInternalError.Withf("%v", err))
		}
	}

	var parsed *dfd.DFD
	if hdr.Index.DFDByteLength > 0 && uint64(hdr.Index.DFDByteOffset)+uint64(hdr.Index.DFDByteLength) <= uint64(len(data)) {
		raw := data[hdr.Index.DFDByteOffset : uint64(hdr.Index.DFDByteOffset)+uint64(hdr.Index.DFDByteLength)]
		var dfdIssues []issue.Issue
		parsed, dfdIssues = dfd.Parse(raw)
		report.Issues = append(report.Issues, dfdIssues...)
		if parsed != nil && parsed.Basic != nil && expected != nil {
			cmpIssues := dfd.Compare(parsed.Basic, expected, hdr.VKFormat, dfd.CompareOptions{Allow422XAxisExemption: hdr.VKFormat.Is422()})
			report.Issues = append(report.Issues, cmpIssues...)
		}
		if parsed != nil && parsed.Basic != nil && hdr.VKFormat == vkformat.Undefined {
			report.Issues = append(report.Issues, dfd.InterpretUndefined(parsed.Basic, hdr.SupercompressionScheme)...)
		}
	} else {
		report.Add(issue.IssueMissingBasicBlock)
	}

	validateLevelIndex(report, hdr, levels, parsed)

	if hdr.Index.KVDByteLength > 0 && uint64(hdr.Index.KVDByteOffset)+uint64(hdr.Index.KVDByteLength) <= uint64(len(data)) {
		raw := data[hdr.Index.KVDByteOffset : uint64(hdr.Index.KVDByteOffset)+uint64(hdr.Index.KVDByteLength)]
		entries, kvIssues := metadata.Parse(raw)
		report.Issues = append(report.Issues, kvIssues...)
		validateReservedKeys(report, entries, hdr)
	}

	validatePaddings(report, hdr, data)

	if opts.GLTFBasisU {
		validateGLTFBasisUProfile(report, hdr, parsed)
	}

	return finalize(report, opts)
}

func finalize(report *issue.Report, opts Options) *issue.Report {
	if opts.WarningsAsErrors {
		for i := range report.Issues {
			if report.Issues[i].Severity == issue.SeverityWarning {
				report.Issues[i].Severity = issue.SeverityError
			}
		}
	}
	return report
}

func validateHeaderFields(report *issue.Report, hdr *container.Header) {
	format := hdr.VKFormat
	switch {
	case format.IsProhibited():
		report.Add(issue.IssueProhibitedFormat)
	case format.IsReservedExtension():
		report.Add(issue.IssueUnknownFormat)
	case format != vkformat.Undefined && !format.IsValid():
		report.Add(issue.IssueInvalidFormat)
	}

	if hdr.SupercompressionScheme == 1 && format != vkformat.Undefined { // 1 == BasisLZ
		report.Add(issue.IssueVkFormatAndBasis)
	}
	if (format.IsBlockCompressed() || hdr.SupercompressionScheme != 0) && hdr.TypeSize != 1 {
		report.Add(issue.IssueTypeSizeNotOne)
	}
	if hdr.PixelWidth == 0 {
		report.Add(issue.IssueWidthZero)
	}
	if format.IsBlockCompressed() && hdr.PixelHeight == 0 {
		report.Add(issue.IssueBlockCompressedNoHeight)
	}
	if hdr.FaceCount == 6 && hdr.PixelHeight != hdr.PixelWidth {
		report.Add(issue.IssueCubeHeightWidthMismatch)
	}
	if hdr.PixelDepth != 0 && hdr.PixelHeight == 0 {
		report.Add(issue.IssueDepthNoHeight)
	}
	if format.IsDepthOrStencil() && hdr.PixelDepth != 0 {
		report.Add(issue.IssueDepthStencilFormatWithDepth)
	}
	if hdr.FaceCount == 6 && hdr.PixelDepth != 0 {
		report.Add(issue.IssueCubeWithDepth)
	}
	if hdr.PixelDepth != 0 && hdr.LayerCount != 0 {
		report.Add(issue.IssueThreeDArray)
	}
	if hdr.FaceCount != 1 && hdr.FaceCount != 6 {
		report.Add(issue.IssueInvalidFaceCount)
	}
}

func validateIndices(report *issue.Report, hdr *container.Header, fileLen uint64) {
	expectedDFDOffset := container.ExpectedDFDOffset(hdr.LevelCount)
	if hdr.Index.DFDByteOffset != 0 && uint64(hdr.Index.DFDByteOffset) != expectedDFDOffset {
		report.Addf(issue.IssueLevelIndexByteOffsetMismatch, "DFD offset %d, expected %d", hdr.Index.DFDByteOffset, expectedDFDOffset)
	}
	if uint64(hdr.Index.DFDByteOffset)+uint64(hdr.Index.DFDByteLength) > fileLen {
		report.Add(issue.IssueUnexpectedEOF)
	}
	if uint64(hdr.Index.KVDByteOffset)+uint64(hdr.Index.KVDByteLength) > fileLen {
		report.Add(issue.IssueUnexpectedEOF)
	}
	if hdr.Index.SGDByteOffset+hdr.Index.SGDByteLength > fileLen {
		report.Add(issue.IssueUnexpectedEOF)
	}
}

func validateLevelIndex(report *issue.Report, hdr *container.Header, levels []container.LevelIndexEntry, parsed *dfd.DFD) {
	if len(levels) == 0 {
		return
	}
	for i := 1; i < len(levels); i++ {
		if levels[i-1].ByteOffset < levels[i].ByteOffset {
			report.Add(issue.IssueLevelIndexOutOfOrder)
			break
		}
	}

	blockByteLength := uint8(1)
	if parsed != nil && parsed.Basic != nil {
		if parsed.Basic.BytesPlanes[0] != 0 {
			blockByteLength = parsed.Basic.BytesPlanes[0]
		}
	}
	alignment := container.LevelAlignment(hdr.SupercompressionScheme, blockByteLength)

	geom := container.LevelGeometry{
		PixelWidth: hdr.PixelWidth, PixelHeight: hdr.PixelHeight, PixelDepth: hdr.PixelDepth,
		BlockDimensionX: 1, BlockDimensionY: 1, BlockDimensionZ: 1,
		BlockByteLength: uint32(blockByteLength),
		FaceCount:       hdr.FaceCount,
		LayerCount:      hdr.LayerCount,
	}
	if parsed != nil && parsed.Basic != nil {
		geom.BlockDimensionX = uint32(parsed.Basic.TexelBlockDimensions[0])
		geom.BlockDimensionY = uint32(parsed.Basic.TexelBlockDimensions[1])
		geom.BlockDimensionZ = uint32(parsed.Basic.TexelBlockDimensions[2])
	}

	if hdr.VKFormat != vkformat.Undefined && hdr.SupercompressionScheme == 0 {
		firstLevelOffset := container.ExpectedFirstLevelOffset(hdr.Index)
		numLevels := container.EffectiveLevelCount(hdr.LevelCount)
		for level := uint32(0); level < numLevels; level++ {
			expectedOffset := geom.LevelOffset(firstLevelOffset, alignment, level, numLevels)
			if levels[level].ByteOffset != expectedOffset {
				report.Addf(issue.IssueLevelIndexByteOffsetMismatch, "level %d: offset %d, expected %d", level, levels[level].ByteOffset, expectedOffset)
			}
			expectedSize := geom.LevelSize(level)
			if levels[level].ByteLength != expectedSize {
				report.Addf(issue.IssueLevelIndexByteLengthMismatch, "level %d: byteLength %d, expected %d", level, levels[level].ByteLength, expectedSize)
			}
			if levels[level].UncompressedByteLength != expectedSize {
				report.Addf(issue.IssueLevelIndexUncompressedByteLengthMismatch, "level %d: uncompressedByteLength %d, expected %d", level, levels[level].UncompressedByteLength, expectedSize)
			}
		}
	}
}

func validateReservedKeys(report *issue.Report, entries []metadata.KeyValue, hdr *container.Header) {
	vkFormatUndefined := hdr.VKFormat == vkformat.Undefined
	_, hasWriter := metadata.Lookup(entries, "KTXwriter")

	for _, kv := range entries {
		switch kv.Key {
		case "KTXcubemapIncomplete":
			for _, iss := range metadata.ValidateKTXcubemapIncomplete(kv.Value, hdr.FaceCount, hdr.LayerCount) {
				report.Add(iss)
			}
		case "KTXorientation":
			dims := 2
			if hdr.PixelDepth != 0 {
				dims = 3
			}
			for _, iss := range metadata.ValidateKTXorientation(kv.Value, dims) {
				report.Add(iss)
			}
		case "KTXswizzle":
			for _, iss := range metadata.ValidateKTXswizzle(kv.Value) {
				report.Add(iss)
			}
		case "KTXwriter":
			for _, iss := range metadata.ValidateKTXwriter(kv.Value) {
				report.Add(iss)
			}
		case "KTXwriterScParams":
			for _, iss := range metadata.ValidateKTXwriterScParams(hasWriter) {
				report.Add(iss)
			}
		case "KTXglFormat":
			for _, iss := range metadata.ValidateKTXglFormat(kv.Value, vkFormatUndefined) {
				report.Add(iss)
			}
		case "KTXdxgiFormat__":
			for _, iss := range metadata.ValidateKTXdxgiFormat(kv.Value, vkFormatUndefined) {
				report.Add(iss)
			}
		case "KTXmetalPixelFormat":
			for _, iss := range metadata.ValidateKTXmetalPixelFormat(kv.Value, vkFormatUndefined) {
				report.Add(iss)
			}
		case "KTXastcDecodeMode":
			for _, iss := range metadata.ValidateKTXastcDecodeMode(kv.Value) {
				report.Add(iss)
			}
		case "KTXanimData":
			for _, iss := range metadata.ValidateKTXanimData(kv.Value) {
				report.Add(iss)
			}
		}
	}
}

func validatePaddings(report *issue.Report, hdr *container.Header, data []byte) {
	position := uint64(container.HeaderLength) + uint64(container.EffectiveLevelCount(hdr.LevelCount))*container.LevelIndexEntryLength
	check := func(offset uint64, length uint64) {
		if offset == 0 || length == 0 {
			return
		}
		if offset < position {
			if offset+length > position {
				position = offset + length
			}
			return
		}
		for i := position; i < offset; i++ {
			if i < uint64(len(data)) && data[i] != 0 {
				report.Addf(issue.Issue{Code: 7011, Severity: issue.SeverityError, Message: "Padding byte is not zero."}, "offset %d", i)
				break
			}
		}
		position = offset + length
	}
	check(uint64(hdr.Index.DFDByteOffset), uint64(hdr.Index.DFDByteLength))
	check(uint64(hdr.Index.KVDByteOffset), uint64(hdr.Index.KVDByteLength))
	check(hdr.Index.SGDByteOffset, hdr.Index.SGDByteLength)
}

func validateGLTFBasisUProfile(report *issue.Report, hdr *container.Header, parsed *dfd.DFD) {
	if hdr.SupercompressionScheme != 1 { // 1 == BasisLZ
		report.Add(issue.IssueGLTFInvalidSupercompressionScheme)
	}
	if hdr.PixelDepth != 0 || hdr.LayerCount != 0 {
		report.Add(issue.IssueGLTFTypeMustBe2D)
	}
	if hdr.PixelWidth%4 != 0 || hdr.PixelHeight%4 != 0 {
		report.Add(issue.IssueGLTFDimensionsNotMultipleOf4)
	}
	if parsed != nil && parsed.Basic != nil && parsed.Basic.ColorModel != dfd.ColorModelETC1S {
		report.Add(issue.IssueGLTFInvalidColorModel)
	}
}
