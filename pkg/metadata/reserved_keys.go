package metadata

import (
	"encoding/binary"
	"math/bits"

	"github.com/ktx2tools/ktx2go/pkg/issue"
)

// ValidateKTXcubemapIncomplete checks the cubemapIncomplete bitmask:
// exactly one byte, a non-empty, non-full subset of the 6 face bits,
// and faceCount/layerCount consistent with a partial cube map.
func ValidateKTXcubemapIncomplete(value []byte, faceCount, layerCount uint32) []issue.Issue {
	var issues []issue.Issue
	if len(value) != 1 {
		issues = append(issues, issue.IssueKTXcubemapIncomplete.Withf("size=%d, expected 1", len(value)))
		return issues
	}
	bitset := value[0]
	if bitset&^0x3F != 0 {
		issues = append(issues, issue.IssueKTXcubemapIncomplete.Withf("invalid bit set in 0x%02x", bitset))
	}
	popCount := bits.OnesCount8(bitset & 0x3F)
	if bitset == 0 {
		issues = append(issues, issue.IssueKTXcubemapIncomplete.Withf("no face bit set"))
	}
	if popCount == 6 {
		issues = append(issues, issue.Issue{Code: 7102, Severity: issue.SeverityWarning,
			Message: "KTXcubemapIncomplete has all 6 face bits set; a complete cube map should omit this key."})
	}
	if faceCount != 1 {
		issues = append(issues, issue.IssueKTXcubemapIncomplete.Withf("faceCount must be 1, got %d", faceCount))
	}
	if layerCount != 0 && uint32(popCount) != layerCount {
		issues = append(issues, issue.IssueKTXcubemapIncomplete.Withf("layerCount %d incompatible with %d set bits", layerCount, popCount))
	}
	return issues
}

// ValidateKTXorientation checks the orientation string: one byte per
// dimension from {rl}{du}{oi} (as many letters as pixelDepth>0 implies
// dimensions), NUL-terminated.
func ValidateKTXorientation(value []byte, dimensionCount int) []issue.Issue {
	var issues []issue.Issue
	s := value
	if len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	} else {
		issues = append(issues, issue.IssueKTXorientation.Withf("missing null terminator"))
	}
	if len(s) != dimensionCount {
		issues = append(issues, issue.IssueKTXorientation.Withf("length %d, expected %d dimensions", len(s), dimensionCount))
		return issues
	}
	axisChars := [][2]byte{{'r', 'l'}, {'d', 'u'}, {'o', 'i'}}
	for i := 0; i < len(s) && i < len(axisChars); i++ {
		if s[i] != axisChars[i][0] && s[i] != axisChars[i][1] {
			issues = append(issues, issue.IssueKTXorientation.Withf("axis %d has invalid value %q", i, s[i]))
		}
	}
	return issues
}

// ValidateKTXswizzle checks the 4-character, NUL-terminated swizzle
// string, each character one of {rgba01}.
func ValidateKTXswizzle(value []byte) []issue.Issue {
	var issues []issue.Issue
	s := value
	if len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	} else {
		issues = append(issues, issue.IssueKTXswizzle.Withf("missing null terminator"))
	}
	if len(s) != 4 {
		issues = append(issues, issue.IssueKTXswizzle.Withf("length %d, expected 4", len(s)))
		return issues
	}
	for i, c := range s {
		switch c {
		case 'r', 'g', 'b', 'a', '0', '1':
		default:
			issues = append(issues, issue.IssueKTXswizzle.Withf("char %d is %q, must be one of rgba01", i, c))
		}
	}
	return issues
}

// ValidateKTXwriter checks that the KTXwriter value is a non-empty,
// NUL-terminated UTF-8 string.
func ValidateKTXwriter(value []byte) []issue.Issue {
	var issues []issue.Issue
	if len(value) == 0 {
		issues = append(issues, issue.IssueKTXwriter.Withf("empty value"))
		return issues
	}
	if value[len(value)-1] != 0 {
		issues = append(issues, issue.IssueKTXwriter.Withf("missing null terminator"))
	}
	return issues
}

// ValidateKTXwriterScParams enforces the original tool's rule that
// KTXwriterScParams must not appear without a sibling KTXwriter key.
func ValidateKTXwriterScParams(hasWriter bool) []issue.Issue {
	var issues []issue.Issue
	if !hasWriter {
		issues = append(issues, issue.IssueKTXwriterScParamsWithoutWriter)
	}
	return issues
}

// ValidateKTXglFormat checks that KTXglFormat (glInternalformat,
// glFormat, glType, each a uint32) is only present alongside
// VK_FORMAT_UNDEFINED, and has the expected 12-byte size.
func ValidateKTXglFormat(value []byte, vkFormatIsUndefined bool) []issue.Issue {
	var issues []issue.Issue
	if !vkFormatIsUndefined {
		issues = append(issues, issue.IssueKTXglFormat.Withf("present alongside a non-UNDEFINED vkFormat"))
	}
	if len(value) != 12 {
		issues = append(issues, issue.IssueKTXglFormat.Withf("size=%d, expected 12", len(value)))
	}
	return issues
}

// ValidateKTXdxgiFormat checks KTXdxgiFormat__'s 4-byte DXGI_FORMAT
// value is present only for VK_FORMAT_UNDEFINED textures.
func ValidateKTXdxgiFormat(value []byte, vkFormatIsUndefined bool) []issue.Issue {
	var issues []issue.Issue
	if !vkFormatIsUndefined {
		issues = append(issues, issue.IssueKTXdxgiFormat.Withf("present alongside a non-UNDEFINED vkFormat"))
	}
	if len(value) != 4 {
		issues = append(issues, issue.IssueKTXdxgiFormat.Withf("size=%d, expected 4", len(value)))
		return issues
	}
	dxgiFormat := binary.LittleEndian.Uint32(value)
	if dxgiFormat == 0 {
		issues = append(issues, issue.IssueKTXdxgiFormat.Withf("DXGI_FORMAT_UNKNOWN is not a valid value"))
	}
	return issues
}

// ValidateKTXmetalPixelFormat checks the 4-byte MTLPixelFormat value is
// present only for VK_FORMAT_UNDEFINED textures.
func ValidateKTXmetalPixelFormat(value []byte, vkFormatIsUndefined bool) []issue.Issue {
	var issues []issue.Issue
	if !vkFormatIsUndefined {
		issues = append(issues, issue.IssueKTXmetalPixelFormat.Withf("present alongside a non-UNDEFINED vkFormat"))
	}
	if len(value) != 4 {
		issues = append(issues, issue.IssueKTXmetalPixelFormat.Withf("size=%d, expected 4", len(value)))
	}
	return issues
}

// ValidateKTXastcDecodeMode checks the single-byte enum is one of the
// two recognized decode modes.
func ValidateKTXastcDecodeMode(value []byte) []issue.Issue {
	var issues []issue.Issue
	if len(value) != 1 {
		issues = append(issues, issue.IssueKTXastcDecodeMode.Withf("size=%d, expected 1", len(value)))
		return issues
	}
	switch value[0] {
	case 0, 1: // rgba8 / unorm8 decode hints
	default:
		issues = append(issues, issue.IssueKTXastcDecodeMode.Withf("unrecognized mode %d", value[0]))
	}
	return issues
}

// ValidateKTXanimData checks the 12-byte {duration, timescale, loopcount}
// triple.
func ValidateKTXanimData(value []byte) []issue.Issue {
	var issues []issue.Issue
	if len(value) != 12 {
		issues = append(issues, issue.IssueKTXanimData.Withf("size=%d, expected 12", len(value)))
		return issues
	}
	timescale := binary.LittleEndian.Uint32(value[4:8])
	if timescale == 0 {
		issues = append(issues, issue.IssueKTXanimData.Withf("timescale must not be 0"))
	}
	return issues
}
