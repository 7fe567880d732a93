package dfd

import (
	"testing"

	"github.com/ktx2tools/ktx2go/pkg/vkformat"
)

func TestSynthesizeAndParseRoundTrip(t *testing.T) {
	basic, err := Synthesize(vkformat.R8G8B8A8Unorm, 0)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	blob := basic.Marshal()

	parsed, issues := Parse(blob)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues parsing synthesized DFD: %v", issues)
	}
	if parsed.Basic == nil {
		t.Fatal("expected a parsed basic block")
	}
	if parsed.Basic.ColorModel != basic.ColorModel {
		t.Errorf("colorModel = %v, want %v", parsed.Basic.ColorModel, basic.ColorModel)
	}
	if parsed.Basic.TexelBlockDimensions != basic.TexelBlockDimensions {
		t.Errorf("texelBlockDimensions = %v, want %v", parsed.Basic.TexelBlockDimensions, basic.TexelBlockDimensions)
	}
	if len(parsed.Basic.Samples) != len(basic.Samples) {
		t.Errorf("sample count = %d, want %d", len(parsed.Basic.Samples), len(basic.Samples))
	}
}

func TestParseRejectsTruncatedHeader(t *testing.T) {
	_, issues := Parse([]byte{1, 2, 3})
	if len(issues) == 0 {
		t.Fatal("expected an issue for truncated DFD data")
	}
	if issues[0].Code != 6004 {
		t.Errorf("code = %d, want 6004", issues[0].Code)
	}
}

func TestParseDetectsTotalSizeMismatch(t *testing.T) {
	basic, _ := Synthesize(vkformat.R8G8B8A8Unorm, 0)
	blob := basic.Marshal()
	blob[0] = 0xFF // corrupt dfdTotalSize

	_, issues := Parse(blob)
	found := false
	for _, iss := range issues {
		if iss.Code == 6001 {
			found = true
		}
	}
	if !found {
		t.Error("expected dfdTotalSize mismatch issue 6001")
	}
}

func TestParseDetectsMissingBasicBlock(t *testing.T) {
	// A well-formed 4-byte totalSize header with no blocks at all.
	blob := []byte{4, 0, 0, 0}
	_, issues := Parse(blob)
	found := false
	for _, iss := range issues {
		if iss.Code == 6008 {
			found = true
		}
	}
	if !found {
		t.Error("expected missing-basic-block issue 6008")
	}
}

func TestCompareDetectsColorModelMismatch(t *testing.T) {
	expected, _ := Synthesize(vkformat.R8G8B8A8Unorm, 0)
	parsed := *expected
	parsed.ColorModel = ColorModelYUVSDA

	issues := Compare(&parsed, expected, vkformat.R8G8B8A8Unorm, CompareOptions{})
	found := false
	for _, iss := range issues {
		if iss.Code == 6015 {
			found = true
		}
	}
	if !found {
		t.Error("expected colorModel mismatch issue 6015")
	}
}

func TestCompareAllows422XAxisExemption(t *testing.T) {
	expected, _ := Synthesize(vkformat.G8B8G8R8422Unorm, 0)
	parsed := *expected
	parsed.TexelBlockDimensions[0] = expected.TexelBlockDimensions[0] + 1

	issues := Compare(&parsed, expected, vkformat.G8B8G8R8422Unorm, CompareOptions{Allow422XAxisExemption: true})
	for _, iss := range issues {
		if iss.Code == 6020 {
			t.Errorf("expected X-axis mismatch to be exempted, got issue: %v", iss)
		}
	}
}

func TestInterpretUndefinedAcceptsETC1S(t *testing.T) {
	block := &BasicBlock{ColorModel: ColorModelETC1S}
	if issues := InterpretUndefined(block, 1); len(issues) != 0 {
		t.Errorf("expected no issues for ETC1S colorModel, got %v", issues)
	}
}

func TestInterpretUndefinedRejectsUnrelatedColorModel(t *testing.T) {
	block := &BasicBlock{ColorModel: ColorModelRGBSDA}
	if issues := InterpretUndefined(block, 1); len(issues) == 0 {
		t.Error("expected issue 6018 for non-ETC1S/UASTC colorModel under BasisLZ")
	}
}

func TestCompareDetectsPerSampleFieldMismatch(t *testing.T) {
	expected, _ := Synthesize(vkformat.R8G8B8A8Unorm, 0)
	parsed := *expected
	parsed.Samples = append([]Sample(nil), expected.Samples...)
	parsed.Samples[1].BitOffset = expected.Samples[1].BitOffset + 1
	parsed.Samples[2].ChannelType = expected.Samples[2].ChannelType + 1

	issues := Compare(&parsed, expected, vkformat.R8G8B8A8Unorm, CompareOptions{})
	if len(parsed.Samples) != len(expected.Samples) {
		t.Fatalf("test setup: sample counts differ, got %d want %d", len(parsed.Samples), len(expected.Samples))
	}
	var gotFields int
	for _, iss := range issues {
		if iss.Code == 6028 {
			gotFields++
		}
	}
	if gotFields != 2 {
		t.Errorf("expected 2 distinct per-sample field mismatches (bitOffset, channelType), got %d: %v", gotFields, issues)
	}
}

func TestUASTCSamplesTemplate(t *testing.T) {
	samples := UASTCSamples()
	if len(samples) != 1 || samples[0].BitLength != 128 || samples[0].BitOffset != 0 {
		t.Errorf("unexpected UASTC sample template: %+v", samples)
	}
}

func TestETC1SSamplesTemplate(t *testing.T) {
	samples := ETC1SSamples()
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].BitOffset != 0 || samples[0].BitLength != 64 {
		t.Errorf("unexpected ETC1S RGB sample: %+v", samples[0])
	}
	if samples[1].BitOffset != 64 || samples[1].BitLength != 64 {
		t.Errorf("unexpected ETC1S alpha sample: %+v", samples[1])
	}
}

func TestInterpretUndefinedDetectsUASTCSampleMismatch(t *testing.T) {
	block := &BasicBlock{ColorModel: ColorModelUASTC, Samples: []Sample{{BitOffset: 4, BitLength: 128}}}
	issues := InterpretUndefined(block, 0)
	found := false
	for _, iss := range issues {
		if iss.Code == 6028 {
			found = true
		}
	}
	if !found {
		t.Error("expected a 6028 sample mismatch for a UASTC block with wrong bitOffset")
	}
}

func TestInterpretUndefinedDetectsETC1SSampleMismatch(t *testing.T) {
	block := &BasicBlock{ColorModel: ColorModelETC1S, Samples: []Sample{
		{BitOffset: 0, BitLength: 64, ChannelType: channelETC1SRGB, Upper: 0xFFFFFFFF},
		{BitOffset: 64, BitLength: 32, ChannelType: channelETC1SAAA, Upper: 0xFFFFFFFF},
	}}
	issues := InterpretUndefined(block, 1)
	found := false
	for _, iss := range issues {
		if iss.Code == 6028 {
			found = true
		}
	}
	if !found {
		t.Error("expected a 6028 sample mismatch for an ETC1S alpha sample with wrong bitLength")
	}
}

func TestSynthesizeCompressedSampleHasQualifiersAndRange(t *testing.T) {
	basic, err := Synthesize(vkformat.BC4SnormBlock, 0)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(basic.Samples) != 1 {
		t.Fatalf("expected 1 sample for a block-compressed format, got %d", len(basic.Samples))
	}
	if basic.Samples[0].Qualifiers != QualifierSigned {
		t.Errorf("expected BC4_SNORM sample to carry the signed qualifier, got %v", basic.Samples[0].Qualifiers)
	}
	if basic.Samples[0].Upper != 0xFFFFFFFF {
		t.Errorf("expected full-range upper bound, got %#x", basic.Samples[0].Upper)
	}
}

func TestSampleMarshalUnmarshalRoundTrip(t *testing.T) {
	s := Sample{BitOffset: 8, BitLength: 16, ChannelType: 3, Qualifiers: QualifierSigned, Lower: 0, Upper: 65535}
	buf := s.marshal()
	got, err := unmarshalSample(buf)
	if err != nil {
		t.Fatalf("unmarshalSample: %v", err)
	}
	if got != s {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, s)
	}
}
