package vkformat

import "testing"

func TestLookupKnownFormat(t *testing.T) {
	info, ok := Lookup(R8G8B8A8Unorm)
	if !ok {
		t.Fatal("expected R8G8B8A8Unorm to be registered")
	}
	if info.BytesPerBlock != 4 || info.ChannelCount != 4 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestIsValid(t *testing.T) {
	if !R8G8B8A8Unorm.IsValid() {
		t.Error("R8G8B8A8Unorm should be valid")
	}
	if Format(0xdeadbeef).IsValid() {
		t.Error("unknown format should not be valid")
	}
}

func TestIsBlockCompressed(t *testing.T) {
	cases := []struct {
		f    Format
		want bool
	}{
		{BC7UnormBlock, true},
		{ASTC4x4UnormBlock, true},
		{R8G8B8A8Unorm, false},
	}
	for _, c := range cases {
		if got := c.f.IsBlockCompressed(); got != c.want {
			t.Errorf("%v.IsBlockCompressed() = %v, want %v", c.f, got, c.want)
		}
	}
}

func TestIs3DBlockCompressed(t *testing.T) {
	if !ASTC3x3x3UnormBlockEXT.Is3DBlockCompressed() {
		t.Error("ASTC 3x3x3 should be 3D block compressed")
	}
	if ASTC4x4UnormBlock.Is3DBlockCompressed() {
		t.Error("ASTC 4x4 2D should not be 3D block compressed")
	}
}

func TestIs422(t *testing.T) {
	if !G8B8G8R8422Unorm.Is422() {
		t.Error("G8B8G8R8_422_UNORM should be 422")
	}
	if R8G8B8A8Unorm.Is422() {
		t.Error("R8G8B8A8_UNORM should not be 422")
	}
}

func TestIsDepthOrStencil(t *testing.T) {
	if !D24UnormS8Uint.IsDepthOrStencil() {
		t.Error("D24_UNORM_S8_UINT should be depth/stencil")
	}
	if R8Unorm.IsDepthOrStencil() {
		t.Error("R8_UNORM should not be depth/stencil")
	}
}

func TestIsReservedExtension(t *testing.T) {
	if !Format(1000999000).IsReservedExtension() {
		t.Error("expected value in extension range to be reserved")
	}
	if Format(12345).IsReservedExtension() {
		t.Error("value below extension range should not be reserved")
	}
	if R8Unorm.IsReservedExtension() {
		t.Error("a known format should not be reported as reserved-extension")
	}
}

func TestTypeSizeCompressedIsOne(t *testing.T) {
	if BC7UnormBlock.TypeSize() != 1 {
		t.Errorf("compressed format typeSize should be 1, got %d", BC7UnormBlock.TypeSize())
	}
	if R32Sfloat.TypeSize() != 4 {
		t.Errorf("R32_SFLOAT typeSize should be 4, got %d", R32Sfloat.TypeSize())
	}
}

func TestStringUnknownFormat(t *testing.T) {
	s := Format(999999999).String()
	if s == "" {
		t.Error("expected non-empty string for unknown format")
	}
}

func TestIsProhibited(t *testing.T) {
	prohibitedFormats := []Format{
		R4G4UnormPack8,
		R4G4B4A4UnormPack16,
		B4G4R4A4UnormPack16,
		R5G6B5UnormPack16,
		B5G6R5UnormPack16,
		R5G5B5A1UnormPack16,
		B5G5R5A1UnormPack16,
		A1R5G5B5UnormPack16,
	}
	for _, f := range prohibitedFormats {
		if !f.IsProhibited() {
			t.Errorf("%v should be prohibited", f)
		}
		if f.IsValid() {
			t.Errorf("%v should not be valid", f)
		}
	}
	if R8G8B8A8Unorm.IsProhibited() {
		t.Error("R8G8B8A8Unorm should not be prohibited")
	}
}
