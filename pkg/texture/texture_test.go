package texture

import (
	"errors"
	"testing"

	"github.com/ktx2tools/ktx2go/pkg/dfd"
	"github.com/ktx2tools/ktx2go/pkg/ktxio"
	"github.com/ktx2tools/ktx2go/pkg/metadata"
	"github.com/ktx2tools/ktx2go/pkg/vkformat"
)

var errStop = errors.New("stop")

func buildTestTexture(t *testing.T) *Texture {
	t.Helper()
	format := vkformat.R8G8B8A8Unorm
	basic, err := dfd.Synthesize(format, 0)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	return &Texture{
		VKFormat:    format,
		TypeSize:    1,
		PixelWidth:  4,
		PixelHeight: 4,
		FaceCount:   1,
		DFD:         &dfd.DFD{Basic: basic},
		KV:          []metadata.KeyValue{{Key: "KTXwriter", Value: []byte("ktx2go_test\x00")}},
		Levels:      []Level{{Index: 0, Data: make([]byte, 4*4*4)}},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := buildTestTexture(t)
	for i := range original.Levels[0].Data {
		original.Levels[0].Data[i] = byte(i)
	}

	blob, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Decode(blob)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if decoded.VKFormat != original.VKFormat {
		t.Errorf("VKFormat = %v, want %v", decoded.VKFormat, original.VKFormat)
	}
	if decoded.PixelWidth != original.PixelWidth || decoded.PixelHeight != original.PixelHeight {
		t.Errorf("dimensions = %dx%d, want %dx%d", decoded.PixelWidth, decoded.PixelHeight, original.PixelWidth, original.PixelHeight)
	}
	if len(decoded.Levels) != 1 {
		t.Fatalf("expected 1 level, got %d", len(decoded.Levels))
	}
	if string(decoded.Levels[0].Data) != string(original.Levels[0].Data) {
		t.Error("level payload mismatch after round trip")
	}
	v, ok := metadata.Lookup(decoded.KV, "KTXwriter")
	if !ok || string(v) != "ktx2go_test\x00" {
		t.Errorf("KTXwriter metadata lost in round trip: %q, %v", v, ok)
	}
}

func TestDecodeLazyDefersLevelLoad(t *testing.T) {
	original := buildTestTexture(t)
	blob, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	lazy, err := DecodeLazy(blob)
	if err != nil {
		t.Fatalf("DecodeLazy: %v", err)
	}
	if lazy.Levels[0].Data != nil {
		t.Error("expected level data to be nil before Load")
	}
	if err := lazy.Load(0); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lazy.Levels[0].Data == nil {
		t.Error("expected level data to be populated after Load")
	}
}

func TestIterateLevelFacesVisitsEveryTuple(t *testing.T) {
	tex := buildTestTexture(t)
	tex.LayerCount = 2
	tex.Levels[0].Data = make([]byte, 4*4*4*2) // two layers worth

	var visited []LevelFace
	err := tex.IterateLevelFaces(func(lf LevelFace) error {
		visited = append(visited, lf)
		return nil
	})
	if err != nil {
		t.Fatalf("IterateLevelFaces: %v", err)
	}
	if len(visited) != 2 {
		t.Fatalf("expected 2 (layer,face) tuples, got %d", len(visited))
	}
	if visited[0].Layer != 0 || visited[1].Layer != 1 {
		t.Errorf("unexpected layer order: %+v", visited)
	}
}

func TestIterateLevelFacesStopsOnError(t *testing.T) {
	tex := buildTestTexture(t)
	tex.LayerCount = 3
	tex.Levels[0].Data = make([]byte, 4*4*4*3)

	calls := 0
	err := tex.IterateLevelFaces(func(lf LevelFace) error {
		calls++
		if calls == 1 {
			return errStop
		}
		return nil
	})
	if err != errStop {
		t.Fatalf("expected errStop, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected iteration to stop after 1 call, got %d", calls)
	}
}

func TestEncodeDecodeStreamRoundTrip(t *testing.T) {
	original := buildTestTexture(t)
	for i := range original.Levels[0].Data {
		original.Levels[0].Data[i] = byte(i)
	}

	mem := ktxio.NewMemStream(nil)
	if err := EncodeToStream(original, mem); err != nil {
		t.Fatalf("EncodeToStream: %v", err)
	}

	decoded, err := DecodeStream(mem)
	if err != nil {
		t.Fatalf("DecodeStream: %v", err)
	}
	if string(decoded.Levels[0].Data) != string(original.Levels[0].Data) {
		t.Error("level payload mismatch after stream round trip")
	}
}

func TestEncodeRejectsMissingDFD(t *testing.T) {
	tex := buildTestTexture(t)
	tex.DFD = nil
	if _, err := Encode(tex); err == nil {
		t.Error("expected Encode to reject a texture with no basic DFD block")
	}
}
