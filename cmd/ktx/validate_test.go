package main

import (
	"testing"

	"github.com/ktx2tools/ktx2go/pkg/container"
)

func TestTotalImageCountSingleLevel2D(t *testing.T) {
	hdr := &container.Header{LevelCount: 1, FaceCount: 1}
	if got := totalImageCount(hdr); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestTotalImageCountCubemapArray(t *testing.T) {
	hdr := &container.Header{LevelCount: 1, FaceCount: 6, LayerCount: 3}
	if got := totalImageCount(hdr); got != 18 {
		t.Errorf("got %d, want 18", got)
	}
}

func TestTotalImageCountHalvesDepthPerLevel(t *testing.T) {
	hdr := &container.Header{LevelCount: 3, FaceCount: 1, PixelDepth: 4}
	// level 0: depth 4, level 1: depth 2, level 2: depth 1 -> 7 total
	if got := totalImageCount(hdr); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}
