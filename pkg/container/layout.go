package container

// Align rounds offset up to the next multiple of alignment. alignment
// must be a positive integer; it need not be a power of two (level
// alignment is the LCM of a block size and 4, which is not always a
// power of two).
func Align(offset uint64, alignment uint64) uint64 {
	if alignment == 0 {
		return offset
	}
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + (alignment - rem)
}

// LCM returns the least common multiple of a and b.
func LCM(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / GCD(a, b) * b
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LevelAlignment returns the required byte alignment for level data:
// 1 for any supercompression scheme other than None (supercompressed
// data has no meaningful block alignment), otherwise lcm(blockByteLength, 4).
func LevelAlignment(scheme uint32, blockByteLength uint8) uint64 {
	if scheme != 0 {
		return 1
	}
	return LCM(uint64(blockByteLength), 4)
}

func ceilDiv(a, b uint32) uint32 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// EffectiveLevelCount returns the number of on-wire level index entries
// and mip levels a header actually carries: a levelCount of 0 means
// runtime mip generation was requested, but the container still stores
// exactly one (full-size) level, so the effective count is max(1, levelCount).
func EffectiveLevelCount(levelCount uint32) uint32 {
	return maxU32(1, levelCount)
}

// LevelGeometry carries the per-level block geometry calcImageSize and
// friends need: it is derived once from the header and the (expected or
// parsed) DFD block dimensions/byte-plane-0 value.
type LevelGeometry struct {
	PixelWidth, PixelHeight, PixelDepth uint32
	BlockDimensionX, BlockDimensionY, BlockDimensionZ uint32 // logical (already +1)
	BlockByteLength                                  uint32
	FaceCount, LayerCount                             uint32
}

// ImageSize returns the byte size of one face/layer image at level.
func (g LevelGeometry) ImageSize(level uint32) uint64 {
	levelWidth := maxU32(1, g.PixelWidth>>level)
	levelHeight := maxU32(1, g.PixelHeight>>level)
	blockCountX := ceilDiv(levelWidth, g.BlockDimensionX)
	blockCountY := ceilDiv(levelHeight, g.BlockDimensionY)
	return uint64(blockCountX) * uint64(blockCountY) * uint64(g.BlockByteLength)
}

// LayerSize returns the byte size of one layer (all faces) at level.
// There are no 3D cubemaps, so either BlockDimensionZ's block count or
// FaceCount is 1, making the multiplication safe.
func (g LevelGeometry) LayerSize(level uint32) uint64 {
	levelDepth := maxU32(1, g.PixelDepth>>level)
	blockCountZ := ceilDiv(levelDepth, g.BlockDimensionZ)
	return g.ImageSize(level) * uint64(blockCountZ) * uint64(g.FaceCount)
}

// LevelSize returns the byte size of an entire level (all layers).
func (g LevelGeometry) LevelSize(level uint32) uint64 {
	return g.LayerSize(level) * uint64(maxU32(1, g.LayerCount))
}

// LevelOffset returns the expected byte offset of level within the
// file, given the first (highest-index, smallest-size) level's offset
// and the required alignment. Levels are stored largest-mip-first in
// the level index but the payload itself is ordered smallest-to-largest
// starting at firstLevelOffset, so this walks backward accumulating the
// sizes of every level below the target.
func (g LevelGeometry) LevelOffset(firstLevelOffset, alignment uint64, level, numLevels uint32) uint64 {
	offset := Align(firstLevelOffset, alignment)
	for i := numLevels - 1; i > level; i-- {
		offset += g.LevelSize(i)
		offset = Align(offset, alignment)
	}
	return offset
}

// ExpectedFirstLevelOffset returns the offset of the smallest (highest
// index) mip level's payload, which starts right after the supercompression
// global data if present, otherwise right after the key/value data.
func ExpectedFirstLevelOffset(idx Index) uint64 {
	if idx.SGDByteLength != 0 {
		return idx.SGDByteOffset + idx.SGDByteLength
	}
	return uint64(idx.KVDByteOffset) + uint64(idx.KVDByteLength)
}

// ExpectedDFDOffset returns the offset the Data Format Descriptor must
// start at: immediately after the level index. levelCount is the raw
// header value; a levelCount of 0 still reserves one on-wire level index
// entry (EffectiveLevelCount), so callers should not pre-clamp it.
func ExpectedDFDOffset(levelCount uint32) uint64 {
	return uint64(HeaderLength) + uint64(EffectiveLevelCount(levelCount))*LevelIndexEntryLength
}

// ExpectedKVDOffset returns the offset the Key/Value Data must start
// at: immediately after the Data Format Descriptor.
func ExpectedKVDOffset(dfdOffset uint64, dfdLength uint32) uint64 {
	return dfdOffset + uint64(dfdLength)
}

// ExpectedSGDOffset returns the offset the Supercompression Global Data
// must start at: the key/value data, 8-byte aligned.
func ExpectedSGDOffset(kvdOffset uint64, kvdLength uint32) uint64 {
	return Align(kvdOffset+uint64(kvdLength), 8)
}
