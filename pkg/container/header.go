// Package container implements the KTX2 binary container codec: the
// 80-byte header, the level index, and the region-offset arithmetic
// shared by the writer, the reader, and the validator.
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ktx2tools/ktx2go/pkg/ktxerrors"
	"github.com/ktx2tools/ktx2go/pkg/vkformat"
)

// Identifier is the 12-byte magic every KTX2 file begins with.
var Identifier = [12]byte{0xAB, 0x4B, 0x54, 0x58, 0x20, 0x32, 0x30, 0xBB, 0x0D, 0x0A, 0x1A, 0x0A}

// HeaderLength is the fixed size, in bytes, of the KTX2 header.
const HeaderLength = 80

// LevelIndexEntryLength is the fixed size, in bytes, of one level index
// entry.
const LevelIndexEntryLength = 24

// Index holds the byte offset/length pairs for the three variable-size
// regions that follow the level index: the Data Format Descriptor, the
// Key/Value Data, and the Supercompression Global Data.
type Index struct {
	DFDByteOffset uint32
	DFDByteLength uint32
	KVDByteOffset uint32
	KVDByteLength uint32
	SGDByteOffset uint64
	SGDByteLength uint64
}

// Header is the fixed-size container-level metadata preceding the level
// index.
type Header struct {
	VKFormat               vkformat.Format
	TypeSize                uint32
	PixelWidth              uint32
	PixelHeight             uint32
	PixelDepth              uint32
	LayerCount              uint32
	FaceCount               uint32
	LevelCount              uint32
	SupercompressionScheme  uint32
	Index                   Index
}

// LevelIndexEntry describes one mip level's placement in the file.
type LevelIndexEntry struct {
	ByteOffset             uint64
	ByteLength             uint64
	UncompressedByteLength uint64
}

// ReadHeader parses the fixed 80-byte header (the 12-byte identifier
// must already have been consumed and verified by the caller via
// CheckIdentifier) from the next 68 bytes of r.
func ReadHeader(r *bytes.Reader) (*Header, error) {
	buf := make([]byte, HeaderLength-len(Identifier))
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ktxerrors.ErrUnexpectEOF, err)
	}
	h := &Header{
		VKFormat:               vkformat.Format(binary.LittleEndian.Uint32(buf[0:4])),
		TypeSize:               binary.LittleEndian.Uint32(buf[4:8]),
		PixelWidth:             binary.LittleEndian.Uint32(buf[8:12]),
		PixelHeight:            binary.LittleEndian.Uint32(buf[12:16]),
		PixelDepth:             binary.LittleEndian.Uint32(buf[16:20]),
		LayerCount:             binary.LittleEndian.Uint32(buf[20:24]),
		FaceCount:              binary.LittleEndian.Uint32(buf[24:28]),
		LevelCount:             binary.LittleEndian.Uint32(buf[28:32]),
		SupercompressionScheme: binary.LittleEndian.Uint32(buf[32:36]),
		Index: Index{
			DFDByteOffset: binary.LittleEndian.Uint32(buf[36:40]),
			DFDByteLength: binary.LittleEndian.Uint32(buf[40:44]),
			KVDByteOffset: binary.LittleEndian.Uint32(buf[44:48]),
			KVDByteLength: binary.LittleEndian.Uint32(buf[48:52]),
			SGDByteOffset: binary.LittleEndian.Uint64(buf[52:60]),
			SGDByteLength: binary.LittleEndian.Uint64(buf[60:68]),
		},
	}
	return h, nil
}

// CheckIdentifier reads and verifies the 12-byte magic at the start of
// data, returning ktxerrors.ErrNotKTX2 on mismatch.
func CheckIdentifier(data []byte) error {
	if len(data) < len(Identifier) {
		return ktxerrors.ErrUnexpectEOF
	}
	for i, b := range Identifier {
		if data[i] != b {
			return ktxerrors.ErrNotKTX2
		}
	}
	return nil
}

// MarshalBinary serializes the full 80-byte header, including the
// leading identifier.
func (h *Header) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(Identifier[:])
	fields := []uint32{
		uint32(h.VKFormat), h.TypeSize, h.PixelWidth, h.PixelHeight, h.PixelDepth,
		h.LayerCount, h.FaceCount, h.LevelCount, h.SupercompressionScheme,
		h.Index.DFDByteOffset, h.Index.DFDByteLength, h.Index.KVDByteOffset, h.Index.KVDByteLength,
	}
	for _, f := range fields {
		if err := binary.Write(buf, binary.LittleEndian, f); err != nil {
			return nil, err
		}
	}
	if err := binary.Write(buf, binary.LittleEndian, h.Index.SGDByteOffset); err != nil {
		return nil, err
	}
	if err := binary.Write(buf, binary.LittleEndian, h.Index.SGDByteLength); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadLevelIndex parses levelCount consecutive 24-byte entries.
func ReadLevelIndex(r *bytes.Reader, levelCount uint32) ([]LevelIndexEntry, error) {
	entries := make([]LevelIndexEntry, levelCount)
	buf := make([]byte, LevelIndexEntryLength)
	for i := range entries {
		if _, err := r.Read(buf); err != nil {
			return nil, fmt.Errorf("%w: level index entry %d: %v", ktxerrors.ErrUnexpectEOF, i, err)
		}
		entries[i] = LevelIndexEntry{
			ByteOffset:             binary.LittleEndian.Uint64(buf[0:8]),
			ByteLength:             binary.LittleEndian.Uint64(buf[8:16]),
			UncompressedByteLength: binary.LittleEndian.Uint64(buf[16:24]),
		}
	}
	return entries, nil
}

// WriteLevelIndex serializes entries in order.
func WriteLevelIndex(entries []LevelIndexEntry) []byte {
	buf := make([]byte, len(entries)*LevelIndexEntryLength)
	for i, e := range entries {
		off := i * LevelIndexEntryLength
		binary.LittleEndian.PutUint64(buf[off:off+8], e.ByteOffset)
		binary.LittleEndian.PutUint64(buf[off+8:off+16], e.ByteLength)
		binary.LittleEndian.PutUint64(buf[off+16:off+24], e.UncompressedByteLength)
	}
	return buf
}
