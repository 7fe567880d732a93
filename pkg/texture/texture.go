// Package texture assembles a full KTX2 texture object out of the
// lower-level container/dfd/metadata/supercompression packages: the
// decode and encode paths, and a lazy level/face iterator using a
// retained source buffer and per-level load-on-demand.
package texture

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ktx2tools/ktx2go/pkg/container"
	"github.com/ktx2tools/ktx2go/pkg/dfd"
	"github.com/ktx2tools/ktx2go/pkg/issue"
	"github.com/ktx2tools/ktx2go/pkg/ktxerrors"
	"github.com/ktx2tools/ktx2go/pkg/ktxio"
	"github.com/ktx2tools/ktx2go/pkg/metadata"
	"github.com/ktx2tools/ktx2go/pkg/supercompression"
	"github.com/ktx2tools/ktx2go/pkg/vkformat"
)

// Option configures Decode/DecodeLazy beyond their required data argument.
type Option func(*decodeConfig)

type decodeConfig struct {
	report func(issue.Issue)
}

// WithReportFunc registers a callback invoked with every non-fatal issue
// the decode path encounters while parsing the DFD and key/value
// metadata, so callers that want the full issue stream (rather than the
// single collapsed error Decode otherwise returns) can still see it.
func WithReportFunc(fn func(issue.Issue)) Option {
	return func(c *decodeConfig) { c.report = fn }
}

// Level holds one mip level's raw (still supercompressed, if
// applicable) payload bytes alongside its index-entry bookkeeping.
type Level struct {
	Index                  uint32
	ByteOffset             uint64
	ByteLength             uint64
	UncompressedByteLength uint64
	// Data is nil under DecodeLazy until Load is called.
	Data []byte
}

// Texture is the fully assembled in-memory representation of a KTX2
// file: header fields, parsed DFD, key/value metadata, supercompression
// global data, and per-level payloads.
type Texture struct {
	VKFormat               vkformat.Format
	TypeSize               uint32
	PixelWidth             uint32
	PixelHeight            uint32
	PixelDepth             uint32
	LayerCount             uint32
	FaceCount              uint32
	SupercompressionScheme uint32

	DFD    *dfd.DFD
	KV     []metadata.KeyValue
	SGD    []byte
	Levels []Level

	source []byte // full file bytes, retained for DecodeLazy's Load
}

// Decode fully materializes a texture from data: every level's raw
// bytes are copied out immediately.
func Decode(data []byte, opts ...Option) (*Texture, error) {
	return decodeCommon(data, true, opts)
}

// DecodeLazy parses the header, DFD, and metadata eagerly but leaves
// level payloads unread until Load is called on each Level; data must
// remain valid for the lifetime of the returned Texture.
func DecodeLazy(data []byte, opts ...Option) (*Texture, error) {
	return decodeCommon(data, false, opts)
}

// DecodeStream materializes a texture by reading s fully into memory
// first (s.Seek(0, io.SeekStart) then io.ReadAll), the "materialized"
// construction mode: every level's bytes are copied out immediately,
// same as Decode. s is not closed; callers that opened it own it.
func DecodeStream(s ktxio.Stream, opts ...Option) (*Texture, error) {
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("texture: seek stream to start: %w", err)
	}
	data, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("texture: read stream: %w", err)
	}
	return Decode(data, opts...)
}

// EncodeToStream serializes t and writes the result to s starting at
// its current position. s is not closed; callers that opened it own it.
func EncodeToStream(t *Texture, s ktxio.Stream) error {
	blob, err := Encode(t)
	if err != nil {
		return err
	}
	if _, err := s.Write(blob); err != nil {
		return fmt.Errorf("texture: write stream: %w", err)
	}
	return nil
}

func decodeCommon(data []byte, eager bool, opts []Option) (*Texture, error) {
	cfg := &decodeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if err := container.CheckIdentifier(data); err != nil {
		return nil, err
	}
	r := bytes.NewReader(data[12:])
	hdr, err := container.ReadHeader(r)
	if err != nil {
		return nil, err
	}

	numLevels := container.EffectiveLevelCount(hdr.LevelCount)
	levelIndexOffset := int(container.HeaderLength)
	levelIndexSize := int(numLevels) * container.LevelIndexEntryLength
	if levelIndexOffset+levelIndexSize > len(data) {
		return nil, ktxerrors.ErrUnexpectEOF
	}
	levelReader := bytes.NewReader(data[levelIndexOffset : levelIndexOffset+levelIndexSize])
	rawLevels, err := container.ReadLevelIndex(levelReader, numLevels)
	if err != nil {
		return nil, err
	}

	t := &Texture{
		VKFormat:               hdr.VKFormat,
		TypeSize:               hdr.TypeSize,
		PixelWidth:             hdr.PixelWidth,
		PixelHeight:            hdr.PixelHeight,
		PixelDepth:             hdr.PixelDepth,
		LayerCount:             hdr.LayerCount,
		FaceCount:              hdr.FaceCount,
		SupercompressionScheme: hdr.SupercompressionScheme,
		source:                 data,
	}

	invalid := false
	if hdr.Index.DFDByteLength > 0 {
		end := uint64(hdr.Index.DFDByteOffset) + uint64(hdr.Index.DFDByteLength)
		if end > uint64(len(data)) {
			return nil, ktxerrors.ErrUnexpectEOF
		}
		parsed, issues := dfd.Parse(data[hdr.Index.DFDByteOffset:end])
		for _, iss := range issues {
			if iss.Severity == issue.SeverityFatal {
				return nil, fmt.Errorf("texture: fatal DFD issue: %s", iss.Message)
			}
			if cfg.report != nil {
				cfg.report(iss)
			} else if iss.Severity >= issue.SeverityError {
				invalid = true
			}
		}
		t.DFD = parsed
	}

	if hdr.Index.KVDByteLength > 0 {
		end := uint64(hdr.Index.KVDByteOffset) + uint64(hdr.Index.KVDByteLength)
		if end > uint64(len(data)) {
			return nil, ktxerrors.ErrUnexpectEOF
		}
		entries, issues := metadata.Parse(data[hdr.Index.KVDByteOffset:end])
		for _, iss := range issues {
			if cfg.report != nil {
				cfg.report(iss)
			} else if iss.Severity >= issue.SeverityError {
				invalid = true
			}
		}
		t.KV = entries
	}
	if invalid {
		return nil, ktxerrors.ErrInvalidFile
	}

	if hdr.Index.SGDByteLength > 0 {
		end := hdr.Index.SGDByteOffset + hdr.Index.SGDByteLength
		if end > uint64(len(data)) {
			return nil, ktxerrors.ErrUnexpectEOF
		}
		t.SGD = data[hdr.Index.SGDByteOffset:end]
	}

	t.Levels = make([]Level, len(rawLevels))
	for i, rl := range rawLevels {
		t.Levels[i] = Level{Index: uint32(i), ByteOffset: rl.ByteOffset, ByteLength: rl.ByteLength, UncompressedByteLength: rl.UncompressedByteLength}
		if eager {
			if err := t.Levels[i].load(data); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// Load reads a lazily-decoded level's payload out of the Texture's
// retained source buffer. It is a no-op if the data is already present.
func (t *Texture) Load(levelIndex uint32) error {
	if int(levelIndex) >= len(t.Levels) {
		return fmt.Errorf("texture: level index %d out of range", levelIndex)
	}
	return t.Levels[levelIndex].load(t.source)
}

func (l *Level) load(source []byte) error {
	if l.Data != nil {
		return nil
	}
	end := l.ByteOffset + l.ByteLength
	if end > uint64(len(source)) {
		return ktxerrors.ErrUnexpectEOF
	}
	buf := make([]byte, l.ByteLength)
	copy(buf, source[l.ByteOffset:end])
	l.Data = buf
	return nil
}

// Decompressed returns level's payload after reversing the texture's
// supercompression scheme, routing through transcoder for BasisLZ data.
// UASTC data under any other scheme does not reach the transcoder.
func (t *Texture) Decompressed(levelIndex uint32, transcoder supercompression.BasisTranscoder) ([]byte, error) {
	if int(levelIndex) >= len(t.Levels) {
		return nil, fmt.Errorf("texture: level index %d out of range", levelIndex)
	}
	level := &t.Levels[levelIndex]
	if level.Data == nil {
		if err := level.load(t.source); err != nil {
			return nil, err
		}
	}

	scheme := supercompression.Scheme(t.SupercompressionScheme)
	decoder, err := supercompression.NewDecoder(scheme, transcoder)
	if err != nil {
		return nil, err
	}
	if bz, ok := decoder.(supercompression.BasisLZDecoder); ok {
		bz.SGD = t.SGD
		decoder = bz
	}

	result, err := decoder.Decode(level.Data, int(level.UncompressedByteLength))
	if err != nil {
		return nil, err
	}
	return result.Data, nil
}

// LevelFace is one (level, layer, face) tuple's slice of a level's raw
// payload, handed to IterateLevelFaces in canonical nested order.
type LevelFace struct {
	Level uint32
	Layer uint32
	Face  uint32
	Data  []byte
}

// IterateLevelFaces drains the texture's levels/layers/faces in the
// canonical nested order (level, then layer, then face), matching
// IterateLoadLevelFaces in the original tool: fn is called once per
// tuple and iteration stops at the first error fn returns.
func (t *Texture) IterateLevelFaces(fn func(LevelFace) error) error {
	next := t.levelFaceSequence()
	for {
		lf, ok := next()
		if !ok {
			return nil
		}
		if err := fn(lf); err != nil {
			return err
		}
	}
}

// levelFaceSequence returns a pull-based next() function over every
// (level, layer, face) tuple; IterateLevelFaces drains it. next reports
// false at the end of the sequence or when a level fails to load.
func (t *Texture) levelFaceSequence() func() (LevelFace, bool) {
	type coord struct{ level, layer, face uint32 }
	var coords []coord
	layerCount := maxUint32(1, t.LayerCount)
	faceCount := maxUint32(1, t.FaceCount)
	for level := range t.Levels {
		for layer := uint32(0); layer < layerCount; layer++ {
			for face := uint32(0); face < faceCount; face++ {
				coords = append(coords, coord{uint32(level), layer, face})
			}
		}
	}

	i := 0
	return func() (LevelFace, bool) {
		if i >= len(coords) {
			return LevelFace{}, false
		}
		c := coords[i]
		i++
		level := &t.Levels[c.level]
		if level.Data == nil {
			if err := level.load(t.source); err != nil {
				return LevelFace{}, false
			}
		}
		imageSize := uint64(len(level.Data)) / uint64(layerCount) / uint64(faceCount)
		offset := (uint64(c.layer)*uint64(faceCount) + uint64(c.face)) * imageSize
		return LevelFace{Level: c.level, Layer: c.layer, Face: c.face, Data: level.Data[offset : offset+imageSize]}, true
	}
}

func maxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// Encode serializes t back into a complete KTX2 byte stream, matching
// the region ordering header -> level index -> DFD -> KVD -> SGD ->
// level payloads (smallest mip first).
func Encode(t *Texture) ([]byte, error) {
	if t.DFD == nil || t.DFD.Basic == nil {
		return nil, fmt.Errorf("texture: cannot encode without a basic DFD block")
	}
	dfdBlob := t.DFD.Basic.Marshal()

	var kvdBlob []byte
	for _, kv := range t.KV {
		kvdBlob = append(kvdBlob, encodeKeyValueEntry(kv)...)
	}

	dfdOffset := container.ExpectedDFDOffset(uint32(len(t.Levels)))
	kvdOffset := container.ExpectedKVDOffset(dfdOffset, uint32(len(dfdBlob)))
	sgdOffset := uint64(0)
	if len(t.SGD) > 0 {
		sgdOffset = container.ExpectedSGDOffset(kvdOffset, uint32(len(kvdBlob)))
	}

	hdr := &container.Header{
		VKFormat:               t.VKFormat,
		TypeSize:               t.TypeSize,
		PixelWidth:             t.PixelWidth,
		PixelHeight:            t.PixelHeight,
		PixelDepth:             t.PixelDepth,
		LayerCount:             t.LayerCount,
		FaceCount:              t.FaceCount,
		LevelCount:             uint32(len(t.Levels)),
		SupercompressionScheme: t.SupercompressionScheme,
		Index: container.Index{
			DFDByteOffset: uint32(dfdOffset),
			DFDByteLength: uint32(len(dfdBlob)),
			KVDByteOffset: uint32(kvdOffset),
			KVDByteLength: uint32(len(kvdBlob)),
			SGDByteOffset: sgdOffset,
			SGDByteLength: uint64(len(t.SGD)),
		},
	}

	levelEntries := make([]container.LevelIndexEntry, len(t.Levels))
	levelPayload := new(bytes.Buffer)
	dataStart := sgdOffset + uint64(len(t.SGD))
	if dataStart == 0 {
		dataStart = kvdOffset + uint64(len(kvdBlob))
	}
	offset := container.Align(dataStart, 4)
	for i := len(t.Levels) - 1; i >= 0; i-- {
		lvl := t.Levels[i]
		levelEntries[i] = container.LevelIndexEntry{
			ByteOffset:             offset,
			ByteLength:             uint64(len(lvl.Data)),
			UncompressedByteLength: uint64(len(lvl.Data)),
		}
		levelPayload.Write(lvl.Data)
		offset += uint64(len(lvl.Data))
		offset = container.Align(offset, 4)
	}

	headerBytes, err := hdr.MarshalBinary()
	if err != nil {
		return nil, err
	}

	out := new(bytes.Buffer)
	out.Write(headerBytes)
	out.Write(container.WriteLevelIndex(levelEntries))
	out.Write(dfdBlob)
	out.Write(kvdBlob)
	out.Write(t.SGD)
	out.Write(levelPayload.Bytes())
	return out.Bytes(), nil
}

func encodeKeyValueEntry(kv metadata.KeyValue) []byte {
	pair := append([]byte(kv.Key), 0)
	pair = append(pair, kv.Value...)
	buf := new(bytes.Buffer)
	size := uint32(len(pair))
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(size >> 8))
	buf.WriteByte(byte(size >> 16))
	buf.WriteByte(byte(size >> 24))
	buf.Write(pair)
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}
