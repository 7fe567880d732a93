package metadata

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildEntry(key string, value []byte) []byte {
	pair := append([]byte(key), 0)
	pair = append(pair, value...)
	var buf bytes.Buffer
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(pair)))
	buf.Write(size[:])
	buf.Write(pair)
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func TestParseSortedUniqueEntries(t *testing.T) {
	data := append(buildEntry("KTXwriter", []byte("test\x00")), buildEntry("Zeta", []byte("value\x00"))...)
	entries, issues := Parse(data)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Key != "KTXwriter" || entries[1].Key != "Zeta" {
		t.Errorf("unexpected key order: %+v", entries)
	}
}

func TestParseDetectsOutOfOrder(t *testing.T) {
	data := append(buildEntry("Zeta", []byte("v\x00")), buildEntry("Alpha", []byte("v\x00"))...)
	_, issues := Parse(data)
	found := false
	for _, iss := range issues {
		if iss.Code == 7012 {
			found = true
		}
	}
	if !found {
		t.Error("expected out-of-order issue 7012")
	}
}

func TestParseDetectsDuplicateKey(t *testing.T) {
	data := append(buildEntry("Alpha", []byte("v\x00")), buildEntry("Alpha", []byte("v2\x00"))...)
	_, issues := Parse(data)
	found := false
	for _, iss := range issues {
		if iss.Code == 7013 {
			found = true
		}
	}
	if !found {
		t.Error("expected duplicate-key issue 7013")
	}
}

func TestLookup(t *testing.T) {
	entries := []KeyValue{{Key: "Foo", Value: []byte("bar")}}
	v, ok := Lookup(entries, "Foo")
	if !ok || string(v) != "bar" {
		t.Errorf("Lookup failed: %v, %v", v, ok)
	}
	if _, ok := Lookup(entries, "Missing"); ok {
		t.Error("expected Lookup to report absent key")
	}
}

func TestValidateKTXcubemapIncomplete(t *testing.T) {
	if issues := ValidateKTXcubemapIncomplete([]byte{0x3F}, 1, 0); len(issues) == 0 {
		t.Error("expected warning for all 6 bits set")
	}
	if issues := ValidateKTXcubemapIncomplete([]byte{0x01}, 1, 0); len(issues) != 0 {
		t.Errorf("expected no issues for a single valid face bit, got %v", issues)
	}
	if issues := ValidateKTXcubemapIncomplete([]byte{0, 0}, 1, 0); len(issues) == 0 {
		t.Error("expected issue for wrong size")
	}
}

func TestValidateKTXorientation(t *testing.T) {
	if issues := ValidateKTXorientation([]byte("rd\x00"), 2); len(issues) != 0 {
		t.Errorf("expected valid orientation, got %v", issues)
	}
	if issues := ValidateKTXorientation([]byte("xd\x00"), 2); len(issues) == 0 {
		t.Error("expected invalid axis value to be flagged")
	}
}

func TestValidateKTXswizzle(t *testing.T) {
	if issues := ValidateKTXswizzle([]byte("rgba\x00")); len(issues) != 0 {
		t.Errorf("expected valid swizzle, got %v", issues)
	}
	if issues := ValidateKTXswizzle([]byte("xyz1\x00")); len(issues) == 0 {
		t.Error("expected invalid swizzle char to be flagged")
	}
}

func TestValidateKTXwriterScParams(t *testing.T) {
	if issues := ValidateKTXwriterScParams(false); len(issues) == 0 {
		t.Error("expected issue when KTXwriterScParams present without KTXwriter")
	}
	if issues := ValidateKTXwriterScParams(true); len(issues) != 0 {
		t.Errorf("expected no issue when KTXwriter present, got %v", issues)
	}
}

func TestValidateKTXanimData(t *testing.T) {
	valid := make([]byte, 12)
	binary.LittleEndian.PutUint32(valid[4:8], 30)
	if issues := ValidateKTXanimData(valid); len(issues) != 0 {
		t.Errorf("expected valid anim data, got %v", issues)
	}
	zero := make([]byte, 12)
	if issues := ValidateKTXanimData(zero); len(issues) == 0 {
		t.Error("expected issue for zero timescale")
	}
}
