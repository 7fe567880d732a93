// Package metadata implements the Key/Value Data region: parsing the
// {size, key, \0, value} entry stream, the generic structural checks
// every entry is subject to, and the typed validators for the reserved
// KTX-prefixed keys.
package metadata

import (
	"bytes"
	"encoding/binary"
	"sort"
	"unicode/utf8"

	"github.com/ktx2tools/ktx2go/pkg/issue"
)

// KeyValue is one decoded entry from the Key/Value Data block.
type KeyValue struct {
	Key   string
	Value []byte
}

// MaxEntries caps how many entries Parse will individually validate;
// beyond this the remainder is skipped with a warning (issue 7001).
const MaxEntries = 100

// Parse decodes the raw KVD blob into an ordered list of entries,
// reporting structural issues: truncated entries, empty keys, missing
// null terminators, non-UTF-8 keys, and out-of-order/duplicate keys
// (7012/7013).
func Parse(data []byte) ([]KeyValue, []issue.Issue) {
	var issues []issue.Issue
	var entries []KeyValue
	seen := make(map[string]bool)

	offset := 0
	count := 0
	for offset < len(data) {
		remaining := len(data) - offset
		count++
		if count > MaxEntries {
			issues = append(issues, issue.IssueTooManyKVEntries)
			break
		}
		if remaining < 6 {
			issues = append(issues, issue.Issue{Code: 7005, Severity: issue.SeverityError,
				Message: "Not enough data left in the KVD block for another entry."})
			break
		}

		entrySize := binary.LittleEndian.Uint32(data[offset : offset+4])
		pairStart := offset + 4
		pairEnd := pairStart + int(entrySize)
		if entrySize < 2 {
			issues = append(issues, issue.Issue{Code: 7006, Severity: issue.SeverityError,
				Message: "Key and value byteLength is too small."})
			offset = pairStart
			continue
		}
		if pairEnd > len(data) {
			issues = append(issues, issue.Issue{Code: 7007, Severity: issue.SeverityError,
				Message: "Key and value byteLength is too large for the remaining KVD block."})
			pairEnd = len(data)
		}

		pair := data[pairStart:pairEnd]
		nul := bytes.IndexByte(pair, 0)
		var key string
		var value []byte
		if nul < 0 {
			issues = append(issues, issue.Issue{Code: 7008, Severity: issue.SeverityError,
				Message: "Key is missing its null terminator."})
			key = string(pair)
		} else {
			key = string(pair[:nul])
			value = pair[nul+1:]
		}

		if key == "" {
			issues = append(issues, issue.IssueDuplicateKey.Withf("empty key"))
		} else {
			if !utf8.ValidString(key) {
				issues = append(issues, issue.Issue{Code: 7009, Severity: issue.SeverityError,
					Message: "Key is not valid UTF-8."}.Withf("key=%q", key))
			}
			if seen[key] {
				issues = append(issues, issue.IssueDuplicateKey.Withf("key=%q", key))
			}
			seen[key] = true
			entries = append(entries, KeyValue{Key: key, Value: value})
		}

		offset = pairStart + int(entrySize)
		offset = align4(offset)
	}

	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key }) {
		issues = append(issues, issue.IssueKVDNotSorted)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	}

	return entries, issues
}

func align4(offset int) int {
	if rem := offset % 4; rem != 0 {
		return offset + (4 - rem)
	}
	return offset
}

// Lookup returns the value for key, or (nil, false) if absent.
func Lookup(entries []KeyValue, key string) ([]byte, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}
