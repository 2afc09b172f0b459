package extract

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// maxLocationLen bounds a caller-id location; longer payloads are noise
const maxLocationLen = 128

var locationKey = []byte("callerIdLocation")

// Location reads the caller-id location written after the literal
// "callerIdLocation" with the same length prefix as Duration. The payload must
// be printable UTF-8 and is returned with surrounding spaces trimmed.
func Location(b []byte) (Match[string], bool) {
	for from := 0; ; {
		idx := bytes.Index(b[from:], locationKey)
		if idx < 0 {
			return Match[string]{}, false
		}
		start := from + idx
		pos := start + len(locationKey)
		from = pos

		n, pos, ok := lengthMarked(b, pos)
		if !ok || n > maxLocationLen {
			continue
		}
		payload := b[pos : pos+n]
		if !printable(payload) {
			continue
		}
		value := string(bytes.TrimSpace(payload))
		if value == "" {
			continue
		}
		return Match[string]{Value: value, Start: start, End: pos + n}, true
	}
}

func printable(b []byte) bool {
	if !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
