package extract

import (
	"bytes"
	"strconv"
)

const (
	// maxDuration is one day; longer values are treated as noise
	maxDuration = 86400
	maxJunk     = 100

	maxDurationDigits = 9
	junkGap           = 8
	maxJunkDigits     = 3
)

var (
	durationKey = []byte("duration")
	junkKey     = []byte("junkConfidence")
)

// Duration reads a call length in seconds written after the literal
// "duration" as an integer length prefix (0x10 for one byte, 0x11 for two
// bytes big-endian) followed by that many ASCII digits. Values outside
// [0, 86400) are rejected.
func Duration(b []byte) (Match[float64], bool) {
	for from := 0; ; {
		idx := bytes.Index(b[from:], durationKey)
		if idx < 0 {
			return Match[float64]{}, false
		}
		start := from + idx
		pos := start + len(durationKey)
		from = pos

		n, pos, ok := lengthMarked(b, pos)
		if !ok || n > maxDurationDigits {
			continue
		}
		digits := b[pos : pos+n]
		if !allDigits(digits) {
			continue
		}
		v, err := strconv.Atoi(string(digits))
		if err != nil || v >= maxDuration {
			continue
		}
		return Match[float64]{Value: float64(v), Start: start, End: pos + n}, true
	}
}

// lengthMarked decodes the integer length prefix at pos: 0x10 then one byte,
// or 0x11 then two bytes big-endian. It returns the length and the position of
// the first payload byte, and fails when the length is zero or the payload runs
// past the end of b.
func lengthMarked(b []byte, pos int) (int, int, bool) {
	var n int
	switch at(b, pos) {
	case 0x10:
		if pos+1 >= len(b) {
			return 0, 0, false
		}
		n, pos = int(b[pos+1]), pos+2
	case 0x11:
		if pos+2 >= len(b) {
			return 0, 0, false
		}
		n, pos = int(b[pos+1])<<8|int(b[pos+2]), pos+3
	default:
		return 0, 0, false
	}
	if n == 0 || pos+n > len(b) {
		return 0, 0, false
	}
	return n, pos, true
}

// JunkConfidence reads the spam score written after the literal
// "junkConfidence": up to eight non-digit bytes, then one to three digits
// not followed by another digit. Values above 100 are rejected.
func JunkConfidence(b []byte) (Match[int], bool) {
	for from := 0; ; {
		idx := bytes.Index(b[from:], junkKey)
		if idx < 0 {
			return Match[int]{}, false
		}
		start := from + idx
		pos := start + len(junkKey)
		from = pos

		gap := 0
		for pos < len(b) && !isDigit(b[pos]) && gap < junkGap {
			pos++
			gap++
		}
		end := pos
		for end < len(b) && isDigit(b[end]) {
			end++
		}
		if n := end - pos; n == 0 || n > maxJunkDigits {
			continue
		}
		v, err := strconv.Atoi(string(b[pos:end]))
		if err != nil || v > maxJunk {
			continue
		}
		return Match[int]{Value: v, Start: start, End: end}, true
	}
}

func allDigits(b []byte) bool {
	for _, c := range b {
		if !isDigit(c) {
			return false
		}
	}
	return true
}
