// Package timestamp decodes the epoch-relative time encoding used by archived
// call records: an 8 byte big-endian IEEE-754 double holding seconds since
// 2001-01-01T00:00:00Z.
//
// No timezone or calendar correction is applied. Some captures look shifted
// when compared with wall-clock time; correcting that is left to callers.
package timestamp

import (
	"bytes"
	"encoding/binary"
	"math"
	"time"
)

// Size is the encoded width of a timestamp.
const Size = 8

// Epoch is the reference instant of the encoding.
var Epoch = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultMarker introduces a timestamp inside a raw archive: the keyed-archiver
// key "NS.time" (ASCII string marker 'W') followed by the real marker '#'.
var DefaultMarker = []byte("WNS.time#")

// maxSeconds keeps conversions inside time.Duration range.
const maxSeconds = float64(math.MaxInt64 / int64(time.Second))

// FromSeconds converts seconds since Epoch to a UTC time.
func FromSeconds(secs float64) time.Time {
	whole, frac := math.Modf(secs)
	return Epoch.Add(time.Duration(whole) * time.Second).
		Add(time.Duration(frac * float64(time.Second))).UTC()
}

// Valid reports whether secs is a finite value FromSeconds can represent.
func Valid(secs float64) bool {
	return !math.IsNaN(secs) && !math.IsInf(secs, 0) && math.Abs(secs) < maxSeconds
}

// Decode converts the first 8 bytes of b. It fails when b is shorter than 8
// bytes or holds a non-finite value.
func Decode(b []byte) (time.Time, bool) {
	if len(b) < Size {
		return time.Time{}, false
	}
	secs := math.Float64frombits(binary.BigEndian.Uint64(b[:Size]))
	if !Valid(secs) {
		return time.Time{}, false
	}
	return FromSeconds(secs), true
}

// Encode writes t in the wire encoding.
func Encode(t time.Time) []byte {
	secs := t.Sub(Epoch).Seconds()
	buf := make([]byte, Size)
	binary.BigEndian.PutUint64(buf, math.Float64bits(secs))
	return buf
}

// Find locates the first marker in b and decodes the 8 bytes after it.
func Find(b, marker []byte) (time.Time, bool) {
	if len(marker) == 0 {
		return time.Time{}, false
	}
	for from := 0; from < len(b); {
		idx := bytes.Index(b[from:], marker)
		if idx < 0 {
			return time.Time{}, false
		}
		at := from + idx + len(marker)
		if t, ok := Decode(b[at:]); ok {
			return t, true
		}
		if len(b)-at < Size {
			return time.Time{}, false
		}
		from = at
	}
	return time.Time{}, false
}

// FindAll decodes every marker occurrence in b, in encounter order.
func FindAll(b, marker []byte) []time.Time {
	if len(marker) == 0 {
		return nil
	}
	var out []time.Time
	for from := 0; from < len(b); {
		idx := bytes.Index(b[from:], marker)
		if idx < 0 {
			break
		}
		at := from + idx + len(marker)
		if t, ok := Decode(b[at:]); ok {
			out = append(out, t)
		}
		from = at
	}
	return out
}
