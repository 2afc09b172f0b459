// Package locator splits a raw capture into the byte ranges that each hold
// one embedded record block.
//
// A capture has no framing of its own. Blocks are found by searching for a
// marker and every block runs from its marker to the next marker, or to the
// end of the buffer. Marker bytes that happen to appear inside a payload
// produce spurious splits; callers are expected to tolerate the resulting
// undecodable ranges.
package locator

import (
	"bytes"
	"fmt"
)

var (
	// BplistMagic opens every binary property list block.
	BplistMagic = []byte("bplist00")

	// TransactionMarker delimits transactions in captures that tag them textually.
	TransactionMarker = []byte("CHTransaction")
)

// Marker names accepted by ForName.
const (
	MarkerBplist      = "bplist"
	MarkerTransaction = "transaction"
)

// Range is a half-open byte span [Start, End) of the input buffer.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Bytes returns the slice of buf covered by the range.
func (r Range) Bytes(buf []byte) []byte {
	return buf[r.Start:r.End]
}

// ForName resolves a configured marker name to its byte sequence.
func ForName(name string) ([]byte, error) {
	switch name {
	case "", MarkerBplist:
		return BplistMagic, nil
	case MarkerTransaction:
		return TransactionMarker, nil
	}
	return nil, fmt.Errorf("unknown marker %q (want %s or %s)", name, MarkerBplist, MarkerTransaction)
}

// Split returns one range per marker occurrence in buf, in buffer order.
// A buffer without the marker yields no ranges.
func Split(buf, marker []byte) []Range {
	if len(marker) == 0 {
		return nil
	}

	var starts []int
	for from := 0; from <= len(buf)-len(marker); {
		idx := bytes.Index(buf[from:], marker)
		if idx < 0 {
			break
		}
		starts = append(starts, from+idx)
		from += idx + len(marker)
	}

	ranges := make([]Range, len(starts))
	for i, start := range starts {
		end := len(buf)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		ranges[i] = Range{Start: start, End: end}
	}
	return ranges
}
