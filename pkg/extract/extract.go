// Package extract recovers call fields from raw record bytes by pattern
// matching. It is the fallback for blocks the structured decoder cannot read
// and the gap filler for fields it cannot reach.
//
// Every matcher is a pure function over one byte slice. A matcher reports a
// miss with ok == false; a miss in one matcher never affects another.
package extract

import (
	"time"

	"github.com/ssargent/calltrace/pkg/timestamp"
)

// Match is a recovered value and the half-open span [Start, End) it was
// read from.
type Match[T any] struct {
	Value T
	Start int
	End   int
}

// Direction of a call.
type Direction string

// Directions
const (
	DirectionUnknown  Direction = "unknown"
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
	DirectionMissed   Direction = "missed"
	DirectionRejected Direction = "rejected"
	DirectionBlocked  Direction = "blocked"
)

// Service that carried a call.
type Service string

// Services
const (
	ServiceUnknown   Service = "unknown"
	ServiceTelephony Service = "telephony"
	ServiceFaceTime  Service = "facetime"
)

// Fields holds everything the matchers recovered from one block. Zero values
// mean the field was not found.
type Fields struct {
	UniqueID        string
	PhoneNumber     string
	ContactName     string
	Timestamp       *time.Time
	DurationSeconds *float64
	Direction       Direction
	Service         Service
	JunkConfidence  *int
	Location        string
}

// Extractor runs every matcher over a block.
type Extractor struct {
	// TimestampMarker precedes the encoded call date.
	TimestampMarker []byte
}

// NewExtractor creates an extractor using the default timestamp marker.
func NewExtractor() Extractor {
	return Extractor{TimestampMarker: timestamp.DefaultMarker}
}

// Extract runs every matcher with the default configuration.
func Extract(b []byte) Fields {
	return NewExtractor().Extract(b)
}

// Extract runs every matcher over b.
func (e Extractor) Extract(b []byte) Fields {
	var f Fields

	if m, ok := UUID(b); ok {
		f.UniqueID = m.Value
	}
	if m, ok := Phone(b); ok {
		f.PhoneNumber = m.Value
	}
	if m, ok := ContactName(b); ok {
		f.ContactName = m.Value
	}
	if t, ok := timestamp.Find(b, e.TimestampMarker); ok {
		f.Timestamp = &t
	}
	if m, ok := Duration(b); ok {
		f.DurationSeconds = &m.Value
	}
	if m, ok := CallDirection(b); ok {
		f.Direction = m.Value
	}
	if m, ok := CallService(b); ok {
		f.Service = m.Value
	}
	if m, ok := JunkConfidence(b); ok {
		f.JunkConfidence = &m.Value
	}
	if m, ok := Location(b); ok {
		f.Location = m.Value
	}
	return f
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// before returns the byte preceding pos, or 0 at the start of b
func before(b []byte, pos int) byte {
	if pos <= 0 {
		return 0
	}
	return b[pos-1]
}

// at returns b[pos], or 0 past the end of b
func at(b []byte, pos int) byte {
	if pos >= len(b) {
		return 0
	}
	return b[pos]
}
