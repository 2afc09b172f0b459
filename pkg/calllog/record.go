// Package calllog recovers call history records from raw capture buffers.
//
// A capture is split into blocks, every block is read twice (once through the
// binary property list decoder and once through the byte pattern matchers)
// and the two views are merged. The merged candidates are then checked for
// identity, deduplicated and ordered by call time.
package calllog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ssargent/calltrace/pkg/extract"
)

// Direction of a call.
type Direction = extract.Direction

// Call directions
const (
	DirectionUnknown  = extract.DirectionUnknown
	DirectionIncoming = extract.DirectionIncoming
	DirectionOutgoing = extract.DirectionOutgoing
	DirectionMissed   = extract.DirectionMissed
	DirectionRejected = extract.DirectionRejected
	DirectionBlocked  = extract.DirectionBlocked
)

// ServiceType is the service that carried a call.
type ServiceType = extract.Service

// Service types
const (
	ServiceUnknown   = extract.ServiceUnknown
	ServiceTelephony = extract.ServiceTelephony
	ServiceFaceTime  = extract.ServiceFaceTime
)

// Source records which decoding paths contributed to a record.
type Source uint8

// Sources
const (
	SourceStructured Source = 1 << iota
	SourceHeuristic
)

// Has reports whether all bits of o are set.
func (s Source) Has(o Source) bool {
	return s&o == o
}

func (s Source) names() []string {
	names := []string{}
	if s.Has(SourceStructured) {
		names = append(names, "structured")
	}
	if s.Has(SourceHeuristic) {
		names = append(names, "heuristic")
	}
	return names
}

func (s Source) String() string {
	if s == 0 {
		return "none"
	}
	return strings.Join(s.names(), "+")
}

// MarshalJSON encodes the source as a list of path names.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.names())
}

// CallRecord is one recovered call. Optional fields are nil when neither
// decoding path recovered them.
type CallRecord struct {
	UniqueID        string      `json:"uniqueId"`
	PhoneNumber     *string     `json:"phoneNumber"`
	ContactName     *string     `json:"contactName"`
	Timestamp       *time.Time  `json:"timestamp"`
	DurationSeconds *float64    `json:"durationSeconds"`
	Direction       Direction   `json:"direction"`
	ServiceType     ServiceType `json:"serviceType"`
	JunkConfidence  *int        `json:"junkConfidence"`

	Location             *string `json:"location,omitempty"`
	ISOCountryCode       *string `json:"isoCountryCode,omitempty"`
	LocalParticipantUUID *string `json:"localParticipantUuid,omitempty"`
	ParticipantGroupUUID *string `json:"participantGroupUuid,omitempty"`

	Source Source `json:"source"`
	Offset int    `json:"offset"`
}
