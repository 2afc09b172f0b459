package calllog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ssargent/calltrace/pkg/bplist"
	"github.com/ssargent/calltrace/pkg/extract"
	"github.com/ssargent/calltrace/pkg/timestamp"
)

// ErrNotCallRecord reports a block that decoded cleanly but does not have the
// shape of an archived call record.
var ErrNotCallRecord = errors.New("calllog: not a call record")

// Recognized record keys
const (
	keyUniqueID            = "uniqueId"
	keyDuration            = "duration"
	keyCallType            = "callType"
	keyCallStatus          = "callStatus"
	keyOriginated          = "originated"
	keyAnswered            = "answered"
	keyDate                = "date"
	keyName                = "name"
	keyCallerID            = "callerId"
	keyCallerIDLocation    = "callerIdLocation"
	keyISOCountryCode      = "isoCountryCode"
	keyService             = "service"
	keyServiceProvider     = "serviceProvider"
	keyJunkConfidence      = "junkConfidence"
	keyLocalParticipant    = "localParticipantUUID"
	keyOutgoingParticipant = "outgoingLocalParticipantUUID"
	keyParticipantGroup    = "participantGroupUUID"
)

// Archive layout
const (
	keyRoot           = "root"
	keyArchiveTop     = "$top"
	keyArchiveObjects = "$objects"
	keyTime           = "NS.time"
	keyUUIDBytes      = "NS.uuidbytes"
	archiveNull       = "$null"
)

const (
	maxRecordDuration       = 86400
	maxRecordJunkConfidence = 100
)

// fields is what one decoding path recovered from a block. Zero values mean
// not found.
type fields struct {
	UniqueID             string
	Phone                string
	ContactName          string
	Timestamp            *time.Time
	DurationSeconds      *float64
	Direction            Direction
	Service              ServiceType
	JunkConfidence       *int
	Location             string
	ISOCountryCode       string
	LocalParticipantUUID string
	ParticipantGroupUUID string
}

// fromExtract adapts the pattern matcher output
func fromExtract(f extract.Fields) fields {
	return fields{
		UniqueID:        f.UniqueID,
		Phone:           f.PhoneNumber,
		ContactName:     f.ContactName,
		Timestamp:       f.Timestamp,
		DurationSeconds: f.DurationSeconds,
		Direction:       f.Direction,
		Service:         f.Service,
		JunkConfidence:  f.JunkConfidence,
		Location:        f.Location,
	}
}

// decodeStructured reads a block as a binary property list. Errors are either
// a *bplist.FormatError or ErrNotCallRecord.
func decodeStructured(dec *bplist.Decoder, data []byte) (fields, error) {
	v, err := dec.Decode(data)
	if err != nil {
		return fields{}, err
	}
	root, err := recordRoot(v)
	if err != nil {
		return fields{}, err
	}
	return mapRecord(root), nil
}

// recordRoot unwraps the record dictionary from either the plain
// {"root": {...}} form or a keyed archive.
func recordRoot(v bplist.Value) (bplist.Dictionary, error) {
	top, ok := v.(bplist.Dictionary)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T", ErrNotCallRecord, v)
	}

	if objects, ok := top[keyArchiveObjects].(bplist.Array); ok {
		return archiveRoot(top, objects)
	}

	root, ok := top.Dict(keyRoot)
	if !ok {
		return nil, fmt.Errorf("%w: no root dictionary", ErrNotCallRecord)
	}
	return root, nil
}

func archiveRoot(top bplist.Dictionary, objects bplist.Array) (bplist.Dictionary, error) {
	header, ok := top.Dict(keyArchiveTop)
	if !ok {
		return nil, fmt.Errorf("%w: archive without %s", ErrNotCallRecord, keyArchiveTop)
	}
	rootRef, ok := header[keyRoot].(bplist.UID)
	if !ok {
		return nil, fmt.Errorf("%w: archive root is not a reference", ErrNotCallRecord)
	}
	raw, ok := resolve(objects, rootRef).(bplist.Dictionary)
	if !ok {
		return nil, fmt.Errorf("%w: archive root %d is not a dictionary", ErrNotCallRecord, rootRef)
	}

	root := make(bplist.Dictionary, len(raw))
	for k, v := range raw {
		if r := resolve(objects, v); r != nil {
			root[k] = r
		}
	}
	return root, nil
}

// resolve follows one UID hop into objects. Dangling references and the
// archive's null marker resolve to nil.
func resolve(objects bplist.Array, v bplist.Value) bplist.Value {
	ref, ok := v.(bplist.UID)
	if !ok {
		return v
	}
	if uint64(ref) >= uint64(len(objects)) {
		return nil
	}
	if s, ok := objects[ref].(bplist.String); ok && s == archiveNull {
		return nil
	}
	return objects[ref]
}

func mapRecord(d bplist.Dictionary) fields {
	var f fields

	if s, ok := d.String(keyUniqueID); ok {
		if id, err := uuid.Parse(s); err == nil {
			f.UniqueID = extract.CanonicalUUID(id)
		}
	}
	if n, ok := d.Number(keyDuration); ok && n >= 0 && n <= maxRecordDuration {
		f.DurationSeconds = &n
	}
	if t, ok := recordDate(d[keyDate]); ok {
		f.Timestamp = &t
	}
	if n, ok := bplist.AsInt(d[keyJunkConfidence]); ok && n >= 0 && n <= maxRecordJunkConfidence {
		j := int(n)
		f.JunkConfidence = &j
	}

	f.Phone, _ = d.String(keyCallerID)
	f.ContactName, _ = d.String(keyName)
	f.Location, _ = d.String(keyCallerIDLocation)
	f.ISOCountryCode, _ = d.String(keyISOCountryCode)
	f.LocalParticipantUUID = uuidField(d[keyLocalParticipant])
	f.ParticipantGroupUUID = uuidField(d[keyParticipantGroup])

	f.Service = recordService(d)
	f.Direction = recordDirection(d)
	return f
}

func recordService(d bplist.Dictionary) ServiceType {
	for _, key := range []string{keyService, keyServiceProvider} {
		s, _ := d.String(key)
		switch {
		case strings.Contains(s, "Telephony"):
			return ServiceTelephony
		case strings.Contains(s, "FaceTime"):
			return ServiceFaceTime
		}
	}
	switch n, _ := bplist.AsInt(d[keyCallType]); n {
	case 1:
		return ServiceTelephony
	case 8, 16:
		return ServiceFaceTime
	}
	return ""
}

func recordDirection(d bplist.Dictionary) Direction {
	originated, hasOriginated := d.Bool(keyOriginated)
	answered, hasAnswered := d.Bool(keyAnswered)
	switch {
	case hasOriginated && originated:
		return DirectionOutgoing
	case hasAnswered && !answered:
		return DirectionMissed
	case hasOriginated || hasAnswered:
		return DirectionIncoming
	}

	switch v := d[keyCallStatus].(type) {
	case bplist.Integer:
		if dir, ok := extract.DirectionForTag(int64(v)); ok {
			return dir
		}
	case bplist.String:
		if m, ok := extract.CallDirection([]byte("callStatus " + v)); ok {
			return m.Value
		}
	}
	if uuidField(d[keyOutgoingParticipant]) != "" {
		return DirectionOutgoing
	}
	return ""
}

// recordDate accepts every encoding of the call date seen in archives.
func recordDate(v bplist.Value) (time.Time, bool) {
	var secs float64
	switch t := v.(type) {
	case bplist.Date:
		secs = float64(t)
	case bplist.Real:
		secs = float64(t)
	case bplist.Integer:
		secs = float64(t)
	case bplist.Data:
		if len(t) != timestamp.Size {
			return time.Time{}, false
		}
		return timestamp.Decode(t)
	case bplist.Dictionary:
		n, ok := t.Number(keyTime)
		if !ok {
			return time.Time{}, false
		}
		secs = n
	default:
		return time.Time{}, false
	}
	if !timestamp.Valid(secs) {
		return time.Time{}, false
	}
	return timestamp.FromSeconds(secs), true
}

// uuidField renders a 16 byte identifier stored as raw data or wrapped in
// an NS.uuidbytes dictionary.
func uuidField(v bplist.Value) string {
	if d, ok := v.(bplist.Dictionary); ok {
		v = d[keyUUIDBytes]
	}
	raw, ok := v.(bplist.Data)
	if !ok {
		return ""
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return ""
	}
	return extract.CanonicalUUID(id)
}
