package calllog

import (
	"sort"

	"github.com/ssargent/calltrace/pkg/phone"
)

// blockResult is everything one block produced before identity checks
type blockResult struct {
	offset    int
	merged    fields
	source    Source
	decodeErr error
	shapeErr  error
}

// prefer returns s when set, otherwise h, and records which path it used
func prefer[T comparable](s, h T, src *Source) T {
	var zero T
	if s != zero {
		*src |= SourceStructured
		return s
	}
	if h != zero {
		*src |= SourceHeuristic
	}
	return h
}

// merge lets structured fields win and fills their gaps from the matchers.
// Phone numbers are normalized per path so an unusable structured caller id
// does not hide a usable heuristic one.
func merge(s, h fields) (fields, Source) {
	var src Source
	var out fields

	sPhone, _ := phone.Normalize(s.Phone)
	hPhone, _ := phone.Normalize(h.Phone)

	out.UniqueID = prefer(s.UniqueID, h.UniqueID, &src)
	out.Phone = prefer(sPhone, hPhone, &src)
	out.ContactName = prefer(s.ContactName, h.ContactName, &src)
	out.Timestamp = prefer(s.Timestamp, h.Timestamp, &src)
	out.DurationSeconds = prefer(s.DurationSeconds, h.DurationSeconds, &src)
	out.Direction = prefer(s.Direction, h.Direction, &src)
	out.Service = prefer(s.Service, h.Service, &src)
	out.JunkConfidence = prefer(s.JunkConfidence, h.JunkConfidence, &src)
	out.Location = prefer(s.Location, h.Location, &src)
	out.ISOCountryCode = prefer(s.ISOCountryCode, h.ISOCountryCode, &src)
	out.LocalParticipantUUID = prefer(s.LocalParticipantUUID, h.LocalParticipantUUID, &src)
	out.ParticipantGroupUUID = prefer(s.ParticipantGroupUUID, h.ParticipantGroupUUID, &src)
	return out, src
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (b *blockResult) record() CallRecord {
	f := b.merged
	rec := CallRecord{
		UniqueID:             f.UniqueID,
		PhoneNumber:          optional(f.Phone),
		ContactName:          optional(f.ContactName),
		Timestamp:            f.Timestamp,
		DurationSeconds:      f.DurationSeconds,
		Direction:            f.Direction,
		ServiceType:          f.Service,
		JunkConfidence:       f.JunkConfidence,
		Location:             optional(f.Location),
		ISOCountryCode:       optional(f.ISOCountryCode),
		LocalParticipantUUID: optional(f.LocalParticipantUUID),
		ParticipantGroupUUID: optional(f.ParticipantGroupUUID),
		Source:               b.source,
		Offset:               b.offset,
	}
	if rec.Direction == "" {
		rec.Direction = DirectionUnknown
	}
	if rec.ServiceType == "" {
		rec.ServiceType = ServiceUnknown
	}
	return rec
}

// assemble runs the sequential pass: identity checks, deduplication,
// ordering and sink notifications. blocks must be in buffer order.
func assemble(blocks []blockResult, sink Sink) Result {
	stats := newStats(len(blocks))
	seen := make(map[string]struct{}, len(blocks))
	records := make([]CallRecord, 0, len(blocks))

	for i := range blocks {
		b := &blocks[i]
		switch {
		case b.decodeErr != nil:
			stats.DecodeFailures++
			sink.DecodeFailed(b.offset, b.decodeErr)
		case b.shapeErr != nil:
			stats.NotCallRecords++
			sink.NotCallRecord(b.offset, b.shapeErr)
		}

		id := b.merged.UniqueID
		if id == "" {
			stats.MissingIdentity++
			sink.MissingIdentity(b.offset)
			continue
		}
		if _, dup := seen[id]; dup {
			stats.Duplicates++
			sink.Duplicate(b.offset, id)
			continue
		}
		seen[id] = struct{}{}
		records = append(records, b.record())
	}

	sortByTime(records)

	for i := range records {
		stats.count(&records[i])
		sink.Emitted(&records[i])
	}
	sink.RunCompleted(stats)
	return Result{Records: records, Stats: stats}
}

// sortByTime orders records by ascending timestamp. Records without one go
// last and keep their encounter order.
func sortByTime(records []CallRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := records[i].Timestamp, records[j].Timestamp
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		}
		return ti.Before(*tj)
	})
}
