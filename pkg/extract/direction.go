package extract

import "bytes"

const (
	// fieldWindow bounds the search for a direction word after a field name
	fieldWindow = 64
	// tagWindow bounds the search for a numeric tag after a direction word
	tagWindow = 20
)

var directionWords = []struct {
	word      []byte
	tag       byte
	direction Direction
}{
	{[]byte("outgoing"), 0x01, DirectionOutgoing},
	{[]byte("incoming"), 0x02, DirectionIncoming},
	{[]byte("missed"), 0x03, DirectionMissed},
	{[]byte("rejected"), 0x04, DirectionRejected},
	{[]byte("blocked"), 0x05, DirectionBlocked},
}

var directionFields = [][]byte{
	[]byte("callType"),
	[]byte("callStatus"),
	[]byte("direction"),
}

var participantFields = []struct {
	name      []byte
	direction Direction
}{
	{[]byte("outgoingLocalParticipantUUID"), DirectionOutgoing},
	{[]byte("incomingLocalParticipantUUID"), DirectionIncoming},
}

// CallDirection infers the call direction from b. It looks for a direction
// word shortly after a direction-bearing field name, then for a direction
// word followed by its one byte integer tag, then for a direction-specific
// participant field.
func CallDirection(b []byte) (Match[Direction], bool) {
	if m, ok := directionAfterField(b); ok {
		return m, true
	}
	if m, ok := directionByTag(b); ok {
		return m, true
	}
	return directionByParticipant(b)
}

// DirectionForTag maps the integer tag archived with a direction word
// (1 outgoing, 2 incoming, 3 missed, 4 rejected, 5 blocked).
func DirectionForTag(tag int64) (Direction, bool) {
	for _, w := range directionWords {
		if int64(w.tag) == tag {
			return w.direction, true
		}
	}
	return "", false
}

func directionAfterField(b []byte) (Match[Direction], bool) {
	lower := bytes.ToLower(b)
	for _, field := range directionFields {
		for from := 0; ; {
			idx := bytes.Index(b[from:], field)
			if idx < 0 {
				break
			}
			winStart := from + idx + len(field)
			winEnd := min(winStart+fieldWindow, len(b))
			if m, ok := firstWord(lower, winStart, winEnd); ok {
				return m, true
			}
			from = winStart
		}
	}
	return Match[Direction]{}, false
}

// firstWord returns the earliest direction word in lower[start:end]
func firstWord(lower []byte, start, end int) (Match[Direction], bool) {
	best := Match[Direction]{Start: -1}
	window := lower[start:end]
	for _, w := range directionWords {
		idx := bytes.Index(window, w.word)
		if idx < 0 || (best.Start >= 0 && start+idx >= best.Start) {
			continue
		}
		best = Match[Direction]{Value: w.direction, Start: start + idx, End: start + idx + len(w.word)}
	}
	return best, best.Start >= 0
}

func directionByTag(b []byte) (Match[Direction], bool) {
	for _, w := range directionWords {
		tag := []byte{0x10, w.tag}
		for from := 0; ; {
			idx := bytes.Index(b[from:], w.word)
			if idx < 0 {
				break
			}
			pos := from + idx
			winEnd := min(pos+tagWindow, len(b))
			if t := bytes.Index(b[pos:winEnd], tag); t >= 0 {
				return Match[Direction]{Value: w.direction, Start: pos, End: pos + t + len(tag)}, true
			}
			from = pos + len(w.word)
		}
	}
	return Match[Direction]{}, false
}

func directionByParticipant(b []byte) (Match[Direction], bool) {
	for _, p := range participantFields {
		if idx := bytes.Index(b, p.name); idx >= 0 {
			return Match[Direction]{Value: p.direction, Start: idx, End: idx + len(p.name)}, true
		}
	}
	return Match[Direction]{}, false
}
