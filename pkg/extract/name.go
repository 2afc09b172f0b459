package extract

import "bytes"

const (
	minNameLen = 4

	// asciiStringMarker is the bplist marker of an in-line length ASCII
	// string; 'P' through 'Z' are its printable upper-case forms.
	asciiStringMarker = 0x50
)

// structuralNames are archive class and key names that look like
// upper-case contact names.
var structuralNames = map[string]bool{
	"NSUUID":       true,
	"NSDATE":       true,
	"NSARRAY":      true,
	"NSDICTIONARY": true,
}

func isNameByte(c byte) bool {
	return isUpper(c) || c == ' '
}

// ContactName finds the first upper-case name in b: a run of capital letters
// and spaces longer than three bytes that starts and ends with a letter.
//
// Inside a binary property list the marker of a short ASCII string is itself
// a capital letter, so "ZJOHN SMITH" is the ten byte string "JOHN SMITH". A
// leading letter whose marker length equals the rest of the run is dropped
// when the rest is a multi-word name or the whole run is not a name. A single
// word such as "TOMMY" is kept whole.
func ContactName(b []byte) (Match[string], bool) {
	for i := 0; i < len(b); {
		if !isNameByte(b[i]) {
			i++
			continue
		}
		start := i
		for i < len(b) && isNameByte(b[i]) {
			i++
		}
		if m, ok := nameCandidate(b, start, i); ok {
			return m, true
		}
	}
	return Match[string]{}, false
}

// markedBody returns run without its string marker, and without the marker
// of a following string it ran into. ok is false when run[0] is not a marker
// for the rest of the run.
func markedBody(run []byte) ([]byte, bool) {
	if n := len(run) - 1; n > 0 && int(run[0])-asciiStringMarker == n {
		return run[1:], true
	}
	if n := len(run) - 2; n > 0 && int(run[0])-asciiStringMarker == n &&
		run[n+1] >= asciiStringMarker {
		return run[1 : n+1], true
	}
	return nil, false
}

func nameCandidate(b []byte, start, end int) (Match[string], bool) {
	run := b[start:end]
	stripped := false
	if body, ok := markedBody(run); ok {
		name := bytes.TrimSpace(body)
		if structural(name) {
			return Match[string]{}, false
		}
		if bytes.IndexByte(name, ' ') >= 0 || !validName(bytes.TrimSpace(run)) {
			run, stripped = body, true
			start++
		}
	}

	// unmarked runs touching '-' or digits are hex groups of an identifier;
	// hex letters are never string markers
	if !stripped && (glued(before(b, start)) || glued(at(b, end))) {
		return Match[string]{}, false
	}

	lead := len(run) - len(bytes.TrimLeft(run, " "))
	run = bytes.TrimSpace(run)
	start += lead
	end = start + len(run)

	if !validName(run) {
		return Match[string]{}, false
	}
	return Match[string]{Value: string(run), Start: start, End: end}, true
}

func validName(name []byte) bool {
	return len(name) >= minNameLen && isUpper(name[0]) && isUpper(name[len(name)-1]) && !structural(name)
}

func structural(name []byte) bool {
	return structuralNames[string(name)] || bytes.HasPrefix(name, []byte("WNS"))
}

func glued(c byte) bool {
	return c == '-' || isDigit(c)
}
