package extract

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var uuidPattern = regexp.MustCompile(`(?i)[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// UUID finds the first 8-4-4-4-12 hex identifier in b and returns it in
// canonical upper case.
func UUID(b []byte) (Match[string], bool) {
	for _, loc := range uuidPattern.FindAllIndex(b, -1) {
		start, end := loc[0], loc[1]
		id, err := uuid.ParseBytes(b[start:end])
		if err != nil {
			continue
		}
		return Match[string]{Value: CanonicalUUID(id), Start: start, End: end}, true
	}
	return Match[string]{}, false
}

// CanonicalUUID renders id in the upper-case hyphenated form used for record
// identity.
func CanonicalUUID(id uuid.UUID) string {
	return strings.ToUpper(id.String())
}
