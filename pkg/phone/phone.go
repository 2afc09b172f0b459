// Package phone canonicalizes recovered phone numbers to +<digits>.
package phone

import "strings"

const (
	nationalLen = 10
	countryLen  = 11
)

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Normalize maps s onto the canonical +<digits> form using North American
// numbering. Inputs with fewer than ten digits have no canonical form and
// report false; this is a miss, not an error.
func Normalize(s string) (string, bool) {
	d := Digits(s)
	switch {
	case len(d) < nationalLen:
		return "", false
	case len(d) == nationalLen:
		return "+1" + d, true
	case len(d) == countryLen && d[0] == '1':
		return "+" + d, true
	case len(d) == countryLen:
		return "+1" + d[len(d)-nationalLen:], true
	case d[0] == '1':
		return "+" + d[:countryLen], true
	default:
		return "+1" + d[:nationalLen], true
	}
}
