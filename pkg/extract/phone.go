package extract

import "regexp"

var (
	// a '\' before '+' is the ASCII string marker of a 12 byte value
	plusPattern   = regexp.MustCompile(`\\?\+\d{10,}`)
	barePattern   = regexp.MustCompile(`\d{10,}`)
	parenPattern  = regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.\s]\d{4}`)
	dashPattern   = regexp.MustCompile(`\d{3}[-.]\d{3}[-.]\d{4}`)
	spacedPattern = regexp.MustCompile(`\d{3}\s+\d{3}\s+\d{4}`)
)

type phoneRule struct {
	re *regexp.Regexp
	// reject reports whether a neighbouring byte disqualifies the match
	reject func(c byte) bool
}

var phoneRules = []phoneRule{
	{re: plusPattern},
	{re: barePattern, reject: func(c byte) bool { return isHex(c) || c == '-' }},
	{re: parenPattern, reject: isDigit},
	{re: dashPattern, reject: isDigit},
	{re: spacedPattern, reject: isDigit},
}

// Phone finds a phone number in b and returns the matched text. Rules are
// tried in priority order: a '+' prefixed run of at least ten digits, a bare
// run of at least ten digits not touching hex digits or '-', then the
// (XXX) XXX-XXXX, XXX-XXX-XXXX and XXX XXX XXXX layouts.
func Phone(b []byte) (Match[string], bool) {
	for _, rule := range phoneRules {
		for _, loc := range rule.re.FindAllIndex(b, -1) {
			start, end := loc[0], loc[1]
			if b[start] == '\\' {
				start++
			}
			if rule.reject != nil && (rule.reject(before(b, start)) || rule.reject(at(b, end))) {
				continue
			}
			return Match[string]{Value: string(b[start:end]), Start: start, End: end}, true
		}
	}
	return Match[string]{}, false
}
