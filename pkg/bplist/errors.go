package bplist

// FormatError describes a structural problem in a binary property list.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string {
	return "bplist: " + e.Message
}

// Errors
var (
	ErrNotBplist        = &FormatError{"missing bplist00 header"}
	ErrTruncated        = &FormatError{"data truncated"}
	ErrBadTrailer       = &FormatError{"invalid trailer"}
	ErrOffsetOutOfRange = &FormatError{"offset out of range"}
	ErrObjectCount      = &FormatError{"object count inconsistent with trailer"}
	ErrBadMarker        = &FormatError{"invalid object marker"}
	ErrCycle            = &FormatError{"object reference cycle"}
	ErrTooDeep          = &FormatError{"object nesting too deep"}
)
