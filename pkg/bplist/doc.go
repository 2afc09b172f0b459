// Package bplist decodes binary property lists into a closed tree of values.
//
// Only the decode direction is implemented. The package is used to read the
// small archived call-transaction blocks embedded in device logs, so it is
// tuned for untrusted, frequently truncated input: every structural problem
// is reported as an error and decoding never panics.
//
// # Wire Format
//
// A binary property list has three sections:
//
//	[Header(8)][Object table][Offset table][Trailer(32)]
//
// Header: the ASCII magic "bplist" followed by a two byte version, "00".
//
// Object table: variable length objects. Each object starts with a marker
// byte whose high nibble selects the type and whose low nibble carries either
// a small length or, when it is 0xF, signals that the length follows as an
// integer object:
//
//	0x08 0x09        false, true
//	0x1N             integer of 2^N bytes, big-endian
//	0x2N             real of 2^N bytes (4 or 8)
//	0x33             date: float64 seconds since 2001-01-01T00:00:00Z
//	0x4N [int] ...   data, N bytes
//	0x5N [int] ...   ASCII string, N bytes
//	0x6N [int] ...   UTF-16BE string, N code units
//	0x8N             UID of N+1 bytes
//	0xAN [int] refs  array of N object references
//	0xDN [int] refs  dictionary: N key references then N value references
//
// Offset table: one big-endian unsigned integer per object giving the object's
// byte offset from the start of the buffer.
//
// Trailer (big-endian):
//
//	[Unused(5)][SortVersion(1)][OffsetIntSize(1)][ObjectRefSize(1)]
//	[NumObjects(8)][TopObject(8)][OffsetTableOffset(8)]
//
// # Error Handling
//
// All failures wrap one of the package sentinels (ErrNotBplist, ErrTruncated,
// ErrBadTrailer, ErrOffsetOutOfRange, ErrObjectCount, ErrBadMarker, ErrCycle,
// ErrTooDeep) and can be matched with errors.Is. The concrete type behind the
// sentinels is *FormatError.
//
// # Values
//
// Decoded values implement Value. The set of implementations is closed, so a
// type switch over String, Integer, Real, Boolean, Date, Data, UID, Array and
// Dictionary covers every value the decoder can return.
package bplist
