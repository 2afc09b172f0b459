// Package testutil builds synthetic capture data for tests.
package testutil

import (
	"encoding/binary"
	"math"
	"unicode/utf16"
)

// objKind tags the pending objects a Builder lays out at Build time
type objKind int

const (
	kindRaw objKind = iota
	kindArray
	kindDict
)

type object struct {
	kind objKind
	raw  []byte
	refs []int
}

// Builder assembles a binary property list object by object. Each add method
// returns the object's reference for use in containers.
type Builder struct {
	objects []object
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(o object) int {
	b.objects = append(b.objects, o)
	return len(b.objects) - 1
}

func (b *Builder) raw(p []byte) int {
	return b.add(object{kind: kindRaw, raw: p})
}

// markerWithLength encodes a marker whose low nibble may overflow into a
// trailing integer object
func markerWithLength(kind byte, n int) []byte {
	if n < 15 {
		return []byte{kind<<4 | byte(n)}
	}
	return append([]byte{kind<<4 | 0x0f}, intBytes(int64(n))...)
}

func intBytes(v int64) []byte {
	switch {
	case v >= 0 && v <= math.MaxUint8:
		return []byte{0x10, byte(v)}
	case v >= 0 && v <= math.MaxUint16:
		out := []byte{0x11, 0, 0}
		binary.BigEndian.PutUint16(out[1:], uint16(v))
		return out
	case v >= 0 && v <= math.MaxUint32:
		out := []byte{0x12, 0, 0, 0, 0}
		binary.BigEndian.PutUint32(out[1:], uint32(v))
		return out
	}
	out := []byte{0x13, 0, 0, 0, 0, 0, 0, 0, 0}
	binary.BigEndian.PutUint64(out[1:], uint64(v))
	return out
}

// String adds an ASCII string, or a UTF-16 string when s has non-ASCII runes.
func (b *Builder) String(s string) int {
	for _, r := range s {
		if r > 0x7f {
			units := utf16.Encode([]rune(s))
			p := markerWithLength(0x6, len(units))
			for _, u := range units {
				p = binary.BigEndian.AppendUint16(p, u)
			}
			return b.raw(p)
		}
	}
	return b.raw(append(markerWithLength(0x5, len(s)), s...))
}

// Int adds an integer.
func (b *Builder) Int(v int64) int {
	return b.raw(intBytes(v))
}

// Real adds a 64 bit real.
func (b *Builder) Real(f float64) int {
	p := []byte{0x23, 0, 0, 0, 0, 0, 0, 0, 0}
	binary.BigEndian.PutUint64(p[1:], math.Float64bits(f))
	return b.raw(p)
}

// Date adds a date holding secs since 2001-01-01.
func (b *Builder) Date(secs float64) int {
	p := []byte{0x33, 0, 0, 0, 0, 0, 0, 0, 0}
	binary.BigEndian.PutUint64(p[1:], math.Float64bits(secs))
	return b.raw(p)
}

// Data adds a data object.
func (b *Builder) Data(d []byte) int {
	return b.raw(append(markerWithLength(0x4, len(d)), d...))
}

// Bool adds a boolean.
func (b *Builder) Bool(v bool) int {
	if v {
		return b.raw([]byte{0x09})
	}
	return b.raw([]byte{0x08})
}

// UID adds a one byte keyed-archiver reference.
func (b *Builder) UID(v uint8) int {
	return b.raw([]byte{0x80, v})
}

// Array adds an array of previously added objects.
func (b *Builder) Array(refs ...int) int {
	return b.add(object{kind: kindArray, refs: refs})
}

// Dict adds a dictionary from alternating key and value references.
func (b *Builder) Dict(pairs ...int) int {
	if len(pairs)%2 != 0 {
		panic("testutil: Dict needs key/value pairs")
	}
	keys := make([]int, 0, len(pairs)/2)
	vals := make([]int, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		keys = append(keys, pairs[i])
		vals = append(vals, pairs[i+1])
	}
	return b.add(object{kind: kindDict, refs: append(keys, vals...)})
}

// Root wraps pairs in the {"root": {...}} archive shape and builds the list.
func (b *Builder) Root(pairs ...int) []byte {
	inner := b.Dict(pairs...)
	outer := b.Dict(b.String("root"), inner)
	return b.Build(outer)
}

// Build lays out the object table, offset table and trailer.
func (b *Builder) Build(top int) []byte {
	refSize := 1
	if len(b.objects) > math.MaxUint8 {
		refSize = 2
	}

	out := []byte("bplist00")
	offsets := make([]int, len(b.objects))
	for i, o := range b.objects {
		offsets[i] = len(out)
		switch o.kind {
		case kindRaw:
			out = append(out, o.raw...)
		case kindArray, kindDict:
			kind, n := byte(0xA), len(o.refs)
			if o.kind == kindDict {
				kind, n = 0xD, len(o.refs)/2
			}
			out = append(out, markerWithLength(kind, n)...)
			for _, r := range o.refs {
				out = appendSized(out, uint64(r), refSize)
			}
		}
	}

	tableOffset := len(out)
	offsetSize := 1
	for tableOffset >= 1<<(8*offsetSize) {
		offsetSize *= 2
	}
	for _, off := range offsets {
		out = appendSized(out, uint64(off), offsetSize)
	}

	trailer := make([]byte, 32)
	trailer[6] = byte(offsetSize)
	trailer[7] = byte(refSize)
	binary.BigEndian.PutUint64(trailer[8:], uint64(len(b.objects)))
	binary.BigEndian.PutUint64(trailer[16:], uint64(top))
	binary.BigEndian.PutUint64(trailer[24:], uint64(tableOffset))
	return append(out, trailer...)
}

func appendSized(out []byte, v uint64, size int) []byte {
	for i := size - 1; i >= 0; i-- {
		out = append(out, byte(v>>(8*i)))
	}
	return out
}
