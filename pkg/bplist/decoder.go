package bplist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"
)

const (
	headerSize  = 8
	trailerSize = 32

	// MaxDepth bounds container nesting.
	MaxDepth = 64
)

// Magic is the header every binary property list starts with.
var Magic = []byte("bplist00")

// trailer mirrors the fixed 32 byte block at the end of the buffer
type trailer struct {
	OffsetIntSize     uint8
	ObjectRefSize     uint8
	NumObjects        uint64
	TopObject         uint64
	OffsetTableOffset uint64
}

// Decoder turns binary property lists into Values
type Decoder struct {
	maxDepth int
}

// NewDecoder creates a new decoder instance
func NewDecoder() *Decoder {
	return &Decoder{maxDepth: MaxDepth}
}

// Decode decodes data with a default decoder.
func Decode(data []byte) (Value, error) {
	return NewDecoder().Decode(data)
}

// Decode parses a complete binary property list and returns its top object.
// The input must end with the trailer; bytes before the header are not skipped.
func (d *Decoder) Decode(data []byte) (Value, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, len(data))
	}
	if !bytes.Equal(data[:headerSize], Magic) {
		return nil, ErrNotBplist
	}
	if len(data) < headerSize+trailerSize {
		return nil, fmt.Errorf("%w: no room for trailer in %d bytes", ErrTruncated, len(data))
	}

	t, err := readTrailer(data)
	if err != nil {
		return nil, err
	}

	st := &state{
		data:     data,
		trailer:  t,
		tableEnd: int(t.OffsetTableOffset),
		maxDepth: d.maxDepth,
		active:   make([]bool, t.NumObjects),
		decoded:  make([]Value, t.NumObjects),
	}
	return st.object(t.TopObject, 0)
}

// readTrailer validates the trailer against the buffer it came from
func readTrailer(data []byte) (trailer, error) {
	raw := data[len(data)-trailerSize:]
	t := trailer{
		OffsetIntSize:     raw[6],
		ObjectRefSize:     raw[7],
		NumObjects:        binary.BigEndian.Uint64(raw[8:16]),
		TopObject:         binary.BigEndian.Uint64(raw[16:24]),
		OffsetTableOffset: binary.BigEndian.Uint64(raw[24:32]),
	}

	if t.OffsetIntSize == 0 || t.OffsetIntSize > 8 {
		return t, fmt.Errorf("%w: offset size %d", ErrBadTrailer, t.OffsetIntSize)
	}
	if t.ObjectRefSize == 0 || t.ObjectRefSize > 8 {
		return t, fmt.Errorf("%w: object ref size %d", ErrBadTrailer, t.ObjectRefSize)
	}

	trailerStart := uint64(len(data) - trailerSize)
	if t.OffsetTableOffset < headerSize || t.OffsetTableOffset >= trailerStart {
		return t, fmt.Errorf("%w: offset table at %d", ErrOffsetOutOfRange, t.OffsetTableOffset)
	}
	if t.NumObjects == 0 {
		return t, fmt.Errorf("%w: no objects", ErrObjectCount)
	}
	tableSpace := trailerStart - t.OffsetTableOffset
	if t.NumObjects > tableSpace/uint64(t.OffsetIntSize) {
		return t, fmt.Errorf("%w: %d objects need %d offset bytes, %d available",
			ErrObjectCount, t.NumObjects, t.NumObjects*uint64(t.OffsetIntSize), tableSpace)
	}
	if t.TopObject >= t.NumObjects {
		return t, fmt.Errorf("%w: top object %d of %d", ErrObjectCount, t.TopObject, t.NumObjects)
	}
	return t, nil
}

// state holds per-call decoding state
type state struct {
	data     []byte
	trailer  trailer
	tableEnd int // end of the object table, start of the offset table
	maxDepth int
	active   []bool
	decoded  []Value
}

func readUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

// offset returns the position of object ref inside the object table
func (s *state) offset(ref uint64) (int, error) {
	if ref >= s.trailer.NumObjects {
		return 0, fmt.Errorf("%w: object ref %d of %d", ErrObjectCount, ref, s.trailer.NumObjects)
	}
	size := uint64(s.trailer.OffsetIntSize)
	pos := s.trailer.OffsetTableOffset + ref*size
	off := readUint(s.data[pos : pos+size])
	if off < headerSize || off >= uint64(s.tableEnd) {
		return 0, fmt.Errorf("%w: object %d at %d", ErrOffsetOutOfRange, ref, off)
	}
	return int(off), nil
}

// need returns n bytes at pos or an error when they run past the object table
func (s *state) need(pos int, n uint64) ([]byte, error) {
	if pos > s.tableEnd || n > uint64(s.tableEnd-pos) {
		return nil, fmt.Errorf("%w: %d bytes at %d", ErrTruncated, n, pos)
	}
	return s.data[pos : pos+int(n)], nil
}

// length decodes the count carried by a marker. It returns the count and the
// position of the first payload byte.
func (s *state) length(pos int, info byte) (uint64, int, error) {
	if info != 0x0f {
		return uint64(info), pos + 1, nil
	}
	hdr, err := s.need(pos+1, 1)
	if err != nil {
		return 0, 0, err
	}
	if hdr[0]>>4 != 0x1 {
		return 0, 0, fmt.Errorf("%w: length marker 0x%02x at %d", ErrBadMarker, hdr[0], pos+1)
	}
	width := uint64(1) << (hdr[0] & 0x0f)
	if width > 8 {
		return 0, 0, fmt.Errorf("%w: %d byte length at %d", ErrBadMarker, width, pos+1)
	}
	raw, err := s.need(pos+2, width)
	if err != nil {
		return 0, 0, err
	}
	return readUint(raw), pos + 2 + int(width), nil
}

func (s *state) refs(pos int, count uint64) ([]uint64, error) {
	size := uint64(s.trailer.ObjectRefSize)
	if pos > s.tableEnd || count > uint64(s.tableEnd-pos)/size {
		return nil, fmt.Errorf("%w: %d refs at %d", ErrTruncated, count, pos)
	}
	out := make([]uint64, count)
	for i := range out {
		start := pos + i*int(size)
		out[i] = readUint(s.data[start : start+int(size)])
	}
	return out, nil
}

func (s *state) object(ref uint64, depth int) (Value, error) {
	if depth > s.maxDepth {
		return nil, ErrTooDeep
	}
	pos, err := s.offset(ref)
	if err != nil {
		return nil, err
	}
	if v := s.decoded[ref]; v != nil {
		return v, nil
	}
	if s.active[ref] {
		return nil, fmt.Errorf("%w: object %d", ErrCycle, ref)
	}
	s.active[ref] = true
	defer func() { s.active[ref] = false }()

	v, err := s.parse(pos, depth)
	if err != nil {
		return nil, err
	}
	s.decoded[ref] = v
	return v, nil
}

func (s *state) parse(pos int, depth int) (Value, error) {
	marker := s.data[pos]
	kind, info := marker>>4, marker&0x0f

	switch kind {
	case 0x0:
		switch marker {
		case 0x08:
			return Boolean(false), nil
		case 0x09:
			return Boolean(true), nil
		}

	case 0x1:
		width := uint64(1) << info
		if width > 16 {
			break
		}
		raw, err := s.need(pos+1, width)
		if err != nil {
			return nil, err
		}
		if width == 16 {
			raw = raw[8:]
		}
		if width >= 8 {
			return Integer(int64(binary.BigEndian.Uint64(raw))), nil
		}
		return Integer(readUint(raw)), nil

	case 0x2:
		switch info {
		case 2:
			raw, err := s.need(pos+1, 4)
			if err != nil {
				return nil, err
			}
			return Real(math.Float32frombits(binary.BigEndian.Uint32(raw))), nil
		case 3:
			raw, err := s.need(pos+1, 8)
			if err != nil {
				return nil, err
			}
			return Real(math.Float64frombits(binary.BigEndian.Uint64(raw))), nil
		}

	case 0x3:
		if marker != 0x33 {
			break
		}
		raw, err := s.need(pos+1, 8)
		if err != nil {
			return nil, err
		}
		return Date(math.Float64frombits(binary.BigEndian.Uint64(raw))), nil

	case 0x4, 0x5:
		n, start, err := s.length(pos, info)
		if err != nil {
			return nil, err
		}
		raw, err := s.need(start, n)
		if err != nil {
			return nil, err
		}
		if kind == 0x4 {
			return Data(bytes.Clone(raw)), nil
		}
		return String(raw), nil

	case 0x6:
		n, start, err := s.length(pos, info)
		if err != nil {
			return nil, err
		}
		if n > math.MaxInt32 {
			return nil, fmt.Errorf("%w: utf-16 length %d at %d", ErrTruncated, n, pos)
		}
		raw, err := s.need(start, n*2)
		if err != nil {
			return nil, err
		}
		units := make([]uint16, n)
		for i := range units {
			units[i] = binary.BigEndian.Uint16(raw[i*2:])
		}
		return String(utf16.Decode(units)), nil

	case 0x8:
		if info > 7 {
			break
		}
		raw, err := s.need(pos+1, uint64(info)+1)
		if err != nil {
			return nil, err
		}
		return UID(readUint(raw)), nil

	case 0xA:
		n, start, err := s.length(pos, info)
		if err != nil {
			return nil, err
		}
		refs, err := s.refs(start, n)
		if err != nil {
			return nil, err
		}
		arr := make(Array, 0, len(refs))
		for _, r := range refs {
			v, err := s.object(r, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil

	case 0xD:
		n, start, err := s.length(pos, info)
		if err != nil {
			return nil, err
		}
		if n > math.MaxInt32 {
			return nil, fmt.Errorf("%w: dictionary size %d at %d", ErrTruncated, n, pos)
		}
		refs, err := s.refs(start, n*2)
		if err != nil {
			return nil, err
		}
		dict := make(Dictionary, n)
		for i := uint64(0); i < n; i++ {
			k, err := s.object(refs[i], depth+1)
			if err != nil {
				return nil, err
			}
			key, ok := k.(String)
			if !ok {
				return nil, fmt.Errorf("%w: non-string dictionary key at %d", ErrBadMarker, pos)
			}
			v, err := s.object(refs[n+i], depth+1)
			if err != nil {
				return nil, err
			}
			dict[string(key)] = v
		}
		return dict, nil
	}

	return nil, fmt.Errorf("%w: 0x%02x at %d", ErrBadMarker, marker, pos)
}
