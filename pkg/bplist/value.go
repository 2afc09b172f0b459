package bplist

import (
	"time"

	"github.com/ssargent/calltrace/pkg/timestamp"
)

// Value is a decoded property list object.
type Value interface {
	isValue()
}

// String is an ASCII or UTF-16 string object.
type String string

// Integer is an integer object. 16 byte integers keep their low 64 bits.
type Integer int64

// Real is a 32 or 64 bit floating point object.
type Real float64

// Boolean is a true or false object.
type Boolean bool

// Date holds seconds since 2001-01-01T00:00:00Z.
type Date float64

// Data is a raw byte object.
type Data []byte

// UID is an object reference used by keyed archives.
type UID uint64

// Array is an ordered list of values.
type Array []Value

// Dictionary maps string keys to values.
type Dictionary map[string]Value

func (String) isValue()     {}
func (Integer) isValue()    {}
func (Real) isValue()       {}
func (Boolean) isValue()    {}
func (Date) isValue()       {}
func (Data) isValue()       {}
func (UID) isValue()        {}
func (Array) isValue()      {}
func (Dictionary) isValue() {}

// Time converts the date to UTC wall time.
func (d Date) Time() time.Time {
	return timestamp.FromSeconds(float64(d))
}

// Dict returns the dictionary stored under key.
func (d Dictionary) Dict(key string) (Dictionary, bool) {
	v, ok := d[key].(Dictionary)
	return v, ok
}

// String returns the string stored under key.
func (d Dictionary) String(key string) (string, bool) {
	v, ok := d[key].(String)
	return string(v), ok
}

// Number returns the numeric value stored under key. Integers and reals are
// both accepted.
func (d Dictionary) Number(key string) (float64, bool) {
	return AsFloat(d[key])
}

// Bool returns the boolean stored under key. Integers 0 and 1 are accepted
// because some archives store flags as numbers.
func (d Dictionary) Bool(key string) (bool, bool) {
	switch v := d[key].(type) {
	case Boolean:
		return bool(v), true
	case Integer:
		return v != 0, true
	}
	return false, false
}

// AsFloat converts an Integer or Real to float64.
func AsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Integer:
		return float64(n), true
	case Real:
		return float64(n), true
	}
	return 0, false
}

// AsInt converts an Integer, or a Real with no fractional part, to int64.
func AsInt(v Value) (int64, bool) {
	switch n := v.(type) {
	case Integer:
		return int64(n), true
	case Real:
		if float64(n) == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}
