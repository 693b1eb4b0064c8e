// Package object implements the zero-copy JSON value and object model:
// a parsed object's field keys and scalar values are slices into the
// buffer it was parsed from, never copies.
package object

import "strconv"

// Kind discriminates the tagged Value variant.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// TypeName returns the $type-operator name for k.
func (k Kind) TypeName() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged JSON value. Only one of Bool/Num/Str/Arr/Obj is
// meaningful, selected by Kind. Num and Str are sub-slices of the
// buffer the owning Object was parsed from; Arr and Obj may be
// heap-allocated, but their own scalar leaves still point into that
// same buffer.
type Value struct {
	Kind Kind
	Bool bool
	Num  []byte
	Str  []byte
	Arr  []Value
	Obj  *Object
}

// Null is the canonical null value.
var Null = Value{Kind: KindNull}

// Float parses Num as a 64-bit float, on demand: numeric literals are
// kept as raw byte slices and only converted at the point of use. A
// plain-integer fast path (no '.', 'e', or 'E') avoids
// the allocation strconv.ParseFloat would otherwise require for the
// string conversion; the float path defers to strconv, which is the
// standard decimal-to-binary routine this design calls for. Numbers
// are compared as float64, so integers beyond 2^53 may compare equal
// to their neighbours.
func (v Value) Float() (float64, bool) {
	if v.Kind != KindNumber || len(v.Num) == 0 {
		return 0, false
	}
	if n, ok := parseIntWalk(v.Num); ok {
		return float64(n), true
	}
	f, err := strconv.ParseFloat(string(v.Num), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// parseIntWalk parses a base-10 integer literal (optional leading '-'
// or '+', digits only) without allocating. It returns ok=false for
// anything containing '.', 'e', 'E', or other non-digit bytes, and for
// more than 18 digits (which could overflow int64), leaving those to
// the strconv.ParseFloat fallback.
func parseIntWalk(b []byte) (int64, bool) {
	neg := false
	i := 0
	if i < len(b) && (b[i] == '-' || b[i] == '+') {
		neg = b[i] == '-'
		i++
	}
	if i >= len(b) || len(b)-i > 18 {
		return 0, false
	}
	var n int64
	for ; i < len(b); i++ {
		c := b[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int64(c-'0')
	}
	if neg {
		n = -n
	}
	return n, true
}
