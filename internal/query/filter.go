// Package query compiles MongoDB-style query JSON into a filter tree
// and evaluates that tree against parsed objects.
package query

import "regexp"

// FilterKind discriminates the tagged Filter variant. Modeled as a
// struct-with-discriminant rather than an interface hierarchy, to keep
// Eval a flat recursive function instead of virtual dispatch.
type FilterKind uint8

const (
	KindAlwaysTrue FilterKind = iota
	KindComparison
	KindLogical
	KindArrayOp
	KindExists
	KindRegex
	KindSize
	KindType
)

// CompareOp is the operator of a Comparison filter.
type CompareOp uint8

const (
	OpEq CompareOp = iota
	OpNe
	OpGt
	OpGte
	OpLt
	OpLte
)

// LogicalOp is the operator of a Logical filter.
type LogicalOp uint8

const (
	OpAnd LogicalOp = iota
	OpOr
	OpNot
	OpNor
)

// ArrayCompareOp is the operator of an ArrayOp filter.
type ArrayCompareOp uint8

const (
	OpIn ArrayCompareOp = iota
	OpNin
)

// LiteralKind discriminates the Literal variant.
type LiteralKind uint8

const (
	LiteralNull LiteralKind = iota
	LiteralBool
	LiteralNumber
	LiteralString
)

// Literal is a restricted value usable as a query right-hand side.
// Literals are owned by the Filter tree that references them.
type Literal struct {
	Kind LiteralKind
	Bool bool
	Num  float64
	Str  []byte
}

// Filter is the tagged filter-tree node. Only the fields relevant to
// Kind are populated.
type Filter struct {
	Kind FilterKind

	// FieldPath: Comparison, ArrayOp, Exists, Regex, Size, Type.
	FieldPath []string

	// Comparison
	CompareOp CompareOp
	Literal   Literal

	// Logical
	LogicalOp LogicalOp
	Operands  []*Filter

	// ArrayOp
	ArrayOp  ArrayCompareOp
	Literals []Literal

	// Exists
	ShouldExist bool

	// Regex
	Pattern    *regexp.Regexp
	RawPattern string
	Options    string

	// Size
	Size int64

	// Type
	TypeName string
}
