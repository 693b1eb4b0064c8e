package query

import "github.com/melihbirim/zson/internal/object"

// regexMatchCap bounds the field length a $regex filter will attempt
// to match against: fields longer than this silently do not match
// rather than attempting the match.
const regexMatchCap = 4096

// Eval decides whether obj matches filter. It is a pure function with
// no heap allocation on its hot path: field-path resolution walks
// obj's existing slices, and comparisons work directly on the raw
// Value representation.
func Eval(obj *object.Object, f *Filter) bool {
	switch f.Kind {
	case KindAlwaysTrue:
		return true

	case KindComparison:
		v, ok := obj.GetPath(f.FieldPath)
		if !ok {
			return false
		}
		return evalComparison(v, f.CompareOp, f.Literal)

	case KindLogical:
		return evalLogical(obj, f)

	case KindArrayOp:
		return evalArrayOp(obj, f)

	case KindExists:
		_, ok := obj.GetPath(f.FieldPath)
		return ok == f.ShouldExist

	case KindRegex:
		return evalRegex(obj, f)

	case KindSize:
		v, ok := obj.GetPath(f.FieldPath)
		if !ok || v.Kind != object.KindArray {
			return false
		}
		return int64(len(v.Arr)) == f.Size

	case KindType:
		v, ok := obj.GetPath(f.FieldPath)
		if !ok {
			return "null" == f.TypeName
		}
		return v.Kind.TypeName() == f.TypeName

	default:
		return false
	}
}

func evalLogical(obj *object.Object, f *Filter) bool {
	switch f.LogicalOp {
	case OpAnd:
		for _, op := range f.Operands {
			if !Eval(obj, op) {
				return false
			}
		}
		return true
	case OpOr:
		for _, op := range f.Operands {
			if Eval(obj, op) {
				return true
			}
		}
		return false
	case OpNot:
		return !Eval(obj, f.Operands[0])
	case OpNor:
		for _, op := range f.Operands {
			if Eval(obj, op) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// evalComparison: cross-type Eq/Ne is always false (so Ne is false
// when types mismatch, an intentionally-preserved behavior); ordering
// operators only produce a meaningful result for number-vs-number or
// string-vs-string.
func evalComparison(v object.Value, op CompareOp, lit Literal) bool {
	switch op {
	case OpEq:
		return literalEqualsValue(lit, v)
	case OpNe:
		var sameKind bool
		switch lit.Kind {
		case LiteralNull:
			sameKind = v.Kind == object.KindNull
		case LiteralBool:
			sameKind = v.Kind == object.KindBool
		case LiteralNumber:
			sameKind = v.Kind == object.KindNumber
		case LiteralString:
			sameKind = v.Kind == object.KindString
		}
		return sameKind && !literalEqualsValue(lit, v)
	case OpGt, OpGte, OpLt, OpLte:
		return evalOrdering(v, op, lit)
	default:
		return false
	}
}

func literalEqualsValue(lit Literal, v object.Value) bool {
	switch lit.Kind {
	case LiteralNull:
		return v.Kind == object.KindNull
	case LiteralBool:
		return v.Kind == object.KindBool && v.Bool == lit.Bool
	case LiteralNumber:
		if v.Kind != object.KindNumber {
			return false
		}
		f, ok := v.Float()
		return ok && f == lit.Num
	case LiteralString:
		return v.Kind == object.KindString && string(v.Str) == string(lit.Str)
	default:
		return false
	}
}

func evalOrdering(v object.Value, op CompareOp, lit Literal) bool {
	switch {
	case v.Kind == object.KindNumber && lit.Kind == LiteralNumber:
		f, ok := v.Float()
		if !ok {
			return false
		}
		return compareFloats(f, lit.Num, op)
	case v.Kind == object.KindString && lit.Kind == LiteralString:
		return compareStrings(string(v.Str), string(lit.Str), op)
	default:
		return false
	}
}

func compareFloats(a, b float64, op CompareOp) bool {
	switch op {
	case OpGt:
		return a > b
	case OpGte:
		return a >= b
	case OpLt:
		return a < b
	case OpLte:
		return a <= b
	default:
		return false
	}
}

func compareStrings(a, b string, op CompareOp) bool {
	switch op {
	case OpGt:
		return a > b
	case OpGte:
		return a >= b
	case OpLt:
		return a < b
	case OpLte:
		return a <= b
	default:
		return false
	}
}

// evalArrayOp: a missing field makes Nin true and In false ("field
// has none of these values"). Otherwise it
// matches scalar equality against any literal, plus — if the field is
// itself an array — any element against any literal.
func evalArrayOp(obj *object.Object, f *Filter) bool {
	v, ok := obj.GetPath(f.FieldPath)
	if !ok {
		return f.ArrayOp == OpNin
	}
	found := anyLiteralMatches(v, f.Literals)
	if f.ArrayOp == OpNin {
		return !found
	}
	return found
}

func anyLiteralMatches(v object.Value, lits []Literal) bool {
	for _, lit := range lits {
		if literalEqualsValue(lit, v) {
			return true
		}
	}
	if v.Kind == object.KindArray {
		for _, elem := range v.Arr {
			for _, lit := range lits {
				if literalEqualsValue(lit, elem) {
					return true
				}
			}
		}
	}
	return false
}

func evalRegex(obj *object.Object, f *Filter) bool {
	v, ok := obj.GetPath(f.FieldPath)
	if !ok || v.Kind != object.KindString {
		return false
	}
	if len(v.Str) > regexMatchCap {
		return false
	}
	return f.Pattern.Match(v.Str)
}
