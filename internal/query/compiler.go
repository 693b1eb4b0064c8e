package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/melihbirim/zson/internal/object"
)

// Compile parses a MongoDB-style query JSON byte string into an owned
// Filter tree. The query string is parsed with the same zero-copy
// object parser used for records — the query itself is just another
// JSON object.
func Compile(query []byte) (*Filter, error) {
	p := object.NewParser()
	obj, err := p.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return compileObject(obj)
}

func compileObject(obj *object.Object) (*Filter, error) {
	if len(obj.Keys) == 0 {
		return &Filter{Kind: KindAlwaysTrue}, nil
	}

	if len(obj.Keys) == 1 {
		key := string(obj.Keys[0])
		switch key {
		case "$and", "$or", "$nor":
			return compileLogicalArray(key, obj.Values[0])
		case "$not":
			return compileTopLevelNot(obj.Values[0])
		}
	}

	filters := make([]*Filter, 0, len(obj.Keys))
	for i, k := range obj.Keys {
		key := string(k)
		if len(key) > 0 && key[0] == '$' {
			return nil, ErrUnsupportedQueryStructure
		}
		f, err := compileFieldFilter(key, obj.Values[i])
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	if len(filters) == 1 {
		return filters[0], nil
	}
	return &Filter{Kind: KindLogical, LogicalOp: OpAnd, Operands: filters}, nil
}

func compileLogicalArray(key string, val object.Value) (*Filter, error) {
	if val.Kind != object.KindArray {
		return nil, ErrExpectedArray
	}
	operands := make([]*Filter, 0, len(val.Arr))
	for _, elem := range val.Arr {
		if elem.Kind != object.KindObject {
			return nil, ErrExpectedObject
		}
		f, err := compileObject(elem.Obj)
		if err != nil {
			return nil, err
		}
		operands = append(operands, f)
	}
	var lop LogicalOp
	switch key {
	case "$and":
		lop = OpAnd
	case "$or":
		lop = OpOr
	case "$nor":
		lop = OpNor
	}
	return &Filter{Kind: KindLogical, LogicalOp: lop, Operands: operands}, nil
}

func compileTopLevelNot(val object.Value) (*Filter, error) {
	if val.Kind != object.KindObject {
		return nil, ErrExpectedObject
	}
	inner, err := compileObject(val.Obj)
	if err != nil {
		return nil, err
	}
	return &Filter{Kind: KindLogical, LogicalOp: OpNot, Operands: []*Filter{inner}}, nil
}

// compileFieldFilter compiles a single (field_key, field_value) pair
// into a Filter.
func compileFieldFilter(key string, val object.Value) (*Filter, error) {
	path := strings.Split(key, ".")
	if val.Kind != object.KindObject {
		lit, err := valueToLiteral(val)
		if err != nil {
			return nil, err
		}
		return &Filter{Kind: KindComparison, FieldPath: path, CompareOp: OpEq, Literal: lit}, nil
	}
	return compileFieldOperators(path, val.Obj)
}

// compileFieldOperators scans the operator entries of a field's
// operator object, combining more than one with Logical(And, ...).
func compileFieldOperators(path []string, ops *object.Object) (*Filter, error) {
	filters := make([]*Filter, 0, len(ops.Keys))
	i := 0
	for i < len(ops.Keys) {
		opName := string(ops.Keys[i])
		if len(opName) == 0 || opName[0] != '$' {
			return nil, ErrInvalidOperator
		}
		switch opName {
		case "$eq", "$ne", "$gt", "$gte", "$lt", "$lte":
			lit, err := valueToLiteral(ops.Values[i])
			if err != nil {
				return nil, err
			}
			filters = append(filters, &Filter{
				Kind: KindComparison, FieldPath: path,
				CompareOp: compareOpFor(opName), Literal: lit,
			})
			i++

		case "$in", "$nin":
			v := ops.Values[i]
			if v.Kind != object.KindArray {
				return nil, ErrExpectedArray
			}
			lits, err := literalsOf(v.Arr)
			if err != nil {
				return nil, err
			}
			aop := OpIn
			if opName == "$nin" {
				aop = OpNin
			}
			filters = append(filters, &Filter{Kind: KindArrayOp, FieldPath: path, ArrayOp: aop, Literals: lits})
			i++

		case "$exists":
			v := ops.Values[i]
			if v.Kind != object.KindBool {
				return nil, ErrUnsupportedValueType
			}
			filters = append(filters, &Filter{Kind: KindExists, FieldPath: path, ShouldExist: v.Bool})
			i++

		case "$regex":
			pattern := ops.Values[i]
			if pattern.Kind != object.KindString {
				return nil, ErrUnsupportedValueType
			}
			options := ""
			consumed := 1
			if i+1 < len(ops.Keys) && string(ops.Keys[i+1]) == "$options" {
				optVal := ops.Values[i+1]
				if optVal.Kind != object.KindString {
					return nil, ErrUnsupportedValueType
				}
				options = string(optVal.Str)
				consumed = 2
			}
			f, err := compileRegexFilter(path, string(pattern.Str), options)
			if err != nil {
				return nil, err
			}
			filters = append(filters, f)
			i += consumed

		case "$options":
			// $options may legally precede $regex in object field
			// order; handle that ordering too.
			if i+1 < len(ops.Keys) && string(ops.Keys[i+1]) == "$regex" {
				optVal := ops.Values[i]
				pattern := ops.Values[i+1]
				if optVal.Kind != object.KindString || pattern.Kind != object.KindString {
					return nil, ErrUnsupportedValueType
				}
				f, err := compileRegexFilter(path, string(pattern.Str), string(optVal.Str))
				if err != nil {
					return nil, err
				}
				filters = append(filters, f)
				i += 2
				continue
			}
			return nil, ErrInvalidOperator

		case "$size":
			v := ops.Values[i]
			n, ok := v.Float()
			if v.Kind != object.KindNumber || !ok || n < 0 || n != float64(int64(n)) {
				return nil, ErrUnsupportedValueType
			}
			filters = append(filters, &Filter{Kind: KindSize, FieldPath: path, Size: int64(n)})
			i++

		case "$type":
			v := ops.Values[i]
			if v.Kind != object.KindString || !validTypeName(string(v.Str)) {
				return nil, ErrUnsupportedValueType
			}
			filters = append(filters, &Filter{Kind: KindType, FieldPath: path, TypeName: string(v.Str)})
			i++

		case "$not":
			v := ops.Values[i]
			if v.Kind != object.KindObject {
				return nil, ErrExpectedObject
			}
			inner, err := compileFieldOperators(path, v.Obj)
			if err != nil {
				return nil, err
			}
			filters = append(filters, &Filter{Kind: KindLogical, LogicalOp: OpNot, Operands: []*Filter{inner}})
			i++

		default:
			return nil, ErrUnsupportedOperator
		}
	}
	if len(filters) == 0 {
		return nil, ErrInvalidQuery
	}
	if len(filters) == 1 {
		return filters[0], nil
	}
	return &Filter{Kind: KindLogical, LogicalOp: OpAnd, Operands: filters}, nil
}

func compileRegexFilter(path []string, pattern, options string) (*Filter, error) {
	expr := pattern
	if strings.Contains(options, "i") {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return &Filter{
		Kind: KindRegex, FieldPath: path,
		Pattern: re, RawPattern: pattern, Options: options,
	}, nil
}

func compareOpFor(name string) CompareOp {
	switch name {
	case "$eq":
		return OpEq
	case "$ne":
		return OpNe
	case "$gt":
		return OpGt
	case "$gte":
		return OpGte
	case "$lt":
		return OpLt
	case "$lte":
		return OpLte
	default:
		return OpEq
	}
}

func valueToLiteral(v object.Value) (Literal, error) {
	switch v.Kind {
	case object.KindNull:
		return Literal{Kind: LiteralNull}, nil
	case object.KindBool:
		return Literal{Kind: LiteralBool, Bool: v.Bool}, nil
	case object.KindNumber:
		f, ok := v.Float()
		if !ok {
			return Literal{}, ErrUnsupportedValueType
		}
		return Literal{Kind: LiteralNumber, Num: f}, nil
	case object.KindString:
		return Literal{Kind: LiteralString, Str: v.Str}, nil
	default:
		return Literal{}, ErrUnsupportedValueType
	}
}

func literalsOf(vals []object.Value) ([]Literal, error) {
	lits := make([]Literal, 0, len(vals))
	for _, v := range vals {
		lit, err := valueToLiteral(v)
		if err != nil {
			return nil, err
		}
		lits = append(lits, lit)
	}
	return lits, nil
}

func validTypeName(name string) bool {
	switch name {
	case "string", "number", "bool", "null", "array", "object":
		return true
	default:
		return false
	}
}
