package query

import "errors"

// Compile errors. A compile failure is reported to the user and
// aborts the run; it never reaches the evaluator.
var (
	ErrInvalidOperator           = errors.New("query: invalid operator")
	ErrUnsupportedOperator       = errors.New("query: unsupported operator")
	ErrExpectedObject            = errors.New("query: expected object")
	ErrExpectedArray             = errors.New("query: expected array")
	ErrUnsupportedValueType      = errors.New("query: unsupported value type")
	ErrUnsupportedQueryStructure = errors.New("query: unsupported query structure")
	ErrInvalidQuery              = errors.New("query: invalid query")
)
