package main

import "errors"

// Error-kind sentinels, matching the established argument/query/I-O
// taxonomy. RunE wraps one of
// these around the underlying cause so the process exits non-zero
// while still reporting what kind of failure occurred.
var (
	errArgument     = errors.New("argument error")
	errQueryCompile = errors.New("query compile error")
	errIO           = errors.New("i/o error")
)
