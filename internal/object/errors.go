package object

import "errors"

// Parse errors. A parse error on one record means
// the caller skips that record; no partial Object ever leaks out of
// Parse.
var (
	ErrInvalidJSON     = errors.New("object: invalid json")
	ErrExpectedQuote   = errors.New("object: expected quote")
	ErrMalformedKey    = errors.New("object: malformed key")
	ErrExpectedColon   = errors.New("object: expected colon")
	ErrUnexpectedEnd   = errors.New("object: unexpected end of input")
	ErrMalformedString = errors.New("object: malformed string")
	ErrUnexpectedToken = errors.New("object: unexpected token")
)
