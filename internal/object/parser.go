package object

import (
	"bytes"

	"github.com/melihbirim/zson/internal/token"
)

const (
	initialTokenBuf = 256
	maxTokenBuf     = 1 << 20 // 1M tokens is far beyond any sane single record
)

// Parser parses one JSON object at a time, reusing its token buffer
// across calls. Parser is not safe for concurrent use; the parallel
// engine gives each worker goroutine its own Parser, following the
// pooled-reuse, Parse(b, reuse *ParsedJson)-style idiom of reusing a
// scratch buffer across calls instead of allocating one per parse.
type Parser struct {
	toks []token.Token
}

// NewParser returns a Parser ready to use.
func NewParser() *Parser {
	return &Parser{toks: make([]token.Token, initialTokenBuf)}
}

// Parse parses a single top-level JSON object starting at data's '{'.
// The returned Object's keys and scalar values are sub-slices of
// data; data must outlive the Object.
func (p *Parser) Parse(data []byte) (*Object, error) {
	toks, err := p.scan(data)
	if err != nil {
		return nil, err
	}
	c := &cursor{data: data, toks: toks}
	obj, err := parseObject(c)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// scan tokenizes data, growing the token buffer and retrying if it is
// too small: either size buffers conservatively up front, or re-run
// with a bigger one on overflow.
func (p *Parser) scan(data []byte) ([]token.Token, error) {
	for {
		n, err := token.Scan(data, p.toks)
		if err == nil {
			return p.toks[:n], nil
		}
		if err != token.ErrTokenBufferFull {
			return nil, err
		}
		if len(p.toks) >= maxTokenBuf {
			return nil, ErrUnexpectedEnd
		}
		p.toks = make([]token.Token, len(p.toks)*2)
	}
}

// cursor walks a token stream alongside the byte buffer it was
// produced from.
type cursor struct {
	data []byte
	toks []token.Token
	ti   int
}

func (c *cursor) peek() (token.Token, bool) {
	if c.ti >= len(c.toks) {
		return token.Token{}, false
	}
	return c.toks[c.ti], true
}

func (c *cursor) next() (token.Token, bool) {
	t, ok := c.peek()
	if ok {
		c.ti++
	}
	return t, ok
}

// findClosingQuote advances past a string's interior tokens. The
// scanner is context-free (internal/token) and emits a token for
// every structural byte regardless of whether it sits inside a
// string, so a comma, colon, or brace inside a string literal shows
// up here too; the closing quote is simply the next Quote-kind token,
// not necessarily the very next token.
func findClosingQuote(c *cursor) (token.Token, bool) {
	for {
		t, ok := c.next()
		if !ok {
			return token.Token{}, false
		}
		if t.Kind == token.Quote {
			return t, true
		}
	}
}

// parseObject consumes an OpenBrace..CloseBrace span from c.
func parseObject(c *cursor) (*Object, error) {
	t, ok := c.next()
	if !ok {
		return nil, ErrUnexpectedEnd
	}
	if t.Kind != token.OpenBrace {
		return nil, ErrInvalidJSON
	}
	obj := &Object{}

	// Empty object: '{' immediately followed by '}'.
	if nt, ok := c.peek(); ok && nt.Kind == token.CloseBrace {
		c.next()
		return obj, nil
	}

	for {
		kt, ok := c.next()
		if !ok {
			return nil, ErrUnexpectedEnd
		}
		if kt.Kind != token.Quote {
			return nil, ErrExpectedQuote
		}
		keyStart := kt.Offset + 1
		keyEnd, ok := findClosingQuote(c)
		if !ok {
			return nil, ErrMalformedKey
		}
		key := c.data[keyStart:keyEnd.Offset]

		colon, ok := c.next()
		if !ok || colon.Kind != token.Colon {
			return nil, ErrExpectedColon
		}

		val, err := parseValue(c, colon.Offset+1)
		if err != nil {
			return nil, err
		}
		obj.Keys = append(obj.Keys, key)
		obj.Values = append(obj.Values, val)

		sep, ok := c.next()
		if !ok {
			return nil, ErrUnexpectedEnd
		}
		switch sep.Kind {
		case token.Comma:
			continue
		case token.CloseBrace:
			return obj, nil
		default:
			return nil, ErrUnexpectedToken
		}
	}
}

// parseArray consumes an OpenBracket..CloseBracket span from c.
// elemStart is the byte offset immediately following the '['.
func parseArray(c *cursor, elemStart int) ([]Value, error) {
	// Empty only if nothing but whitespace sits before the ']': a lone
	// scalar element such as [1] emits no token of its own either.
	if nt, ok := c.peek(); ok && nt.Kind == token.CloseBracket && len(trimSpace(c.data[elemStart:nt.Offset])) == 0 {
		c.next()
		return nil, nil
	}

	var vals []Value
	for {
		val, err := parseValue(c, elemStart)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)

		sep, ok := c.next()
		if !ok {
			return nil, ErrUnexpectedEnd
		}
		switch sep.Kind {
		case token.Comma:
			elemStart = sep.Offset + 1
			continue
		case token.CloseBracket:
			return vals, nil
		default:
			return nil, ErrUnexpectedToken
		}
	}
}

// parseValue parses the value that begins at or after start. If the
// next token opens a string/object/array, that token determines the
// value; otherwise no structural token started the value, and it is
// the scalar literal sitting between start and the next token (a
// comma or closing brace/bracket).
func parseValue(c *cursor, start int) (Value, error) {
	t, ok := c.peek()
	if !ok {
		return Value{}, ErrUnexpectedEnd
	}
	switch t.Kind {
	case token.Quote:
		c.next()
		strStart := t.Offset + 1
		end, ok := findClosingQuote(c)
		if !ok {
			return Value{}, ErrMalformedString
		}
		return Value{Kind: KindString, Str: c.data[strStart:end.Offset]}, nil
	case token.OpenBrace:
		obj, err := parseObject(c)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindObject, Obj: obj}, nil
	case token.OpenBracket:
		c.next()
		arr, err := parseArray(c, t.Offset+1)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindArray, Arr: arr}, nil
	case token.Comma, token.CloseBrace, token.CloseBracket:
		return parseScalar(trimSpace(c.data[start:t.Offset]))
	default:
		return Value{}, ErrUnexpectedToken
	}
}

// parseScalar classifies a trimmed literal textually: null, true,
// false, or (otherwise) a number.
func parseScalar(lit []byte) (Value, error) {
	switch {
	case len(lit) == 0:
		return Value{}, ErrUnexpectedToken
	case bytes.Equal(lit, []byte("null")):
		return Value{Kind: KindNull}, nil
	case bytes.Equal(lit, []byte("true")):
		return Value{Kind: KindBool, Bool: true}, nil
	case bytes.Equal(lit, []byte("false")):
		return Value{Kind: KindBool, Bool: false}, nil
	default:
		return Value{Kind: KindNumber, Num: lit}, nil
	}
}

func trimSpace(b []byte) []byte {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}
	j := len(b)
	for j > i && isSpace(b[j-1]) {
		j--
	}
	return b[i:j]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
