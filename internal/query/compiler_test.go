package query

import (
	"testing"

	"github.com/melihbirim/zson/internal/object"
)

func parseRecord(t *testing.T, src string) *object.Object {
	t.Helper()
	obj, err := object.NewParser().Parse([]byte(src))
	if err != nil {
		t.Fatalf("parsing record %q: %v", src, err)
	}
	return obj
}

func mustCompile(t *testing.T, q string) *Filter {
	t.Helper()
	f, err := Compile([]byte(q))
	if err != nil {
		t.Fatalf("Compile(%q): %v", q, err)
	}
	return f
}

func TestEmptyQueryAlwaysMatches(t *testing.T) {
	f := mustCompile(t, `{}`)
	for _, rec := range []string{`{}`, `{"a":1}`, `{"a":"x","b":[1,2]}`} {
		if !Eval(parseRecord(t, rec), f) {
			t.Errorf("{} should match %q", rec)
		}
	}
}

func TestScalarEquality(t *testing.T) {
	f := mustCompile(t, `{"a":1}`)
	if !Eval(parseRecord(t, `{"a":1}`), f) {
		t.Error("expected match")
	}
	if Eval(parseRecord(t, `{"a":2}`), f) {
		t.Error("expected no match")
	}
	if Eval(parseRecord(t, `{"b":1}`), f) {
		t.Error("missing field should not match")
	}
}

func TestComparisonOperators(t *testing.T) {
	cases := []struct {
		q     string
		rec   string
		match bool
	}{
		{`{"a":{"$gt":1}}`, `{"a":2}`, true},
		{`{"a":{"$gt":1}}`, `{"a":1}`, false},
		{`{"a":{"$gte":1}}`, `{"a":1}`, true},
		{`{"a":{"$lt":1}}`, `{"a":0}`, true},
		{`{"a":{"$lte":1}}`, `{"a":1}`, true},
		{`{"a":{"$ne":5}}`, `{"a":"hello"}`, false}, // cross-type Ne is false
		{`{"a":{"$ne":5}}`, `{"a":6}`, true},
		{`{"a":{"$gt":"m"}}`, `{"a":1}`, false}, // cross-type ordering is always false
	}
	for _, c := range cases {
		f := mustCompile(t, c.q)
		got := Eval(parseRecord(t, c.rec), f)
		if got != c.match {
			t.Errorf("q=%s rec=%s: got %v, want %v", c.q, c.rec, got, c.match)
		}
	}
}

func TestLogicalOperators(t *testing.T) {
	or := mustCompile(t, `{"$or":[{"city":"NYC"},{"city":"LA"}]}`)
	if !Eval(parseRecord(t, `{"city":"NYC"}`), or) {
		t.Error("$or should match NYC")
	}
	if !Eval(parseRecord(t, `{"city":"LA"}`), or) {
		t.Error("$or should match LA")
	}
	if Eval(parseRecord(t, `{"city":"Chicago"}`), or) {
		t.Error("$or should not match Chicago")
	}

	and := mustCompile(t, `{"a":1,"b":2}`)
	if !Eval(parseRecord(t, `{"a":1,"b":2}`), and) {
		t.Error("implicit $and should match")
	}
	if Eval(parseRecord(t, `{"a":1,"b":3}`), and) {
		t.Error("implicit $and should not match")
	}

	not := mustCompile(t, `{"$not":{"a":1}}`)
	if Eval(parseRecord(t, `{"a":1}`), not) {
		t.Error("$not should reject a match")
	}
	if !Eval(parseRecord(t, `{"a":2}`), not) {
		t.Error("$not should accept a non-match")
	}

	nor := mustCompile(t, `{"$nor":[{"a":1},{"b":2}]}`)
	if Eval(parseRecord(t, `{"a":1}`), nor) {
		t.Error("$nor should reject when any operand matches")
	}
	if !Eval(parseRecord(t, `{"a":9,"b":9}`), nor) {
		t.Error("$nor should accept when no operand matches")
	}
}

func TestInNin(t *testing.T) {
	in := mustCompile(t, `{"a":{"$in":[1,2,3]}}`)
	if !Eval(parseRecord(t, `{"a":2}`), in) {
		t.Error("$in should match scalar member")
	}
	if Eval(parseRecord(t, `{"a":9}`), in) {
		t.Error("$in should not match non-member")
	}
	if Eval(parseRecord(t, `{}`), in) {
		t.Error("$in on missing field should be false")
	}
	if !Eval(parseRecord(t, `{"a":[2,9]}`), in) {
		t.Error("$in should match when field array shares an element")
	}

	nin := mustCompile(t, `{"a":{"$nin":[1,2,3]}}`)
	if !Eval(parseRecord(t, `{}`), nin) {
		t.Error("$nin on missing field should be true")
	}
	if Eval(parseRecord(t, `{"a":2}`), nin) {
		t.Error("$nin should reject a member")
	}
}

func TestExists(t *testing.T) {
	f := mustCompile(t, `{"a":{"$exists":true}}`)
	if !Eval(parseRecord(t, `{"a":1}`), f) {
		t.Error("exists:true should match present field")
	}
	if Eval(parseRecord(t, `{"b":1}`), f) {
		t.Error("exists:true should not match absent field")
	}
	g := mustCompile(t, `{"a":{"$exists":false}}`)
	if !Eval(parseRecord(t, `{"b":1}`), g) {
		t.Error("exists:false should match absent field")
	}
}

func TestRegex(t *testing.T) {
	f := mustCompile(t, `{"name":{"$regex":"^ali","$options":"i"}}`)
	if !Eval(parseRecord(t, `{"name":"Alice"}`), f) {
		t.Error("case-insensitive regex should match Alice")
	}
	if !Eval(parseRecord(t, `{"name":"alice"}`), f) {
		t.Error("case-insensitive regex should match alice")
	}
	if Eval(parseRecord(t, `{"name":"Bob"}`), f) {
		t.Error("regex should not match Bob")
	}
	if Eval(parseRecord(t, `{"name":42}`), f) {
		t.Error("regex against a non-string field should never match")
	}
}

func TestSize(t *testing.T) {
	f := mustCompile(t, `{"tags":{"$size":2}}`)
	if !Eval(parseRecord(t, `{"tags":["go","rust"]}`), f) {
		t.Error("size:2 should match a 2-element array")
	}
	if Eval(parseRecord(t, `{"tags":["go"]}`), f) {
		t.Error("size:2 should not match a 1-element array")
	}
	if Eval(parseRecord(t, `{"tags":[]}`), f) {
		t.Error("size:2 should not match an empty array")
	}
}

func TestType(t *testing.T) {
	for _, c := range []struct {
		typ   string
		rec   string
		match bool
	}{
		{"string", `{"a":"x"}`, true},
		{"number", `{"a":1}`, true},
		{"bool", `{"a":true}`, true},
		{"null", `{"a":null}`, true},
		{"null", `{}`, true}, // missing field matches type null
		{"array", `{"a":[1]}`, true},
		{"object", `{"a":{}}`, true},
		{"string", `{"a":1}`, false},
	} {
		f := mustCompile(t, `{"a":{"$type":"`+c.typ+`"}}`)
		if got := Eval(parseRecord(t, c.rec), f); got != c.match {
			t.Errorf("$type:%s rec=%s: got %v, want %v", c.typ, c.rec, got, c.match)
		}
	}
}

func TestNestedFieldPath(t *testing.T) {
	f := mustCompile(t, `{"u.age":{"$gt":30}}`)
	if !Eval(parseRecord(t, `{"u":{"age":40}}`), f) {
		t.Error("nested path should match")
	}
	if Eval(parseRecord(t, `{"u":{"age":20}}`), f) {
		t.Error("nested path should not match")
	}
}

func TestCompileErrors(t *testing.T) {
	cases := []string{
		`{"$and":1}`,
		`{"$and":[1]}`,
		`{"a":{"$bogus":1}}`,
		`{"a":{"$in":1}}`,
		`{"$foo":{}}`,
		`not json`,
	}
	for _, c := range cases {
		if _, err := Compile([]byte(c)); err == nil {
			t.Errorf("Compile(%q): expected error, got nil", c)
		}
	}
}
