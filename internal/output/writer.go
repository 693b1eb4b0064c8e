// Package output serializes matched records to ndjson, json, or csv.
// It is a pluggable formatting layer kept outside the filtering
// engine: the engine only guarantees it hands matching records to
// this package. Writers append to a caller-owned []byte rather than
// building intermediate interface{} trees.
package output

import (
	"strings"

	"github.com/melihbirim/zson/internal/object"
)

// FieldSpec names one projected field. Header is the literal dotted
// path as given via --select; it is used verbatim as the output key
// (NDJSON/JSON) or CSV column name — a flattened projection rather
// than reconstructing nested objects from a dotted selection, which
// keeps multi-field --select unambiguous. Path is Header split on '.'
// for resolution against a parsed Object.
type FieldSpec struct {
	Header string
	Path   []string
}

// ParseSelect builds field specs from --select's comma-separated dotted
// field names.
func ParseSelect(fields []string) []FieldSpec {
	specs := make([]FieldSpec, len(fields))
	for i, f := range fields {
		specs[i] = FieldSpec{Header: f, Path: strings.Split(f, ".")}
	}
	return specs
}

// FieldSpecsFromKeys builds specs from an object's own top-level key
// order, used for CSV headers when no --select projection was given.
func FieldSpecsFromKeys(obj *object.Object) []FieldSpec {
	specs := make([]FieldSpec, len(obj.Keys))
	for i, k := range obj.Keys {
		key := string(k)
		specs[i] = FieldSpec{Header: key, Path: []string{key}}
	}
	return specs
}

func appendIndent(dst []byte, depth int) []byte {
	for i := 0; i < depth; i++ {
		dst = append(dst, ' ', ' ')
	}
	return dst
}

// appendValue appends v's raw JSON representation to dst. Strings are
// copied byte-for-byte (the parser never unescapes, so neither does
// this); numbers are copied verbatim from their source slice.
func appendValue(dst []byte, v object.Value) []byte {
	switch v.Kind {
	case object.KindNull:
		return append(dst, "null"...)
	case object.KindBool:
		if v.Bool {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case object.KindNumber:
		return append(dst, v.Num...)
	case object.KindString:
		dst = append(dst, '"')
		dst = append(dst, v.Str...)
		dst = append(dst, '"')
		return dst
	case object.KindArray:
		dst = append(dst, '[')
		for i, e := range v.Arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendValue(dst, e)
		}
		return append(dst, ']')
	case object.KindObject:
		return appendObject(dst, v.Obj, nil)
	default:
		return dst
	}
}

// appendObject appends obj's raw JSON representation to dst. An empty
// projection emits all fields in original input order; a non-empty
// one emits only the projected fields, in projection order, skipping
// any that are absent.
func appendObject(dst []byte, obj *object.Object, projection []FieldSpec) []byte {
	dst = append(dst, '{')
	first := true
	if len(projection) == 0 {
		for i, k := range obj.Keys {
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = append(dst, '"')
			dst = append(dst, k...)
			dst = append(dst, '"', ':')
			dst = appendValue(dst, obj.Values[i])
		}
	} else {
		for _, spec := range projection {
			v, ok := obj.GetPath(spec.Path)
			if !ok {
				continue
			}
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = append(dst, '"')
			dst = append(dst, spec.Header...)
			dst = append(dst, '"', ':')
			dst = appendValue(dst, v)
		}
	}
	return append(dst, '}')
}
