package output

import (
	"bytes"

	"github.com/melihbirim/zson/internal/object"
)

// CSVHeaderLine renders specs as an RFC4180 header row.
func CSVHeaderLine(specs []FieldSpec) []byte {
	dst := make([]byte, 0, 64)
	for i, s := range specs {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendCSVField(dst, []byte(s.Header))
	}
	return append(dst, '\n')
}

// AppendCSVRow appends one RFC4180 row for obj, resolving each spec's
// path independently. A missing field, a null, and an absent field all
// render as an empty column; object and array values render as the
// literal tokens "{}" and "[]" rather than their full contents.
func AppendCSVRow(dst []byte, obj *object.Object, specs []FieldSpec) []byte {
	for i, s := range specs {
		if i > 0 {
			dst = append(dst, ',')
		}
		v, ok := obj.GetPath(s.Path)
		dst = appendCSVValue(dst, v, ok)
	}
	return append(dst, '\n')
}

func appendCSVValue(dst []byte, v object.Value, ok bool) []byte {
	if !ok {
		return dst
	}
	switch v.Kind {
	case object.KindNull:
		return dst
	case object.KindBool:
		if v.Bool {
			return append(dst, "true"...)
		}
		return append(dst, "false"...)
	case object.KindNumber:
		return appendCSVField(dst, v.Num)
	case object.KindString:
		return appendCSVField(dst, v.Str)
	case object.KindArray:
		return append(dst, "[]"...)
	case object.KindObject:
		return append(dst, "{}"...)
	default:
		return dst
	}
}

func appendCSVField(dst, field []byte) []byte {
	if !bytes.ContainsAny(field, ",\"\n") {
		return append(dst, field...)
	}
	dst = append(dst, '"')
	for _, b := range field {
		if b == '"' {
			dst = append(dst, '"', '"')
		} else {
			dst = append(dst, b)
		}
	}
	return append(dst, '"')
}
