package output

import "github.com/melihbirim/zson/internal/object"

// AppendJSONRecord appends obj's JSON representation to dst, with no
// trailing separator — the caller (WrapJSONArray) owns commas and the
// enclosing brackets. pretty expands each field onto its own indented
// line instead of a single dense line.
func AppendJSONRecord(dst []byte, obj *object.Object, projection []FieldSpec, pretty bool) []byte {
	if !pretty {
		return appendObject(dst, obj, projection)
	}
	return appendPrettyObject(dst, obj, projection)
}

func appendPrettyObject(dst []byte, obj *object.Object, projection []FieldSpec) []byte {
	type entry struct {
		key string
		val object.Value
	}
	var entries []entry
	if len(projection) == 0 {
		entries = make([]entry, len(obj.Keys))
		for i, k := range obj.Keys {
			entries[i] = entry{key: string(k), val: obj.Values[i]}
		}
	} else {
		for _, spec := range projection {
			v, ok := obj.GetPath(spec.Path)
			if !ok {
				continue
			}
			entries = append(entries, entry{key: spec.Header, val: v})
		}
	}

	if len(entries) == 0 {
		return append(dst, '{', '}')
	}
	dst = append(dst, '{', '\n')
	for i, e := range entries {
		dst = appendIndent(dst, 1)
		dst = append(dst, '"')
		dst = append(dst, e.key...)
		dst = append(dst, '"', ':', ' ')
		dst = appendValue(dst, e.val)
		if i < len(entries)-1 {
			dst = append(dst, ',')
		}
		dst = append(dst, '\n')
	}
	return append(dst, '}')
}

// WrapJSONArray concatenates records (each from AppendJSONRecord) into
// a single top-level JSON array, allocating the exact-size destination
// buffer up front in one pass.
func WrapJSONArray(records [][]byte, pretty bool) []byte {
	total := 2
	for _, r := range records {
		total += len(r)
	}
	if len(records) > 1 {
		total += len(records) - 1
	}
	if pretty && len(records) > 0 {
		total += len(records) + 1
	}
	dst := make([]byte, 0, total)
	dst = append(dst, '[')
	if pretty && len(records) > 0 {
		dst = append(dst, '\n')
	}
	for i, r := range records {
		dst = append(dst, r...)
		if i < len(records)-1 {
			dst = append(dst, ',')
		}
		if pretty {
			dst = append(dst, '\n')
		}
	}
	dst = append(dst, ']')
	return dst
}
