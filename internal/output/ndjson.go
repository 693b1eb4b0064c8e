package output

import "github.com/melihbirim/zson/internal/object"

// AppendNDJSON appends obj as one newline-terminated JSON record to dst.
func AppendNDJSON(dst []byte, obj *object.Object, projection []FieldSpec) []byte {
	dst = appendObject(dst, obj, projection)
	return append(dst, '\n')
}
