package schema

// InputRecord is an untrusted client payload: a mapping from field name to
// an untyped value. A key present with a nil value is distinct from an
// absent key, mirroring JSON null versus omitted.
type InputRecord map[string]any

// Present reports whether the field key exists in the record, regardless of
// its value.
func (r InputRecord) Present(name string) bool {
	_, ok := r[name]
	return ok
}

// String returns the field as a string when it is present and string-typed.
func (r InputRecord) String(name string) (string, bool) {
	v, ok := r[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy so sanitization never mutates the caller's
// map.
func (r InputRecord) Clone() InputRecord {
	out := make(InputRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
