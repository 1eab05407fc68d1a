package validate

import (
	"strings"

	"landwand-api/internal/schema"
)

// SanitizeString strips NUL bytes and then trims surrounding whitespace.
// NULs go first: a NUL at a string edge can shield whitespace from the
// trim, and the result must be stable under a second application.
func SanitizeString(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, "\x00", ""))
}

// Sanitize returns a copy of the record with every string-typed value whose
// field name appears in stringFields sanitized. Absent fields, nil values,
// and non-string values pass through unchanged. It never fails.
func Sanitize(record schema.InputRecord, stringFields map[string]struct{}) schema.InputRecord {
	if record == nil {
		return nil
	}
	out := record.Clone()
	for name := range stringFields {
		v, ok := out[name]
		if !ok {
			continue
		}
		if s, isString := v.(string); isString {
			out[name] = SanitizeString(s)
		}
	}
	return out
}
