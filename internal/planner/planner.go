// Package planner converts allow-listed record fields into parameterized
// SQL statements. Every caller-supplied value becomes a positional
// parameter; only identifiers drawn from server-side allow-lists are ever
// interpolated into SQL text.
package planner

import "errors"

// SQLQuery represents a planned SQL statement with bound args. Once built
// it is immutable: the SQL contains exactly one placeholder per arg, in
// matching order.
type SQLQuery struct {
	SQL  string
	Args []any
}

// ErrNoFieldsToUpdate is returned when a partial update request contains
// none of the allow-listed fields. Callers must treat it as a client
// error, not a server fault.
var ErrNoFieldsToUpdate = errors.New("no valid fields to update")
