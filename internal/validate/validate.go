// Package validate checks untrusted input records against the per-entity
// field constraints before any SQL is built from them.
package validate

import "fmt"

// Outcome is the result of one validation check. Message is part of the
// API contract for invalid outcomes and is returned to clients verbatim.
type Outcome struct {
	Valid   bool
	Message string
}

func valid() Outcome {
	return Outcome{Valid: true}
}

func invalid(format string, args ...any) Outcome {
	return Outcome{Valid: false, Message: fmt.Sprintf(format, args...)}
}
