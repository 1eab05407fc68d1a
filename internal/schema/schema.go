// Package schema declares the per-entity field constraints and allow-lists
// that drive validation and dynamic query construction.
package schema

// Kind identifies the value class a field accepts.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindDecimal
	KindDate
	KindEnum
)

// FieldSpec is the declarative constraint description for one entity
// attribute. Specs are defined once per entity and never mutated.
type FieldSpec struct {
	Name     string
	Kind     Kind
	Required bool // enforced in create mode only

	// String constraints (KindString). MaxLength of 0 means unbounded.
	MinLength int
	MaxLength int

	// Numeric constraints (KindInteger, KindDecimal).
	MinValue *float64
	MaxValue *float64

	// Allowed values for KindEnum, in display order.
	AllowedValues []string

	// Pattern selects a format check for string fields.
	Pattern PatternKind
}

// PatternKind selects one of the format validators for a string field.
type PatternKind int

const (
	PatternNone PatternKind = iota
	PatternEmail
	PatternPhone
	PatternURL
)

// RecordSchema is the ordered set of mutable FieldSpecs for one entity.
// Field order is the evaluation order for validation and the column order
// for partial updates, so it must stay deterministic.
type RecordSchema struct {
	Table     string
	KeyColumn string
	Fields    []FieldSpec
}

// FieldNames returns the allow-listed mutable column names in declaration
// order.
func (s RecordSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// StringFieldNames returns the names of string-valued fields, the set the
// sanitizer operates on.
func (s RecordSchema) StringFieldNames() map[string]struct{} {
	names := make(map[string]struct{})
	for _, f := range s.Fields {
		if f.Kind == KindString || f.Kind == KindEnum || f.Kind == KindDate {
			names[f.Name] = struct{}{}
		}
	}
	return names
}

// Field looks up a spec by name.
func (s RecordSchema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

func minPtr(v float64) *float64 { return &v }
