package validate

import (
	"strings"

	"landwand-api/internal/schema"
)

// Mode selects required-field semantics: create enforces presence of every
// required field, update allows partial records.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// ValidateRecord checks a sanitized input record against an entity schema.
// Fields are evaluated in the schema's declared order and the first failure
// wins; callers and tests rely on that ordering.
func ValidateRecord(record schema.InputRecord, s schema.RecordSchema, mode Mode) Outcome {
	if record == nil {
		return invalid("Invalid data format")
	}

	for _, f := range s.Fields {
		v, present := record[f.Name]

		if mode == ModeCreate && f.Required {
			if !present || !CheckPresence(v, f.Name).Valid {
				return invalid("Missing required field: %s", f.Name)
			}
		}
		if !present {
			continue
		}
		// Optional fields supplied as null or blank are treated as "not
		// provided" rather than failed.
		if !f.Required && !CheckPresence(v, f.Name).Valid {
			continue
		}

		if outcome := checkField(v, f); !outcome.Valid {
			return outcome
		}
	}

	return valid()
}

func checkField(v any, f schema.FieldSpec) Outcome {
	switch f.Kind {
	case schema.KindEnum:
		return CheckChoice(v, f.AllowedValues, displayName(f.Name))
	case schema.KindInteger, schema.KindDecimal:
		return CheckNumericRange(v, displayName(f.Name), f.MinValue, f.MaxValue)
	case schema.KindDate:
		return CheckDate(v, displayName(f.Name))
	default:
		switch f.Pattern {
		case schema.PatternEmail:
			return CheckEmail(v)
		case schema.PatternPhone:
			return CheckPhone(v)
		case schema.PatternURL:
			return CheckURL(v)
		}
		if outcome := CheckStringLength(v, f.MinLength, f.MaxLength); !outcome.Valid {
			return invalid("%s: %s", displayName(f.Name), outcome.Message)
		}
		return valid()
	}
}

func displayName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
