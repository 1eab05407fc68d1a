package validate

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlPattern   = regexp.MustCompile(`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)$`)
	phoneStrip   = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "")
)

// CheckPresence fails when the value is absent, nil, or a blank string.
func CheckPresence(value any, fieldName string) Outcome {
	if value == nil || value == "" {
		return invalid("%s is required", fieldName)
	}
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return invalid("%s cannot be empty", fieldName)
	}
	return valid()
}

// CheckStringLength fails when the trimmed length falls outside [min, max].
// A max of 0 means no upper bound.
func CheckStringLength(value any, min, max int) Outcome {
	s, ok := value.(string)
	if !ok || s == "" {
		return invalid("Value is required and must be a string")
	}
	length := len([]rune(strings.TrimSpace(s)))
	if length < min {
		return invalid("Value must be at least %d characters long", min)
	}
	if max > 0 && length > max {
		return invalid("Value must not exceed %d characters", max)
	}
	return valid()
}

// CheckNumericRange coerces the value to a float and checks it against the
// optional bounds. Coercion failure is reported as a type error.
func CheckNumericRange(value any, fieldName string, min, max *float64) Outcome {
	num, ok := toFloat(value)
	if !ok {
		return invalid("%s must be a valid number", fieldName)
	}
	if min != nil && num < *min {
		return invalid("%s must be at least %s", fieldName, formatBound(*min))
	}
	if max != nil && num > *max {
		return invalid("%s must not exceed %s", fieldName, formatBound(*max))
	}
	return valid()
}

// CheckChoice fails unless the value is a member of the allowed set. The
// message lists the full set so clients can self-correct.
func CheckChoice(value any, choices []string, fieldName string) Outcome {
	if s, ok := value.(string); ok {
		for _, c := range choices {
			if s == c {
				return valid()
			}
		}
	}
	return invalid("%s must be one of: %s", fieldName, strings.Join(choices, ", "))
}

// CheckEmail validates the local@domain.tld shape with an ASCII local part
// and a TLD of at least two letters.
func CheckEmail(value any) Outcome {
	s, ok := value.(string)
	if !ok || s == "" {
		return invalid("Email is required and must be a string")
	}
	if !emailPattern.MatchString(s) {
		return invalid("Invalid email format")
	}
	return valid()
}

// CheckPhone accepts an optional leading +, spaces, hyphens, and
// parentheses, and requires at least ten digits once those are stripped.
func CheckPhone(value any) Outcome {
	s, ok := value.(string)
	if !ok || s == "" {
		return invalid("Phone number is required and must be a string")
	}
	cleaned := phoneStrip.Replace(s)
	if len(cleaned) < 10 || !allDigits(cleaned) {
		return invalid("Invalid phone number format (minimum 10 digits required)")
	}
	return valid()
}

// CheckURL requires an http or https scheme and a dotted host.
func CheckURL(value any) Outcome {
	s, ok := value.(string)
	if !ok || s == "" {
		return invalid("URL is required and must be a string")
	}
	if !urlPattern.MatchString(s) {
		return invalid("Invalid URL format")
	}
	return valid()
}

// CheckDate validates a YYYY-MM-DD date string.
func CheckDate(value any, fieldName string) Outcome {
	s, ok := value.(string)
	if !ok || s == "" {
		return invalid("%s is required and must be a string", fieldName)
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return invalid("%s must be in format YYYY-MM-DD", fieldName)
	}
	return valid()
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
