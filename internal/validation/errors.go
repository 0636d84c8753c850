package validation

import (
	"fmt"
	"sort"
	"strings"
)

// MinPasswordLength is the shortest password, in characters, an account may use.
const MinPasswordLength = 6

// MaxPasswordLength is the longest password, in bytes, bcrypt accepts.
const MaxPasswordLength = 72

// Kind classifies a single field violation.
type Kind int

const (
	BlankField Kind = iota
	TooShort
	TooLong
	Mismatch
	AlreadyTaken
)

// Message returns the human-readable text shown next to the offending field.
func (k Kind) Message() string {
	switch k {
	case BlankField:
		return "can't be blank"
	case TooShort:
		return fmt.Sprintf("is too short (minimum is %d characters)", MinPasswordLength)
	case TooLong:
		return fmt.Sprintf("is too long (maximum is %d characters)", MaxPasswordLength)
	case Mismatch:
		return "doesn't match Password"
	case AlreadyTaken:
		return "has already been taken"
	default:
		return "is invalid"
	}
}

func (k Kind) String() string {
	switch k {
	case BlankField:
		return "blank_field"
	case TooShort:
		return "too_short"
	case TooLong:
		return "too_long"
	case Mismatch:
		return "mismatch"
	case AlreadyTaken:
		return "already_taken"
	default:
		return "unknown"
	}
}

// Errors maps a field name to the ordered violation messages for that field.
// A nil or empty Errors means the candidate is valid.
type Errors map[string][]string

// Add records a violation of the given kind on field.
func (e Errors) Add(field string, kind Kind) {
	e[field] = append(e[field], kind.Message())
}

// Has reports whether field carries the message for kind.
func (e Errors) Has(field string, kind Kind) bool {
	msg := kind.Message()
	for _, m := range e[field] {
		if m == msg {
			return true
		}
	}
	return false
}

// Valid reports whether no violations were recorded.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Err returns e as an error, or nil when there are no violations.
func (e Errors) Err() error {
	if e.Valid() {
		return nil
	}
	return e
}

// Error implements the error interface with a stable, field-sorted rendering.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation error"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		for _, msg := range e[field] {
			parts = append(parts, field+" "+msg)
		}
	}
	return strings.Join(parts, "; ")
}
