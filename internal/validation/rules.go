package validation

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NormalizeEmail trims surrounding whitespace and case-folds an email address
// for comparison and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// blankString treats whitespace-only text as absent.
func blankString(value string) bool {
	return validate.Var(strings.TrimSpace(value), "required") != nil
}

// blank reports whether a pointer-typed value is absent. A non-nil pointer to a
// zero value is present.
func blank(value any) bool {
	return validate.Var(value, "required") != nil
}

func shorterThan(value string, min int) bool {
	return validate.Var(value, "min="+strconv.Itoa(min)) != nil
}

func equal(value, other string) bool {
	return validate.VarWithValue(value, other, "eqcsfield") == nil
}
