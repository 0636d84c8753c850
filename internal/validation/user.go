package validation

import (
	"context"
	"errors"

	"github.com/jungle-shop/storefront/internal/store"
	"github.com/jungle-shop/storefront/types"
)

// UserLookup finds a persisted user by normalized email.
// It returns store.ErrNotFound when no user matches.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (types.User, error)
}

// ValidateNewUser checks every account rule and returns all violations at once.
// The returned error is non-nil only when the uniqueness lookup itself fails.
func ValidateNewUser(ctx context.Context, users UserLookup, candidate types.NewUser) (Errors, error) {
	errs := Errors{}

	if blankString(candidate.FirstName) {
		errs.Add("first_name", BlankField)
	}
	if blankString(candidate.LastName) {
		errs.Add("last_name", BlankField)
	}

	if blankString(candidate.Email) {
		errs.Add("email", BlankField)
	} else {
		_, err := users.GetByEmail(ctx, NormalizeEmail(candidate.Email))
		switch {
		case err == nil:
			errs.Add("email", AlreadyTaken)
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
	}

	if candidate.Password == "" {
		errs.Add("password", BlankField)
	}
	if shorterThan(candidate.Password, MinPasswordLength) {
		errs.Add("password", TooShort)
	}
	if len(candidate.Password) > MaxPasswordLength {
		errs.Add("password", TooLong)
	}
	if !equal(candidate.PasswordConfirmation, candidate.Password) {
		errs.Add("password_confirmation", Mismatch)
	}

	return errs, nil
}
