package validation

import (
	"context"
	"errors"

	"github.com/jungle-shop/storefront/internal/store"
	"github.com/jungle-shop/storefront/types"
)

// CategoryLookup resolves a category by id.
// It returns store.ErrNotFound when the category does not exist.
type CategoryLookup interface {
	Get(ctx context.Context, id int) (types.Category, error)
}

// ValidateProduct checks that name, price, quantity and category are present.
// A category id that does not resolve counts as absent. When categories is nil
// only the presence of the id is checked.
func ValidateProduct(ctx context.Context, categories CategoryLookup, candidate types.Product) (Errors, error) {
	errs := Errors{}

	if blankString(candidate.Name) {
		errs.Add("name", BlankField)
	}
	if blank(candidate.Price) {
		errs.Add("price", BlankField)
	}
	if blank(candidate.Quantity) {
		errs.Add("quantity", BlankField)
	}

	if blank(candidate.CategoryID) {
		errs.Add("category", BlankField)
	} else if categories != nil {
		_, err := categories.Get(ctx, *candidate.CategoryID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			errs.Add("category", BlankField)
		case err != nil:
			return nil, err
		}
	}

	return errs, nil
}

// ValidateCategory checks that the category has a name.
func ValidateCategory(candidate types.Category) Errors {
	errs := Errors{}
	if blankString(candidate.Name) {
		errs.Add("name", BlankField)
	}
	return errs
}
