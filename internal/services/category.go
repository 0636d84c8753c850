package services

import (
	"context"
	"strings"

	"github.com/jungle-shop/storefront/internal/validation"
	"github.com/jungle-shop/storefront/types"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]types.Category, error)
	Get(ctx context.Context, id int) (types.Category, error)
	Create(ctx context.Context, category types.Category) (types.Category, error)
	Count(ctx context.Context) (int, error)
}

// CategoryService encapsulates category use-cases.
type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) List(ctx context.Context) ([]types.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int) (types.Category, error) {
	return s.repo.Get(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, category types.Category) (types.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if errs := validation.ValidateCategory(category); !errs.Valid() {
		return types.Category{}, errs
	}
	return s.repo.Create(ctx, category)
}
