package services

import (
	"context"

	"github.com/jungle-shop/storefront/types"
)

// DashboardService computes the aggregate counts shown to admins.
type DashboardService struct {
	products   ProductRepository
	categories CategoryRepository
}

func NewDashboardService(products ProductRepository, categories CategoryRepository) *DashboardService {
	return &DashboardService{products: products, categories: categories}
}

func (s *DashboardService) Stats(ctx context.Context) (types.DashboardStats, error) {
	productCount, err := s.products.Count(ctx)
	if err != nil {
		return types.DashboardStats{}, err
	}
	categoryCount, err := s.categories.Count(ctx)
	if err != nil {
		return types.DashboardStats{}, err
	}
	byCategory, err := s.products.CountByCategory(ctx)
	if err != nil {
		return types.DashboardStats{}, err
	}

	return types.DashboardStats{
		ProductCount:       productCount,
		CategoryCount:      categoryCount,
		ProductsByCategory: byCategory,
	}, nil
}
