package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jungle-shop/storefront/types"
)

// CategoryRepository handles persistence for categories.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]types.Category, error) {
	const query = `SELECT id, name, created_at, updated_at FROM categories ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]types.Category, 0)
	for rows.Next() {
		var category types.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (types.Category, error) {
	const query = `SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`
	var category types.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Category{}, ErrNotFound
		}
		return types.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category types.Category) (types.Category, error) {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	const query = `
		INSERT INTO categories (name, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, category.Name, category.CreatedAt, category.UpdatedAt).Scan(&category.ID); err != nil {
		return types.Category{}, err
	}
	return category, nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(1) FROM categories`
	var total int
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
