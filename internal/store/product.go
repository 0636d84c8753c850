package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jungle-shop/storefront/types"
)

// ProductRepository handles persistence for products.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, COALESCE(image, ''), price_cents, quantity, category_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (types.Product, error) {
	var product types.Product
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Image,
		&product.Price,
		&product.Quantity,
		&product.CategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	return product, err
}

// List returns a page of products, newest first. A nil categoryID lists the
// whole catalog.
func (r *ProductRepository) List(ctx context.Context, categoryID *int, offset, limit int) ([]types.Product, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM products WHERE ($1::int IS NULL OR category_id = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, categoryID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE ($1::int IS NULL OR category_id = $1)
		ORDER BY created_at DESC, id DESC
		OFFSET $2 LIMIT $3`
	rows, err := r.db.QueryContext(ctx, listQuery, categoryID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]types.Product, 0, limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int) (types.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Product{}, ErrNotFound
		}
		return types.Product{}, err
	}
	return product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product types.Product) (types.Product, error) {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	const query = `
		INSERT INTO products (name, description, image, price_cents, quantity, category_id, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Image,
		product.Price,
		product.Quantity,
		product.CategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID); err != nil {
		return types.Product{}, err
	}

	return product, nil
}

// UpdateImage records the object key of the product's image.
func (r *ProductRepository) UpdateImage(ctx context.Context, id int, key string) error {
	const query = `UPDATE products SET image = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, key, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(1) FROM products`
	var total int
	if err := r.db.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// CountByCategory returns the product count of every category, including
// empty ones.
func (r *ProductRepository) CountByCategory(ctx context.Context) ([]types.CategoryCount, error) {
	const query = `
		SELECT c.id, c.name, COUNT(p.id)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name, c.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]types.CategoryCount, 0)
	for rows.Next() {
		var count types.CategoryCount
		if err := rows.Scan(&count.CategoryID, &count.Name, &count.Count); err != nil {
			return nil, err
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
