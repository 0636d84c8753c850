package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/jungle-shop/storefront/internal/storage"
	"github.com/jungle-shop/storefront/internal/store"
	"github.com/jungle-shop/storefront/internal/validation"
	"github.com/jungle-shop/storefront/types"
)

var (
	// ErrStorageDisabled is returned by image operations when no object
	// storage backend is configured.
	ErrStorageDisabled = errors.New("object storage is not configured")

	// ErrUnsupportedImage is returned when an upload is not an image.
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context, categoryID *int, offset, limit int) ([]types.Product, int, error)
	Get(ctx context.Context, id int) (types.Product, error)
	Create(ctx context.Context, product types.Product) (types.Product, error)
	UpdateImage(ctx context.Context, id int, key string) error
	Count(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) ([]types.CategoryCount, error)
}

// ProductService encapsulates catalog product use-cases.
type ProductService struct {
	repo       ProductRepository
	categories validation.CategoryLookup
	storage    *storage.Storage
}

// NewProductService wires the service. objects may be nil, in which case
// image operations return ErrStorageDisabled.
func NewProductService(repo ProductRepository, categories validation.CategoryLookup, objects *storage.Storage) *ProductService {
	return &ProductService{repo: repo, categories: categories, storage: objects}
}

func (s *ProductService) List(ctx context.Context, categoryID *int, offset, limit int) ([]types.Product, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, categoryID, offset, limit)
}

func (s *ProductService) Get(ctx context.Context, id int) (types.Product, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a product. Rule violations come back as
// validation.Errors.
func (s *ProductService) Create(ctx context.Context, product types.Product) (types.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	product.Description = strings.TrimSpace(product.Description)

	errs, err := validation.ValidateProduct(ctx, s.categories, product)
	if err != nil {
		slog.ErrorContext(ctx, "failed to resolve product category", "error", err)
		return types.Product{}, err
	}
	if !errs.Valid() {
		return types.Product{}, errs
	}

	return s.repo.Create(ctx, product)
}

// AttachImage uploads data as the product's image and records its key.
func (s *ProductService) AttachImage(ctx context.Context, id int, filename string, data []byte) (types.Product, error) {
	if s.storage == nil {
		return types.Product{}, ErrStorageDisabled
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return types.Product{}, ErrUnsupportedImage
	}

	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Product{}, err
	}

	key := imageKey(id, filename)
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		slog.ErrorContext(ctx, "failed to upload product image", "product_id", id, "key", key, "error", err)
		return types.Product{}, err
	}

	if err := s.repo.UpdateImage(ctx, id, key); err != nil {
		_ = s.storage.Delete(ctx, key)
		return types.Product{}, err
	}

	if product.Image != "" {
		if err := s.storage.Delete(ctx, product.Image); err != nil {
			slog.WarnContext(ctx, "failed to remove previous product image", "product_id", id, "key", product.Image, "error", err)
		}
	}

	product.Image = key
	return product, nil
}

// OpenImage opens the stored image of a product. A product without an image
// yields store.ErrNotFound.
func (s *ProductService) OpenImage(ctx context.Context, id int) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.Image == "" {
		return nil, store.ErrNotFound
	}
	return s.storage.Get(ctx, product.Image)
}

func imageKey(productID int, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	return fmt.Sprintf("products/%d/%s%s", productID, uuid.NewString(), ext)
}
