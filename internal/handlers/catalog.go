package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jungle-shop/storefront/internal/services"
	"github.com/jungle-shop/storefront/internal/storage"
	"github.com/jungle-shop/storefront/internal/store"
	"github.com/jungle-shop/storefront/types"
)

// CatalogHandler serves the public product and category endpoints.
type CatalogHandler struct {
	products   *services.ProductService
	categories *services.CategoryService
}

func NewCatalogHandler(products *services.ProductService, categories *services.CategoryService) *CatalogHandler {
	return &CatalogHandler{products: products, categories: categories}
}

// ProductRouter registers product routes on the given router.
func ProductRouter(r chi.Router, handler *CatalogHandler) {
	r.Get("/", handler.ListProducts)
	r.Get("/{productID}", handler.GetProduct)
	r.Get("/{productID}/image", handler.GetProductImage)
}

// CategoryRouter registers category routes on the given router.
func CategoryRouter(r chi.Router, handler *CatalogHandler) {
	r.Get("/", handler.ListCategories)
	r.Get("/{categoryID}", handler.GetCategory)
}

// CategoryResponse is a category together with its products.
type CategoryResponse struct {
	types.Category
	Products []types.Product `json:"products"`
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var categoryID *int
	if raw := strings.TrimSpace(r.URL.Query().Get("category_id")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			writeError(w, http.StatusBadRequest, "invalid category id")
			return
		}
		categoryID = &id
	}

	products, total, err := h.products.List(r.Context(), categoryID, offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []types.Product{}
	}

	writeJSON(w, http.StatusOK, ListResponse[types.Product]{
		Items: products,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID", "product")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetProductImage streams the stored product image.
func (h *CatalogHandler) GetProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID", "product")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	reader, err := h.products.OpenImage(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound), errors.Is(err, storage.ErrObjectNotFound):
			writeError(w, http.StatusNotFound, "image not found")
		case errors.Is(err, services.ErrStorageDisabled):
			writeError(w, http.StatusServiceUnavailable, "image storage unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "failed to load image")
		}
		return
	}
	defer reader.Close()

	// Sniff from the first chunk, then stream the rest.
	head := make([]byte, 512)
	n, err := io.ReadFull(reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusInternalServerError, "failed to load image")
		return
	}
	head = head[:n]

	w.Header().Set("Content-Type", http.DetectContentType(head))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(head)
	_, _ = io.Copy(w, reader)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []types.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategory returns a category with a page of its products.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "categoryID", "category")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load category")
		return
	}

	products, _, err := h.products.List(r.Context(), &id, offset, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []types.Product{}
	}

	writeJSON(w, http.StatusOK, CategoryResponse{Category: category, Products: products})
}
