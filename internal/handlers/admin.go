package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jungle-shop/storefront/internal/services"
	"github.com/jungle-shop/storefront/internal/store"
	"github.com/jungle-shop/storefront/types"
)

const (
	adminRealm     = "storefront admin"
	maxImageSize   = 10 << 20
	imageFormField = "image"
)

// AdminHandler serves the back-office endpoints.
type AdminHandler struct {
	products   *services.ProductService
	categories *services.CategoryService
	dashboard  *services.DashboardService
}

func NewAdminHandler(products *services.ProductService, categories *services.CategoryService, dashboard *services.DashboardService) *AdminHandler {
	return &AdminHandler{products: products, categories: categories, dashboard: dashboard}
}

// AdminRouter registers admin routes behind HTTP basic auth. When either
// credential is empty every request is refused.
func AdminRouter(r chi.Router, handler *AdminHandler, username, password string) {
	if username == "" || password == "" {
		r.Use(adminDisabled)
	} else {
		r.Use(middleware.BasicAuth(adminRealm, map[string]string{username: password}))
	}

	r.Get("/dashboard", handler.Dashboard)
	r.Post("/categories", handler.CreateCategory)
	r.Post("/products", handler.CreateProduct)
	r.Put("/products/{productID}/image", handler.UploadProductImage)
}

func adminDisabled(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusServiceUnavailable, "admin access is not configured")
	})
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

type ProductCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
	Quantity    *int   `json:"quantity"`
	CategoryID  *int   `json:"category_id"`
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	if stats.ProductsByCategory == nil {
		stats.ProductsByCategory = []types.CategoryCount{}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	category, err := h.categories.Create(r.Context(), types.Category{Name: req.Name})
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	product, err := h.products.Create(r.Context(), types.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		if writeValidationError(w, err) {
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UploadProductImage replaces the product image with the multipart "image" file.
func (h *AdminHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "productID", "product")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+(1<<20))
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	data, err := readFileLimited(file, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.products.AttachImage(r.Context(), id, header.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, services.ErrUnsupportedImage):
			writeError(w, http.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, services.ErrStorageDisabled):
			writeError(w, http.StatusServiceUnavailable, "image storage unavailable")
		default:
			writeError(w, http.StatusInternalServerError, "failed to store image")
		}
		return
	}

	writeJSON(w, http.StatusOK, product)
}
