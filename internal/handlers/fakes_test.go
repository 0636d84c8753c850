package handlers

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jungle-shop/storefront/internal/password"
	"github.com/jungle-shop/storefront/internal/services"
	"github.com/jungle-shop/storefront/internal/store"
	"github.com/jungle-shop/storefront/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret        = "test-secret"
	testAdminUser     = "admin"
	testAdminPassword = "hunter22"
)

type memoryUsers struct {
	mu    sync.RWMutex
	items []types.User
}

func (m *memoryUsers) GetByID(ctx context.Context, id int) (types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.items {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.items {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memoryUsers) Create(ctx context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.items {
		if strings.EqualFold(existing.Email, user.Email) {
			return types.User{}, store.ErrConflict
		}
	}
	user.ID = len(m.items) + 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.items = append(m.items, user)
	return user, nil
}

type memoryCategories struct {
	mu    sync.RWMutex
	items []types.Category
}

func (m *memoryCategories) List(ctx context.Context) ([]types.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]types.Category(nil), m.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryCategories) Get(ctx context.Context, id int) (types.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, category := range m.items {
		if category.ID == id {
			return category, nil
		}
	}
	return types.Category{}, store.ErrNotFound
}

func (m *memoryCategories) Create(ctx context.Context, category types.Category) (types.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = len(m.items) + 1
	m.items = append(m.items, category)
	return category, nil
}

func (m *memoryCategories) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

type memoryProducts struct {
	mu         sync.RWMutex
	items      []types.Product
	categories *memoryCategories
}

func (m *memoryProducts) List(ctx context.Context, categoryID *int, offset, limit int) ([]types.Product, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var filtered []types.Product
	for i := len(m.items) - 1; i >= 0; i-- {
		item := m.items[i]
		if categoryID != nil && (item.CategoryID == nil || *item.CategoryID != *categoryID) {
			continue
		}
		filtered = append(filtered, item)
	}
	total := len(filtered)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return filtered[offset:end], total, nil
}

func (m *memoryProducts) Get(ctx context.Context, id int) (types.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, product := range m.items {
		if product.ID == id {
			return product, nil
		}
	}
	return types.Product{}, store.ErrNotFound
}

func (m *memoryProducts) Create(ctx context.Context, product types.Product) (types.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = len(m.items) + 1
	m.items = append(m.items, product)
	return product, nil
}

func (m *memoryProducts) UpdateImage(ctx context.Context, id int, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Image = key
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memoryProducts) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items), nil
}

func (m *memoryProducts) CountByCategory(ctx context.Context) ([]types.CategoryCount, error) {
	categories, _ := m.categories.List(ctx)
	m.mu.RLock()
	defer m.mu.RUnlock()
	counts := make([]types.CategoryCount, 0, len(categories))
	for _, category := range categories {
		count := types.CategoryCount{CategoryID: category.ID, Name: category.Name}
		for _, product := range m.items {
			if product.CategoryID != nil && *product.CategoryID == category.ID {
				count.Count++
			}
		}
		counts = append(counts, count)
	}
	return counts, nil
}

type testApp struct {
	router     http.Handler
	users      *memoryUsers
	categories *memoryCategories
	products   *memoryProducts
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	hasher, err := password.NewBcrypt(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}

	users := &memoryUsers{}
	categories := &memoryCategories{}
	products := &memoryProducts{categories: categories}

	userService := services.NewUserService(users, hasher, nil)
	categoryService := services.NewCategoryService(categories)
	productService := services.NewProductService(products, categories, nil)
	dashboardService := services.NewDashboardService(products, categories)

	router := chi.NewRouter()
	router.Get("/healthz", Healthz)
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, NewAuthHandler(userService, testSecret, time.Hour))
	})
	catalog := NewCatalogHandler(productService, categoryService)
	router.Route("/products", func(r chi.Router) {
		ProductRouter(r, catalog)
	})
	router.Route("/categories", func(r chi.Router) {
		CategoryRouter(r, catalog)
	})
	router.Route("/admin", func(r chi.Router) {
		AdminRouter(r, NewAdminHandler(productService, categoryService, dashboardService), testAdminUser, testAdminPassword)
	})

	return &testApp{router: router, users: users, categories: categories, products: products}
}

func ptr[T any](v T) *T {
	return &v
}
