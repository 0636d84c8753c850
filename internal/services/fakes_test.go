package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jungle-shop/storefront/internal/storage"
	"github.com/jungle-shop/storefront/internal/store"
	"github.com/jungle-shop/storefront/types"
)

type fakeUserRepo struct {
	mu        sync.RWMutex
	seq       int
	items     map[int]types.User
	getErr    error
	createErr error
	// skipLookup hides stored users from GetByEmail to simulate a
	// concurrent sign-up slipping past the pre-check.
	skipLookup bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: make(map[int]types.User)}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.items[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	if r.getErr != nil {
		return types.User{}, r.getErr
	}
	if r.skipLookup {
		return types.User{}, store.ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.lookupLocked(email); ok {
		return user, nil
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if r.createErr != nil {
		return types.User{}, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lookupLocked(user.Email); ok {
		return types.User{}, store.ErrConflict
	}
	r.seq++
	user.ID = r.seq
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.items[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *fakeUserRepo) lookupLocked(email string) (types.User, bool) {
	for _, user := range r.items {
		if strings.EqualFold(user.Email, email) {
			return user, true
		}
	}
	return types.User{}, false
}

type recordingPublisher struct {
	mu       sync.Mutex
	channels []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	p.channels = append(p.channels, channel)
	p.payloads = append(p.payloads, data)
	return "id", nil
}

type fakeCategoryRepo struct {
	mu    sync.RWMutex
	seq   int
	items map[int]types.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: make(map[int]types.Category)}
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]types.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.Category, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCategoryRepo) Get(ctx context.Context, id int) (types.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return types.Category{}, store.ErrNotFound
	}
	return item, nil
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category types.Category) (types.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	category.ID = r.seq
	r.items[category.ID] = category
	return category, nil
}

func (r *fakeCategoryRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

type fakeProductRepo struct {
	mu         sync.RWMutex
	seq        int
	items      map[int]types.Product
	categories *fakeCategoryRepo
}

func newFakeProductRepo(categories *fakeCategoryRepo) *fakeProductRepo {
	return &fakeProductRepo{items: make(map[int]types.Product), categories: categories}
}

func (r *fakeProductRepo) List(ctx context.Context, categoryID *int, offset, limit int) ([]types.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var filtered []types.Product
	for _, item := range r.items {
		if categoryID != nil && (item.CategoryID == nil || *item.CategoryID != *categoryID) {
			continue
		}
		filtered = append(filtered, item)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].ID > filtered[j].ID })
	total := len(filtered)
	if offset >= total {
		return []types.Product{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

func (r *fakeProductRepo) Get(ctx context.Context, id int) (types.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return types.Product{}, store.ErrNotFound
	}
	return item, nil
}

func (r *fakeProductRepo) Create(ctx context.Context, product types.Product) (types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	product.ID = r.seq
	r.items[product.ID] = product
	return product, nil
}

func (r *fakeProductRepo) UpdateImage(ctx context.Context, id int, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return store.ErrNotFound
	}
	item.Image = key
	r.items[id] = item
	return nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

func (r *fakeProductRepo) CountByCategory(ctx context.Context) ([]types.CategoryCount, error) {
	categories, err := r.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make([]types.CategoryCount, 0, len(categories))
	for _, category := range categories {
		count := types.CategoryCount{CategoryID: category.ID, Name: category.Name}
		for _, item := range r.items {
			if item.CategoryID != nil && *item.CategoryID == category.ID {
				count.Count++
			}
		}
		counts = append(counts, count)
	}
	return counts, nil
}

type memoryObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemoryObjects() *memoryObjects {
	return &memoryObjects{objects: make(map[string][]byte)}
}

func (m *memoryObjects) EnsureBucket(ctx context.Context) error { return nil }

func (m *memoryObjects) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryObjects) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryObjects) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryObjects) Bucket() string { return "memory" }

var errBoom = errors.New("boom")

func ptr[T any](v T) *T {
	return &v
}
