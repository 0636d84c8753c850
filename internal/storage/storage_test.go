package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jungle-shop/storefront/config"
)

type memoryBackend struct {
	objects map[string][]byte
	ensured bool
}

func (m *memoryBackend) EnsureBucket(ctx context.Context) error {
	m.ensured = true
	return nil
}

func (m *memoryBackend) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryBackend) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryBackend) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryBackend) Bucket() string {
	return "memory"
}

func TestStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := &memoryBackend{objects: map[string][]byte{}}
	objects := NewStorage(backend)

	if err := objects.EnsureBucket(ctx); err != nil || !backend.ensured {
		t.Fatalf("expected bucket to be ensured: %v", err)
	}
	if err := objects.Put(ctx, "products/1/a.png", strings.NewReader("png"), 3, "image/png"); err != nil {
		t.Fatalf("put: %v", err)
	}

	rc, err := objects.Get(ctx, "products/1/a.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "png" {
		t.Fatalf("unexpected object data: %q", data)
	}

	if err := objects.Delete(ctx, "products/1/a.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := objects.Get(ctx, "products/1/a.png"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if objects.Bucket() != "memory" {
		t.Fatalf("unexpected bucket: %q", objects.Bucket())
	}
}

func TestOpenDisabledAndUnknown(t *testing.T) {
	objects, err := Open(context.Background(), config.StorageConfig{})
	if err != nil || objects != nil {
		t.Fatalf("expected disabled storage, got %v, %v", objects, err)
	}

	if _, err := Open(context.Background(), config.StorageConfig{Backend: "floppy"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestNewMinioClientRequiresSettings(t *testing.T) {
	if _, err := NewMinioClient(config.MinioConfig{}); err == nil {
		t.Fatalf("expected missing endpoint error")
	}
	if _, err := NewMinioClient(config.MinioConfig{Endpoint: "localhost:9000", Bucket: "b"}); err == nil {
		t.Fatalf("expected missing credentials error")
	}
}
