package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jungle-shop/storefront/config"
	"github.com/jungle-shop/storefront/internal/db"
	"github.com/jungle-shop/storefront/internal/handlers"
	"github.com/jungle-shop/storefront/internal/logger"
	"github.com/jungle-shop/storefront/internal/mq"
	"github.com/jungle-shop/storefront/internal/password"
	"github.com/jungle-shop/storefront/internal/services"
	"github.com/jungle-shop/storefront/internal/storage"
	"github.com/jungle-shop/storefront/internal/store"
)

const (
	requestTimeout = 10 * time.Second
	writeTimeout   = 15 * time.Second
)

// ShutdownTimeout bounds how long callers should wait for in-flight requests
// when stopping the server.
const ShutdownTimeout = 20 * time.Second

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	db         *sql.DB
	mq         *mq.MQ
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	slog.SetDefault(logger.New(cfg.Log))

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		slog.Warn("admin credentials not set, admin routes are disabled")
	}

	hasher, err := password.NewBcrypt(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("init password hasher: %w", err)
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objects, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	if objects == nil {
		slog.Warn("object storage not configured, product images are disabled")
	}

	broker, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var events services.EventPublisher
	if broker != nil {
		events = broker
	}

	userRepo := store.NewUserRepository(dbConn)
	categoryRepo := store.NewCategoryRepository(dbConn)
	productRepo := store.NewProductRepository(dbConn)

	userService := services.NewUserService(userRepo, hasher, events)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo, objects)
	dashboardService := services.NewDashboardService(productRepo, categoryRepo)

	catalogHandler := handlers.NewCatalogHandler(productService, categoryService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(requestTimeout),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, handlers.NewAuthHandler(userService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
	})
	router.Route("/products", func(r chi.Router) {
		handlers.ProductRouter(r, catalogHandler)
	})
	router.Route("/categories", func(r chi.Router) {
		handlers.CategoryRouter(r, catalogHandler)
	})
	router.Route("/admin", func(r chi.Router) {
		adminHandler := handlers.NewAdminHandler(productService, categoryService, dashboardService)
		handlers.AdminRouter(r, adminHandler, cfg.Admin.Username, cfg.Admin.Password)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	return &Server{
		httpServer: newHTTPServer(port, router),
		db:         dbConn,
		mq:         broker,
	}, nil
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections, waits for in-flight requests to
// finish within ctx, then releases the broker and database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		slog.WarnContext(ctx, "graceful shutdown incomplete, closing connections", "error", err)
		_ = s.httpServer.Close()
	}

	if s.mq != nil {
		_ = s.mq.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return err
}

// newHTTPServer keeps the per-request handler timeout inside the write
// deadline so a slow handler gets a 503 instead of a dropped connection.
func newHTTPServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}
}
