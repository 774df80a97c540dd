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
	"github.com/invtrack/apiserver/config"
	"github.com/invtrack/apiserver/internal/cache"
	"github.com/invtrack/apiserver/internal/db"
	"github.com/invtrack/apiserver/internal/handlers"
	"github.com/invtrack/apiserver/internal/mq"
	"github.com/invtrack/apiserver/internal/schema"
	"github.com/invtrack/apiserver/internal/services"
	"github.com/invtrack/apiserver/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the HTTP server and its process-scoped dependencies.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	cache      *cache.RedisCache
	events     *mq.MQ
	log        *slog.Logger
}

// New constructs a Server. The store schema is initialized (with retries)
// before any route is wired; if that fails the server is never built and the
// process must not serve.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*Server, error) {
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}

	dbConn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := schema.Ensure(ctx, dbConn, log); err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	redisCache := cache.NewRedisCache(cfg.Redis)

	events, err := openEvents(cfg, log)
	if err != nil {
		_ = dbConn.Close()
		_ = redisCache.Close()
		return nil, err
	}

	itemRepo := store.NewItemRepository(dbConn)
	userRepo := store.NewUserRepository(dbConn)

	inventoryService := services.NewInventoryService(itemRepo, redisCache, events, cfg.MQ.Queue, log)
	userService := services.NewUserService(userRepo)

	pageHandler, err := handlers.NewPageHandler(cfg.SessionSecret)
	if err != nil {
		_ = dbConn.Close()
		_ = redisCache.Close()
		_ = events.Close()
		return nil, err
	}

	authMiddleware := handlers.RequireSession(cfg.SessionSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	handlers.PageRouter(router, pageHandler)
	handlers.AuthRouter(router, userService, cfg.SessionSecret)
	router.Route("/items", func(r chi.Router) {
		handlers.ItemsRouter(r, inventoryService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		cache:      redisCache,
		events:     events,
		log:        log,
	}, nil
}

func openEvents(cfg config.Config, log *slog.Logger) (*mq.MQ, error) {
	if cfg.MQ.URL == "" {
		log.Info("no broker configured, change events disabled")
		return mq.New(mq.NoopBackend{}), nil
	}

	client, err := mq.NewRabbitMQClient(cfg.MQ)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	return mq.New(client), nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.log.Info("server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes process-scoped resources.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.events != nil {
		_ = s.events.Close()
	}
	return err
}
