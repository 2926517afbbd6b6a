package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/nkiryanov/articlehub/internal/db"
	"github.com/nkiryanov/articlehub/internal/handlers"
	"github.com/nkiryanov/articlehub/internal/logger"
	"github.com/nkiryanov/articlehub/internal/repository"
	"github.com/nkiryanov/articlehub/internal/repository/mongo"
	"github.com/nkiryanov/articlehub/internal/repository/postgres"
	"github.com/nkiryanov/articlehub/internal/service/article"
	"github.com/nkiryanov/articlehub/internal/service/auth"
	"github.com/nkiryanov/articlehub/internal/service/auth/tokenmanager"
	"github.com/nkiryanov/articlehub/internal/service/user"
)

const shutdownTimeout = 5 * time.Second

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
	Logger     logger.Logger

	// Release storage connections
	closeStorage func()
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Initialize token manager first: misconfigured secrets should fail before touching db
	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		AccessSecret:  c.AccessSecret,
		RefreshSecret: c.RefreshSecret,
		AccessTTL:     c.AccessTTL,
		RefreshTTL:    c.RefreshTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("error while creating token manager. Err: %w", err)
	}

	// Connect to the database selected by DSN scheme
	storage, closeStorage, err := openStorage(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Initialize services
	userService := user.NewService(user.DefaultHasher, storage)
	articleService := article.NewService(storage)
	authService, err := auth.NewService(auth.Config{}, tokenManager, userService)
	if err != nil {
		closeStorage()
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := handlers.NewRouter(
		authService,
		userService,
		articleService,
		registry,
		logger,
	)

	return &ServerApp{
		ListenAddr:   c.ListenAddr,
		Handler:      mux,
		Logger:       logger,
		closeStorage: closeStorage,
	}, nil
}

// Open storage: mongodb:// and mongodb+srv:// use mongo, postgres:// and postgresql:// use postgres
func openStorage(ctx context.Context, dsn string) (repository.Storage, func(), error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid database uri. Err: %w", err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		client, database, err := db.ConnectMongo(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		return mongo.NewStorage(database), closeFn, nil

	case "postgres", "postgresql":
		pool, err := db.ConnectAndMigrate(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStorage(pool), pool.Close, nil

	case "":
		return nil, nil, errors.New("database uri is not set")

	default:
		return nil, nil, fmt.Errorf("database scheme %q not supported", u.Scheme)
	}
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	defer s.closeStorage()

	httpServer := &http.Server{
		Addr:              s.ListenAddr,
		Handler:           s.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); errors.Is(err, context.DeadlineExceeded) {
			s.Logger.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		s.Logger.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	s.Logger.Info("Starting server", "address", s.ListenAddr)
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
