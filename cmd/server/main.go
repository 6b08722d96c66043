package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gamereviews/backend/internal/config"
	"gamereviews/backend/internal/database"
	"gamereviews/backend/internal/graph"
	"gamereviews/backend/internal/handler"
	"gamereviews/backend/internal/hub"
	"gamereviews/backend/internal/logging"
	"gamereviews/backend/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogPretty, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.ConfigFile == "" {
		logger.Warn(".env file not found, loading from environment variables")
	} else {
		logger.Info("Loaded config file", zap.String("path", cfg.ConfigFile))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	events := hub.NewHub(logger.Named("hub"))
	schema, err := graph.NewSchema(&graph.Resolver{
		Store:       s,
		Events:      events,
		Logger:      logger.Named("graph"),
		RequireAuth: cfg.AuthEnabled(),
	})
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	router := handler.NewRouter(&handler.Handler{
		Schema: schema,
		Store:  s,
		Hub:    events,
		Logger: logger,
	}, cfg.JWTSecret)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server is running",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreDriver),
			zap.Bool("auth", cfg.AuthEnabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	ids, err := store.NewIDGenerator(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}

	if cfg.StoreDriver == "memory" {
		return store.NewMemoryStore(
			store.WithIDGenerator(ids),
			store.WithCascadeDelete(cfg.CascadeDelete),
		), nil
	}

	db, err := database.Connect(cfg.StoreDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	return database.NewStore(ctx, db, ids, cfg.CascadeDelete)
}
