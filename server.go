package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"finance-reports/internal/cache"
	"finance-reports/internal/logging"
	"finance-reports/internal/service"
	"finance-reports/internal/store"
)

type categoryLister interface {
	ListCategories(ctx context.Context, userID uuid.UUID) ([]store.Category, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// server holds the dependencies of the HTTP handlers.
type server struct {
	reports    *service.Reports
	categories categoryLister
	db         pinger
	logger     *slog.Logger
	now        func() time.Time
}

func newRouter(s *server, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(s.logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", userHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthCheck)

	api := r.Group("/api")
	api.GET("/categories", s.getCategories)
	api.GET("/reports", s.getReport)
	api.GET("/reports/export", s.exportReport)

	return r
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the reports API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	db, err := store.Open(ctx, cfg.DatabaseURL, store.ConnectOptions{
		MaxRetries: cfg.DBMaxRetries,
		RetryDelay: cfg.DBRetryDelay,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	st := store.New(db)
	defer st.Close()

	var reportCache *cache.ReportCache
	if cfg.CacheEnabled() {
		client, err := cache.Open(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("Failed to initialize Redis, continuing without report cache", "error", err)
		} else {
			defer client.Close()
			reportCache = cache.NewReportCache(client, cfg.CacheTTL)
		}
	}

	s := &server{
		reports:    service.NewReports(st, reportCache),
		categories: st,
		db:         st,
		logger:     logging.Component(logging.ComponentHTTP),
		now:        time.Now,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(s, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
