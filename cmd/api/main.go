package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/httpx"
	"bookshelf/internal/platform/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		logger.Error("cannot open book store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	tp, shutdownTracing := newTracerProvider(cfg, logger)
	defer shutdownTracing()

	service := book.NewService(book.NewTracedRepository(repo, tp))
	handler := newRouter(service, cfg, limiter, logger)

	if err := serve(cfg.Addr, handler, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func openRepository(cfg config.Config) (book.Repository, func(), error) {
	if cfg.StoreDriver == config.DriverMemory {
		slog.Warn("using in-memory book store; data is lost on exit")
		return book.NewMemoryRepo(), func() {}, nil
	}

	pool, err := postgres.Open(context.Background(), cfg.DatabaseDSN, 2*time.Second)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("database connection OK", "dsn", config.RedactDSN(cfg.DatabaseDSN))
	return book.NewPostgresRepo(pool, cfg.DBTimeout), pool.Close, nil
}

func newRouter(service *book.Service, cfg config.Config, limiter *httpx.RateLimitMiddleware, logger *slog.Logger) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := service.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	book.NewHTTPHandler(service).Register(router)
	router.HandleFunc("/", httpx.NotFound)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}

// serve runs the server until SIGINT or SIGTERM, then drains in-flight
// requests for up to 20 seconds.
func serve(addr string, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error, 1)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownErr; err != nil {
		return err
	}
	logger.Info("server stopped", "addr", addr)
	return nil
}
