package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/isdalog/isdalog/internal/api"
	"github.com/isdalog/isdalog/internal/config"
	"github.com/isdalog/isdalog/internal/metrics"
	"github.com/isdalog/isdalog/internal/store"
	"github.com/isdalog/isdalog/internal/web"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "isdalog",
	Short:        "IsdaLog - Catch & Sales Tracker",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard and API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catchCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Signal handling
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	// 2. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 3. Initialize logger
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))
	slog.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	// 4. Open the connection pool and create the schema
	pool, err := openPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := pool.Close(); err != nil {
			slog.Error("store close error", "error", err)
		}
	}()
	slog.Info("store initialized", "driver", pool.Driver())

	// 5. Initialize HTTP router
	m := metrics.New()
	router, err := newRouter(cfg, pool, m)
	if err != nil {
		return err
	}

	// 6. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	return serve(ctx, srv, ln, time.Duration(cfg.Server.ShutdownTimeout))
}

// serve runs srv on ln until ctx is cancelled or the server fails, then
// drains in-flight requests for at most shutdownTimeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "address", ln.Addr().String())
		// ErrServerClosed is the expected error when Shutdown() is called gracefully.
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			errCh <- err
			cancel()
			return
		}
		errCh <- nil
	}()

	<-ctx.Done()
	slog.Info("shutdown initiated")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	err := <-errCh
	slog.Info("shutdown complete")
	return err
}

// newRouter wires the JSON API, the metrics endpoint and the dashboard
// behind the shared request middleware.
func newRouter(cfg *config.Config, pool *store.SQLPool, m *metrics.Metrics) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(api.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.LoggingMiddleware(m))
	r.Use(middleware.Recoverer)

	r.Mount("/api/v1", api.NewRouter(api.NewHandler(Version, pool.Driver(), m), pool))

	if cfg.Metrics.Enabled {
		r.Method(http.MethodGet, cfg.Metrics.Path, m.Handler())
	}

	pages, err := web.NewHandler(m)
	if err != nil {
		return nil, err
	}
	r.Mount("/", web.NewRouter(pages, pool))

	return r, nil
}

// openPool opens the configured database.
func openPool(ctx context.Context, cfg config.DatabaseConfig) (*store.SQLPool, error) {
	return store.Open(ctx, store.Options{
		Driver:       cfg.Driver,
		Path:         cfg.Path,
		DSN:          cfg.DSN,
		MaxOpenConns: cfg.MaxOpenConns,
	})
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
