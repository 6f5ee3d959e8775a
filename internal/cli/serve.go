package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SscSPs/commerce_lifecycle_app/internal/handlers"
	"github.com/SscSPs/commerce_lifecycle_app/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	SkipMigrations bool
	NoDispatcher   bool
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the outbox dispatcher",
		Long: `Run the HTTP API.

Applies pending migrations (pgsql driver), then serves /api/v1 and drains the
notification outbox in the background until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), rootOpts, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipMigrations, "skip-migrations", false, "do not apply migrations on start")
	cmd.Flags().BoolVar(&opts.NoDispatcher, "no-dispatcher", false, "do not run the outbox dispatcher in this process")

	return cmd
}

func runServe(parent context.Context, rootOpts *RootOptions, opts *ServeOptions) error {
	logger := newLogger(rootOpts)
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(ctx, cfg, logger, !opts.SkipMigrations)
	if err != nil {
		logger.Error("Failed to open store", slog.String("error", err.Error()))
		return err
	}
	defer closeRepos()

	container, err := buildServices(cfg, repos, logger)
	if err != nil {
		return err
	}

	userLimiter, err := handlers.NewUserLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		return err
	}
	handlers.RegisterRoutes(r, cfg, container, userLimiter)

	dispatcherDone := make(chan struct{})
	if opts.NoDispatcher {
		close(dispatcherDone)
	} else {
		go func() {
			defer close(dispatcherDone)
			if err := container.Dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Outbox dispatcher stopped", slog.String("error", err.Error()))
			}
		}()
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
			<-dispatcherDone
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
	<-dispatcherDone
	return nil
}
