package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/commerce_lifecycle_app/internal/adapters/notification"
	"github.com/SscSPs/commerce_lifecycle_app/internal/adapters/proofstore"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/platform/config"
	"github.com/SscSPs/commerce_lifecycle_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/commerce_lifecycle_app/internal/repositories/memory"
	"github.com/SscSPs/commerce_lifecycle_app/pkg/database"
)

// openRepositories connects the configured store. The returned func releases it.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrateUp bool) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store; data is lost on exit")
		return memory.NewRepositoryProvider(), func() {}, nil
	case config.StoreDriverPgsql:
		if migrateUp {
			if err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp, 0); err != nil {
				return portsrepo.RepositoryProvider{}, nil, err
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// newNotificationSink posts to the webhook when one is configured and logs otherwise.
func newNotificationSink(cfg *config.Config, logger *slog.Logger) portssvc.NotificationSink {
	if cfg.NotifyWebhookURL == "" {
		logger.Warn("NOTIFY_WEBHOOK_URL not set; notifications are only logged")
		return notification.NewLogSink()
	}
	return notification.NewWebhookSink(cfg.NotifyWebhookURL, cfg.NotifyAPIKey, cfg.NotifyTimeout)
}

// buildServices wires the full service container over repos.
func buildServices(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) (*portssvc.ServiceContainer, error) {
	proofs, err := proofstore.NewLocalStore(cfg.ProofStorageDir, cfg.ProofMaxBytes)
	if err != nil {
		logger.Error("Failed to prepare proof storage", slog.String("dir", cfg.ProofStorageDir), slog.String("error", err.Error()))
		return nil, err
	}
	return services.NewServiceContainer(cfg, repos, newNotificationSink(cfg, logger), proofs), nil
}
