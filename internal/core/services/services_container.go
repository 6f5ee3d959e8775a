package services

import (
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
	"github.com/SscSPs/commerce_lifecycle_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sink portssvc.NotificationSink, proofs portssvc.ProofStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Proofs: proofs}

	// Dispatcher first: the transaction service nudges it after every commit that queued notices.
	container.Dispatcher = NewOutboxDispatcher(repos.Store, sink, DispatcherConfig{
		MaxAttempts:  cfg.OutboxMaxAttempts,
		BatchSize:    cfg.OutboxBatchSize,
		PollInterval: cfg.OutboxPollInterval,
		ClaimLease:   cfg.OutboxClaimLease,
	}, nil)

	container.Transactions = NewTransactionService(
		repos.Store,
		WithSequenceRetries(cfg.SequenceMaxRetries),
		WithAdminPhone(cfg.AdminNotifyPhone),
		WithDefaultCurrency(cfg.DefaultCurrency),
		WithDispatcherWake(container.Dispatcher.Wake),
	)

	container.Commission = NewCommissionService(repos.Store, nil)
	container.Catalog = NewCatalogService(repos.Store, cfg.DefaultCurrency, nil)

	return container
}
