package repositories

import "context"

// UnitOfWork runs fn against a Store whose writes commit or roll back together.
// Nested calls on a transactional Store behave as savepoints.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}

// Store exposes every repository over one connection scope (the pool, or an open transaction).
type Store interface {
	UnitOfWork
	Transactions() TransactionRepositoryFacade
	Inventory() InventoryRepositoryFacade
	Catalog() CatalogRepositoryFacade
	History() HistoryRepositoryFacade
	Outbox() OutboxRepositoryFacade
	Commission() CommissionRepositoryFacade
}
