package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
)

// PgxStore exposes every repository over either the pool or one open transaction.
type PgxStore struct {
	BaseRepository
}

func newPgxStore(db querier) *PgxStore {
	return &PgxStore{BaseRepository: BaseRepository{db: db}}
}

// NewStore creates a store backed by pool.
func NewStore(pool *pgxpool.Pool) *PgxStore {
	return newPgxStore(pool)
}

var _ portsrepo.Store = (*PgxStore)(nil)

// WithinTx commits when fn returns nil and rolls back otherwise. Called on a
// transactional store it opens a savepoint instead.
func (s *PgxStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.Rollback(ctx, tx) // no-op after a successful commit

	if err := fn(ctx, newPgxStore(tx)); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

func (s *PgxStore) Transactions() portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: s.BaseRepository}
}

func (s *PgxStore) Inventory() portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{BaseRepository: s.BaseRepository}
}

func (s *PgxStore) Catalog() portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{BaseRepository: s.BaseRepository}
}

func (s *PgxStore) History() portsrepo.HistoryRepositoryFacade {
	return &PgxHistoryRepository{BaseRepository: s.BaseRepository}
}

func (s *PgxStore) Outbox() portsrepo.OutboxRepositoryFacade {
	return &PgxOutboxRepository{BaseRepository: s.BaseRepository}
}

func (s *PgxStore) Commission() portsrepo.CommissionRepositoryFacade {
	return &PgxCommissionRepository{BaseRepository: s.BaseRepository}
}
