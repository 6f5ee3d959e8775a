package repositories

import (
	"context"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

// HistoryRepositoryFacade is append-only: there is no update or delete.
type HistoryRepositoryFacade interface {
	AppendHistory(ctx context.Context, entries ...domain.StatusHistoryEntry) error

	// ListHistory returns entries for a transaction in the order they were written.
	ListHistory(ctx context.Context, transactionID string) ([]domain.StatusHistoryEntry, error)
}
