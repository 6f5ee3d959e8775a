package repositories

import (
	"context"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID loads a transaction with its lines and remittance snapshot.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionByIDForUpdate is FindTransactionByID with a row lock held until the enclosing unit of work ends.
	FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns newest-first transactions matching filter, plus a token for the next page.
	ListTransactions(ctx context.Context, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindReservations returns the resolved constituent claims recorded for a transaction.
	FindReservations(ctx context.Context, transactionID string) ([]domain.Reservation, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// InsertTransaction persists a new transaction and its lines.
	// A sequence number collision returns apperrors.ErrDuplicate and leaves nothing written.
	InsertTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionState writes the mutable lifecycle fields and bumps the version.
	// The update only applies when the stored version equals expectedVersion; otherwise apperrors.ErrInvalidTransition.
	UpdateTransactionState(ctx context.Context, txn domain.Transaction, expectedVersion int) error

	// ReplaceReservations overwrites the reservation rows of a transaction.
	ReplaceReservations(ctx context.Context, transactionID string, reservations []domain.Reservation) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
