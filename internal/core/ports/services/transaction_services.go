package services

import (
	"context"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/dto"
)

// OrderCreatorSvc places product orders.
type OrderCreatorSvc interface {
	// CreateOrder prices the lines at current catalog prices and reserves every resolved constituent.
	CreateOrder(ctx context.Context, actor domain.Actor, req dto.CreateOrderRequest) (*domain.Transaction, error)
}

// RemittanceCreatorSvc quotes and starts remittances.
type RemittanceCreatorSvc interface {
	// QuoteRemittance runs the financial calculator without persisting anything.
	QuoteRemittance(ctx context.Context, profileID string, amount string) (*dto.QuoteResponse, error)

	// CreateRemittance snapshots the commission profile and recomputes every figure server-side.
	CreateRemittance(ctx context.Context, actor domain.Actor, req dto.CreateRemittanceRequest) (*domain.Transaction, error)
}

// TransactionLifecycleSvc advances existing transactions. Every call is atomic:
// it either applies fully with a history entry, or leaves the transaction untouched.
type TransactionLifecycleSvc interface {
	SubmitPaymentProof(ctx context.Context, actor domain.Actor, transactionID, proofRef string) (*domain.Transaction, error)
	ValidatePayment(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error)
	RejectPayment(ctx context.Context, actor domain.Actor, transactionID, reason string) (*domain.Transaction, error)
	StartProcessing(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error)
	MarkShipped(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error)
	ConfirmDelivery(ctx context.Context, actor domain.Actor, transactionID string, proofRef *string) (*domain.Transaction, error)
	Complete(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error)
	Cancel(ctx context.Context, actor domain.Actor, transactionID, reason string) (*domain.Transaction, error)
}

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	ListHistory(ctx context.Context, actor domain.Actor, transactionID string) ([]domain.StatusHistoryEntry, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
// This is a facade for clients that need access to all operations
type TransactionSvcFacade interface {
	OrderCreatorSvc
	RemittanceCreatorSvc
	TransactionLifecycleSvc
	TransactionReaderSvc
}
