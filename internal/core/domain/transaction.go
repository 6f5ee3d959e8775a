package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind distinguishes the two transaction variants.
type TransactionKind string

const (
	KindOrder      TransactionKind = "ORDER"
	KindRemittance TransactionKind = "REMITTANCE"
)

// TransactionStatus is the lifecycle stage. Orders and remittances use different subsets.
type TransactionStatus string

const (
	// Order statuses
	StatusPending    TransactionStatus = "PENDING"
	StatusProcessing TransactionStatus = "PROCESSING"
	StatusShipped    TransactionStatus = "SHIPPED"
	StatusDelivered  TransactionStatus = "DELIVERED"
	StatusCompleted  TransactionStatus = "COMPLETED"
	StatusCancelled  TransactionStatus = "CANCELLED"

	// Remittance-only statuses
	StatusPaymentPending       TransactionStatus = "PAYMENT_PENDING"
	StatusPaymentProofUploaded TransactionStatus = "PAYMENT_PROOF_UPLOADED"
	StatusPaymentValidated     TransactionStatus = "PAYMENT_VALIDATED"
	StatusRejected             TransactionStatus = "REJECTED"
)

// PaymentStatus tracks proof submission and validation independently of the lifecycle stage.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentProofUploaded PaymentStatus = "PROOF_UPLOADED"
	PaymentValidated     PaymentStatus = "VALIDATED"
	PaymentRejected      PaymentStatus = "REJECTED"
)

// InventoryState records what the ledger currently holds for an order.
type InventoryState string

const (
	InventoryNone      InventoryState = "NONE"
	InventoryReserved  InventoryState = "RESERVED"
	InventoryCommitted InventoryState = "COMMITTED"
	InventoryReleased  InventoryState = "RELEASED"
	InventoryRestocked InventoryState = "RESTOCKED"
)

// Transaction is the unit of work for both orders and remittances.
type Transaction struct {
	TransactionID  string            `json:"transactionID"`
	SequenceNumber string            `json:"sequenceNumber"` // e.g. ORD-20260114-04821
	Kind           TransactionKind   `json:"kind"`
	OwnerID        string            `json:"ownerID"` // immutable after creation
	ContactPhone   string            `json:"contactPhone"`
	Status         TransactionStatus `json:"status"`
	PaymentStatus  PaymentStatus     `json:"paymentStatus"`
	InventoryState InventoryState    `json:"inventoryState"`
	Amount         decimal.Decimal   `json:"amount"`
	CurrencyCode   string            `json:"currencyCode"`

	Lines      []TransactionLine  `json:"lines,omitempty"`      // orders only
	Remittance *RemittanceDetails `json:"remittance,omitempty"` // remittances only

	PaymentProofRef  *string `json:"paymentProofRef,omitempty"`
	DeliveryProofRef *string `json:"deliveryProofRef,omitempty"`

	PaymentValidatedAt  *time.Time `json:"paymentValidatedAt,omitempty"`
	PaymentValidatedBy  *string    `json:"paymentValidatedBy,omitempty"`
	ProcessingStartedAt *time.Time `json:"processingStartedAt,omitempty"`
	ProcessedBy         *string    `json:"processedBy,omitempty"`
	ShippedAt           *time.Time `json:"shippedAt,omitempty"`
	ShippedBy           *string    `json:"shippedBy,omitempty"`
	DeliveredAt         *time.Time `json:"deliveredAt,omitempty"`
	DeliveredBy         *string    `json:"deliveredBy,omitempty"`
	CompletedAt         *time.Time `json:"completedAt,omitempty"`
	CompletedBy         *string    `json:"completedBy,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy         *string    `json:"cancelledBy,omitempty"`

	RejectionReason    *string `json:"rejectionReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	// Version increases by one on every persisted state change.
	Version int `json:"version"`
	AuditFields
}

// IsTerminal reports whether the transaction can no longer change.
func (t Transaction) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusCancelled
}

// IsOrder reports whether the transaction is a product order.
func (t Transaction) IsOrder() bool {
	return t.Kind == KindOrder
}

// IsRemittance reports whether the transaction is a money remittance.
func (t Transaction) IsRemittance() bool {
	return t.Kind == KindRemittance
}

// IsRecipient reports whether userID is the registered remittance recipient.
func (t Transaction) IsRecipient(userID string) bool {
	if t.Remittance == nil || t.Remittance.RecipientUserID == nil || userID == "" {
		return false
	}
	return *t.Remittance.RecipientUserID == userID
}

// RemittanceDetails holds the recipient and the commission snapshot taken at creation.
type RemittanceDetails struct {
	ProfileID       string          `json:"profileID"`
	Terms           CommissionTerms `json:"terms"` // copied from the profile, never re-read
	DeliveryMethod  DeliveryMethod  `json:"deliveryMethod"`
	TargetCurrency  string          `json:"targetCurrency"`
	Commission      decimal.Decimal `json:"commission"`
	Total           decimal.Decimal `json:"total"`
	DeliveredAmount decimal.Decimal `json:"deliveredAmount"`

	RecipientName    string  `json:"recipientName"`
	RecipientPhone   string  `json:"recipientPhone"`
	RecipientUserID  *string `json:"recipientUserID,omitempty"`
	RecipientAccount *string `json:"recipientAccount,omitempty"` // bank account, card or wallet handle
}

// TransactionFilter narrows transaction listings.
type TransactionFilter struct {
	OwnerID *string
	Kind    *TransactionKind
	Status  *TransactionStatus
}
