package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one row of the transactions table. Remittance snapshot columns are NULL for orders.
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	SequenceNumber string          `db:"sequence_number"`
	Kind           string          `db:"kind"`
	OwnerID        string          `db:"owner_id"`
	ContactPhone   string          `db:"contact_phone"`
	Status         string          `db:"status"`
	PaymentStatus  string          `db:"payment_status"`
	InventoryState string          `db:"inventory_state"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`

	ProfileID            *string             `db:"profile_id"`
	ExchangeRate         decimal.NullDecimal `db:"exchange_rate"`
	CommissionPercentage decimal.NullDecimal `db:"commission_percentage"`
	CommissionFixed      decimal.NullDecimal `db:"commission_fixed"`
	MinAmount            decimal.NullDecimal `db:"min_amount"`
	MaxAmount            decimal.NullDecimal `db:"max_amount"`
	DeliveryMethod       *string             `db:"delivery_method"`
	TargetCurrency       *string             `db:"target_currency"`
	Commission           decimal.NullDecimal `db:"commission"`
	Total                decimal.NullDecimal `db:"total"`
	DeliveredAmount      decimal.NullDecimal `db:"delivered_amount"`
	RecipientName        *string             `db:"recipient_name"`
	RecipientPhone       *string             `db:"recipient_phone"`
	RecipientUserID      *string             `db:"recipient_user_id"`
	RecipientAccount     *string             `db:"recipient_account"`

	PaymentProofRef     *string    `db:"payment_proof_ref"`
	DeliveryProofRef    *string   `db:"delivery_proof_ref"`
	PaymentValidatedAt  *time.Time `db:"payment_validated_at"`
	PaymentValidatedBy  *string    `db:"payment_validated_by"`
	ProcessingStartedAt *time.Time `db:"processing_started_at"`
	ProcessedBy         *string    `db:"processed_by"`
	ShippedAt           *time.Time `db:"shipped_at"`
	ShippedBy           *string    `db:"shipped_by"`
	DeliveredAt         *time.Time `db:"delivered_at"`
	DeliveredBy         *string    `db:"delivered_by"`
	CompletedAt         *time.Time `db:"completed_at"`
	CompletedBy         *string    `db:"completed_by"`
	CancelledAt         *time.Time `db:"cancelled_at"`
	CancelledBy         *string    `db:"cancelled_by"`
	RejectionReason     *string    `db:"rejection_reason"`
	CancellationReason  *string    `db:"cancellation_reason"`

	Version int `db:"version"`
	AuditFields
}

// TransactionLine is one row of transaction_lines. Position keeps the order the lines were submitted in.
type TransactionLine struct {
	LineID        string          `db:"line_id"`
	TransactionID string          `db:"transaction_id"`
	ItemID        string          `db:"item_id"`
	ItemKind      string          `db:"item_kind"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	LineTotal     decimal.Decimal `db:"line_total"`
	Position      int             `db:"position"`
}
