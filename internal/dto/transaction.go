package dto

import (
	"time"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitPaymentProofRequest carries a reference previously returned by the proof store.
type SubmitPaymentProofRequest struct {
	ProofRef string `json:"proofRef" binding:"required"`
}

// RejectPaymentRequest requires a reason, which is recorded in history.
type RejectPaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// CancelTransactionRequest requires a reason, which is recorded in history.
type CancelTransactionRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ConfirmDeliveryRequest may attach a delivery proof reference.
type ConfirmDeliveryRequest struct {
	ProofRef *string `json:"proofRef"`
}

// ListTransactionsParams defines the query parameters for listing transactions.
type ListTransactionsParams struct {
	Kind      string  `form:"kind" binding:"omitempty,oneof=ORDER REMITTANCE"`
	Status    string  `form:"status"`
	OwnerID   string  `form:"ownerID"` // honoured for admins only
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionLineResponse is one order line.
type TransactionLineResponse struct {
	ItemID    string          `json:"itemID"`
	ItemKind  string          `json:"itemKind"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// RemittanceResponse carries the snapshot taken at creation.
type RemittanceResponse struct {
	ProfileID            string          `json:"profileID"`
	DeliveryMethod       string          `json:"deliveryMethod"`
	TargetCurrency       string          `json:"targetCurrency"`
	ExchangeRate         decimal.Decimal `json:"exchangeRate"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage"`
	CommissionFixed      decimal.Decimal `json:"commissionFixed"`
	Commission           decimal.Decimal `json:"commission"`
	Total                decimal.Decimal `json:"total"`
	DeliveredAmount      decimal.Decimal `json:"deliveredAmount"`
	RecipientName        string          `json:"recipientName"`
	RecipientPhone       string          `json:"recipientPhone"`
	RecipientUserID      *string         `json:"recipientUserID,omitempty"`
}

// TransactionResponse defines the data returned for an order or remittance.
type TransactionResponse struct {
	TransactionID      string                    `json:"transactionID"`
	SequenceNumber     string                    `json:"sequenceNumber"`
	Kind               string                    `json:"kind"`
	OwnerID            string                    `json:"ownerID"`
	Status             string                    `json:"status"`
	PaymentStatus      string                    `json:"paymentStatus"`
	Amount             decimal.Decimal           `json:"amount"`
	CurrencyCode       string                    `json:"currencyCode"`
	Lines              []TransactionLineResponse `json:"lines,omitempty"`
	Remittance         *RemittanceResponse       `json:"remittance,omitempty"`
	PaymentProofRef    *string                   `json:"paymentProofRef,omitempty"`
	DeliveryProofRef   *string                   `json:"deliveryProofRef,omitempty"`
	RejectionReason    *string                   `json:"rejectionReason,omitempty"`
	CancellationReason *string                   `json:"cancellationReason,omitempty"`
	PaymentValidatedAt *time.Time                `json:"paymentValidatedAt,omitempty"`
	ShippedAt          *time.Time                `json:"shippedAt,omitempty"`
	DeliveredAt        *time.Time                `json:"deliveredAt,omitempty"`
	CompletedAt        *time.Time                `json:"completedAt,omitempty"`
	CancelledAt        *time.Time                `json:"cancelledAt,omitempty"`
	Version            int                       `json:"version"`
	CreatedAt          time.Time                 `json:"createdAt"`
	LastUpdatedAt      time.Time                 `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// HistoryEntryResponse is one recorded transition.
type HistoryEntryResponse struct {
	Machine   string    `json:"machine"`
	FromState string    `json:"fromState"`
	ToState   string    `json:"toState"`
	ActorID   string    `json:"actorID"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:      t.TransactionID,
		SequenceNumber:     t.SequenceNumber,
		Kind:               string(t.Kind),
		OwnerID:            t.OwnerID,
		Status:             string(t.Status),
		PaymentStatus:      string(t.PaymentStatus),
		Amount:             t.Amount,
		CurrencyCode:       t.CurrencyCode,
		PaymentProofRef:    t.PaymentProofRef,
		DeliveryProofRef:   t.DeliveryProofRef,
		RejectionReason:    t.RejectionReason,
		CancellationReason: t.CancellationReason,
		PaymentValidatedAt: t.PaymentValidatedAt,
		ShippedAt:          t.ShippedAt,
		DeliveredAt:        t.DeliveredAt,
		CompletedAt:        t.CompletedAt,
		CancelledAt:        t.CancelledAt,
		Version:            t.Version,
		CreatedAt:          t.CreatedAt,
		LastUpdatedAt:      t.LastUpdatedAt,
	}
	for _, l := range t.Lines {
		resp.Lines = append(resp.Lines, TransactionLineResponse{
			ItemID:    l.ItemID,
			ItemKind:  string(l.ItemKind),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	if r := t.Remittance; r != nil {
		resp.Remittance = &RemittanceResponse{
			ProfileID:            r.ProfileID,
			DeliveryMethod:       string(r.DeliveryMethod),
			TargetCurrency:       r.TargetCurrency,
			ExchangeRate:         r.Terms.ExchangeRate,
			CommissionPercentage: r.Terms.CommissionPercentage,
			CommissionFixed:      r.Terms.CommissionFixed,
			Commission:           r.Commission,
			Total:                r.Total,
			DeliveredAmount:      r.DeliveredAmount,
			RecipientName:        r.RecipientName,
			RecipientPhone:       r.RecipientPhone,
			RecipientUserID:      r.RecipientUserID,
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToHistoryResponses converts history entries for the API.
func ToHistoryResponses(entries []domain.StatusHistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = HistoryEntryResponse{
			Machine:   string(e.Machine),
			FromState: e.FromState,
			ToState:   e.ToState,
			ActorID:   e.ActorID,
			Reason:    e.Reason,
			CreatedAt: e.CreatedAt,
		}
	}
	return out
}
