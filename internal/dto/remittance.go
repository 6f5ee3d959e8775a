package dto

import "github.com/shopspring/decimal"

// QuoteRemittanceParams are read from the query string.
type QuoteRemittanceParams struct {
	ProfileID string `form:"profileID" binding:"required"`
	Amount    string `form:"amount" binding:"required,numeric"`
}

// QuoteResponse shows the caller the computed figures before they commit to a remittance.
type QuoteResponse struct {
	ProfileID       string          `json:"profileID"`
	Amount          decimal.Decimal `json:"amount"`
	Commission      decimal.Decimal `json:"commission"`
	Total           decimal.Decimal `json:"total"`
	DeliveredAmount decimal.Decimal `json:"deliveredAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	SourceCurrency  string          `json:"sourceCurrency"`
	TargetCurrency  string          `json:"targetCurrency"`
}

// RecipientRequest identifies who receives a remittance.
type RecipientRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   string  `json:"phone" binding:"required,e164"`
	UserID  *string `json:"userID"`  // set when the recipient has an account and may self-confirm delivery
	Account *string `json:"account"` // bank account, card number or wallet handle, depending on the delivery method
}

// CreateRemittanceRequest defines the data needed to start a remittance.
type CreateRemittanceRequest struct {
	ProfileID    string           `json:"profileID" binding:"required"`
	Amount       decimal.Decimal  `json:"amount"`
	ContactPhone string           `json:"contactPhone" binding:"omitempty,e164"`
	Recipient    RecipientRequest `json:"recipient" binding:"required"`
	// ExpectedDeliveredAmount is optional; when given it must match the server-side computation.
	ExpectedDeliveredAmount *decimal.Decimal `json:"expectedDeliveredAmount"`
}
