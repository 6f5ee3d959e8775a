package domain

import "github.com/shopspring/decimal"

// TransactionLine is one catalog item on an order. Immutable once the order exists.
type TransactionLine struct {
	LineID        string          `json:"lineID"`
	TransactionID string          `json:"transactionID"`
	ItemID        string          `json:"itemID"`
	ItemKind      ItemKind        `json:"itemKind"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"` // captured at purchase time
	LineTotal     decimal.Decimal `json:"lineTotal"`
}
