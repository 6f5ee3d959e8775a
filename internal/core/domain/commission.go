package domain

import "github.com/shopspring/decimal"

// DeliveryMethod is how a remittance reaches its recipient.
type DeliveryMethod string

const (
	DeliveryCash     DeliveryMethod = "cash"
	DeliveryTransfer DeliveryMethod = "transfer"
	DeliveryCard     DeliveryMethod = "card"
	DeliveryWallet   DeliveryMethod = "wallet"
)

// IsValid reports whether m is a known delivery method.
func (m DeliveryMethod) IsValid() bool {
	switch m {
	case DeliveryCash, DeliveryTransfer, DeliveryCard, DeliveryWallet:
		return true
	}
	return false
}

// CommissionTerms are the values the financial calculator needs.
// Remittances keep their own copy of these at creation time.
type CommissionTerms struct {
	ExchangeRate         decimal.Decimal `json:"exchangeRate"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage"`
	CommissionFixed      decimal.Decimal `json:"commissionFixed"`
	MinAmount            decimal.Decimal `json:"minAmount"`
	MaxAmount            decimal.Decimal `json:"maxAmount"`
}

// CommissionProfile is an admin-managed remittance rule set.
type CommissionProfile struct {
	ProfileID      string         `json:"profileID"`
	Name           string         `json:"name"`
	SourceCurrency string         `json:"sourceCurrency"`
	TargetCurrency string         `json:"targetCurrency"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	IsActive       bool           `json:"isActive"`
	CommissionTerms
	AuditFields
}
