package models

import "github.com/shopspring/decimal"

// CommissionProfile is one row of commission_profiles.
type CommissionProfile struct {
	ProfileID            string          `db:"profile_id"`
	Name                 string          `db:"name"`
	SourceCurrency       string          `db:"source_currency"`
	TargetCurrency       string          `db:"target_currency"`
	DeliveryMethod       string          `db:"delivery_method"`
	ExchangeRate         decimal.Decimal `db:"exchange_rate"`
	CommissionPercentage decimal.Decimal `db:"commission_percentage"`
	CommissionFixed      decimal.Decimal `db:"commission_fixed"`
	MinAmount            decimal.Decimal `db:"min_amount"`
	MaxAmount            decimal.Decimal `db:"max_amount"`
	IsActive             bool            `db:"is_active"`
	AuditFields
}
