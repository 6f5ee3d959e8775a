package dto

import (
	"time"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCommissionProfileRequest defines the data needed to create a commission profile.
type CreateCommissionProfileRequest struct {
	Name                 string          `json:"name" binding:"required"`
	SourceCurrency       string          `json:"sourceCurrency" binding:"required,iso4217"`
	TargetCurrency       string          `json:"targetCurrency" binding:"required,iso4217"`
	DeliveryMethod       string          `json:"deliveryMethod" binding:"required,oneof=cash transfer card wallet"`
	ExchangeRate         decimal.Decimal `json:"exchangeRate"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage"`
	CommissionFixed      decimal.Decimal `json:"commissionFixed"`
	MinAmount            decimal.Decimal `json:"minAmount"`
	MaxAmount            decimal.Decimal `json:"maxAmount"`
}

// UpdateCommissionProfileRequest defines the data allowed for updating a profile.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCommissionProfileRequest struct {
	Name                 *string          `json:"name"`
	DeliveryMethod       *string          `json:"deliveryMethod" binding:"omitempty,oneof=cash transfer card wallet"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate"`
	CommissionPercentage *decimal.Decimal `json:"commissionPercentage"`
	CommissionFixed      *decimal.Decimal `json:"commissionFixed"`
	MinAmount            *decimal.Decimal `json:"minAmount"`
	MaxAmount            *decimal.Decimal `json:"maxAmount"`
	IsActive             *bool            `json:"isActive"`
}

// CommissionProfileResponse defines the data returned for a profile.
type CommissionProfileResponse struct {
	ProfileID            string          `json:"profileID"`
	Name                 string          `json:"name"`
	SourceCurrency       string          `json:"sourceCurrency"`
	TargetCurrency       string          `json:"targetCurrency"`
	DeliveryMethod       string          `json:"deliveryMethod"`
	ExchangeRate         decimal.Decimal `json:"exchangeRate"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage"`
	CommissionFixed      decimal.Decimal `json:"commissionFixed"`
	MinAmount            decimal.Decimal `json:"minAmount"`
	MaxAmount            decimal.Decimal `json:"maxAmount"`
	IsActive             bool            `json:"isActive"`
	LastUpdatedAt        time.Time       `json:"lastUpdatedAt"`
}

// ToCommissionProfileResponse converts a domain.CommissionProfile to its DTO.
func ToCommissionProfileResponse(p *domain.CommissionProfile) CommissionProfileResponse {
	return CommissionProfileResponse{
		ProfileID:            p.ProfileID,
		Name:                 p.Name,
		SourceCurrency:       p.SourceCurrency,
		TargetCurrency:       p.TargetCurrency,
		DeliveryMethod:       string(p.DeliveryMethod),
		ExchangeRate:         p.ExchangeRate,
		CommissionPercentage: p.CommissionPercentage,
		CommissionFixed:      p.CommissionFixed,
		MinAmount:            p.MinAmount,
		MaxAmount:            p.MaxAmount,
		IsActive:             p.IsActive,
		LastUpdatedAt:        p.LastUpdatedAt,
	}
}
