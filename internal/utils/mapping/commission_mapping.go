package mapping

import (
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
)

// ToModelCommissionProfile converts a domain CommissionProfile to a model CommissionProfile
func ToModelCommissionProfile(d domain.CommissionProfile) models.CommissionProfile {
	return models.CommissionProfile{
		ProfileID:            d.ProfileID,
		Name:                 d.Name,
		SourceCurrency:       d.SourceCurrency,
		TargetCurrency:       d.TargetCurrency,
		DeliveryMethod:       string(d.DeliveryMethod),
		ExchangeRate:         d.ExchangeRate,
		CommissionPercentage: d.CommissionPercentage,
		CommissionFixed:      d.CommissionFixed,
		MinAmount:            d.MinAmount,
		MaxAmount:            d.MaxAmount,
		IsActive:             d.IsActive,
		AuditFields:          models.AuditFields(d.AuditFields),
	}
}

// ToDomainCommissionProfile converts a model CommissionProfile to a domain CommissionProfile
func ToDomainCommissionProfile(m models.CommissionProfile) domain.CommissionProfile {
	return domain.CommissionProfile{
		ProfileID:      m.ProfileID,
		Name:           m.Name,
		SourceCurrency: m.SourceCurrency,
		TargetCurrency: m.TargetCurrency,
		DeliveryMethod: domain.DeliveryMethod(m.DeliveryMethod),
		IsActive:       m.IsActive,
		CommissionTerms: domain.CommissionTerms{
			ExchangeRate:         m.ExchangeRate,
			CommissionPercentage: m.CommissionPercentage,
			CommissionFixed:      m.CommissionFixed,
			MinAmount:            m.MinAmount,
			MaxAmount:            m.MaxAmount,
		},
		AuditFields: domain.AuditFields(m.AuditFields),
	}
}
