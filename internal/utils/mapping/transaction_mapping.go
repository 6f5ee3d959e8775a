package mapping

import (
	"github.com/shopspring/decimal"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/SscSPs/commerce_lifecycle_app/internal/models"
)

func nullDecimal(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func stringPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToModelTransaction flattens a domain Transaction into its row. Lines are mapped separately.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:       d.TransactionID,
		SequenceNumber:      d.SequenceNumber,
		Kind:                string(d.Kind),
		OwnerID:             d.OwnerID,
		ContactPhone:        d.ContactPhone,
		Status:              string(d.Status),
		PaymentStatus:       string(d.PaymentStatus),
		InventoryState:      string(d.InventoryState),
		Amount:              d.Amount,
		CurrencyCode:        d.CurrencyCode,
		PaymentProofRef:     d.PaymentProofRef,
		DeliveryProofRef:    d.DeliveryProofRef,
		PaymentValidatedAt:  d.PaymentValidatedAt,
		PaymentValidatedBy:  d.PaymentValidatedBy,
		ProcessingStartedAt: d.ProcessingStartedAt,
		ProcessedBy:         d.ProcessedBy,
		ShippedAt:           d.ShippedAt,
		ShippedBy:           d.ShippedBy,
		DeliveredAt:         d.DeliveredAt,
		DeliveredBy:         d.DeliveredBy,
		CompletedAt:         d.CompletedAt,
		CompletedBy:         d.CompletedBy,
		CancelledAt:         d.CancelledAt,
		CancelledBy:         d.CancelledBy,
		RejectionReason:     d.RejectionReason,
		CancellationReason:  d.CancellationReason,
		Version:             d.Version,
		AuditFields:         models.AuditFields(d.AuditFields),
	}
	if r := d.Remittance; r != nil {
		m.ProfileID = stringPtr(r.ProfileID)
		m.ExchangeRate = nullDecimal(r.Terms.ExchangeRate)
		m.CommissionPercentage = nullDecimal(r.Terms.CommissionPercentage)
		m.CommissionFixed = nullDecimal(r.Terms.CommissionFixed)
		m.MinAmount = nullDecimal(r.Terms.MinAmount)
		m.MaxAmount = nullDecimal(r.Terms.MaxAmount)
		m.DeliveryMethod = stringPtr(string(r.DeliveryMethod))
		m.TargetCurrency = stringPtr(r.TargetCurrency)
		m.Commission = nullDecimal(r.Commission)
		m.Total = nullDecimal(r.Total)
		m.DeliveredAmount = nullDecimal(r.DeliveredAmount)
		m.RecipientName = stringPtr(r.RecipientName)
		m.RecipientPhone = stringPtr(r.RecipientPhone)
		m.RecipientUserID = r.RecipientUserID
		m.RecipientAccount = r.RecipientAccount
	}
	return m
}

// ToDomainTransaction rebuilds a domain Transaction from its row. The remittance snapshot is
// present whenever the row carries a profile id.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:       m.TransactionID,
		SequenceNumber:      m.SequenceNumber,
		Kind:                domain.TransactionKind(m.Kind),
		OwnerID:             m.OwnerID,
		ContactPhone:        m.ContactPhone,
		Status:              domain.TransactionStatus(m.Status),
		PaymentStatus:       domain.PaymentStatus(m.PaymentStatus),
		InventoryState:      domain.InventoryState(m.InventoryState),
		Amount:              m.Amount,
		CurrencyCode:        m.CurrencyCode,
		PaymentProofRef:     m.PaymentProofRef,
		DeliveryProofRef:    m.DeliveryProofRef,
		PaymentValidatedAt:  m.PaymentValidatedAt,
		PaymentValidatedBy:  m.PaymentValidatedBy,
		ProcessingStartedAt: m.ProcessingStartedAt,
		ProcessedBy:         m.ProcessedBy,
		ShippedAt:           m.ShippedAt,
		ShippedBy:           m.ShippedBy,
		DeliveredAt:         m.DeliveredAt,
		DeliveredBy:         m.DeliveredBy,
		CompletedAt:         m.CompletedAt,
		CompletedBy:         m.CompletedBy,
		CancelledAt:         m.CancelledAt,
		CancelledBy:         m.CancelledBy,
		RejectionReason:     m.RejectionReason,
		CancellationReason:  m.CancellationReason,
		Version:             m.Version,
		AuditFields:         domain.AuditFields(m.AuditFields),
	}
	if m.ProfileID != nil {
		d.Remittance = &domain.RemittanceDetails{
			ProfileID: *m.ProfileID,
			Terms: domain.CommissionTerms{
				ExchangeRate:         m.ExchangeRate.Decimal,
				CommissionPercentage: m.CommissionPercentage.Decimal,
				CommissionFixed:      m.CommissionFixed.Decimal,
				MinAmount:            m.MinAmount.Decimal,
				MaxAmount:            m.MaxAmount.Decimal,
			},
			DeliveryMethod:   domain.DeliveryMethod(deref(m.DeliveryMethod)),
			TargetCurrency:   deref(m.TargetCurrency),
			Commission:       m.Commission.Decimal,
			Total:            m.Total.Decimal,
			DeliveredAmount:  m.DeliveredAmount.Decimal,
			RecipientName:    deref(m.RecipientName),
			RecipientPhone:   deref(m.RecipientPhone),
			RecipientUserID:  m.RecipientUserID,
			RecipientAccount: m.RecipientAccount,
		}
	}
	return d
}

// ToModelTransactionLines converts order lines, recording their position.
func ToModelTransactionLines(lines []domain.TransactionLine) []models.TransactionLine {
	out := make([]models.TransactionLine, len(lines))
	for i, l := range lines {
		out[i] = models.TransactionLine{
			LineID:        l.LineID,
			TransactionID: l.TransactionID,
			ItemID:        l.ItemID,
			ItemKind:      string(l.ItemKind),
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			LineTotal:     l.LineTotal,
			Position:      i,
		}
	}
	return out
}

// ToDomainTransactionLine converts a line row.
func ToDomainTransactionLine(m models.TransactionLine) domain.TransactionLine {
	return domain.TransactionLine{
		LineID:        m.LineID,
		TransactionID: m.TransactionID,
		ItemID:        m.ItemID,
		ItemKind:      domain.ItemKind(m.ItemKind),
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		LineTotal:     m.LineTotal,
	}
}
