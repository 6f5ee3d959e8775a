package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

func TestTransactionMapping_OrderHasNoSnapshotColumns(t *testing.T) {
	now := time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC)
	order := domain.Transaction{
		TransactionID:  "t-1",
		SequenceNumber: "ORD-20260114-00001",
		Kind:           domain.KindOrder,
		OwnerID:        "u-1",
		Status:         domain.StatusPending,
		PaymentStatus:  domain.PaymentPending,
		InventoryState: domain.InventoryReserved,
		Amount:         decimal.RequireFromString("25.50"),
		CurrencyCode:   "USD",
		Version:        1,
		AuditFields:    domain.NewAuditFields("u-1", now),
	}

	row := ToModelTransaction(order)
	assert.Nil(t, row.ProfileID)
	assert.False(t, row.DeliveredAmount.Valid)
	assert.Equal(t, "RESERVED", row.InventoryState)

	back := ToDomainTransaction(row)
	assert.Nil(t, back.Remittance)
	assert.Equal(t, order, back)
}

func TestTransactionMapping_RemittanceSnapshot(t *testing.T) {
	recipient := "u-2"
	remit := domain.Transaction{
		TransactionID: "t-2",
		Kind:          domain.KindRemittance,
		Status:        domain.StatusPaymentPending,
		Amount:        decimal.NewFromInt(100),
		Remittance: &domain.RemittanceDetails{
			ProfileID: "p-1",
			Terms: domain.CommissionTerms{
				ExchangeRate:         decimal.NewFromInt(120),
				CommissionPercentage: decimal.NewFromInt(2),
				CommissionFixed:      decimal.Zero,
				MinAmount:            decimal.NewFromInt(10),
				MaxAmount:            decimal.NewFromInt(5000),
			},
			DeliveryMethod:  domain.DeliveryCash,
			TargetCurrency:  "CUP",
			Commission:      decimal.NewFromInt(2),
			Total:           decimal.NewFromInt(102),
			DeliveredAmount: decimal.NewFromInt(12240),
			RecipientName:   "Ana",
			RecipientPhone:  "+5355555555",
			RecipientUserID: &recipient,
		},
	}

	row := ToModelTransaction(remit)
	require.NotNil(t, row.ProfileID)
	assert.True(t, row.DeliveredAmount.Valid)

	back := ToDomainTransaction(row)
	require.NotNil(t, back.Remittance)
	assert.True(t, back.Remittance.DeliveredAmount.Equal(decimal.NewFromInt(12240)))
	assert.Equal(t, domain.DeliveryCash, back.Remittance.DeliveryMethod)
	assert.Equal(t, "u-2", *back.Remittance.RecipientUserID)
	assert.Nil(t, back.Remittance.RecipientAccount)
}

func TestToModelTransactionLines_KeepsPosition(t *testing.T) {
	rows := ToModelTransactionLines([]domain.TransactionLine{{LineID: "a"}, {LineID: "b"}})
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Position)
	assert.Equal(t, 1, rows[1].Position)
}

func TestCatalogItemMapping_KeepsBothAuditActors(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	item := domain.CatalogItem{
		ItemID:    "i-1",
		SKU:       "X",
		Kind:      domain.ItemSimple,
		UnitPrice: decimal.RequireFromString("3.25"),
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     created,
			CreatedBy:     "admin-1",
			LastUpdatedAt: created.Add(time.Hour),
			LastUpdatedBy: "admin-2",
		},
	}

	row := ToModelCatalogItem(item)
	assert.Equal(t, "admin-1", row.CreatedBy)
	assert.Equal(t, "admin-2", row.LastUpdatedBy)
	assert.Equal(t, created.Add(time.Hour), row.LastUpdatedAt)
	assert.Equal(t, item.AuditFields, ToDomainCatalogItem(row).AuditFields)
}
