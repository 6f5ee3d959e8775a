package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
)

func stringPtr(s string) *string {
	return &s
}

func TestTransaction_IsTerminal(t *testing.T) {
	tests := []struct {
		name   string
		status domain.TransactionStatus
		want   bool
	}{
		{name: "pending", status: domain.StatusPending, want: false},
		{name: "shipped", status: domain.StatusShipped, want: false},
		{name: "rejected remittance can still resubmit", status: domain.StatusRejected, want: false},
		{name: "completed", status: domain.StatusCompleted, want: true},
		{name: "cancelled", status: domain.StatusCancelled, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Status: tt.status}
			assert.Equal(t, tt.want, txn.IsTerminal())
		})
	}
}

func TestTransaction_IsRecipient(t *testing.T) {
	tests := []struct {
		name   string
		txn    domain.Transaction
		userID string
		want   bool
	}{
		{
			name:   "order has no recipient",
			txn:    domain.Transaction{Kind: domain.KindOrder},
			userID: "user-1",
			want:   false,
		},
		{
			name: "remittance without recipient account",
			txn: domain.Transaction{
				Kind:       domain.KindRemittance,
				Remittance: &domain.RemittanceDetails{RecipientName: "Ana"},
			},
			userID: "user-1",
			want:   false,
		},
		{
			name: "matching recipient",
			txn: domain.Transaction{
				Kind:       domain.KindRemittance,
				Remittance: &domain.RemittanceDetails{RecipientUserID: stringPtr("user-1")},
			},
			userID: "user-1",
			want:   true,
		},
		{
			name: "empty caller never matches",
			txn: domain.Transaction{
				Kind:       domain.KindRemittance,
				Remittance: &domain.RemittanceDetails{RecipientUserID: stringPtr("")},
			},
			userID: "",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.txn.IsRecipient(tt.userID))
		})
	}
}

func TestInventoryRecord_Available(t *testing.T) {
	rec := domain.InventoryRecord{Quantity: 5, ReservedQuantity: 2}
	assert.Equal(t, 3, rec.Available())
}

func TestDeliveryMethod_IsValid(t *testing.T) {
	for _, m := range []domain.DeliveryMethod{domain.DeliveryCash, domain.DeliveryTransfer, domain.DeliveryCard, domain.DeliveryWallet} {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, domain.DeliveryMethod("pigeon").IsValid())
	assert.False(t, domain.DeliveryMethod("CASH").IsValid())
}
