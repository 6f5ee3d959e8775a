package statemachine

import (
	"testing"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.TransactionStatus
		to      domain.TransactionStatus
		allowed bool
	}{
		{"pending to processing", domain.StatusPending, domain.StatusProcessing, true},
		{"pending to cancelled", domain.StatusPending, domain.StatusCancelled, true},
		{"processing to shipped", domain.StatusProcessing, domain.StatusShipped, true},
		{"processing to cancelled", domain.StatusProcessing, domain.StatusCancelled, true},
		{"shipped to delivered", domain.StatusShipped, domain.StatusDelivered, true},
		{"delivered to completed", domain.StatusDelivered, domain.StatusCompleted, true},
		{"shipped to cancelled", domain.StatusShipped, domain.StatusCancelled, false},
		{"delivered to cancelled", domain.StatusDelivered, domain.StatusCancelled, false},
		{"pending to shipped skips processing", domain.StatusPending, domain.StatusShipped, false},
		{"completed to pending", domain.StatusCompleted, domain.StatusPending, false},
		{"cancelled to processing", domain.StatusCancelled, domain.StatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := OrderStatus.Validate(tt.from, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		})
	}
}

func TestRemittanceStatusTransitions(t *testing.T) {
	assert.True(t, RemittanceStatus.CanTransition(domain.StatusPaymentPending, domain.StatusPaymentProofUploaded))
	assert.True(t, RemittanceStatus.CanTransition(domain.StatusPaymentProofUploaded, domain.StatusRejected))
	assert.True(t, RemittanceStatus.CanTransition(domain.StatusRejected, domain.StatusPaymentProofUploaded))
	assert.True(t, RemittanceStatus.CanTransition(domain.StatusPaymentValidated, domain.StatusProcessing))
	assert.True(t, RemittanceStatus.CanTransition(domain.StatusProcessing, domain.StatusDelivered))
	assert.False(t, RemittanceStatus.CanTransition(domain.StatusProcessing, domain.StatusCancelled))
	assert.False(t, RemittanceStatus.CanTransition(domain.StatusPaymentPending, domain.StatusPaymentValidated))
	assert.False(t, RemittanceStatus.CanTransition(domain.StatusProcessing, domain.StatusShipped))
}

func TestTerminalStates(t *testing.T) {
	for _, m := range []*Machine[domain.TransactionStatus]{OrderStatus, RemittanceStatus} {
		assert.True(t, m.IsTerminal(domain.StatusCompleted), m.Name())
		assert.True(t, m.IsTerminal(domain.StatusCancelled), m.Name())
		assert.False(t, m.IsTerminal(m.Initial()), m.Name())
	}
	assert.False(t, RemittanceStatus.IsTerminal(domain.StatusRejected))

	err := OrderStatus.Validate(domain.StatusCompleted, domain.StatusCancelled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestPaymentGraph(t *testing.T) {
	assert.Equal(t, domain.PaymentPending, Payment.Initial())
	assert.NoError(t, Payment.ValidatePath([]domain.PaymentStatus{
		domain.PaymentPending,
		domain.PaymentProofUploaded,
		domain.PaymentRejected,
		domain.PaymentPending,
		domain.PaymentProofUploaded,
		domain.PaymentValidated,
	}))
	assert.ErrorIs(t, Payment.Validate(domain.PaymentPending, domain.PaymentValidated), apperrors.ErrInvalidTransition)
	assert.ErrorIs(t, Payment.Validate(domain.PaymentRejected, domain.PaymentValidated), apperrors.ErrInvalidTransition)
}

func TestValidatePath(t *testing.T) {
	err := OrderStatus.ValidatePath([]domain.TransactionStatus{domain.StatusProcessing, domain.StatusShipped})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	err = OrderStatus.ValidatePath([]domain.TransactionStatus{domain.StatusPending, domain.StatusShipped})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1")

	assert.NoError(t, OrderStatus.ValidatePath(nil))
}

func TestStatusMachineFor(t *testing.T) {
	assert.Same(t, OrderStatus, StatusMachineFor(domain.KindOrder))
	assert.Same(t, RemittanceStatus, StatusMachineFor(domain.KindRemittance))
	assert.Nil(t, StatusMachineFor("UNKNOWN"))
}
