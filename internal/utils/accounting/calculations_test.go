package accounting

import (
	"testing"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTerms() domain.CommissionTerms {
	return domain.CommissionTerms{
		ExchangeRate:         decimal.NewFromInt(120),
		CommissionPercentage: decimal.NewFromInt(2),
		CommissionFixed:      decimal.Zero,
		MinAmount:            decimal.NewFromInt(10),
		MaxAmount:            decimal.NewFromInt(5000),
	}
}

func TestCalculate_TwoPercentAtRate120(t *testing.T) {
	q, err := Calculate(sampleTerms(), decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(2).Equal(q.Commission), "commission = %s", q.Commission)
	assert.True(t, decimal.NewFromInt(102).Equal(q.Total), "total = %s", q.Total)
	assert.True(t, decimal.NewFromInt(12240).Equal(q.DeliveredAmount), "delivered = %s", q.DeliveredAmount)
}

func TestCalculate_FixedCommissionAndRounding(t *testing.T) {
	terms := sampleTerms()
	terms.CommissionPercentage = decimal.RequireFromString("1.5")
	terms.CommissionFixed = decimal.RequireFromString("0.99")
	terms.ExchangeRate = decimal.RequireFromString("0.9137")

	q, err := Calculate(terms, decimal.RequireFromString("33.33"))
	require.NoError(t, err)

	// 33.33 * 1.5 / 100 = 0.49995 + 0.99 = 1.48995 -> 1.49
	assert.Equal(t, "1.49", q.Commission.StringFixed(2))
	assert.Equal(t, "34.82", q.Total.StringFixed(2))
	// 34.82 * 0.9137 = 31.815034 -> 31.82
	assert.Equal(t, "31.82", q.DeliveredAmount.StringFixed(2))
}

func TestCalculate_Bounds(t *testing.T) {
	terms := sampleTerms()

	_, err := Calculate(terms, decimal.RequireFromString("9.99"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = Calculate(terms, decimal.RequireFromString("5000.01"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = Calculate(terms, decimal.NewFromInt(10))
	assert.NoError(t, err, "min bound is inclusive")

	_, err = Calculate(terms, decimal.NewFromInt(5000))
	assert.NoError(t, err, "max bound is inclusive")
}

func TestCalculate_Monotonic(t *testing.T) {
	terms := sampleTerms()
	terms.CommissionPercentage = decimal.RequireFromString("3.7")
	terms.CommissionFixed = decimal.RequireFromString("1.25")
	terms.ExchangeRate = decimal.RequireFromString("0.0173")

	step := decimal.RequireFromString("0.37")
	prev, err := Calculate(terms, terms.MinAmount)
	require.NoError(t, err)

	for amount := terms.MinAmount.Add(step); amount.LessThanOrEqual(decimal.NewFromInt(500)); amount = amount.Add(step) {
		q, err := Calculate(terms, amount)
		require.NoError(t, err)
		assert.True(t, q.Commission.GreaterThanOrEqual(prev.Commission), "commission decreased at %s", amount)
		assert.True(t, q.DeliveredAmount.GreaterThanOrEqual(prev.DeliveredAmount), "delivered decreased at %s", amount)
		prev = q
	}
}

func TestVerifyDeliveredAmount(t *testing.T) {
	terms := sampleTerms()

	_, err := VerifyDeliveredAmount(terms, decimal.NewFromInt(100), decimal.NewFromInt(12240))
	assert.NoError(t, err)

	_, err = VerifyDeliveredAmount(terms, decimal.NewFromInt(100), decimal.NewFromInt(12241))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestValidateTerms(t *testing.T) {
	assert.NoError(t, ValidateTerms(sampleTerms()))

	bad := sampleTerms()
	bad.MaxAmount = decimal.NewFromInt(5)
	assert.ErrorIs(t, ValidateTerms(bad), apperrors.ErrValidation)

	bad = sampleTerms()
	bad.ExchangeRate = decimal.Zero
	assert.ErrorIs(t, ValidateTerms(bad), apperrors.ErrValidation)

	bad = sampleTerms()
	bad.CommissionFixed = decimal.NewFromInt(-1)
	assert.ErrorIs(t, ValidateTerms(bad), apperrors.ErrValidation)
}

func TestOrderTotal(t *testing.T) {
	lines := []domain.TransactionLine{
		{LineTotal: LineTotal(decimal.RequireFromString("19.99"), 3)},
		{LineTotal: LineTotal(decimal.RequireFromString("5.00"), 1)},
	}
	assert.Equal(t, "64.97", OrderTotal(lines).StringFixed(2))
}
