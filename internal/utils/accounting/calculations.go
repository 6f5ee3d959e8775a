package accounting

import (
	"fmt"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places kept on every computed money figure.
const MoneyPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// Quote is the result of pricing a remittance amount against a set of commission terms.
type Quote struct {
	Amount          decimal.Decimal `json:"amount"`
	Commission      decimal.Decimal `json:"commission"`
	Total           decimal.Decimal `json:"total"`
	DeliveredAmount decimal.Decimal `json:"deliveredAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
}

// Calculate prices amount under terms. It has no side effects.
//
//	commission = amount * pct / 100 + fixed
//	total      = amount + commission
//	delivered  = total * rate
func Calculate(terms domain.CommissionTerms, amount decimal.Decimal) (Quote, error) {
	if amount.LessThan(terms.MinAmount) || amount.GreaterThan(terms.MaxAmount) {
		return Quote{}, fmt.Errorf("%w: amount %s outside allowed range [%s, %s]",
			apperrors.ErrValidation, amount.String(), terms.MinAmount.String(), terms.MaxAmount.String())
	}

	commission := amount.Mul(terms.CommissionPercentage).Div(hundred).Add(terms.CommissionFixed).Round(MoneyPlaces)
	total := amount.Add(commission)
	delivered := total.Mul(terms.ExchangeRate).Round(MoneyPlaces)

	return Quote{
		Amount:          amount,
		Commission:      commission,
		Total:           total,
		DeliveredAmount: delivered,
		ExchangeRate:    terms.ExchangeRate,
	}, nil
}

// VerifyDeliveredAmount recomputes the quote and fails if claimed does not match it.
// Client-supplied figures are never trusted.
func VerifyDeliveredAmount(terms domain.CommissionTerms, amount, claimed decimal.Decimal) (Quote, error) {
	q, err := Calculate(terms, amount)
	if err != nil {
		return Quote{}, err
	}
	if !q.DeliveredAmount.Equal(claimed) {
		return Quote{}, fmt.Errorf("%w: delivered amount %s does not match computed %s",
			apperrors.ErrValidation, claimed.String(), q.DeliveredAmount.String())
	}
	return q, nil
}

// ValidateTerms checks the bounds an admin-managed commission profile must respect.
func ValidateTerms(terms domain.CommissionTerms) error {
	switch {
	case !terms.MinAmount.IsPositive():
		return fmt.Errorf("%w: min amount must be positive", apperrors.ErrValidation)
	case terms.MaxAmount.LessThan(terms.MinAmount):
		return fmt.Errorf("%w: max amount must not be below min amount", apperrors.ErrValidation)
	case !terms.ExchangeRate.IsPositive():
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	case terms.CommissionPercentage.IsNegative():
		return fmt.Errorf("%w: commission percentage must not be negative", apperrors.ErrValidation)
	case terms.CommissionFixed.IsNegative():
		return fmt.Errorf("%w: fixed commission must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// LineTotal is unit price times quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyPlaces)
}

// OrderTotal sums the line totals of an order.
func OrderTotal(lines []domain.TransactionLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal)
	}
	return sum
}
