package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies have no minor unit.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"CLP": true,
	"VND": true,
}

// CurrencyPrecision returns the number of minor-unit digits used when showing code.
func CurrencyPrecision(code string) int32 {
	if zeroDecimalCurrencies[strings.ToUpper(code)] {
		return 0
	}
	return 2
}

// FormatMoney renders an amount with its currency code for notification text.
// Example: 12240 with "CUP" returns "12240.00 CUP"
func FormatMoney(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(CurrencyPrecision(currency))
	if currency == "" {
		return formatted
	}
	return formatted + " " + strings.ToUpper(currency)
}
