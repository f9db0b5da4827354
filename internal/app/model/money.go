package model

import "github.com/shopspring/decimal"

func init() {
	// the backend expects prices as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Money is an amount in the shop currency (tenge)
type Money = decimal.Decimal

// CurrencySign is appended to amounts in user facing text
const CurrencySign = "₸"

// FormatMoney renders an amount the way list views show it, e.g. "8.99 ₸"
func FormatMoney(m Money) string {
	return m.String() + " " + CurrencySign
}

// NewMoneyFromInt is a whole amount
func NewMoneyFromInt(v int64) Money {
	return decimal.NewFromInt(v)
}
