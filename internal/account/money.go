package account

import "github.com/shopspring/decimal"

// Cents is the number of fractional digits every amount is kept at.
const Cents = 2

// Money rounds f to cents.
func Money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(Cents)
}

// MustParseMoney parses s and rounds it to cents. It panics on malformed input
// and is meant for constants and tests.
func MustParseMoney(s string) decimal.Decimal {
	return decimal.RequireFromString(s).Round(Cents)
}

// ParseMoney parses s and rounds it to cents.
func ParseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return d.Round(Cents), nil
}
