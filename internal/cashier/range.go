package cashier

import (
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"bankrace/internal/account"
)

// Range is a half-open interval [Min, Max) of amounts drawn in whole cents.
type Range struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func NewRange(lo, hi float64) Range {
	return Range{Min: account.Money(lo), Max: account.Money(hi)}
}

func (r Range) Validate() error {
	if !r.Min.IsPositive() {
		return fmt.Errorf("range minimum %s must be > 0", r.Min.StringFixed(account.Cents))
	}
	if r.cents(r.Max) <= r.cents(r.Min) {
		return fmt.Errorf("range maximum %s must be greater than minimum %s",
			r.Max.StringFixed(account.Cents), r.Min.StringFixed(account.Cents))
	}
	return nil
}

func (r Range) String() string {
	return r.Min.StringFixed(account.Cents) + "-" + r.Max.StringFixed(account.Cents)
}

func (r Range) draw(rng *rand.Rand) decimal.Decimal {
	lo, hi := r.cents(r.Min), r.cents(r.Max)
	return decimal.New(lo+rng.Int64N(hi-lo), -account.Cents)
}

func (Range) cents(d decimal.Decimal) int64 {
	return d.Shift(account.Cents).IntPart()
}
