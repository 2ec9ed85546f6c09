// Package account holds the shared resources of a cashier simulation: the
// account balance and the transaction statistics, each in an unprotected and a
// protected variant behind the same interface.
package account

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Account interface {
	Deposit(amount decimal.Decimal)
	// Withdraw debits amount if the balance covers it and reports whether it did.
	Withdraw(amount decimal.Decimal) bool
	Balance() decimal.Decimal
}

type Statistics interface {
	RecordTransaction(amount decimal.Decimal)
	TotalTransactions() int64
	TotalAmount() decimal.Decimal
}

type Variant int

const (
	Unsafe Variant = iota
	Safe
)

func (v Variant) String() string {
	switch v {
	case Unsafe:
		return "unsafe"
	case Safe:
		return "safe"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unsafe":
		return Unsafe, nil
	case "safe":
		return Safe, nil
	}
	return 0, fmt.Errorf("unknown variant %q (supported: unsafe, safe)", s)
}

// New builds a fresh account holding initial and empty statistics of variant v.
func New(v Variant, initial decimal.Decimal) (Account, Statistics) {
	if v == Safe {
		return NewSafeAccount(initial), NewSafeStatistics()
	}
	return NewUnsafeAccount(initial), NewUnsafeStatistics()
}
