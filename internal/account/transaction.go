package account

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Kind int

const (
	Deposit Kind = iota
	Withdraw
)

func (k Kind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Withdraw:
		return "withdraw"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

type Operation struct {
	Kind   Kind            `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

func NewDeposit(amount decimal.Decimal) Operation {
	return Operation{Kind: Deposit, Amount: amount}
}

func NewWithdrawal(amount decimal.Decimal) Operation {
	return Operation{Kind: Withdraw, Amount: amount}
}

// Apply runs op against a and reports whether it completed. Deposits always
// complete; withdrawals complete only when the balance covered them.
func (op Operation) Apply(a Account) bool {
	switch op.Kind {
	case Deposit:
		a.Deposit(op.Amount)
		return true
	case Withdraw:
		return a.Withdraw(op.Amount)
	}
	return false
}

// Journal lists the operations one cashier completed, in order.
type Journal []Operation
