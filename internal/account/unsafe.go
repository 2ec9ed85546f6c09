package account

import "github.com/shopspring/decimal"

// UnsafeAccount performs every read-modify-write without coordination.
// Concurrent callers lose updates and can overdraw the balance.
type UnsafeAccount struct {
	balance decimal.Decimal
}

func NewUnsafeAccount(initial decimal.Decimal) *UnsafeAccount {
	return &UnsafeAccount{balance: initial}
}

func (a *UnsafeAccount) Deposit(amount decimal.Decimal) {
	a.balance = a.balance.Add(amount)
}

func (a *UnsafeAccount) Withdraw(amount decimal.Decimal) bool {
	if a.balance.GreaterThanOrEqual(amount) {
		// another cashier can pass the same check before this store lands
		a.balance = a.balance.Sub(amount)
		return true
	}
	return false
}

func (a *UnsafeAccount) Balance() decimal.Decimal {
	return a.balance
}

// UnsafeStatistics updates both fields without coordination.
type UnsafeStatistics struct {
	count int64
	total decimal.Decimal
}

func NewUnsafeStatistics() *UnsafeStatistics {
	return &UnsafeStatistics{total: decimal.Zero}
}

func (s *UnsafeStatistics) RecordTransaction(amount decimal.Decimal) {
	s.count++
	s.total = s.total.Add(amount)
}

func (s *UnsafeStatistics) TotalTransactions() int64 {
	return s.count
}

func (s *UnsafeStatistics) TotalAmount() decimal.Decimal {
	return s.total
}
