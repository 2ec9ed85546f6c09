package account

import (
	"sync/atomic"

	"github.com/sasha-s/go-deadlock"
	"github.com/shopspring/decimal"
)

// SafeAccount serializes every operation on its own lock. Withdraw holds the
// lock across the whole check and debit.
type SafeAccount struct {
	lock    deadlock.Mutex
	balance decimal.Decimal
}

func NewSafeAccount(initial decimal.Decimal) *SafeAccount {
	return &SafeAccount{balance: initial}
}

func (a *SafeAccount) Deposit(amount decimal.Decimal) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.balance = a.balance.Add(amount)
}

func (a *SafeAccount) Withdraw(amount decimal.Decimal) bool {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.balance.LessThan(amount) {
		return false
	}
	a.balance = a.balance.Sub(amount)
	return true
}

func (a *SafeAccount) Balance() decimal.Decimal {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.balance
}

// SafeStatistics counts lock-free and guards the running total with a
// separate lock. A reader may see a count whose amount has not landed in the
// total yet; both fields are exact once every writer has returned.
type SafeStatistics struct {
	count atomic.Int64

	totalMu deadlock.Mutex
	total   decimal.Decimal
}

func NewSafeStatistics() *SafeStatistics {
	return &SafeStatistics{total: decimal.Zero}
}

func (s *SafeStatistics) RecordTransaction(amount decimal.Decimal) {
	s.count.Add(1)

	s.totalMu.Lock()
	defer s.totalMu.Unlock()
	s.total = s.total.Add(amount)
}

func (s *SafeStatistics) TotalTransactions() int64 {
	return s.count.Load()
}

func (s *SafeStatistics) TotalAmount() decimal.Decimal {
	s.totalMu.Lock()
	defer s.totalMu.Unlock()
	return s.total
}
