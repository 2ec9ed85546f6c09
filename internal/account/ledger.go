package account

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Ledger is the expected outcome of a run, computed from the cashiers'
// journals rather than from the shared account.
type Ledger struct {
	Initial     decimal.Decimal `json:"initial"`
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
	Count       int64           `json:"count"`
}

func MakeLedger(initial decimal.Decimal) *Ledger {
	return &Ledger{
		Initial:     initial,
		Deposits:    decimal.Zero,
		Withdrawals: decimal.Zero,
	}
}

func (l *Ledger) Record(op Operation) {
	switch op.Kind {
	case Deposit:
		l.Deposits = l.Deposits.Add(op.Amount)
	case Withdraw:
		l.Withdrawals = l.Withdrawals.Add(op.Amount)
	default:
		return
	}
	l.Count++
}

func (l *Ledger) Merge(j Journal) {
	for _, op := range j {
		l.Record(op)
	}
}

func (l *Ledger) ExpectedBalance() decimal.Decimal {
	return l.Initial.Add(l.Deposits).Sub(l.Withdrawals)
}

func (l *Ledger) ExpectedTotal() decimal.Decimal {
	return l.Deposits.Add(l.Withdrawals)
}

// UpperBound is the highest balance any interleaving can reach.
func (l *Ledger) UpperBound() decimal.Decimal {
	return l.Initial.Add(l.Deposits)
}

// Snapshot is what the shared resources reported after a run. MinBalance and
// MaxBalance cover every observation taken, the final read included.
type Snapshot struct {
	Balance      decimal.Decimal `json:"balance"`
	MinBalance   decimal.Decimal `json:"min_balance"`
	MaxBalance   decimal.Decimal `json:"max_balance"`
	Transactions int64           `json:"transactions"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

func TakeSnapshot(a Account, s Statistics) Snapshot {
	b := a.Balance()
	return Snapshot{
		Balance:      b,
		MinBalance:   b,
		MaxBalance:   b,
		Transactions: s.TotalTransactions(),
		TotalAmount:  s.TotalAmount(),
	}
}

// Observe widens the snapshot's observed range with an earlier reading.
func (s *Snapshot) Observe(b decimal.Decimal) {
	if b.LessThan(s.MinBalance) {
		s.MinBalance = b
	}
	if b.GreaterThan(s.MaxBalance) {
		s.MaxBalance = b
	}
}

// Verify compares s against l and returns every broken invariant joined, or
// nil.
func Verify(l *Ledger, s Snapshot) error {
	var errs []error
	if want := l.ExpectedBalance(); !s.Balance.Equal(want) {
		errs = append(errs, newViolation(ErrBalanceMismatch, want.StringFixed(Cents), s.Balance.StringFixed(Cents)))
	}
	if s.MinBalance.IsNegative() {
		errs = append(errs, newViolation(ErrNegativeBalance, ">= 0.00", s.MinBalance.StringFixed(Cents)))
	}
	if bound := l.UpperBound(); s.MaxBalance.GreaterThan(bound) {
		errs = append(errs, newViolation(ErrBalanceAboveBound, "<= "+bound.StringFixed(Cents), s.MaxBalance.StringFixed(Cents)))
	}
	if s.Transactions != l.Count {
		errs = append(errs, newViolation(ErrCountMismatch, formatCount(l.Count), formatCount(s.Transactions)))
	}
	if want := l.ExpectedTotal(); !s.TotalAmount.Equal(want) {
		errs = append(errs, newViolation(ErrTotalMismatch, want.StringFixed(Cents), s.TotalAmount.StringFixed(Cents)))
	}
	return errors.Join(errs...)
}

// VerifySnapshotsConsistent reports whether every snapshot holds the same
// final state.
func VerifySnapshotsConsistent(snapshots []Snapshot) bool {
	if len(snapshots) == 0 {
		return true
	}
	s0 := snapshots[0]
	for _, s := range snapshots[1:] {
		if !s.Balance.Equal(s0.Balance) ||
			s.Transactions != s0.Transactions ||
			!s.TotalAmount.Equal(s0.TotalAmount) {
			return false
		}
	}
	return true
}
