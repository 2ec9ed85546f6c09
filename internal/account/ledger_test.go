package account

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerOf(initial string, ops ...Operation) *Ledger {
	l := MakeLedger(MustParseMoney(initial))
	l.Merge(ops)
	return l
}

func Test_Ledger_Expectations(t *testing.T) {
	l := ledgerOf("1000",
		NewDeposit(MustParseMoney("200")),
		NewWithdrawal(MustParseMoney("50.50")),
		NewDeposit(MustParseMoney("0.25")),
	)

	assert.Equal(t, int64(3), l.Count)
	assert.Equal(t, "1149.75", l.ExpectedBalance().StringFixed(Cents))
	assert.Equal(t, "250.75", l.ExpectedTotal().StringFixed(Cents))
	assert.Equal(t, "1200.25", l.UpperBound().StringFixed(Cents))
}

func Test_Verify_Consistent(t *testing.T) {
	a, s := New(Safe, MustParseMoney("1000"))
	ops := []Operation{NewDeposit(MustParseMoney("200")), NewWithdrawal(MustParseMoney("300"))}
	var j Journal
	for _, op := range ops {
		if op.Apply(a) {
			s.RecordTransaction(op.Amount)
			j = append(j, op)
		}
	}

	assert.NoError(t, Verify(ledgerOf("1000", j...), TakeSnapshot(a, s)))
}

func Test_Verify_ReportsEveryViolation(t *testing.T) {
	l := ledgerOf("100",
		NewDeposit(MustParseMoney("50")),
		NewWithdrawal(MustParseMoney("120")),
	)
	snap := Snapshot{
		Balance:      MustParseMoney("80"),
		MinBalance:   MustParseMoney("-20"),
		MaxBalance:   MustParseMoney("150.01"),
		Transactions: 1,
		TotalAmount:  MustParseMoney("50"),
	}

	err := Verify(l, snap)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBalanceMismatch)
	assert.ErrorIs(t, err, ErrNegativeBalance)
	assert.ErrorIs(t, err, ErrBalanceAboveBound)
	assert.ErrorIs(t, err, ErrCountMismatch)
	assert.ErrorIs(t, err, ErrTotalMismatch)

	violations := Violations(err)
	require.Len(t, violations, 5)
	assert.Equal(t, "30.00", violations[0].Want)
	assert.Equal(t, "80.00", violations[0].Got)

	var v *Violation
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Error(), "want 30.00, got 80.00")
}

func Test_Violations_Nil(t *testing.T) {
	assert.Empty(t, Violations(nil))
}

func Test_Snapshot_Observe(t *testing.T) {
	a, s := New(Unsafe, MustParseMoney("10"))
	snap := TakeSnapshot(a, s)

	snap.Observe(MustParseMoney("-5"))
	snap.Observe(MustParseMoney("25"))
	snap.Observe(MustParseMoney("12"))

	assert.Equal(t, "10.00", snap.Balance.StringFixed(Cents))
	assert.Equal(t, "-5.00", snap.MinBalance.StringFixed(Cents))
	assert.Equal(t, "25.00", snap.MaxBalance.StringFixed(Cents))
}

func Test_VerifySnapshotsConsistent(t *testing.T) {
	s1 := Snapshot{Balance: MustParseMoney("100"), Transactions: 1, TotalAmount: MustParseMoney("5")}
	s2 := Snapshot{Balance: MustParseMoney("100.00"), Transactions: 1, TotalAmount: MustParseMoney("5.00")}
	s3 := Snapshot{Balance: MustParseMoney("101"), Transactions: 1, TotalAmount: MustParseMoney("5")}

	assert.True(t, VerifySnapshotsConsistent([]Snapshot{s1, s2}))
	assert.False(t, VerifySnapshotsConsistent([]Snapshot{s1, s3}))
	assert.True(t, VerifySnapshotsConsistent(nil))
}
