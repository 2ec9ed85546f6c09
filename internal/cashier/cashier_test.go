package cashier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankrace/internal/account"
)

type observation struct {
	op        account.Operation
	completed bool
}

type recordingObserver struct {
	seen []observation
}

func (r *recordingObserver) ObserveOperation(_ context.Context, op account.Operation, completed bool) {
	r.seen = append(r.seen, observation{op: op, completed: completed})
}

var (
	depositRange  = NewRange(50, 500)
	withdrawRange = NewRange(10, 200)
)

func newCashier(v account.Variant, initial string, opts ...Option) (*Cashier, account.Account, account.Statistics) {
	a, s := account.New(v, account.MustParseMoney(initial))
	return New(1, a, s, depositRange, withdrawRange, opts...), a, s
}

func Test_Cashier_SingleDeposit(t *testing.T) {
	for _, v := range []account.Variant{account.Unsafe, account.Safe} {
		t.Run(v.String(), func(t *testing.T) {
			c, a, s := newCashier(v, "1000.00")

			c.Replay(context.Background(), []account.Operation{account.NewDeposit(account.MustParseMoney("200.00"))})

			assert.Equal(t, "1200.00", a.Balance().StringFixed(account.Cents))
			assert.Equal(t, int64(1), s.TotalTransactions())
			assert.Equal(t, "200.00", s.TotalAmount().StringFixed(account.Cents))
			assert.Len(t, c.Journal(), 1)
		})
	}
}

func Test_Cashier_RejectedWithdrawalLeavesStateUnchanged(t *testing.T) {
	for _, v := range []account.Variant{account.Unsafe, account.Safe} {
		t.Run(v.String(), func(t *testing.T) {
			obs := &recordingObserver{}
			c, a, s := newCashier(v, "1000.00", WithObserver(obs))

			c.Replay(context.Background(), []account.Operation{account.NewWithdrawal(account.MustParseMoney("5000.00"))})

			assert.Equal(t, "1000.00", a.Balance().StringFixed(account.Cents))
			assert.Equal(t, int64(0), s.TotalTransactions())
			assert.Equal(t, "0.00", s.TotalAmount().StringFixed(account.Cents))
			assert.Empty(t, c.Journal())
			require.Len(t, obs.seen, 1)
			assert.False(t, obs.seen[0].completed)
		})
	}
}

func Test_Cashier_SerialRunsMatchAcrossVariants(t *testing.T) {
	script := New(0, nil, nil, depositRange, withdrawRange, WithSeed(42))
	ops := make([]account.Operation, 0, 500)
	for range cap(ops) {
		ops = append(ops, script.Next())
	}

	var snapshots []account.Snapshot
	for _, v := range []account.Variant{account.Unsafe, account.Safe} {
		c, a, s := newCashier(v, "1000.00")
		c.Replay(context.Background(), ops)

		l := account.MakeLedger(account.MustParseMoney("1000.00"))
		l.Merge(c.Journal())
		snap := account.TakeSnapshot(a, s)
		require.NoError(t, account.Verify(l, snap), v.String())
		snapshots = append(snapshots, snap)
	}

	assert.True(t, account.VerifySnapshotsConsistent(snapshots))
}

func Test_Cashier_SeededStreamsRepeat(t *testing.T) {
	c1, _, _ := newCashier(account.Safe, "0", WithSeed(7))
	c2, _, _ := newCashier(account.Safe, "0", WithSeed(7))
	c3, _, _ := newCashier(account.Safe, "0", WithSeed(8))

	same, differs := true, false
	for range 50 {
		op1, op2, op3 := c1.Next(), c2.Next(), c3.Next()
		if op1.Kind != op2.Kind || !op1.Amount.Equal(op2.Amount) {
			same = false
		}
		if op1.Kind != op3.Kind || !op1.Amount.Equal(op3.Amount) {
			differs = true
		}
	}

	assert.True(t, same)
	assert.True(t, differs)
}

func Test_Cashier_NextStaysInRange(t *testing.T) {
	c, _, _ := newCashier(account.Safe, "0", WithSeed(1))

	kinds := map[account.Kind]int{}
	for range 2000 {
		op := c.Next()
		kinds[op.Kind]++
		r := depositRange
		if op.Kind == account.Withdraw {
			r = withdrawRange
		}
		assert.True(t, op.Amount.GreaterThanOrEqual(r.Min), "%s below %s", op.Amount, r)
		assert.True(t, op.Amount.LessThan(r.Max), "%s not below %s", op.Amount, r)
		assert.Equal(t, int32(-account.Cents), op.Amount.Exponent())
	}

	assert.Greater(t, kinds[account.Deposit], 800)
	assert.Greater(t, kinds[account.Withdraw], 800)
}

func Test_Cashier_WorkRecordsCompletedOperations(t *testing.T) {
	obs := &recordingObserver{}
	c, a, s := newCashier(account.Safe, "1000.00", WithSeed(3), WithObserver(obs))

	c.Work(context.Background(), 100)

	require.Len(t, obs.seen, 100)
	completed := 0
	for _, o := range obs.seen {
		if o.completed {
			completed++
		}
	}
	assert.Len(t, c.Journal(), completed)
	assert.Equal(t, int64(completed), s.TotalTransactions())

	l := account.MakeLedger(account.MustParseMoney("1000.00"))
	l.Merge(c.Journal())
	assert.NoError(t, account.Verify(l, account.TakeSnapshot(a, s)))
}

func Test_Range_Validate(t *testing.T) {
	assert.NoError(t, NewRange(10, 200).Validate())
	assert.Error(t, NewRange(0, 200).Validate())
	assert.Error(t, NewRange(-5, 200).Validate())
	assert.Error(t, NewRange(200, 200).Validate())
	assert.Error(t, NewRange(10, 10.001).Validate())
	assert.Equal(t, "10.00-200.00", NewRange(10, 200).String())
}
