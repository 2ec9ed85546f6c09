package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bankrace/internal/account"
)

func Test_startSampler_TracksRange(t *testing.T) {
	a := account.NewSafeAccount(account.MustParseMoney("100"))
	stop := startSampler(a, time.Millisecond)

	time.Sleep(25 * time.Millisecond)
	a.Deposit(account.MustParseMoney("50"))
	time.Sleep(25 * time.Millisecond)
	a.Withdraw(account.MustParseMoney("120"))
	time.Sleep(25 * time.Millisecond)

	s := stop()

	assert.Greater(t, s.count, 0)
	assert.Equal(t, "30.00", s.min.StringFixed(account.Cents))
	assert.Equal(t, "150.00", s.max.StringFixed(account.Cents))
}

func Test_startSampler_Disabled(t *testing.T) {
	stop := startSampler(account.NewSafeAccount(account.MustParseMoney("1")), 0)

	assert.Equal(t, 0, stop().count)
}
