package simulation

import (
	"time"

	"github.com/shopspring/decimal"

	"bankrace/internal/account"
)

type samples struct {
	count    int
	min, max decimal.Decimal
}

// startSampler polls a's balance every interval until the returned stop
// function is called. stop returns what was seen.
func startSampler(a account.Account, interval time.Duration) (stop func() samples) {
	if interval <= 0 {
		return func() samples { return samples{} }
	}

	quit := make(chan struct{})
	done := make(chan samples, 1)
	go func() {
		var s samples
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				done <- s
				return
			case <-ticker.C:
				s.observe(a.Balance())
			}
		}
	}()

	return func() samples {
		close(quit)
		return <-done
	}
}

func (s *samples) observe(b decimal.Decimal) {
	if s.count == 0 || b.LessThan(s.min) {
		s.min = b
	}
	if s.count == 0 || b.GreaterThan(s.max) {
		s.max = b
	}
	s.count++
}
