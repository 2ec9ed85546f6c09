package simulation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"bankrace/internal/account"
	"bankrace/internal/cashier"
)

const (
	defaultWorkers             = 5
	defaultOperationsPerWorker = 100
)

var (
	defaultInitialBalance = account.MustParseMoney("1000.00")
	defaultDepositRange   = cashier.NewRange(50, 500)
	defaultWithdrawRange  = cashier.NewRange(10, 200)
)

// Config sizes the workload of a run.
type Config struct {
	InitialBalance      decimal.Decimal
	Workers             int
	OperationsPerWorker int
	Deposit             cashier.Range
	Withdraw            cashier.Range
	// Seed of 0 gives every cashier an independent random seed. Any other
	// value seeds cashier i with Seed+i.
	Seed uint64
	// SampleInterval > 0 starts a reader that polls the balance while the
	// cashiers run.
	SampleInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		InitialBalance:      defaultInitialBalance,
		Workers:             defaultWorkers,
		OperationsPerWorker: defaultOperationsPerWorker,
		Deposit:             defaultDepositRange,
		Withdraw:            defaultWithdrawRange,
	}
}

func (c Config) Validate() error {
	if c.InitialBalance.IsNegative() {
		return fmt.Errorf("%w: initial balance %s must be >= 0", ErrInvalidConfig, c.InitialBalance.StringFixed(account.Cents))
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers (%d) must be >= 1", ErrInvalidConfig, c.Workers)
	}
	if c.OperationsPerWorker < 0 {
		return fmt.Errorf("%w: operations per worker (%d) must be >= 0", ErrInvalidConfig, c.OperationsPerWorker)
	}
	if err := c.Deposit.Validate(); err != nil {
		return fmt.Errorf("%w: deposit %w", ErrInvalidConfig, err)
	}
	if err := c.Withdraw.Validate(); err != nil {
		return fmt.Errorf("%w: withdraw %w", ErrInvalidConfig, err)
	}
	if c.SampleInterval < 0 {
		return fmt.Errorf("%w: sample interval %s must be >= 0", ErrInvalidConfig, c.SampleInterval)
	}
	return nil
}
