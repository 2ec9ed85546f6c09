// Package cashier implements the simulation worker: a cashier that runs a
// stream of random deposits and withdrawals against a shared account and
// records each completed one in the shared statistics.
package cashier

import (
	"context"
	"math/rand/v2"

	"bankrace/internal/account"
)

const pcgStream = 0x9e3779b97f4a7c15

// Observer is told about every operation a cashier attempts.
type Observer interface {
	ObserveOperation(ctx context.Context, op account.Operation, completed bool)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(context.Context, account.Operation, bool) {}

type Cashier struct {
	ID int

	account account.Account
	stats   account.Statistics

	deposit  Range
	withdraw Range

	rng      *rand.Rand
	observer Observer
	journal  account.Journal
}

type Option func(*Cashier)

// WithSeed makes the cashier's random stream reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Cashier) {
		c.rng = rand.New(rand.NewPCG(seed, pcgStream))
	}
}

func WithObserver(o Observer) Option {
	return func(c *Cashier) {
		if o != nil {
			c.observer = o
		}
	}
}

func New(id int, a account.Account, s account.Statistics, deposit, withdraw Range, opts ...Option) *Cashier {
	c := &Cashier{
		ID:       id,
		account:  a,
		stats:    s,
		deposit:  deposit,
		withdraw: withdraw,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Next draws the next operation: a fair coin picks the kind, the kind's range
// picks the amount.
func (c *Cashier) Next() account.Operation {
	if c.rng.IntN(2) == 0 {
		return account.NewDeposit(c.deposit.draw(c.rng))
	}
	return account.NewWithdrawal(c.withdraw.draw(c.rng))
}

// Work performs operations random operations. A rejected withdrawal is not an
// error and does not stop the cashier.
func (c *Cashier) Work(ctx context.Context, operations int) {
	if c.journal == nil {
		c.journal = make(account.Journal, 0, operations)
	}
	for range operations {
		c.apply(ctx, c.Next())
	}
}

// Replay performs ops in order through the same path as Work.
func (c *Cashier) Replay(ctx context.Context, ops []account.Operation) {
	for _, op := range ops {
		c.apply(ctx, op)
	}
}

func (c *Cashier) apply(ctx context.Context, op account.Operation) {
	completed := op.Apply(c.account)
	if completed {
		c.stats.RecordTransaction(op.Amount)
		c.journal = append(c.journal, op)
	}
	c.observer.ObserveOperation(ctx, op, completed)
}

// Journal returns the operations this cashier completed. Only read it after
// the cashier has returned.
func (c *Cashier) Journal() account.Journal {
	return c.journal
}
