// Package simulation drives cashier runs against one shared account and one
// shared statistics instance, then checks the reported state against what the
// cashiers independently recorded.
//
// A run goes through four phases:
//   - INIT: build the account with the initial balance and empty statistics
//   - RUN: start every cashier at once
//   - JOIN: wait for every cashier to return
//   - REPORT: read the shared state and verify it against the cashiers' journals
//
// Runs never fail. A rejected withdrawal is an ordinary outcome and broken
// invariants are reported in the Result, not returned as errors.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bankrace/internal/account"
	"bankrace/internal/cashier"
	"bankrace/internal/telemetry"
	"bankrace/internal/util"
)

type Simulation struct {
	cfg     Config
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *telemetry.Metrics
}

type Option func(*Simulation)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Simulation) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Simulation) {
		s.metrics = m
	}
}

func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer(telemetry.ScopeName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulation) Config() Config {
	return s.cfg
}

// Run performs one complete run of variant v.
func (s *Simulation) Run(ctx context.Context, v account.Variant) Result {
	runID := uuid.New()
	ctx, span := s.tracer.Start(ctx, "simulation.run", trace.WithAttributes(
		telemetry.AttrRunID.String(runID.String()),
		telemetry.AttrVariant.String(v.String()),
		attribute.Int("bank.workers", s.cfg.Workers),
		attribute.Int("bank.operations_per_worker", s.cfg.OperationsPerWorker),
	))
	defer span.End()

	logger := s.logger.With("run_id", runID.String(), "variant", v.String())

	acct, stats := account.New(v, s.cfg.InitialBalance)
	logger.DebugContext(ctx, "initialized",
		"balance", acct.Balance().StringFixed(account.Cents),
		"workers", s.cfg.Workers,
		"operations_per_worker", s.cfg.OperationsPerWorker,
	)

	var cashierOpts []cashier.Option
	if s.metrics != nil {
		cashierOpts = append(cashierOpts, cashier.WithObserver(s.metrics.Observer(v)))
	}
	cashiers := make([]*cashier.Cashier, s.cfg.Workers)
	for i := range cashiers {
		opts := append([]cashier.Option(nil), cashierOpts...)
		if s.cfg.Seed != 0 {
			opts = append(opts, cashier.WithSeed(s.cfg.Seed+uint64(i)))
		}
		cashiers[i] = cashier.New(i+1, acct, stats, s.cfg.Deposit, s.cfg.Withdraw, opts...)
	}

	var wg sync.WaitGroup
	gate := util.NewGate()
	for _, c := range cashiers {
		util.Go(&wg, gate, func() {
			s.work(ctx, c)
		})
	}
	stopSampler := startSampler(acct, s.cfg.SampleInterval)

	start := time.Now()
	gate.Open()
	wg.Wait()
	elapsed := time.Since(start)
	sampled := stopSampler()

	ledger := account.MakeLedger(s.cfg.InitialBalance)
	for _, c := range cashiers {
		ledger.Merge(c.Journal())
	}
	snap := account.TakeSnapshot(acct, stats)
	if sampled.count > 0 {
		snap.Observe(sampled.min)
		snap.Observe(sampled.max)
	}

	res := Result{
		RunID:               runID,
		Variant:             v,
		Workers:             s.cfg.Workers,
		OperationsPerWorker: s.cfg.OperationsPerWorker,
		Snapshot:            snap,
		Expected:            *ledger,
		Samples:             sampled.count,
		Elapsed:             elapsed,
		Err:                 account.Verify(ledger, snap),
	}

	violations := res.Violations()
	if s.metrics != nil {
		s.metrics.RecordRun(ctx, v, snap.Balance, len(violations))
	}
	span.SetAttributes(attribute.Int("bank.violations", len(violations)))

	logger.InfoContext(ctx, "run finished",
		"final_balance", snap.Balance.StringFixed(account.Cents),
		"transactions", snap.Transactions,
		"total_amount", snap.TotalAmount.StringFixed(account.Cents),
		"elapsed", elapsed,
	)
	if res.Err != nil {
		span.SetStatus(codes.Error, "invariants violated")
		for _, viol := range violations {
			logger.WarnContext(ctx, "invariant violated", "violation", viol.Error())
		}
	}

	return res
}

// RunBoth runs the unsafe variant and then the safe one on the same workload.
func (s *Simulation) RunBoth(ctx context.Context) []Result {
	return []Result{
		s.Run(ctx, account.Unsafe),
		s.Run(ctx, account.Safe),
	}
}

func (s *Simulation) work(ctx context.Context, c *cashier.Cashier) {
	ctx, span := s.tracer.Start(ctx, "cashier.work", trace.WithAttributes(
		telemetry.AttrCashier.Int(c.ID),
	))
	defer span.End()

	c.Work(ctx, s.cfg.OperationsPerWorker)
	span.SetAttributes(attribute.Int("bank.operations.completed", len(c.Journal())))
}

// Result is the outcome of one run.
type Result struct {
	RunID               uuid.UUID
	Variant             account.Variant
	Workers             int
	OperationsPerWorker int
	Snapshot            account.Snapshot
	Expected            account.Ledger
	Samples             int
	Elapsed             time.Duration
	// Err holds every broken invariant, or nil.
	Err error
}

func (r Result) Consistent() bool {
	return r.Err == nil
}

func (r Result) Violations() []*account.Violation {
	return account.Violations(r.Err)
}

func (r Result) String() string {
	return fmt.Sprintf("%s run %s: balance=%s transactions=%d total=%s violations=%d",
		r.Variant, r.RunID, r.Snapshot.Balance.StringFixed(account.Cents),
		r.Snapshot.Transactions, r.Snapshot.TotalAmount.StringFixed(account.Cents),
		len(r.Violations()))
}
