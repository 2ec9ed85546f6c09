// Package telemetry adapts the simulation to OpenTelemetry: per-operation
// metrics, run-level metrics and the providers the CLI exports to stdout.
package telemetry

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"bankrace/internal/account"
	"bankrace/internal/cashier"
)

// ScopeName is the instrumentation scope used for meters, tracers and loggers.
const ScopeName = "bankrace"

const (
	AttrVariant = attribute.Key("bank.variant")
	AttrKind    = attribute.Key("bank.operation.kind")
	AttrOutcome = attribute.Key("bank.operation.outcome")
	AttrRunID   = attribute.Key("bank.run.id")
	AttrCashier = attribute.Key("bank.cashier.id")
)

// Metrics maps simulation events to OpenTelemetry instruments:
//   - every attempted operation -> bank.operations counter and bank.operation.amount histogram
//   - every finished run -> bank.runs counter and bank.balance.final gauge
type Metrics struct {
	operations   metric.Int64Counter
	amounts      metric.Float64Histogram
	runs         metric.Int64Counter
	finalBalance metric.Float64Gauge
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operations, err := meter.Int64Counter("bank.operations",
		metric.WithDescription("Operations attempted by cashiers"))
	if err != nil {
		return nil, fmt.Errorf("create operations counter: %w", err)
	}
	amounts, err := meter.Float64Histogram("bank.operation.amount",
		metric.WithDescription("Amount of attempted operations"))
	if err != nil {
		return nil, fmt.Errorf("create amount histogram: %w", err)
	}
	runs, err := meter.Int64Counter("bank.runs",
		metric.WithDescription("Finished simulation runs"))
	if err != nil {
		return nil, fmt.Errorf("create runs counter: %w", err)
	}
	finalBalance, err := meter.Float64Gauge("bank.balance.final",
		metric.WithDescription("Balance reported at the end of a run"))
	if err != nil {
		return nil, fmt.Errorf("create final balance gauge: %w", err)
	}

	return &Metrics{
		operations:   operations,
		amounts:      amounts,
		runs:         runs,
		finalBalance: finalBalance,
	}, nil
}

// Observer returns a cashier observer tagging measurements with v.
func (m *Metrics) Observer(v account.Variant) cashier.Observer {
	o := &operationObserver{m: m}
	for _, kind := range []account.Kind{account.Deposit, account.Withdraw} {
		for i, outcome := range []string{"rejected", "completed"} {
			o.opts[kind][i] = metric.WithAttributeSet(attribute.NewSet(
				AttrVariant.String(v.String()),
				AttrKind.String(kind.String()),
				AttrOutcome.String(outcome),
			))
		}
	}
	return o
}

// RecordRun records one finished run.
func (m *Metrics) RecordRun(ctx context.Context, v account.Variant, balance decimal.Decimal, violations int) {
	consistent := violations == 0
	m.runs.Add(ctx, 1, metric.WithAttributes(
		AttrVariant.String(v.String()),
		attribute.Bool("bank.run.consistent", consistent),
	))
	m.finalBalance.Record(ctx, balance.InexactFloat64(), metric.WithAttributes(AttrVariant.String(v.String())))
}

type operationObserver struct {
	m *Metrics
	// indexed by kind, then by completed
	opts [2][2]metric.MeasurementOption
}

func (o *operationObserver) ObserveOperation(ctx context.Context, op account.Operation, completed bool) {
	if op.Kind != account.Deposit && op.Kind != account.Withdraw {
		return
	}
	i := 0
	if completed {
		i = 1
	}
	opt := o.opts[op.Kind][i]
	o.m.operations.Add(ctx, 1, opt)
	o.m.amounts.Record(ctx, op.Amount.InexactFloat64(), opt)
}

var _ cashier.Observer = (*operationObserver)(nil)
