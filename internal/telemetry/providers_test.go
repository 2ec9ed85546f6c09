package telemetry_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankrace/internal/account"
	"bankrace/internal/telemetry"
)

func Test_NewStdoutProviders_ExportsAllSignals(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	p, err := telemetry.NewStdoutProviders(ctx, &buf, "bankrace-test")
	require.NoError(t, err)

	spanCtx, span := p.TracerProvider.Tracer(telemetry.ScopeName).Start(ctx, "probe-span")
	p.Logger().InfoContext(spanCtx, "probe-log")
	span.End()

	m, err := telemetry.NewMetrics(p.MeterProvider.Meter(telemetry.ScopeName))
	require.NoError(t, err)
	m.RecordRun(ctx, account.Safe, account.MustParseMoney("1"), 0)

	require.NoError(t, p.Shutdown(ctx))

	out := buf.String()
	assert.Contains(t, out, "probe-span")
	assert.Contains(t, out, "probe-log")
	assert.Contains(t, out, "bank.runs")
	assert.Contains(t, out, "bankrace-test")
}
