package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bankrace/internal/account"
	"bankrace/internal/cashier"
	"bankrace/internal/report"
	"bankrace/internal/simulation"
)

// Config holds the command line configuration.
type Config struct {
	Simulation        simulation.Config
	Variants          []account.Variant
	Trials            int
	Format            report.Format
	Telemetry         bool
	DeadlockDetection bool
	Verbose           bool
}

func parseFlags() Config {
	defaults := simulation.DefaultConfig()

	var (
		initialBalance    = flag.String("initial-balance", defaults.InitialBalance.StringFixed(account.Cents), "Starting balance of the shared account")
		workers           = flag.Int("workers", defaults.Workers, "Number of concurrent cashiers")
		operations        = flag.Int("operations", defaults.OperationsPerWorker, "Operations per cashier")
		depositRange      = flag.String("deposit-range", rangeFlag(defaults.Deposit), "Comma-separated deposit amount range: min,max")
		withdrawRange     = flag.String("withdraw-range", rangeFlag(defaults.Withdraw), "Comma-separated withdrawal amount range: min,max")
		seed              = flag.Uint64("seed", 0, "Base seed for cashier random streams (0 = independent random seeds)")
		variant           = flag.String("variant", "both", "Variant to run: unsafe, safe or both")
		trials            = flag.Int("trials", 1, "Runs per variant; above 1 only a trial summary is reported")
		sampleInterval    = flag.Duration("sample-interval", 0, "Poll the balance at this interval while cashiers run (0 = off)")
		format            = flag.String("format", string(report.Text), "Report format: text or json")
		telemetry         = flag.Bool("telemetry", false, "Export OpenTelemetry traces, metrics and logs to stderr")
		deadlockDetection = flag.Bool("deadlock-detection", true, "Enable lock-order and lock-timeout detection on the safe variant's mutexes")
		verbose           = flag.Bool("v", false, "Debug logging")
	)

	flag.Parse()

	balance, err := account.ParseMoney(*initialBalance)
	if err != nil {
		log.Fatalf("Invalid initial balance '%s': %v", *initialBalance, err)
	}

	deposit, err := parseRange(*depositRange)
	if err != nil {
		log.Fatalf("Invalid deposit range '%s': %v", *depositRange, err)
	}

	withdraw, err := parseRange(*withdrawRange)
	if err != nil {
		log.Fatalf("Invalid withdraw range '%s': %v", *withdrawRange, err)
	}

	variants, err := parseVariants(*variant)
	if err != nil {
		log.Fatalf("Invalid variant: %v", err)
	}

	reportFormat, err := report.ParseFormat(*format)
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}

	if *trials < 1 {
		log.Fatalf("trials (%d) must be >= 1", *trials)
	}

	cfg := Config{
		Simulation: simulation.Config{
			InitialBalance:      balance,
			Workers:             *workers,
			OperationsPerWorker: *operations,
			Deposit:             deposit,
			Withdraw:            withdraw,
			Seed:                *seed,
			SampleInterval:      *sampleInterval,
		},
		Variants:          variants,
		Trials:            *trials,
		Format:            reportFormat,
		Telemetry:         *telemetry,
		DeadlockDetection: *deadlockDetection,
		Verbose:           *verbose,
	}

	if err := cfg.Simulation.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	return cfg
}

// parseRange parses "min,max" into a cashier range.
func parseRange(s string) (cashier.Range, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return cashier.Range{}, fmt.Errorf("expected 2 comma-separated amounts, got %d", len(parts))
	}

	bounds := make([]float64, 2)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return cashier.Range{}, fmt.Errorf("invalid amount '%s': %w", part, err)
		}
		bounds[i] = v
	}

	r := cashier.NewRange(bounds[0], bounds[1])
	if err := r.Validate(); err != nil {
		return cashier.Range{}, err
	}
	return r, nil
}

func rangeFlag(r cashier.Range) string {
	return r.Min.StringFixed(account.Cents) + "," + r.Max.StringFixed(account.Cents)
}

func parseVariants(s string) ([]account.Variant, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return []account.Variant{account.Unsafe, account.Safe}, nil
	}
	v, err := account.ParseVariant(s)
	if err != nil {
		return nil, err
	}
	return []account.Variant{v}, nil
}

func (c Config) summary() string {
	return fmt.Sprintf("workers=%d operations=%d initial=%s deposit=%s withdraw=%s seed=%d trials=%d sample=%s",
		c.Simulation.Workers, c.Simulation.OperationsPerWorker,
		c.Simulation.InitialBalance.StringFixed(account.Cents),
		c.Simulation.Deposit, c.Simulation.Withdraw,
		c.Simulation.Seed, c.Trials, c.Simulation.SampleInterval.Round(time.Microsecond))
}
