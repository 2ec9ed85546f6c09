package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sasha-s/go-deadlock"

	"bankrace/internal/report"
	"bankrace/internal/simulation"
	"bankrace/internal/telemetry"
)

func main() {
	cfg := parseFlags()

	deadlock.Opts.Disable = !cfg.DeadlockDetection

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	opts := []simulation.Option{simulation.WithLogger(logger)}

	if cfg.Telemetry {
		providers, err := telemetry.NewStdoutProviders(ctx, os.Stderr, telemetry.ScopeName)
		if err != nil {
			log.Fatalf("Failed to create telemetry providers: %v", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := providers.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during telemetry shutdown: %v", err)
			}
		}()

		metrics, err := telemetry.NewMetrics(providers.MeterProvider.Meter(telemetry.ScopeName))
		if err != nil {
			log.Fatalf("Failed to create metrics: %v", err)
		}
		opts = append(opts,
			simulation.WithLogger(providers.Logger()),
			simulation.WithTracer(providers.TracerProvider.Tracer(telemetry.ScopeName)),
			simulation.WithMetrics(metrics),
		)
	}

	sim, err := simulation.New(cfg.Simulation, opts...)
	if err != nil {
		log.Fatalf("Failed to create simulation: %v", err)
	}

	logger.Info("simulation starting", "config", cfg.summary(), "deadlock_detection", cfg.DeadlockDetection)

	var doc report.Document
	for _, v := range cfg.Variants {
		if cfg.Trials == 1 {
			doc.Runs = append(doc.Runs, report.FromResult(sim.Run(ctx, v)))
			continue
		}
		doc.Trials = append(doc.Trials, report.FromTrials(sim.RunTrials(ctx, v, cfg.Trials)))
	}

	if err := report.Write(os.Stdout, cfg.Format, doc); err != nil {
		log.Printf("Failed to write report: %v", err)
	}
}
