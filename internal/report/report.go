// Package report renders simulation results for people (text) and for tools
// (JSON).
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"bankrace/internal/account"
	"bankrace/internal/simulation"
)

type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (supported: text, json)", s)
}

type Document struct {
	Runs   []Run    `json:"runs,omitempty"`
	Trials []Trials `json:"trials,omitempty"`
}

type Run struct {
	RunID               string          `json:"run_id"`
	Variant             account.Variant `json:"variant"`
	Workers             int             `json:"workers"`
	OperationsPerWorker int             `json:"operations_per_worker"`
	InitialBalance      decimal.Decimal `json:"initial_balance"`
	FinalBalance        decimal.Decimal `json:"final_balance"`
	Transactions        int64           `json:"transactions"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	MinObserved         decimal.Decimal `json:"min_observed_balance"`
	MaxObserved         decimal.Decimal `json:"max_observed_balance"`
	Samples             int             `json:"samples"`
	Expected            account.Ledger  `json:"expected"`
	Elapsed             string          `json:"elapsed"`
	Consistent          bool            `json:"consistent"`
	Violations          []string        `json:"violations,omitempty"`
}

type Trials struct {
	Variant        account.Variant `json:"variant"`
	Trials         int             `json:"trials"`
	Violated       int             `json:"violated"`
	FirstViolation *Run            `json:"first_violation,omitempty"`
}

func FromResult(r simulation.Result) Run {
	run := Run{
		RunID:               r.RunID.String(),
		Variant:             r.Variant,
		Workers:             r.Workers,
		OperationsPerWorker: r.OperationsPerWorker,
		InitialBalance:      r.Expected.Initial,
		FinalBalance:        r.Snapshot.Balance,
		Transactions:        r.Snapshot.Transactions,
		TotalAmount:         r.Snapshot.TotalAmount,
		MinObserved:         r.Snapshot.MinBalance,
		MaxObserved:         r.Snapshot.MaxBalance,
		Samples:             r.Samples,
		Expected:            r.Expected,
		Elapsed:             r.Elapsed.String(),
		Consistent:          r.Consistent(),
	}
	for _, v := range r.Violations() {
		run.Violations = append(run.Violations, v.Error())
	}
	return run
}

func FromTrials(t simulation.TrialSummary) Trials {
	out := Trials{Variant: t.Variant, Trials: t.Trials, Violated: t.Violated}
	if t.FirstViolation != nil {
		first := FromResult(*t.FirstViolation)
		out.FirstViolation = &first
	}
	return out
}

func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case JSON:
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case Text:
		return writeText(w, doc)
	}
	return fmt.Errorf("unknown report format %q", f)
}

func writeText(w io.Writer, doc Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range doc.Runs {
		fmt.Fprintf(tw, "=== %s VERSION ===\n", strings.ToUpper(r.Variant.String()))
		fmt.Fprintf(tw, "Run:\t%s\n", r.RunID)
		fmt.Fprintf(tw, "Cashiers:\t%d x %d operations\n", r.Workers, r.OperationsPerWorker)
		fmt.Fprintf(tw, "Initial balance:\t%s\n", money(r.InitialBalance))
		fmt.Fprintf(tw, "Final balance:\t%s\t(expected %s)\n", money(r.FinalBalance), money(r.Expected.ExpectedBalance()))
		fmt.Fprintf(tw, "Total transactions:\t%d\t(expected %d)\n", r.Transactions, r.Expected.Count)
		fmt.Fprintf(tw, "Total amount:\t%s\t(expected %s)\n", money(r.TotalAmount), money(r.Expected.ExpectedTotal()))
		if r.Samples > 0 {
			fmt.Fprintf(tw, "Observed balance:\t%s .. %s\t(%d samples)\n", money(r.MinObserved), money(r.MaxObserved), r.Samples)
		}
		fmt.Fprintf(tw, "Elapsed:\t%s\n", r.Elapsed)
		if r.Consistent {
			fmt.Fprintln(tw, "All cashiers completed work safely!")
		} else {
			fmt.Fprintln(tw, "Invariants violated:")
			for _, v := range r.Violations {
				fmt.Fprintf(tw, "  - %s\n", v)
			}
		}
		fmt.Fprintln(tw)
	}
	for _, t := range doc.Trials {
		fmt.Fprintf(tw, "=== %s TRIALS ===\n", strings.ToUpper(t.Variant.String()))
		fmt.Fprintf(tw, "Trials:\t%d\n", t.Trials)
		fmt.Fprintf(tw, "Violated:\t%d\n", t.Violated)
		if t.FirstViolation != nil {
			fmt.Fprintf(tw, "First violation:\t%s\n", t.FirstViolation.RunID)
			for _, v := range t.FirstViolation.Violations {
				fmt.Fprintf(tw, "  - %s\n", v)
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(account.Cents)
}
