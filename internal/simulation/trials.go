package simulation

import (
	"context"

	"bankrace/internal/account"
)

// TrialSummary aggregates repeated runs of one variant.
type TrialSummary struct {
	Variant  account.Variant
	Trials   int
	Violated int
	// FirstViolation is the first run that broke an invariant, if any.
	FirstViolation *Result
}

func (t TrialSummary) Consistent() bool {
	return t.Violated == 0
}

// RunTrials repeats Run n times. It returns early, with the trials done so
// far, once ctx is done; a run that has started always completes.
func (s *Simulation) RunTrials(ctx context.Context, v account.Variant, n int) TrialSummary {
	summary := TrialSummary{Variant: v}
	for range n {
		if ctx.Err() != nil {
			s.logger.WarnContext(ctx, "trials interrupted", "variant", v.String(), "completed", summary.Trials, "err", ctx.Err())
			break
		}
		res := s.Run(ctx, v)
		summary.Trials++
		if !res.Consistent() {
			summary.Violated++
			if summary.FirstViolation == nil {
				summary.FirstViolation = &res
			}
		}
	}

	s.logger.InfoContext(ctx, "trials finished",
		"variant", v.String(),
		"trials", summary.Trials,
		"violated", summary.Violated,
	)
	return summary
}
