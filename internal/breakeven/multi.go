package breakeven

import (
	"context"
	"fmt"

	"github.com/Noyack/webapp-sub003/internal/output"
)

// SolveAll runs the solver for every target against one base evaluation and
// summarizes the options that reach the goal
func (s *Solver) SolveAll(ctx context.Context, req SolveRequest) (*MultiTargetResult, error) {
	ev, base, err := s.prepare(ctx, &req)
	if err != nil {
		return nil, err
	}

	multi := &MultiTargetResult{
		Goal: req.Goal,
		Seed: base.results.Seed,
	}

	for _, target := range Targets() {
		req.Target = target
		result, err := s.solveTarget(ev, req, base)
		if err != nil {
			return nil, err
		}
		multi.Results = append(multi.Results, *result)

		// one already-met result speaks for every target
		if result.AlreadyMet {
			break
		}
	}

	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

// generateRecommendations phrases each reachable option as one line
func generateRecommendations(multi *MultiTargetResult) []string {
	goal := multi.Goal.StringFixed(1)

	if len(multi.Results) == 1 && multi.Results[0].AlreadyMet {
		r := multi.Results[0]
		return []string{fmt.Sprintf("The plan already meets the %s%% goal with %s%% success",
			goal, r.Results.SuccessProbability.StringFixed(1))}
	}

	var recs []string
	for _, r := range multi.Results {
		if !r.Success {
			recs = append(recs, fmt.Sprintf("%s alone cannot reach %s%% within its limits", targetLabel(r.Target), goal))
			continue
		}
		recs = append(recs, fmt.Sprintf("%s to reach %s%% success", describeChange(r), r.Results.SuccessProbability.StringFixed(1)))
	}

	reachable := 0
	for _, r := range multi.Results {
		if r.Success {
			reachable++
		}
	}
	if reachable == 0 {
		recs = append(recs, fmt.Sprintf("No single change reaches %s%%; try combining changes with the compare command", goal))
	}
	return recs
}

// describeChange states the required lever move in plain words
func describeChange(r SolveResult) string {
	switch {
	case r.ExtraContribution != nil:
		return fmt.Sprintf("Save %s more per month", output.FormatDollars(*r.ExtraContribution))
	case r.ExtraSavings != nil:
		return fmt.Sprintf("Add %s to current savings", output.FormatDollars(*r.ExtraSavings))
	case r.ExpenseCut != nil:
		return fmt.Sprintf("Cut monthly expenses by %s%%", r.ExpenseCut.StringFixed(1))
	case r.RetirementAge != nil:
		return fmt.Sprintf("Retire at age %d", *r.RetirementAge)
	}
	return "Keep the plan as written"
}

func targetLabel(t SolveTarget) string {
	switch t {
	case TargetContribution:
		return "Saving more each month"
	case TargetSavings:
		return "Adding to savings"
	case TargetExpenses:
		return "Cutting expenses"
	case TargetRetirementAge:
		return "Retiring later"
	}
	return string(t)
}
