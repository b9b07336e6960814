package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/output"
)

// OptimizeMultiDimensional solves each lever independently for the goal and
// compares the answers. Levers that cannot reach the goal are left out.
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	plan *domain.Plan,
	constraints Constraints,
	goal OptimizationGoal,
) (*MultiDimensionalResult, error) {

	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []OptimizationTarget{
		OptimizeMonthlySIP,
		OptimizeStepUp,
		OptimizeRetirementAge,
	}

	var results []OptimizationResult
	for _, target := range targets {
		req := OptimizationRequest{
			Plan:          plan,
			Target:        target,
			Goal:          goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			var be *BreakEvenError
			if !errors.As(err, &be) {
				return nil, err
			}
			continue
		}
		if result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no lever reaches the goal within the constraints",
		}
	}

	mdResult := &MultiDimensionalResult{Results: results}
	mdResult.Recommendations = generateRecommendations(plan, mdResult)
	return mdResult, nil
}

// generateRecommendations phrases each successful lever as an action
func generateRecommendations(plan *domain.Plan, result *MultiDimensionalResult) []string {
	var recs []string

	for _, res := range result.Results {
		if !res.BaseShortfall.IsPositive() {
			recs = append(recs, fmt.Sprintf("Already on track: the plan clears the goal by %s", output.FormatCompactINR(res.BaseShortfall.Neg())))
			return recs
		}

		switch {
		case res.OptimalMonthlySIP != nil:
			recs = append(recs, fmt.Sprintf("Add %s a month to mutual fund SIPs", output.FormatRupees(*res.OptimalMonthlySIP)))
		case res.OptimalStepUp != nil:
			rec := fmt.Sprintf("Step up SIPs by %s%% a year", res.OptimalStepUp.StringFixed(2))
			if cur := plan.Parameters.SIPStepUpPercent; res.OptimalStepUp.GreaterThan(cur) {
				rec += fmt.Sprintf(" (currently %s%%)", cur.StringFixed(1))
			}
			recs = append(recs, rec)
		case res.OptimalRetirementAge != nil:
			delay := *res.OptimalRetirementAge - plan.Parameters.RetirementAge
			rec := fmt.Sprintf("Retire at age %d", *res.OptimalRetirementAge)
			if delay > 0 {
				rec += fmt.Sprintf(" (%d years later than planned)", delay)
			}
			recs = append(recs, rec)
		}
	}

	if len(recs) > 1 {
		recs = append(recs, "Any one of these closes the shortfall on its own; combining smaller changes also works")
	}
	return recs
}

// OptimizeAllTargets solves every lever for closing the corpus gap
func (s *Solver) OptimizeAllTargets(ctx context.Context, plan *domain.Plan, constraints Constraints) (*MultiDimensionalResult, error) {
	return s.OptimizeMultiDimensional(ctx, plan, constraints, GoalCloseGap)
}
