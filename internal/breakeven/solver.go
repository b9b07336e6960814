package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/corpus/internal/calculation"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/transform"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the smallest change to one plan lever that meets a goal
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Plan == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "plan is required"}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.Goal == "" {
		req.Goal = GoalCloseGap
	}
	if req.Goal == GoalTargetCorpus && req.Constraints.TargetCorpus == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "target_corpus goal requires a target corpus"}
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	switch req.Target {
	case OptimizeMonthlySIP:
		return s.optimizeMonthlySIP(ctx, req)
	case OptimizeStepUp:
		return s.optimizeStepUp(ctx, req)
	case OptimizeRetirementAge:
		return s.optimizeRetirementAge(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// shortfall is how far the gap analysis is from the goal; <= 0 means met
func shortfall(req OptimizationRequest, ga domain.GapAnalysis) decimal.Decimal {
	if req.Goal == GoalTargetCorpus {
		return req.Constraints.TargetCorpus.Sub(ga.ProjectedCorpus)
	}
	return ga.CorpusGap
}

// optimizeMonthlySIP finds the smallest flat extra monthly mutual fund SIP
func (s *Solver) optimizeMonthlySIP(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	defaults := DefaultConstraints()
	lo, hi := *defaults.MinMonthlySIP, *defaults.MaxMonthlySIP
	if req.Constraints.MinMonthlySIP != nil {
		lo = *req.Constraints.MinMonthlySIP
	}
	if req.Constraints.MaxMonthlySIP != nil {
		hi = *req.Constraints.MaxMonthlySIP
	}
	tol := req.Tolerance
	if !tol.IsPositive() {
		tol = s.Options.SIPTolerance
	}

	meets := func(extra decimal.Decimal) bool {
		return !shortfall(req, s.CalcEngine.Evaluate(req.Plan, extra)).IsPositive()
	}

	optimal, iterations, err := s.bisect(ctx, "optimize_monthly_sip", lo, hi, tol, req.MaxIterations, meets)
	if err != nil {
		return nil, err
	}
	optimal = optimal.Ceil()

	result := s.newResult(req, req.Plan, optimal, iterations)
	result.OptimalMonthlySIP = &optimal
	return result, nil
}

// optimizeStepUp finds the smallest annual step-up percentage
func (s *Solver) optimizeStepUp(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	defaults := DefaultConstraints()
	lo, hi := *defaults.MinStepUp, *defaults.MaxStepUp
	if req.Constraints.MinStepUp != nil {
		lo = *req.Constraints.MinStepUp
	}
	if req.Constraints.MaxStepUp != nil {
		hi = *req.Constraints.MaxStepUp
	}
	tol := req.Tolerance
	if !tol.IsPositive() {
		tol = s.Options.StepUpTolerance
	}

	var applyErr error
	withStepUp := func(pct decimal.Decimal) *domain.Plan {
		modified, err := transform.ApplyTransforms(req.Plan, []transform.PlanTransform{&transform.SetStepUp{Percent: pct}})
		if err != nil {
			applyErr = err
			return nil
		}
		return modified
	}
	meets := func(pct decimal.Decimal) bool {
		modified := withStepUp(pct)
		if modified == nil {
			return false
		}
		return !shortfall(req, s.CalcEngine.Evaluate(modified, decimal.Zero)).IsPositive()
	}

	optimal, iterations, err := s.bisect(ctx, "optimize_step_up", lo, hi, tol, req.MaxIterations, meets)
	if applyErr != nil {
		return nil, &BreakEvenError{Operation: "optimize_step_up", Message: "failed to apply step-up transform", Cause: applyErr}
	}
	if err != nil {
		return nil, err
	}
	optimal = optimal.RoundCeil(2)

	result := s.newResult(req, withStepUp(optimal), decimal.Zero, iterations)
	result.OptimalStepUp = &optimal
	return result, nil
}

// optimizeRetirementAge finds the earliest retirement age that meets the goal.
// Ages are scanned in order since both projected and required corpus move
// with the age.
func (s *Solver) optimizeRetirementAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	params := req.Plan.Parameters
	minAge, maxAge := params.CurrentAge+1, params.LifeExpectancy-1
	if req.Constraints.MinRetirementAge != nil && *req.Constraints.MinRetirementAge > minAge {
		minAge = *req.Constraints.MinRetirementAge
	}
	if req.Constraints.MaxRetirementAge != nil && *req.Constraints.MaxRetirementAge < maxAge {
		maxAge = *req.Constraints.MaxRetirementAge
	}
	if minAge > maxAge {
		return nil, &BreakEvenError{
			Operation: "optimize_retirement_age",
			Message:   fmt.Sprintf("no retirement age between %d and %d is possible", minAge, maxAge),
		}
	}

	iterations := 0
	for age := minAge; age <= maxAge; age++ {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(req.Plan, []transform.PlanTransform{&transform.SetRetirementAge{Age: age}})
		if err != nil {
			return nil, &BreakEvenError{Operation: "optimize_retirement_age", Message: "failed to apply retirement age transform", Cause: err}
		}
		if shortfall(req, s.CalcEngine.Evaluate(modified, decimal.Zero)).IsPositive() {
			continue
		}

		result := s.newResult(req, modified, decimal.Zero, iterations)
		optimal := age
		result.OptimalRetirementAge = &optimal
		result.ConvergenceInfo = fmt.Sprintf("scanned ages %d to %d", minAge, age)
		return result, nil
	}

	return nil, &BreakEvenError{
		Operation: "optimize_retirement_age",
		Message:   fmt.Sprintf("goal not reachable by retiring at any age up to %d", maxAge),
	}
}

// bisect returns the smallest value in [lo, hi], to within tol, for which
// meets holds. meets must be monotone: false below the answer, true above.
func (s *Solver) bisect(ctx context.Context, op string, lo, hi, tol decimal.Decimal, maxIterations int, meets func(decimal.Decimal) bool) (decimal.Decimal, int, error) {
	if meets(lo) {
		return lo, 1, nil
	}
	if !meets(hi) {
		return decimal.Zero, 2, &BreakEvenError{
			Operation: op,
			Message:   fmt.Sprintf("goal not reachable within the search range %s to %s", lo.String(), hi.String()),
		}
	}

	iterations := 2
	for hi.Sub(lo).GreaterThan(tol) && iterations < maxIterations {
		iterations++
		select {
		case <-ctx.Done():
			return decimal.Zero, iterations, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		if meets(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi, iterations, nil
}

func (s *Solver) newResult(req OptimizationRequest, plan *domain.Plan, extra decimal.Decimal, iterations int) *OptimizationResult {
	base := s.CalcEngine.Evaluate(req.Plan, decimal.Zero)
	ga := s.CalcEngine.Evaluate(plan, extra)
	short := shortfall(req, ga)

	return &OptimizationResult{
		Target:          req.Target,
		Goal:            req.Goal,
		Success:         !short.IsPositive(),
		Iterations:      iterations,
		ConvergenceInfo: fmt.Sprintf("converged in %d evaluations", iterations),
		GapAnalysis:     ga,
		FinalCorpus:     ga.ProjectedCorpus,
		RequiredCorpus:  ga.RequiredCorpus,
		Shortfall:       short,
		BaseFinalCorpus: base.ProjectedCorpus,
		BaseShortfall:   shortfall(req, base),
	}
}
