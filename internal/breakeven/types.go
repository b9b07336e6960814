package breakeven

import (
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines which plan lever the solver moves
type OptimizationTarget string

const (
	OptimizeMonthlySIP    OptimizationTarget = "monthly_sip"
	OptimizeStepUp        OptimizationTarget = "step_up"
	OptimizeRetirementAge OptimizationTarget = "retirement_age"
	OptimizeAll           OptimizationTarget = "all"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalCloseGap     OptimizationGoal = "close_gap"     // projected corpus covers the selected strategy's requirement
	GoalTargetCorpus OptimizationGoal = "target_corpus" // projected corpus reaches Constraints.TargetCorpus
)

// Constraints bound the search for each lever
type Constraints struct {
	// Extra flat monthly SIP, in rupees
	MinMonthlySIP *decimal.Decimal `json:"min_monthly_sip,omitempty"`
	MaxMonthlySIP *decimal.Decimal `json:"max_monthly_sip,omitempty"`

	// Annual step-up percent
	MinStepUp *decimal.Decimal `json:"min_step_up,omitempty"`
	MaxStepUp *decimal.Decimal `json:"max_step_up,omitempty"`

	// Retirement age, inclusive
	MinRetirementAge *int `json:"min_retirement_age,omitempty"`
	MaxRetirementAge *int `json:"max_retirement_age,omitempty"`

	// Required for the target_corpus goal
	TargetCorpus *decimal.Decimal `json:"target_corpus,omitempty"`
}

// DefaultConstraints returns search bounds suited to most plans. Retirement
// age bounds are derived from the plan when left unset.
func DefaultConstraints() Constraints {
	minSIP := decimal.Zero
	maxSIP := decimal.NewFromInt(10000000)
	minStepUp := decimal.Zero
	maxStepUp := decimal.NewFromInt(50)

	return Constraints{
		MinMonthlySIP: &minSIP,
		MaxMonthlySIP: &maxSIP,
		MinStepUp:     &minStepUp,
		MaxStepUp:     &maxStepUp,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Plan          *domain.Plan
	Target        OptimizationTarget
	Goal          OptimizationGoal
	Constraints   Constraints
	MaxIterations int             // Maximum bisection steps
	Tolerance     decimal.Decimal // Width of the final bracket, in the lever's units
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	// Optimization metadata
	Target          OptimizationTarget `json:"target"`
	Goal            OptimizationGoal   `json:"goal"`
	Success         bool               `json:"success"`
	Iterations      int                `json:"iterations"`
	ConvergenceInfo string             `json:"convergence_info"`

	// Optimized parameters
	OptimalMonthlySIP    *decimal.Decimal `json:"optimal_monthly_sip,omitempty"`
	OptimalStepUp        *decimal.Decimal `json:"optimal_step_up,omitempty"`
	OptimalRetirementAge *int             `json:"optimal_retirement_age,omitempty"`

	// Results at optimal parameters
	GapAnalysis    domain.GapAnalysis `json:"gap_analysis"`
	FinalCorpus    decimal.Decimal    `json:"final_corpus"`
	RequiredCorpus decimal.Decimal    `json:"required_corpus"`
	Shortfall      decimal.Decimal    `json:"shortfall"` // <= 0 once the goal is met

	// Base plan for comparison
	BaseFinalCorpus decimal.Decimal `json:"base_final_corpus"`
	BaseShortfall   decimal.Decimal `json:"base_shortfall"`
}

// MultiDimensionalResult contains one result per lever
type MultiDimensionalResult struct {
	Results         []OptimizationResult `json:"results"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	SIPTolerance    decimal.Decimal // rupees of monthly SIP
	StepUpTolerance decimal.Decimal // percentage points
	MaxIterations   int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		SIPTolerance:    decimal.NewFromInt(10),
		StepUpTolerance: decimal.NewFromFloat(0.01),
		MaxIterations:   60,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinMonthlySIP != nil && c.MinMonthlySIP.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_monthly_sip cannot be negative"}
	}
	if c.MinMonthlySIP != nil && c.MaxMonthlySIP != nil && c.MinMonthlySIP.GreaterThan(*c.MaxMonthlySIP) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_monthly_sip cannot be greater than max_monthly_sip"}
	}

	if c.MinStepUp != nil && c.MinStepUp.IsNegative() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_step_up cannot be negative"}
	}
	if c.MinStepUp != nil && c.MaxStepUp != nil && c.MinStepUp.GreaterThan(*c.MaxStepUp) {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_step_up cannot be greater than max_step_up"}
	}

	if c.MinRetirementAge != nil && c.MaxRetirementAge != nil && *c.MinRetirementAge > *c.MaxRetirementAge {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_retirement_age cannot be greater than max_retirement_age"}
	}

	if c.TargetCorpus != nil && !c.TargetCorpus.IsPositive() {
		return &BreakEvenError{Operation: "validate_constraints", Message: "target_corpus must be positive"}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
