// Package tuimsg defines the messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/corpus/internal/breakeven"
	"github.com/rgehrsitz/corpus/internal/compare"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// PlanLoadedMsg carries a freshly loaded plan. Reloaded is set when the
// file watcher picked up an edit.
type PlanLoadedMsg struct {
	Plan     *domain.Plan
	Reloaded bool
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ParametersChangedMsg asks for a recalculation with edited parameters
type ParametersChangedMsg struct {
	Parameters domain.PlanningParameters
}

// ResetParametersMsg restores the parameters of the loaded plan
type ResetParametersMsg struct{}

// CalculationCompleteMsg signals a calculation has finished
type CalculationCompleteMsg struct {
	Plan   *domain.Plan
	Result *domain.Result
	Err    error
}

// ComparisonStartedMsg asks for the working plan to be compared against
// the named templates
type ComparisonStartedMsg struct {
	Templates []string
}

// ComparisonCompleteMsg signals a comparison has finished
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// BreakEvenStartedMsg asks for the break-even levers of the working plan.
// A nil TargetCorpus solves for closing the corpus gap.
type BreakEvenStartedMsg struct {
	TargetCorpus *decimal.Decimal
}

// BreakEvenCompleteMsg signals the break-even solver has finished
type BreakEvenCompleteMsg struct {
	Result *breakeven.MultiDimensionalResult
	Err    error
}

// SavePlanMsg asks for the working plan to be written back to its file
type SavePlanMsg struct{}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Filename string
	Err      error
}
