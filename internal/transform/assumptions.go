package transform

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

var maxRate = decimal.NewFromInt(50)

// AdjustReturn sets the expected return of one asset class.
// Instrument is one of ppf, epf, mf, other, illiquid or corpus.
type AdjustReturn struct {
	Instrument string
	Rate       decimal.Decimal // percent
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	return fmt.Sprintf("Set %s return to %s%%", ar.Instrument, ar.Rate.StringFixed(2))
}

func (ar *AdjustReturn) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(ar.Name(), "validate", "base plan cannot be nil", nil)
	}
	if ar.field(&domain.PlanningParameters{}) == nil {
		return NewTransformError(ar.Name(), "validate", fmt.Sprintf("unknown instrument %q", ar.Instrument), nil)
	}
	if ar.Rate.IsNegative() || ar.Rate.GreaterThan(maxRate) {
		return NewTransformError(ar.Name(), "validate", fmt.Sprintf("rate must be between 0 and %s, got %s", maxRate, ar.Rate), nil)
	}
	return nil
}

func (ar *AdjustReturn) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	f := ar.field(&modified.Parameters)
	if f == nil {
		return nil, NewTransformError(ar.Name(), "apply", fmt.Sprintf("unknown instrument %q", ar.Instrument), nil)
	}
	*f = ar.Rate
	return modified, nil
}

func (ar *AdjustReturn) field(p *domain.PlanningParameters) *decimal.Decimal {
	switch strings.ToLower(ar.Instrument) {
	case "ppf":
		return &p.PPFReturn
	case "epf":
		return &p.EPFReturn
	case "mf", "mutual_fund", "equity":
		return &p.MFReturn
	case "other", "other_liquid":
		return &p.OtherReturn
	case "illiquid":
		return &p.IlliquidReturn
	case "corpus":
		return &p.CorpusReturn
	}
	return nil
}

// SetInflation changes the inflation assumption
type SetInflation struct {
	Rate decimal.Decimal // percent
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return fmt.Sprintf("Change inflation rate to %s%%", si.Rate.StringFixed(1))
}

func (si *SetInflation) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(si.Name(), "validate", "base plan cannot be nil", nil)
	}
	if si.Rate.IsNegative() || si.Rate.GreaterThan(maxRate) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("inflation rate must be between 0 and %s, got %s", maxRate, si.Rate), nil)
	}
	return nil
}

func (si *SetInflation) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Parameters.InflationRate = si.Rate
	return modified, nil
}

// SetStrategy selects the post-retirement income strategy
type SetStrategy struct {
	Strategy domain.IncomeStrategy
}

func (ss *SetStrategy) Name() string {
	return "set_strategy"
}

func (ss *SetStrategy) Description() string {
	return "Use the " + ss.Strategy.DisplayName() + " strategy"
}

func (ss *SetStrategy) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base plan cannot be nil", nil)
	}
	if !ss.Strategy.IsValid() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("unknown strategy %q", ss.Strategy), nil)
	}
	return nil
}

func (ss *SetStrategy) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Parameters.IncomeStrategy = ss.Strategy
	return modified, nil
}

// SetMonthlyExpenses replaces the monthly expense assumption (today's money)
type SetMonthlyExpenses struct {
	Amount decimal.Decimal
}

func (se *SetMonthlyExpenses) Name() string {
	return "set_expenses"
}

func (se *SetMonthlyExpenses) Description() string {
	return fmt.Sprintf("Set monthly expenses to %s", se.Amount.StringFixed(0))
}

func (se *SetMonthlyExpenses) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(se.Name(), "validate", "base plan cannot be nil", nil)
	}
	if se.Amount.IsNegative() {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("expenses must be non-negative, got %s", se.Amount), nil)
	}
	return nil
}

func (se *SetMonthlyExpenses) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Parameters.MonthlyExpenses = se.Amount
	return modified, nil
}
