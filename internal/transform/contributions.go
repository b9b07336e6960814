package transform

import (
	"fmt"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SetStepUp changes the annual SIP step-up percentage and, optionally, the
// year it takes effect.
type SetStepUp struct {
	Percent  decimal.Decimal
	FromYear *int
}

func (ss *SetStepUp) Name() string {
	return "set_step_up"
}

func (ss *SetStepUp) Description() string {
	if ss.FromYear != nil {
		return fmt.Sprintf("Step up SIPs by %s%% a year from year %d", ss.Percent.StringFixed(1), *ss.FromYear)
	}
	return fmt.Sprintf("Step up SIPs by %s%% a year", ss.Percent.StringFixed(1))
}

func (ss *SetStepUp) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base plan cannot be nil", nil)
	}
	if ss.Percent.IsNegative() || ss.Percent.GreaterThan(hundred) {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("step-up must be between 0 and 100, got %s", ss.Percent), nil)
	}
	if ss.FromYear != nil && *ss.FromYear < 0 {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("effective year must be non-negative, got %d", *ss.FromYear), nil)
	}
	return nil
}

func (ss *SetStepUp) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Parameters.SIPStepUpPercent = ss.Percent
	if ss.FromYear != nil {
		modified.Parameters.StepUpEffectiveFromYear = *ss.FromYear
	}
	return modified, nil
}

// AdjustSIP scales monthly contributions by a percentage. An empty Type
// adjusts every investment with a contribution.
type AdjustSIP struct {
	Type    domain.InvestmentType
	Percent decimal.Decimal // +20 raises contributions by a fifth
}

func (as *AdjustSIP) Name() string {
	return "adjust_sip"
}

func (as *AdjustSIP) Description() string {
	target := "all SIPs"
	if as.Type != "" {
		target = string(as.Type) + " SIPs"
	}
	return fmt.Sprintf("Change %s by %s%%", target, as.Percent.StringFixed(1))
}

func (as *AdjustSIP) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(as.Name(), "validate", "base plan cannot be nil", nil)
	}
	if as.Percent.LessThanOrEqual(hundred.Neg()) {
		return NewTransformError(as.Name(), "validate", fmt.Sprintf("percent must be above -100, got %s", as.Percent), nil)
	}
	for _, inv := range base.Investments {
		if as.matches(inv) {
			return nil
		}
	}
	return NewTransformError(as.Name(), "validate", "plan has no matching investment with a monthly contribution", nil)
}

func (as *AdjustSIP) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	factor := decimal.NewFromInt(1).Add(as.Percent.Div(hundred))
	for i, inv := range modified.Investments {
		if as.matches(inv) {
			modified.Investments[i].MonthlyContribution = inv.MonthlyContribution.Mul(factor)
		}
	}
	return modified, nil
}

func (as *AdjustSIP) matches(inv domain.InvestmentRecord) bool {
	if !inv.MonthlyContribution.IsPositive() {
		return false
	}
	return as.Type == "" || inv.Type == as.Type
}

// AddMonthlySIP adds a new mutual fund SIP to the plan
type AddMonthlySIP struct {
	Amount decimal.Decimal
}

func (am *AddMonthlySIP) Name() string {
	return "add_sip"
}

func (am *AddMonthlySIP) Description() string {
	return fmt.Sprintf("Add a monthly SIP of %s", am.Amount.StringFixed(0))
}

func (am *AddMonthlySIP) Validate(base *domain.Plan) error {
	if base == nil {
		return NewTransformError(am.Name(), "validate", "base plan cannot be nil", nil)
	}
	if !am.Amount.IsPositive() {
		return NewTransformError(am.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", am.Amount), nil)
	}
	return nil
}

func (am *AddMonthlySIP) Apply(base *domain.Plan) (*domain.Plan, error) {
	modified := base.DeepCopy()
	modified.Investments = append(modified.Investments, domain.InvestmentRecord{
		Name:                "Additional SIP",
		Type:                domain.InvestmentMutualFund,
		MonthlyContribution: am.Amount,
	})
	return modified, nil
}
