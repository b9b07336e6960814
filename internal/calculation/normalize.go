package calculation

import (
	"fmt"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// Default values substituted for missing or out-of-range assumptions
var (
	DefaultWithdrawalRate       = decimal.NewFromInt(8)
	DefaultIncomeSampleInterval = 5
)

// NormalizeParameters clamps assumptions into a range the engine can use.
// Every clamp is reported as a warning; missing optional values are filled silently.
func NormalizeParameters(p domain.PlanningParameters) (domain.PlanningParameters, []string) {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if p.CurrentAge < 0 {
		warn("current age %d is negative; using 0", p.CurrentAge)
		p.CurrentAge = 0
	}
	if p.RetirementAge <= p.CurrentAge {
		// degenerate plan: no accumulation years and no retirement horizon to fund
		warn("retirement age %d is not after current age %d; projection and required corpus are empty", p.RetirementAge, p.CurrentAge)
		p.RetirementAge = p.CurrentAge
		p.LifeExpectancy = p.CurrentAge
	} else if p.LifeExpectancy < p.RetirementAge {
		warn("life expectancy %d is before retirement age %d; using %d", p.LifeExpectancy, p.RetirementAge, p.RetirementAge)
		p.LifeExpectancy = p.RetirementAge
	}

	rates := []struct {
		name string
		v    *decimal.Decimal
	}{
		{"inflation_rate", &p.InflationRate},
		{"ppf_return", &p.PPFReturn},
		{"epf_return", &p.EPFReturn},
		{"mf_return", &p.MFReturn},
		{"other_return", &p.OtherReturn},
		{"illiquid_return", &p.IlliquidReturn},
		{"corpus_return", &p.CorpusReturn},
		{"whatif_return", &p.WhatIfReturn},
		{"sip_step_up_percent", &p.SIPStepUpPercent},
		{"monthly_expenses", &p.MonthlyExpenses},
	}
	for _, r := range rates {
		if r.v.IsNegative() {
			warn("%s %s is negative; using 0", r.name, r.v.String())
			*r.v = decimal.Zero
		}
	}

	if p.WithdrawalRate.IsZero() {
		p.WithdrawalRate = DefaultWithdrawalRate
	} else if p.WithdrawalRate.IsNegative() || p.WithdrawalRate.GreaterThanOrEqual(decimalHundred) {
		warn("withdrawal_rate %s is outside (0, 100); using %s", p.WithdrawalRate.String(), DefaultWithdrawalRate.String())
		p.WithdrawalRate = DefaultWithdrawalRate
	}

	if p.StepUpEffectiveFromYear < 0 {
		warn("step_up_effective_from_year %d is negative; using 0", p.StepUpEffectiveFromYear)
		p.StepUpEffectiveFromYear = 0
	}

	if p.IncomeStrategy == "" {
		p.IncomeStrategy = domain.StrategySustainable
	} else if !p.IncomeStrategy.IsValid() {
		if s, err := domain.ParseIncomeStrategy(string(p.IncomeStrategy)); err == nil {
			p.IncomeStrategy = s
		} else {
			warn("unknown income strategy %q; using %s", p.IncomeStrategy, domain.StrategySustainable)
			p.IncomeStrategy = domain.StrategySustainable
		}
	}

	if p.RateReduction.Enabled {
		if p.RateReduction.EveryYears <= 0 {
			warn("rate_reduction.every_years must be positive; rate reduction disabled")
			p.RateReduction.Enabled = false
		}
		if p.RateReduction.Percent.IsNegative() {
			warn("rate_reduction.percent %s is negative; using 0", p.RateReduction.Percent.String())
			p.RateReduction.Percent = decimal.Zero
		}
	}

	switch p.OptimizerMode {
	case domain.OptimizerFull, domain.OptimizerApproximate:
	case "":
		p.OptimizerMode = domain.OptimizerFull
	default:
		warn("unknown optimizer mode %q; using %s", p.OptimizerMode, domain.OptimizerFull)
		p.OptimizerMode = domain.OptimizerFull
	}

	if p.IncomeSampleInterval <= 0 {
		p.IncomeSampleInterval = DefaultIncomeSampleInterval
	}

	return p, warnings
}
