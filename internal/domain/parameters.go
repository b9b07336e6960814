package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeStrategy selects how the corpus funds post-retirement expenses
type IncomeStrategy string

const (
	StrategySustainable     IncomeStrategy = "SUSTAINABLE"
	StrategySafe4Percent    IncomeStrategy = "SAFE_4_PERCENT"
	StrategySimpleDepletion IncomeStrategy = "SIMPLE_DEPLETION"
)

// AllStrategies returns the strategies in display order
func AllStrategies() []IncomeStrategy {
	return []IncomeStrategy{StrategySustainable, StrategySafe4Percent, StrategySimpleDepletion}
}

// IsValid reports whether s is one of the known strategies
func (s IncomeStrategy) IsValid() bool {
	switch s {
	case StrategySustainable, StrategySafe4Percent, StrategySimpleDepletion:
		return true
	}
	return false
}

// DisplayName returns a human readable strategy label
func (s IncomeStrategy) DisplayName() string {
	switch s {
	case StrategySustainable:
		return "Sustainable withdrawal"
	case StrategySafe4Percent:
		return "Safe 4% rule"
	case StrategySimpleDepletion:
		return "Simple depletion"
	}
	return string(s)
}

// ParseIncomeStrategy accepts the canonical names plus common spellings
// such as "sustainable", "safe-4-percent", "4%" and "simple_depletion".
func ParseIncomeStrategy(value string) (IncomeStrategy, error) {
	n := strings.ToUpper(strings.TrimSpace(value))
	n = strings.NewReplacer("-", "_", " ", "_").Replace(n)
	switch n {
	case "SUSTAINABLE":
		return StrategySustainable, nil
	case "SAFE_4_PERCENT", "SAFE4", "SAFE_4", "4%", "4_PERCENT", "FOUR_PERCENT":
		return StrategySafe4Percent, nil
	case "SIMPLE_DEPLETION", "DEPLETION", "SIMPLE":
		return StrategySimpleDepletion, nil
	}
	return "", fmt.Errorf("unknown income strategy %q", value)
}

// OptimizerMode selects how candidate stop years are evaluated
type OptimizerMode string

const (
	// OptimizerFull re-runs the projector for every candidate stop year
	OptimizerFull OptimizerMode = "full"
	// OptimizerApproximate adjusts the full-schedule corpus by the average SIP differential
	OptimizerApproximate OptimizerMode = "approximate"
)

// RateReduction lowers fixed-income returns in steps over time
type RateReduction struct {
	Enabled    bool            `yaml:"enabled" json:"enabled"`
	Percent    decimal.Decimal `yaml:"percent" json:"percent" validate:"gte=0"`
	EveryYears int             `yaml:"every_years" json:"everyYears" validate:"gte=0"`
}

// PlanningParameters holds the assumptions for a single calculation.
// Rates are expressed in percent (12 means 12%).
type PlanningParameters struct {
	CurrentAge     int `yaml:"current_age" json:"currentAge"`
	RetirementAge  int `yaml:"retirement_age" json:"retirementAge"`
	LifeExpectancy int `yaml:"life_expectancy" json:"lifeExpectancy"`

	InflationRate  decimal.Decimal `yaml:"inflation_rate" json:"inflationRate"`
	PPFReturn      decimal.Decimal `yaml:"ppf_return" json:"ppfReturn"`
	EPFReturn      decimal.Decimal `yaml:"epf_return" json:"epfReturn"`
	MFReturn       decimal.Decimal `yaml:"mf_return" json:"mfReturn"`
	OtherReturn    decimal.Decimal `yaml:"other_return" json:"otherReturn"`
	IlliquidReturn decimal.Decimal `yaml:"illiquid_return" json:"illiquidReturn"`
	CorpusReturn   decimal.Decimal `yaml:"corpus_return" json:"corpusReturn"`
	WithdrawalRate decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawalRate"`
	WhatIfReturn   decimal.Decimal `yaml:"whatif_return,omitempty" json:"whatIfReturn,omitempty"`

	SIPStepUpPercent        decimal.Decimal `yaml:"sip_step_up_percent" json:"sipStepUpPercent"`
	StepUpEffectiveFromYear int             `yaml:"step_up_effective_from_year" json:"stepUpEffectiveFromYear"`

	IncomeStrategy  IncomeStrategy  `yaml:"income_strategy" json:"incomeStrategy"`
	MonthlyExpenses decimal.Decimal `yaml:"monthly_expenses" json:"monthlyExpenses"`
	RateReduction   RateReduction   `yaml:"rate_reduction" json:"rateReduction"`

	OptimizerMode        OptimizerMode `yaml:"optimizer_mode,omitempty" json:"optimizerMode,omitempty"`
	IncomeSampleInterval int           `yaml:"income_sample_interval,omitempty" json:"incomeSampleInterval,omitempty"`
}

// YearsToRetirement returns the accumulation length, never negative
func (p PlanningParameters) YearsToRetirement() int {
	if p.RetirementAge <= p.CurrentAge {
		return 0
	}
	return p.RetirementAge - p.CurrentAge
}

// RetirementYears returns the withdrawal horizon, never negative
func (p PlanningParameters) RetirementYears() int {
	if p.LifeExpectancy <= p.RetirementAge {
		return 0
	}
	return p.LifeExpectancy - p.RetirementAge
}

// WhatIfGrowthRate is the fixed rate used to compound what-if deltas
func (p PlanningParameters) WhatIfGrowthRate() decimal.Decimal {
	if p.WhatIfReturn.IsPositive() {
		return p.WhatIfReturn
	}
	return p.MFReturn
}
