package config

import (
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultParameters returns the built-in planning assumptions.
// Ages are left at zero; every plan must state them.
func DefaultParameters() domain.PlanningParameters {
	return domain.PlanningParameters{
		InflationRate:           decimal.NewFromInt(6),
		PPFReturn:               decimal.RequireFromString("7.1"),
		EPFReturn:               decimal.RequireFromString("8.25"),
		MFReturn:                decimal.NewFromInt(12),
		OtherReturn:             decimal.NewFromInt(7),
		IlliquidReturn:          decimal.NewFromInt(5),
		CorpusReturn:            decimal.NewFromInt(10),
		WithdrawalRate:          decimal.NewFromInt(8),
		SIPStepUpPercent:        decimal.NewFromInt(10),
		StepUpEffectiveFromYear: 1,
		IncomeStrategy:          domain.StrategySustainable,
		MonthlyExpenses:         decimal.Zero,
		OptimizerMode:           domain.OptimizerFull,
		IncomeSampleInterval:    5,
	}
}
