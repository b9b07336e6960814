package calculation

import (
	"testing"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeParameters(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *domain.PlanningParameters)
		check    func(t *testing.T, p domain.PlanningParameters)
		warnings int
	}{
		{
			name:   "valid parameters pass unchanged",
			mutate: func(p *domain.PlanningParameters) {},
			check: func(t *testing.T, p domain.PlanningParameters) {
				assert.Equal(t, domain.StrategySustainable, p.IncomeStrategy)
				assert.Equal(t, domain.OptimizerFull, p.OptimizerMode)
				assert.Equal(t, 5, p.IncomeSampleInterval)
			},
		},
		{
			name:   "negative rates clamp to zero",
			mutate: func(p *domain.PlanningParameters) { p.MFReturn = d("-3"); p.InflationRate = d("-1") },
			check: func(t *testing.T, p domain.PlanningParameters) {
				assert.True(t, p.MFReturn.IsZero())
				assert.True(t, p.InflationRate.IsZero())
			},
			warnings: 2,
		},
		{
			name:   "retirement before current age",
			mutate: func(p *domain.PlanningParameters) { p.RetirementAge = 30 },
			check: func(t *testing.T, p domain.PlanningParameters) {
				assert.Equal(t, 35, p.RetirementAge)
				assert.Equal(t, 35, p.LifeExpectancy)
				assert.Equal(t, 0, p.YearsToRetirement())
				assert.Equal(t, 0, p.RetirementYears())
			},
			warnings: 1,
		},
		{
			name:   "life expectancy before retirement",
			mutate: func(p *domain.PlanningParameters) { p.LifeExpectancy = 55 },
			check: func(t *testing.T, p domain.PlanningParameters) {
				assert.Equal(t, 60, p.LifeExpectancy)
				assert.Equal(t, 0, p.RetirementYears())
			},
			warnings: 1,
		},
		{
			name:   "strategy aliases are accepted",
			mutate: func(p *domain.PlanningParameters) { p.IncomeStrategy = "safe-4-percent" },
			check: func(t *testing.T, p domain.PlanningParameters) {
				assert.Equal(t, domain.StrategySafe4Percent, p.IncomeStrategy)
			},
		},
		{
			name:   "unknown strategy falls back",
			mutate: func(p *domain.PlanningParameters) { p.IncomeStrategy = "YOLO" },
			check: func(t *testing.T, p domain.PlanningParameters) {
				assert.Equal(t, domain.StrategySustainable, p.IncomeStrategy)
			},
			warnings: 1,
		},
		{
			name:   "withdrawal rate out of range",
			mutate: func(p *domain.PlanningParameters) { p.WithdrawalRate = d("150") },
			check: func(t *testing.T, p domain.PlanningParameters) {
				assert.True(t, p.WithdrawalRate.Equal(d("8")))
			},
			warnings: 1,
		},
		{
			name: "rate reduction without a period is disabled",
			mutate: func(p *domain.PlanningParameters) {
				p.RateReduction = domain.RateReduction{Enabled: true, Percent: d("0.5")}
			},
			check: func(t *testing.T, p domain.PlanningParameters) {
				assert.False(t, p.RateReduction.Enabled)
			},
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := goldenPlan().Parameters
			tt.mutate(&p)
			got, warnings := NormalizeParameters(p)
			assert.Len(t, warnings, tt.warnings, "warnings: %v", warnings)
			tt.check(t, got)
		})
	}
}
