package config

import (
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlan() *domain.Plan {
	return &domain.Plan{
		Name:       "valid",
		AsOfYear:   2025,
		Parameters: DefaultParameters(),
		Investments: []domain.InvestmentRecord{
			{Name: "MF", Type: domain.InvestmentMutualFund, CurrentValue: decimal.NewFromInt(100), MonthlyContribution: decimal.NewFromInt(10)},
		},
		Goals: []domain.GoalRecord{
			{Name: "Car", Amount: decimal.NewFromInt(500000), TargetDate: time.Date(2030, 6, 30, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestValidatePlan_Valid(t *testing.T) {
	assert.NoError(t, NewInputParser().ValidatePlan(validPlan()))
}

func TestValidatePlan_Nil(t *testing.T) {
	assert.Error(t, NewInputParser().ValidatePlan(nil))
}

func TestValidatePlan_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.Plan)
		field  string
	}{
		{"missing investment name", func(p *domain.Plan) { p.Investments[0].Name = "" }, "investments[0].name"},
		{"unknown investment type", func(p *domain.Plan) { p.Investments[0].Type = "crypto" }, "investments[0].type"},
		{"negative value", func(p *domain.Plan) { p.Investments[0].CurrentValue = decimal.NewFromInt(-1) }, "investments[0].current_value"},
		{"bad goal priority", func(p *domain.Plan) { p.Goals[0].Priority = "urgent" }, "goals[0].priority"},
		{"goal without date", func(p *domain.Plan) { p.Goals[0].TargetDate = time.Time{} }, "goals[0].target_date"},
		{"negative rate cut", func(p *domain.Plan) { p.Parameters.RateReduction.Percent = decimal.NewFromInt(-1) }, "parameters.rate_reduction.percent"},
		{"maturity without date", func(p *domain.Plan) { p.Investments[0].MaturityAmount = decimal.NewFromInt(5) }, "investments[0].maturity_date"},
		{"bad scenario type", func(p *domain.Plan) {
			p.Scenarios = []domain.ScenarioSpec{{Name: "x", Type: "teleport"}}
		}, "scenarios[0].type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(plan)

			err := NewInputParser().ValidatePlan(plan)
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			fields := make([]string, len(ve.Errors))
			for i, fe := range ve.Errors {
				fields[i] = fe.Field
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidatePlan_OutOfRangeAssumptionsAreNotErrors(t *testing.T) {
	plan := validPlan()
	plan.Parameters.CurrentAge = 70
	plan.Parameters.RetirementAge = 60
	plan.Parameters.MFReturn = decimal.NewFromInt(-5)

	assert.NoError(t, NewInputParser().ValidatePlan(plan))
}

func TestValidationError_Message(t *testing.T) {
	ve := &ValidationError{}
	ve.add("a", "is required")
	ve.add("b", "must be at least %d", 0)
	assert.Equal(t, "a: is required; b: must be at least 0", ve.Error())
}
