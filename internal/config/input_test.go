package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlan = `
name: Sample household
as_of_year: 2025
parameters:
  current_age: 35
  retirement_age: 60
  life_expectancy: 85
  mf_return: 11.5
  step_up_effective_from_year: 0
  income_strategy: safe-4-percent
  monthly_expenses: 100000
  rate_reduction:
    enabled: true
    percent: 0.5
    every_years: 5
investments:
  - name: Index fund
    type: mutual_fund
    current_value: 2000000
    monthly_contribution: 50000
  - name: Bank FD
    type: fixed_deposit
    current_value: 500000
    expected_return: 7.25
    maturity_date: 2029-03-31
    maturity_amount: 650000
    reinvest_on_maturity: true
loans:
  - name: Home loan
    emi: 45000
    outstanding_principal: 3500000
    interest_rate: 8.5
    end_date: 2040-06-30
goals:
  - name: College
    amount: 2500000
    target_date: 2036-06-30
    priority: high
insurance:
  - name: Endowment
    type: endowment
    annual_premium: 60000
    premium_end_date: 2035-03-31
    maturity_date: 2035-03-31
    maturity_amount: 1500000
income:
  - name: Flat rent
    type: rental
    monthly_amount: 25000
    growth_rate: 5
    continues_in_retirement: true
scenarios:
  - name: Sell plot
    type: lumpsum
    amount: 3000000
    year: 5
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(writePlan(t, samplePlan))
	require.NoError(t, err)

	assert.Equal(t, "Sample household", plan.Name)
	assert.Equal(t, 2025, plan.AsOfYear)

	p := plan.Parameters
	assert.Equal(t, 35, p.CurrentAge)
	assert.Equal(t, 60, p.RetirementAge)
	assert.Equal(t, 85, p.LifeExpectancy)
	assert.Equal(t, "11.5", p.MFReturn.String())
	assert.Equal(t, domain.StrategySafe4Percent, p.IncomeStrategy)
	assert.True(t, p.RateReduction.Enabled)
	assert.Equal(t, 5, p.RateReduction.EveryYears)

	// explicit zero overrides the default of 1
	assert.Equal(t, 0, p.StepUpEffectiveFromYear)
	// absent keys keep defaults
	assert.True(t, p.InflationRate.Equal(decimal.NewFromInt(6)))
	assert.True(t, p.EPFReturn.Equal(decimal.RequireFromString("8.25")))
	assert.Equal(t, domain.OptimizerFull, p.OptimizerMode)

	require.Len(t, plan.Investments, 2)
	fd := plan.Investments[1]
	require.NotNil(t, fd.ExpectedReturn)
	assert.Equal(t, "7.25", fd.ExpectedReturn.String())
	require.NotNil(t, fd.MaturityDate)
	assert.Equal(t, 2029, fd.MaturityDate.Year())
	assert.True(t, fd.ReinvestOnMaturity)

	require.Len(t, plan.Loans, 1)
	assert.Equal(t, 2040, plan.Loans[0].EndDate.Year())
	require.Len(t, plan.Insurance, 1)
	require.NotNil(t, plan.Insurance[0].PremiumEndDate)
	require.Len(t, plan.Income, 1)
	assert.True(t, plan.Income[0].ContinuesInRetirement)
	require.Len(t, plan.Scenarios, 1)
	require.NotNil(t, plan.Scenarios[0].Year)
	assert.Equal(t, 5, *plan.Scenarios[0].Year)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("parameters: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse YAML")
}

func TestParse_UnknownEnums(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("parameters:\n  income_strategy: yolo\n"))
	assert.ErrorContains(t, err, "unknown income strategy")

	_, err = NewInputParser().Parse([]byte("parameters:\n  optimizer_mode: exhaustive\n"))
	assert.ErrorContains(t, err, "unknown optimizer mode")

	plan, err := NewInputParser().Parse([]byte("parameters:\n  optimizer_mode: Approximate\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.OptimizerApproximate, plan.Parameters.OptimizerMode)
}

func TestParse_WithDefaults(t *testing.T) {
	defaults := DefaultParameters()
	defaults.InflationRate = decimal.NewFromInt(7)
	defaults.IncomeStrategy = domain.StrategySimpleDepletion

	plan, err := NewInputParser().WithDefaults(defaults).Parse([]byte("parameters:\n  current_age: 40\n"))
	require.NoError(t, err)
	assert.Equal(t, 40, plan.Parameters.CurrentAge)
	assert.True(t, plan.Parameters.InflationRate.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, domain.StrategySimpleDepletion, plan.Parameters.IncomeStrategy)
}

func TestSavePlan_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	original, err := parser.LoadFromFile(writePlan(t, samplePlan))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, SavePlan(path, original))

	reloaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, original.Name, reloaded.Name)
	assert.True(t, original.Parameters.MFReturn.Equal(reloaded.Parameters.MFReturn))
	assert.Len(t, reloaded.Investments, len(original.Investments))
	assert.Equal(t, original.Goals[0].TargetDate.Year(), reloaded.Goals[0].TargetDate.Year())
}

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	assert.Equal(t, "7.1", p.PPFReturn.String())
	assert.Equal(t, 1, p.StepUpEffectiveFromYear)
	assert.Equal(t, domain.StrategySustainable, p.IncomeStrategy)
	assert.Equal(t, 5, p.IncomeSampleInterval)
	assert.Zero(t, p.CurrentAge)
}

func TestPrepare(t *testing.T) {
	parser := NewInputParser()
	assert.ErrorContains(t, parser.Prepare(nil), "plan is required")

	plan := &domain.Plan{Parameters: DefaultParameters()}
	plan.Parameters.IncomeStrategy = "4%"
	plan.Parameters.OptimizerMode = "FULL"
	require.NoError(t, parser.Prepare(plan))
	assert.Equal(t, domain.StrategySafe4Percent, plan.Parameters.IncomeStrategy)
	assert.Equal(t, domain.OptimizerFull, plan.Parameters.OptimizerMode)

	plan.Investments = []domain.InvestmentRecord{{Type: domain.InvestmentMutualFund}}
	err := parser.Prepare(plan)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "investments[0].name", ve.Errors[0].Field)
}

func TestLoadFromFile_ExamplePlan(t *testing.T) {
	plan, err := NewInputParser().LoadFromFile(filepath.Join("..", "..", "examples", "plan.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Sample household", plan.Name)
	assert.Len(t, plan.Investments, 5)
	assert.Len(t, plan.Insurance, 2)
	assert.Equal(t, domain.StrategySustainable, plan.Parameters.IncomeStrategy)
	require.Len(t, plan.Scenarios, 1)
	assert.Equal(t, 5, *plan.Scenarios[0].Year)
}
