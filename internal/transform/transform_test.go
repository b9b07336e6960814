package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a basic test plan
func createTestPlan() *domain.Plan {
	return &domain.Plan{
		Name:     "Test Plan",
		AsOfYear: 2025,
		Parameters: domain.PlanningParameters{
			CurrentAge:       35,
			RetirementAge:    60,
			LifeExpectancy:   85,
			InflationRate:    decimal.NewFromInt(6),
			MFReturn:         decimal.NewFromInt(12),
			CorpusReturn:     decimal.NewFromInt(10),
			SIPStepUpPercent: decimal.NewFromInt(10),
			IncomeStrategy:   domain.StrategySustainable,
			MonthlyExpenses:  decimal.NewFromInt(80000),
		},
		Investments: []domain.InvestmentRecord{
			{Name: "Index fund", Type: domain.InvestmentMutualFund, CurrentValue: decimal.NewFromInt(2000000), MonthlyContribution: decimal.NewFromInt(40000)},
			{Name: "PPF", Type: domain.InvestmentPPF, CurrentValue: decimal.NewFromInt(500000), MonthlyContribution: decimal.NewFromInt(12500)},
			{Name: "Gold", Type: domain.InvestmentGold, CurrentValue: decimal.NewFromInt(300000)},
		},
		Goals: []domain.GoalRecord{
			{Name: "College", Amount: decimal.NewFromInt(2000000), TargetDate: time.Date(2035, 6, 30, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestApplyTransforms_NilPlan(t *testing.T) {
	_, err := ApplyTransforms(nil, []PlanTransform{&PostponeRetirement{Years: 1}})
	assert.Error(t, err)
}

func TestApplyTransforms_EmptyTransforms(t *testing.T) {
	base := createTestPlan()
	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, result)
	assert.NotSame(t, base, result, "Should return a copy")
}

func TestApplyTransforms_NilTransformInList(t *testing.T) {
	_, err := ApplyTransforms(createTestPlan(), []PlanTransform{&PostponeRetirement{Years: 1}, nil})
	assert.ErrorContains(t, err, "index 1 is nil")
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestPlan()
	result, err := ApplyTransforms(base, []PlanTransform{
		&PostponeRetirement{Years: 2},
		&SetStepUp{Percent: decimal.NewFromInt(5)},
		&SetStrategy{Strategy: domain.StrategySimpleDepletion},
	})
	require.NoError(t, err)

	assert.Equal(t, 62, result.Parameters.RetirementAge)
	assert.True(t, result.Parameters.SIPStepUpPercent.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, domain.StrategySimpleDepletion, result.Parameters.IncomeStrategy)

	assert.Equal(t, 60, base.Parameters.RetirementAge, "Base plan must not change")
	assert.True(t, base.Parameters.SIPStepUpPercent.Equal(decimal.NewFromInt(10)))
}

func TestApplyTransforms_ValidationFailureIsTyped(t *testing.T) {
	_, err := ApplyTransforms(createTestPlan(), []PlanTransform{&PostponeRetirement{Years: 30}})
	require.Error(t, err)

	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "postpone_retirement", te.TransformName)
	assert.Equal(t, "validate", te.Operation)
	assert.Contains(t, err.Error(), "life expectancy")
}

func TestRetirementTransforms(t *testing.T) {
	base := createTestPlan()

	tests := []struct {
		name      string
		transform PlanTransform
		wantAge   int
		wantErr   string
	}{
		{"postpone", &PostponeRetirement{Years: 3}, 63, ""},
		{"retire early", &PostponeRetirement{Years: -5}, 55, ""},
		{"zero years", &PostponeRetirement{Years: 0}, 0, "non-zero"},
		{"before current age", &PostponeRetirement{Years: -30}, 0, "after current age"},
		{"set age", &SetRetirementAge{Age: 50}, 50, ""},
		{"set age past life expectancy", &SetRetirementAge{Age: 90}, 0, "before life expectancy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.transform.Validate(base)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			result, err := tt.transform.Apply(base)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAge, result.Parameters.RetirementAge)
		})
	}
}

func TestSetStepUp(t *testing.T) {
	base := createTestPlan()
	from := 3
	tr := &SetStepUp{Percent: decimal.NewFromInt(15), FromYear: &from}

	require.NoError(t, tr.Validate(base))
	result, err := tr.Apply(base)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Parameters.StepUpEffectiveFromYear)
	assert.Contains(t, tr.Description(), "15.0%")

	assert.Error(t, (&SetStepUp{Percent: decimal.NewFromInt(-1)}).Validate(base))
	assert.Error(t, (&SetStepUp{Percent: decimal.NewFromInt(150)}).Validate(base))
}

func TestAdjustSIP(t *testing.T) {
	base := createTestPlan()

	all := &AdjustSIP{Percent: decimal.NewFromInt(25)}
	require.NoError(t, all.Validate(base))
	result, err := all.Apply(base)
	require.NoError(t, err)
	assert.True(t, result.Investments[0].MonthlyContribution.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.Investments[1].MonthlyContribution.Equal(decimal.NewFromInt(15625)))
	assert.True(t, result.Investments[2].MonthlyContribution.IsZero())

	ppfOnly := &AdjustSIP{Type: domain.InvestmentPPF, Percent: decimal.NewFromInt(-50)}
	result, err = ppfOnly.Apply(base)
	require.NoError(t, err)
	assert.True(t, result.Investments[0].MonthlyContribution.Equal(decimal.NewFromInt(40000)))
	assert.True(t, result.Investments[1].MonthlyContribution.Equal(decimal.NewFromInt(6250)))

	assert.Error(t, (&AdjustSIP{Type: domain.InvestmentGold, Percent: decimal.NewFromInt(10)}).Validate(base))
	assert.Error(t, (&AdjustSIP{Percent: decimal.NewFromInt(-100)}).Validate(base))
}

func TestAddMonthlySIP(t *testing.T) {
	base := createTestPlan()
	tr := &AddMonthlySIP{Amount: decimal.NewFromInt(10000)}
	require.NoError(t, tr.Validate(base))

	result, err := tr.Apply(base)
	require.NoError(t, err)
	require.Len(t, result.Investments, 4)
	assert.Equal(t, domain.InvestmentMutualFund, result.Investments[3].Type)
	assert.Len(t, base.Investments, 3)
}

func TestAdjustReturn(t *testing.T) {
	base := createTestPlan()

	for _, instrument := range []string{"ppf", "epf", "mf", "other", "illiquid", "corpus"} {
		tr := &AdjustReturn{Instrument: instrument, Rate: decimal.NewFromInt(7)}
		require.NoError(t, tr.Validate(base), instrument)
		_, err := tr.Apply(base)
		require.NoError(t, err, instrument)
	}

	result, err := (&AdjustReturn{Instrument: "MF", Rate: decimal.NewFromInt(9)}).Apply(base)
	require.NoError(t, err)
	assert.True(t, result.Parameters.MFReturn.Equal(decimal.NewFromInt(9)))

	assert.Error(t, (&AdjustReturn{Instrument: "crypto", Rate: decimal.NewFromInt(9)}).Validate(base))
	assert.Error(t, (&AdjustReturn{Instrument: "mf", Rate: decimal.NewFromInt(80)}).Validate(base))
}

func TestGoalTransforms(t *testing.T) {
	base := createTestPlan()

	add := &AddGoal{GoalName: "Wedding", Amount: decimal.NewFromInt(1500000), Year: 2032}
	require.NoError(t, add.Validate(base))
	result, err := add.Apply(base)
	require.NoError(t, err)
	require.Len(t, result.Goals, 2)
	assert.Equal(t, 2032, result.Goals[1].TargetDate.Year())

	assert.Error(t, (&AddGoal{GoalName: "Past", Amount: decimal.NewFromInt(1), Year: 2020}).Validate(base))
	assert.Error(t, (&AddGoal{Amount: decimal.NewFromInt(1), Year: 2030}).Validate(base))

	remove := &RemoveGoal{GoalName: "College"}
	require.NoError(t, remove.Validate(result))
	result, err = remove.Apply(result)
	require.NoError(t, err)
	require.Len(t, result.Goals, 1)
	assert.Equal(t, "Wedding", result.Goals[0].Name)

	assert.Error(t, (&RemoveGoal{GoalName: "Yacht"}).Validate(base))
}

func TestSimpleAssumptionTransforms(t *testing.T) {
	base := createTestPlan()

	result, err := ApplyTransforms(base, []PlanTransform{
		&SetInflation{Rate: decimal.NewFromInt(7)},
		&SetMonthlyExpenses{Amount: decimal.NewFromInt(100000)},
	})
	require.NoError(t, err)
	assert.True(t, result.Parameters.InflationRate.Equal(decimal.NewFromInt(7)))
	assert.True(t, result.Parameters.MonthlyExpenses.Equal(decimal.NewFromInt(100000)))

	assert.Error(t, (&SetInflation{Rate: decimal.NewFromInt(-2)}).Validate(base))
	assert.Error(t, (&SetMonthlyExpenses{Amount: decimal.NewFromInt(-2)}).Validate(base))
	assert.Error(t, (&SetStrategy{Strategy: "BOGUS"}).Validate(base))
}
