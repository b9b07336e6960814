package whatif

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func intp(v int) *int {
	return &v
}

// fixture builds a five-year baseline growing by 1,000,000 a year
func fixture() (*domain.AggregatedInput, []domain.ProjectionRow) {
	in := &domain.AggregatedInput{
		AsOfYear: 2025,
		Parameters: domain.PlanningParameters{
			CurrentAge:     40,
			RetirementAge:  45,
			LifeExpectancy: 80,
			MFReturn:       d("10"),
		},
		Balances: []domain.InstrumentBalance{
			{Type: domain.InstrumentMutualFund, OpeningBalance: d("1000000"), MonthlyContribution: d("20000"), AnnualReturnRate: d("10")},
		},
	}
	rows := make([]domain.ProjectionRow, 5)
	for y := range rows {
		rows[y] = domain.ProjectionRow{
			Year:      y,
			Age:       40 + y,
			NetCorpus: decimal.NewFromInt(int64(y+2) * 1000000),
		}
	}
	return in, rows
}

func TestDeltaTrajectory_LumpSum(t *testing.T) {
	sc := domain.Scenario{Type: domain.ScenarioLumpSum, DeploymentYear: 2, Magnitude: d("100000")}
	got := DeltaTrajectory(sc, 5, d("10"))

	want := []string{"0", "0", "100000", "110000", "121000"}
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.True(t, got[i].Equal(d(w)), "year %d: got %s want %s", i, got[i], w)
	}
}

func TestDeltaTrajectory_SIPIncrease(t *testing.T) {
	sc := domain.Scenario{Type: domain.ScenarioSIPIncrease, DeploymentYear: 1, Magnitude: d("1000")}
	got := DeltaTrajectory(sc, 4, d("10"))

	want := []string{"0", "12000", "25200", "39720"}
	for i, w := range want {
		assert.True(t, got[i].Equal(d(w)), "year %d: got %s want %s", i, got[i], w)
	}
	assert.Nil(t, DeltaTrajectory(sc, 0, d("10")))
}

func TestAnalyzer_Candidates(t *testing.T) {
	in, rows := fixture()
	in.IlliquidAssets = []domain.IlliquidAsset{{Name: "Plot", CurrentValue: d("2000000"), AnnualReturnRate: d("0")}}
	in.Maturities.Items = []domain.MaturityItem{
		{Name: "FD", Source: "investment", Year: 1, Amount: d("300000")},
		{Name: "Bond", Source: "investment", Year: 2, Amount: d("500000"), Reinvested: true},
	}
	in.FreedCashflows = []domain.FreedCashflow{
		{Name: "Car loan", Source: "loan", StartYear: 3, MonthlyAmount: d("15000")},
	}

	a := NewAnalyzer(in, rows, d("5000000"))
	cands := a.Candidates()
	require.Len(t, cands, 4)

	sale := cands[0]
	assert.Equal(t, "Sell Plot", sale.Name)
	assert.Equal(t, domain.ScenarioLumpSum, sale.Type)
	assert.Equal(t, 1, sale.DeploymentYear, "first year corpus plus asset clears the target")
	assert.True(t, sale.Magnitude.Equal(d("2000000")))
	assert.True(t, sale.DeltaCorpus.Equal(d("2662000")))

	reinvest := cands[1]
	assert.Equal(t, domain.ScenarioReinvest, reinvest.Type)
	assert.Equal(t, 1, reinvest.DeploymentYear)

	redirect := cands[2]
	assert.Equal(t, "Redirect Car loan EMI", redirect.Name)
	assert.Equal(t, 3, redirect.DeploymentYear)
	assert.True(t, redirect.DeltaCorpus.Equal(d("378000")))

	sip := cands[3]
	assert.Equal(t, domain.ScenarioSIPIncrease, sip.Type)
	assert.True(t, sip.Magnitude.Equal(d("2000")))
}

func TestAnalyzer_SaleYearDefaultsToZero(t *testing.T) {
	in, rows := fixture()
	in.IlliquidAssets = []domain.IlliquidAsset{{Name: "Gold", CurrentValue: d("100000")}}

	a := NewAnalyzer(in, rows, d("100000000"))
	cands := a.Candidates()
	require.NotEmpty(t, cands)
	assert.Equal(t, 0, cands[0].DeploymentYear)
}

func TestAnalyzer_Analyze(t *testing.T) {
	in, rows := fixture()
	in.RequestedWhatIf = []domain.ScenarioSpec{
		{Name: "Bonus", Type: domain.ScenarioLumpSum, Year: intp(4), Amount: d("1500000")},
	}

	a := NewAnalyzer(in, rows, d("7000000"))
	analysis, err := a.Analyze()
	require.NoError(t, err)

	assert.True(t, analysis.GrowthRate.Equal(d("10")))
	assert.True(t, analysis.BaselineCorpus.Equal(d("6000000")))
	require.Len(t, analysis.Scenarios, 2)

	bonus := analysis.Scenarios[1]
	assert.Equal(t, "Bonus", bonus.Scenario.Name)
	assert.True(t, bonus.Scenario.DeltaCorpus.Equal(d("1500000")))
	assert.True(t, bonus.StrategyCorpus.Equal(d("7500000")))
	assert.True(t, bonus.NewGap.Equal(d("-500000")))
	assert.True(t, bonus.ClosesGap)
	require.Len(t, bonus.Table, 5)
	assert.True(t, bonus.Table[3].Delta.IsZero())
	assert.True(t, bonus.Table[4].StrategyCorpus.Equal(d("7500000")))

	sum := analysis.Scenarios[0].Scenario.DeltaCorpus.Add(bonus.Scenario.DeltaCorpus)
	assert.True(t, analysis.CombinedDelta.Equal(sum))
	assert.True(t, analysis.CombinedCorpus.Equal(d("6000000").Add(sum)))
	assert.True(t, analysis.CombinedGap.Equal(d("7000000").Sub(analysis.CombinedCorpus)))
}

func TestAnalyzer_WhatIfReturnOverride(t *testing.T) {
	in, rows := fixture()
	in.Parameters.WhatIfReturn = d("5")

	a := NewAnalyzer(in, rows, d("0"))
	assert.True(t, a.GrowthRate().Equal(d("5")))
}

func TestAnalyzer_ResolveErrors(t *testing.T) {
	in, rows := fixture()
	a := NewAnalyzer(in, rows, d("0"))

	_, err := a.Resolve(domain.ScenarioSpec{Type: domain.ScenarioLumpSum, Year: intp(9), Amount: d("1")})
	var ie *InterventionError
	require.True(t, errors.As(err, &ie))
	assert.Contains(t, ie.Reason, "outside the accumulation phase")

	_, err = a.Resolve(domain.ScenarioSpec{Type: domain.ScenarioLumpSum})
	assert.ErrorContains(t, err, "amount must be positive")

	_, err = a.Resolve(domain.ScenarioSpec{Type: domain.ScenarioSIPIncrease})
	assert.Error(t, err)

	sc, err := a.Resolve(domain.ScenarioSpec{Type: domain.ScenarioSIPIncrease, Percent: d("50")})
	require.NoError(t, err)
	assert.True(t, sc.Magnitude.Equal(d("10000")))
	assert.Equal(t, "sip-increase", sc.Name)
}

func TestAnalyzer_AnalyzeCollectsInvalidRequests(t *testing.T) {
	in, rows := fixture()
	in.RequestedWhatIf = []domain.ScenarioSpec{{Name: "bad", Type: domain.ScenarioReinvest}}

	analysis, err := NewAnalyzer(in, rows, d("0")).Analyze()
	assert.Error(t, err)
	assert.Len(t, analysis.Scenarios, 1, "the built-in SIP increase is still evaluated")
}

func TestAnalyzer_NoAccumulationPhase(t *testing.T) {
	in, _ := fixture()
	analysis, err := NewAnalyzer(in, nil, d("500000")).Analyze()
	require.NoError(t, err)
	assert.Empty(t, analysis.Scenarios)
	assert.True(t, analysis.BaselineCorpus.Equal(d("1000000")))
	assert.True(t, analysis.CombinedGap.Equal(d("-500000")))
}
