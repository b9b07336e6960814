package calculation

import (
	"testing"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectIncome_Sustainable(t *testing.T) {
	in := Aggregate(goldenPlan())
	proj := ProjectIncome(in, d("10000000"), domain.StrategySustainable)

	require.Len(t, proj.Yearly, 26)
	assert.True(t, proj.Yearly[0].AnnualWithdrawal.Equal(d("800000")))
	assert.True(t, proj.Yearly[1].Corpus.Equal(d("10200000")), "corpus grows at return minus withdrawal rate")
	assert.Nil(t, proj.DepletionYear)
	assert.True(t, proj.Yearly[25].AnnualWithdrawal.IsZero())

	require.Len(t, proj.Samples, 6)
	for i, s := range proj.Samples {
		assert.Equal(t, i*5, s.YearOffset)
		assert.Equal(t, 60+i*5, s.Age)
	}
}

func TestProjectIncome_Safe4PercentIgnoresCorpus(t *testing.T) {
	in := Aggregate(goldenPlan())
	proj := ProjectIncome(in, d("10000000"), domain.StrategySafe4Percent)

	assert.True(t, proj.Yearly[0].AnnualWithdrawal.Equal(d("400000")))
	assert.True(t, proj.Yearly[1].AnnualWithdrawal.Equal(d("424000")), "inflated by 6%%")
	assert.Equal(t, "33333.33", proj.Yearly[0].MonthlyIncome.StringFixed(2))
}

func TestProjectIncome_Safe4PercentDepletes(t *testing.T) {
	plan := goldenPlan()
	plan.Parameters.CorpusReturn = d("0")
	plan.Parameters.InflationRate = d("10")
	plan.Parameters.LifeExpectancy = 90
	in := Aggregate(plan)

	proj := ProjectIncome(in, d("10000000"), domain.StrategySafe4Percent)
	require.NotNil(t, proj.DepletionYear)
	assert.Equal(t, 14, *proj.DepletionYear)
	assert.True(t, proj.EndingCorpus.IsZero())
	assert.True(t, proj.Yearly[20].Depleted)
	assert.True(t, proj.Yearly[20].AnnualWithdrawal.IsZero(), "nothing left to withdraw")
}

func TestProjectIncome_SimpleDepletion(t *testing.T) {
	in := Aggregate(goldenPlan())
	proj := ProjectIncome(in, d("10000000"), domain.StrategySimpleDepletion)

	for _, y := range proj.Yearly[:25] {
		assert.True(t, y.AnnualWithdrawal.Equal(d("400000")))
	}
	assert.True(t, proj.EndingCorpus.IsZero())
	require.NotNil(t, proj.DepletionYear)
	assert.Equal(t, 25, *proj.DepletionYear, "reaches zero exactly at life expectancy")
}

func TestProjectIncome_ReportsRentalAndAnnuitySeparately(t *testing.T) {
	plan := goldenPlan()
	plan.Income = []domain.IncomeRecord{
		{Name: "Flat", Type: domain.IncomeRental, MonthlyAmount: d("20000"), ContinuesInRetirement: true},
		{Name: "Pension", Type: domain.IncomePension, MonthlyAmount: d("15000"), ContinuesInRetirement: true},
	}
	in := Aggregate(plan)
	proj := ProjectIncome(in, d("12000000"), domain.StrategySustainable)

	first := proj.Yearly[0]
	assert.True(t, first.MonthlyIncome.Equal(d("80000")))
	assert.True(t, first.MonthlyRental.Equal(d("20000")))
	assert.True(t, first.MonthlyAnnuity.Equal(d("15000")))
	assert.True(t, first.TotalMonthlyIncome.Equal(d("115000")))
	assert.True(t, first.AnnualWithdrawal.Equal(d("960000")), "withdrawal excludes rental and annuity")
}

func TestProjectIncome_NoRetirementYears(t *testing.T) {
	plan := goldenPlan()
	plan.Parameters.LifeExpectancy = 60
	proj := ProjectIncome(Aggregate(plan), d("5000000"), domain.StrategySustainable)

	require.Len(t, proj.Yearly, 1)
	assert.True(t, proj.EndingCorpus.Equal(d("5000000")))
}

func TestInterpolate(t *testing.T) {
	in := Aggregate(goldenPlan())
	proj := ProjectIncome(in, d("10000000"), domain.StrategySimpleDepletion)

	dense := Interpolate(proj.Samples)
	require.Len(t, dense, len(proj.Yearly))
	for i := range dense {
		assert.Equal(t, i, dense[i].YearOffset)
		assert.True(t, dense[i].Corpus.Sub(proj.Yearly[i].Corpus).Abs().LessThan(d("0.01")), "year %d", i)
	}

	assert.Len(t, Interpolate(proj.Samples[:1]), 1)
	assert.Empty(t, Interpolate(nil))
}
