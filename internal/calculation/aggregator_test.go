package calculation

import (
	"testing"
	"time"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_BucketMapping(t *testing.T) {
	plan := goldenPlan()
	plan.Investments = []domain.InvestmentRecord{
		{Name: "PPF", Type: domain.InvestmentPPF, CurrentValue: d("500000"), MonthlyContribution: d("12500")},
		{Name: "EPF", Type: domain.InvestmentEPF, CurrentValue: d("800000"), MonthlyContribution: d("15000")},
		{Name: "Index fund", Type: domain.InvestmentMutualFund, CurrentValue: d("1000000"), MonthlyContribution: d("30000")},
		{Name: "Stocks", Type: domain.InvestmentEquity, CurrentValue: d("400000")},
		{Name: "NPS", Type: domain.InvestmentNPS, CurrentValue: d("100000"), MonthlyContribution: d("5000")},
		{Name: "FD", Type: domain.InvestmentFixedDeposit, CurrentValue: d("100000"), ExpectedReturn: dp("6")},
		{Name: "Bonds", Type: domain.InvestmentBond, CurrentValue: d("300000")},
		{Name: "Gold", Type: domain.InvestmentGold, CurrentValue: d("200000")},
		{Name: "Plot", Type: domain.InvestmentRealEstate, CurrentValue: d("3000000"), ExpectedReturn: dp("8")},
	}

	in := Aggregate(plan)
	require.Len(t, in.Balances, 4)

	ppf := in.Balance(domain.InstrumentPPF)
	assert.True(t, ppf.OpeningBalance.Equal(d("500000")))
	assert.True(t, ppf.AnnualReturnRate.Equal(d("7.1")))

	mf := in.Balance(domain.InstrumentMutualFund)
	assert.True(t, mf.OpeningBalance.Equal(d("1500000")))
	assert.True(t, mf.MonthlyContribution.Equal(d("35000")))
	assert.True(t, mf.AnnualReturnRate.Equal(d("12")))

	other := in.Balance(domain.InstrumentOtherLiquid)
	assert.True(t, other.OpeningBalance.Equal(d("400000")))
	assert.True(t, other.AnnualReturnRate.Equal(d("6.75")), "value-weighted override, got %s", other.AnnualReturnRate)

	assert.True(t, in.Illiquid.OpeningBalance.Equal(d("3200000")))
	require.Len(t, in.IlliquidAssets, 2)
	assert.True(t, in.IlliquidAssets[1].AnnualReturnRate.Equal(d("8")))

	assert.True(t, in.CurrentCorpus().Equal(d("3200000")), "illiquid holdings are not part of the corpus")
	assert.True(t, in.CurrentMonthlySIP().Equal(d("62500")))
}

func TestAggregate_Maturities(t *testing.T) {
	plan := goldenPlan()
	plan.Investments = append(plan.Investments,
		domain.InvestmentRecord{Name: "FD 2028", Type: domain.InvestmentFixedDeposit, CurrentValue: d("400000"), MaturityDate: datep(2028), MaturityAmount: d("500000"), ReinvestOnMaturity: true},
		domain.InvestmentRecord{Name: "Bond 2031", Type: domain.InvestmentBond, MaturityDate: datep(2031), MaturityAmount: d("300000")},
		domain.InvestmentRecord{Name: "FD 2070", Type: domain.InvestmentFixedDeposit, MaturityDate: datep(2070), MaturityAmount: d("900000")},
	)
	plan.Insurance = []domain.InsuranceRecord{
		{
			Name:           "Money back",
			Type:           domain.InsuranceMoneyBack,
			AnnualPremium:  d("60000"),
			PremiumEndDate: datep(2032),
			MoneyBack: []domain.Payout{
				{Date: date(2030), Amount: d("100000")},
				{Date: date(2035), Amount: d("100000")},
			},
		},
	}

	in := Aggregate(plan)
	ms := in.Maturities
	require.Len(t, ms.Items, 4)
	assert.Equal(t, "FD 2028", ms.Items[0].Name)
	assert.Equal(t, 3, ms.Items[0].Year)
	assert.Equal(t, 38, ms.Items[0].Age)
	assert.True(t, ms.Total.Equal(d("1000000")))
	assert.True(t, ms.ReinvestedTotal.Equal(d("500000")))
	assert.True(t, ms.PendingTotal.Equal(d("500000")))
	assert.True(t, ms.AfterRetirementTotal.Equal(d("900000")))

	require.Len(t, in.Events, 1, "only reinvested maturities become inflows")
	assert.Equal(t, domain.Inflow, in.Events[0].Direction)
	assert.Equal(t, 3, in.Events[0].Year)

	assert.True(t, in.Balance(domain.InstrumentOtherLiquid).OpeningBalance.IsZero(), "maturing holdings are modelled by their payout")

	require.Len(t, in.FreedCashflows, 1)
	assert.Equal(t, "insurance", in.FreedCashflows[0].Source)
	assert.Equal(t, 8, in.FreedCashflows[0].StartYear)
	assert.True(t, in.FreedCashflows[0].MonthlyAmount.Equal(d("5000")))
}

func TestAggregate_HoldingMaturingAfterRetirementStaysInBucket(t *testing.T) {
	base := goldenPlan()
	plan := goldenPlan()
	plan.Investments = append(plan.Investments, domain.InvestmentRecord{
		Name:                "PPF",
		Type:                domain.InvestmentPPF,
		CurrentValue:        d("1000000"),
		MonthlyContribution: d("12500"),
		MaturityDate:        datep(2055),
		MaturityAmount:      d("9000000"),
	})

	in := Aggregate(plan)
	ppf := in.Balance(domain.InstrumentPPF)
	assert.True(t, ppf.OpeningBalance.Equal(d("1000000")))
	assert.True(t, ppf.MonthlyContribution.Equal(d("12500")))
	assert.True(t, in.CurrentCorpus().Equal(d("3000000")))
	assert.True(t, in.Maturities.AfterRetirementTotal.Equal(d("9000000")))
	assert.Empty(t, in.Maturities.Items)
	assert.Empty(t, in.Warnings)

	baseIn := Aggregate(base)
	withPPF := FinalCorpus(in, ProjectCorpus(in, ProjectionOptions{}))
	without := FinalCorpus(baseIn, ProjectCorpus(baseIn, ProjectionOptions{}))
	assert.True(t, withPPF.GreaterThan(without), "PPF compounds into the corpus: %s vs %s", withPPF, without)
}

func TestAggregate_HoldingMaturingBeforeRetirementWarnsAboutContributions(t *testing.T) {
	plan := goldenPlan()
	plan.Investments = append(plan.Investments,
		domain.InvestmentRecord{
			Name:                "RD",
			Type:                domain.InvestmentFixedDeposit,
			CurrentValue:        d("200000"),
			MonthlyContribution: d("5000"),
			MaturityDate:        datep(2030),
			MaturityAmount:      d("600000"),
		},
		domain.InvestmentRecord{
			Name:           "Old bond",
			Type:           domain.InvestmentBond,
			CurrentValue:   d("150000"),
			MaturityDate:   datep(2020),
			MaturityAmount: d("100000"),
		},
	)

	in := Aggregate(plan)
	require.Len(t, in.Maturities.Items, 1)
	assert.Equal(t, "RD", in.Maturities.Items[0].Name)

	other := in.Balance(domain.InstrumentOtherLiquid)
	assert.True(t, other.OpeningBalance.Equal(d("150000")), "a past maturity keeps the holding")
	assert.True(t, other.MonthlyContribution.IsZero())

	require.Len(t, in.Warnings, 2)
	assert.Contains(t, in.Warnings[0], `investment "RD" matures in 2030`)
	assert.Contains(t, in.Warnings[1], `investment "Old bond" matured before 2025`)
}

func TestAggregate_GoalsAndLoans(t *testing.T) {
	plan := goldenPlan()
	plan.Goals = []domain.GoalRecord{
		{Name: "College", Amount: d("1000000"), TargetDate: date(2027)},
		{Name: "Wedding", Amount: d("500000"), TargetDate: date(2030), GrowthRate: dp("10")},
		{Name: "World tour", Amount: d("800000"), TargetDate: date(2055)},
		{Name: "Old goal", Amount: d("100000"), TargetDate: date(2020)},
	}
	plan.Loans = []domain.LoanRecord{
		{Name: "Car loan", EMI: d("15000"), EndDate: date(2028)},
		{Name: "Home loan", EMI: d("40000"), EndDate: date(2052)},
	}

	in := Aggregate(plan)
	require.Len(t, in.Events, 2)
	assert.True(t, in.Events[0].Amount.Equal(d("1123600")), "inflated at 6%% for two years")
	assert.True(t, in.Events[1].Amount.Equal(d("805255")), "own growth rate for five years")
	assert.Equal(t, domain.Outflow, in.Events[1].Direction)
	assert.Len(t, in.Warnings, 2)

	require.Len(t, in.FreedCashflows, 1)
	assert.Equal(t, "Car loan", in.FreedCashflows[0].Name)
	assert.Equal(t, 4, in.FreedCashflows[0].StartYear)
	assert.True(t, in.Needs.ContinuingEMIs.Equal(d("40000")))
}

func TestAggregate_UsesClockWhenAsOfYearMissing(t *testing.T) {
	SetNowFunc(func() time.Time { return time.Date(2031, 3, 1, 0, 0, 0, 0, time.UTC) })
	defer SetNowFunc(time.Now)

	plan := goldenPlan()
	plan.AsOfYear = 0
	in := Aggregate(plan)
	assert.Equal(t, 2031, in.AsOfYear)
	assert.Equal(t, 0, plan.AsOfYear, "the caller's plan is not mutated")
}

func TestAggregate_NilPlan(t *testing.T) {
	in := Aggregate(nil)
	require.NotNil(t, in)
	assert.Len(t, in.Balances, 4)
	assert.True(t, in.CurrentCorpus().IsZero())
}
