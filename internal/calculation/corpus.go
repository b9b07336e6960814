package calculation

import (
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

var safeWithdrawalRate = decimal.NewFromFloat(0.04)

// MonthlyRentalAt is post-retirement rental income after the given number of
// years, grown at the rental growth rate.
func MonthlyRentalAt(in *domain.AggregatedInput, years int) decimal.Decimal {
	return in.Income.MonthlyRental.Mul(growthFactor(in.Income.RentalGrowth, years))
}

// fundedOutgo is the monthly outgo the corpus and annuities share, in today's
// money: expenses plus continuing EMIs and premiums, less annuity income.
func fundedOutgo(in *domain.AggregatedInput) decimal.Decimal {
	return in.Needs.MonthlyExpenses.
		Add(in.Needs.ContinuingEMIs).
		Add(in.Needs.ContinuingPremiums).
		Sub(in.Income.MonthlyAnnuity)
}

// MonthlyNeedToday is the monthly amount the corpus must fund at retirement,
// expressed in today's money. Rental is grown at its own rate to retirement
// and deflated back, so it matches the income projection. It is never negative.
func MonthlyNeedToday(in *domain.AggregatedInput) decimal.Decimal {
	n := in.Parameters.YearsToRetirement()
	rental := MonthlyRentalAt(in, n).Div(growthFactor(in.Parameters.InflationRate, n))
	return maxDecimal(decimalZero, fundedOutgo(in).Sub(rental))
}

// AnnualNeed is the first-year annual need when retiring after the given
// number of years: outgo inflated from today's money less rental grown to
// that year.
func AnnualNeed(in *domain.AggregatedInput, yearsToRetirement int) decimal.Decimal {
	outgo := fundedOutgo(in).Mul(growthFactor(in.Parameters.InflationRate, yearsToRetirement))
	need := outgo.Sub(MonthlyRentalAt(in, yearsToRetirement))
	return maxDecimal(decimalZero, need).Mul(decimalTwelve)
}

// RequiredCorpus returns the corpus needed at retirement to fund annualNeed
// for retirementYears under the given strategy.
func RequiredCorpus(strategy domain.IncomeStrategy, annualNeed decimal.Decimal, retirementYears int, params domain.PlanningParameters) decimal.Decimal {
	if retirementYears <= 0 || !annualNeed.IsPositive() {
		return decimalZero
	}

	switch strategy {
	case domain.StrategySafe4Percent:
		return annualNeed.Div(safeWithdrawalRate)
	case domain.StrategySimpleDepletion:
		return annualNeed.Mul(decimal.NewFromInt(int64(retirementYears)))
	}

	withdrawal := params.WithdrawalRate
	if !withdrawal.IsPositive() || withdrawal.GreaterThanOrEqual(decimalHundred) {
		withdrawal = DefaultWithdrawalRate
	}
	w := pct(withdrawal)
	base := annualNeed.Div(w)

	// the corpus grows at r - w while the need grows at i; size it so the
	// last year's withdrawal still covers the inflated need
	netGrowth := decimalOne.Add(pct(params.CorpusReturn)).Sub(w)
	if !netGrowth.IsPositive() {
		return base.Mul(decimal.NewFromInt(int64(retirementYears)))
	}
	ratio := decimalOne.Add(pct(params.InflationRate)).Div(netGrowth)
	if ratio.LessThanOrEqual(decimalOne) {
		return base
	}
	return base.Mul(powInt(ratio, retirementYears-1))
}

// RequiredByStrategy evaluates every strategy for the same need and horizon
func RequiredByStrategy(annualNeed decimal.Decimal, retirementYears int, params domain.PlanningParameters) domain.StrategyValues {
	return domain.StrategyValues{
		Sustainable:     RequiredCorpus(domain.StrategySustainable, annualNeed, retirementYears, params),
		Safe4Percent:    RequiredCorpus(domain.StrategySafe4Percent, annualNeed, retirementYears, params),
		SimpleDepletion: RequiredCorpus(domain.StrategySimpleDepletion, annualNeed, retirementYears, params),
	}
}

// AdditionalMonthlySIP is the flat extra monthly mutual fund SIP that closes
// gap by retirement. Zero when there is no gap or no time left.
func AdditionalMonthlySIP(gap decimal.Decimal, in *domain.AggregatedInput) decimal.Decimal {
	n := in.Parameters.YearsToRetirement()
	if !gap.IsPositive() || n <= 0 {
		return decimalZero
	}
	factor := annuityFactor(in.Parameters.MFReturn, n)
	return gap.Div(factor.Mul(decimalTwelve))
}

// BuildGapAnalysis compares the projected corpus with every strategy's requirement
func BuildGapAnalysis(in *domain.AggregatedInput, projected decimal.Decimal) domain.GapAnalysis {
	params := in.Parameters
	need := AnnualNeed(in, params.YearsToRetirement())
	required := RequiredByStrategy(need, params.RetirementYears(), params)

	ga := domain.GapAnalysis{
		SelectedStrategy:   params.IncomeStrategy,
		ProjectedCorpus:    projected,
		AnnualNeedAtRetire: need,
		MonthlyNeedToday:   MonthlyNeedToday(in),
	}

	for _, s := range domain.AllStrategies() {
		req := required.Get(s)
		gap := req.Sub(projected)
		funded := decimalZero
		if req.IsPositive() {
			funded = projected.Div(req).Mul(decimalHundred)
		}
		ga.Strategies = append(ga.Strategies, domain.StrategyRequirement{
			Strategy:       s,
			RequiredCorpus: req,
			Gap:            gap,
			Shortfall:      gap.IsPositive(),
			FundedRatio:    funded,
		})
	}

	ga.RequiredCorpus = required.Get(params.IncomeStrategy)
	ga.CorpusGap = ga.RequiredCorpus.Sub(projected)
	ga.Shortfall = ga.CorpusGap.IsPositive()
	ga.AdditionalMonthlySIP = AdditionalMonthlySIP(ga.CorpusGap, in)
	return ga
}
