package calculation

import (
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionOptions adjusts a projector run
type ProjectionOptions struct {
	// StopYear freezes the SIP step-up after this year when set
	StopYear *int
	// ExtraMonthlySIP is added to the mutual fund contribution every year
	ExtraMonthlySIP decimal.Decimal
	// SkipRequirements leaves the per-row required corpus columns empty
	SkipRequirements bool
}

// stepUpExponent returns how many step-ups have applied by year y
func stepUpExponent(y, effectiveFrom int, stopYear *int) int {
	if y < effectiveFrom {
		return 0
	}
	last := y
	if stopYear != nil && *stopYear < last {
		last = *stopYear
	}
	if e := last - effectiveFrom; e > 0 {
		return e
	}
	return 0
}

// effectiveRate applies any scheduled rate reduction for year y
func effectiveRate(t domain.InstrumentType, rate decimal.Decimal, y int, rr domain.RateReduction) decimal.Decimal {
	if !rr.Enabled || rr.EveryYears <= 0 || !t.RateReductionEligible() {
		return rate
	}
	cuts := decimal.NewFromInt(int64(y / rr.EveryYears))
	return maxDecimal(decimalZero, rate.Sub(rr.Percent.Mul(cuts)))
}

// monthlySIPFor returns a bucket's monthly contribution in year y
func monthlySIPFor(base decimal.Decimal, params domain.PlanningParameters, y int, stopYear *int) decimal.Decimal {
	exp := stepUpExponent(y, params.StepUpEffectiveFromYear, stopYear)
	if exp == 0 {
		return base
	}
	return base.Mul(growthFactor(params.SIPStepUpPercent, exp))
}

// ProjectCorpus runs the year-by-year accumulation projection. The matrix
// has one row per year until retirement; row y is the end of year y.
func ProjectCorpus(in *domain.AggregatedInput, opts ProjectionOptions) []domain.ProjectionRow {
	params := in.Parameters
	n := params.YearsToRetirement()
	rows := make([]domain.ProjectionRow, 0, n)

	events := make(map[int][]domain.CashflowEvent)
	for _, e := range in.Events {
		events[e.Year] = append(events[e.Year], e)
	}

	var balances domain.InstrumentBalances
	for _, b := range in.Balances {
		balances.Set(b.Type, b.OpeningBalance)
	}
	illiquid := in.Illiquid.OpeningBalance

	for y := 0; y < n; y++ {
		row := domain.ProjectionRow{
			Year:         y,
			CalendarYear: in.AsOfYear + y,
			Age:          params.CurrentAge + y,
			MonthlySIP:   decimalZero,
		}

		var next domain.InstrumentBalances
		for _, t := range domain.LiquidInstruments() {
			b := in.Balance(t)
			rate := effectiveRate(t, b.AnnualReturnRate, y, params.RateReduction)
			sip := monthlySIPFor(b.MonthlyContribution, params, y, opts.StopYear)
			if t == domain.InstrumentMutualFund && opts.ExtraMonthlySIP.IsPositive() {
				sip = sip.Add(opts.ExtraMonthlySIP)
			}
			annual := sip.Mul(decimalTwelve)
			end := balances.Get(t).Mul(decimalOne.Add(pct(rate))).Add(annual)

			next.Set(t, end)
			row.Contributions.Set(t, annual)
			row.MonthlySIP = row.MonthlySIP.Add(sip)
		}

		inflow, outflow := decimalZero, decimalZero
		for _, e := range events[y] {
			if e.Direction == domain.Outflow {
				outflow = outflow.Add(e.Amount)
			} else {
				inflow = inflow.Add(e.Amount)
			}
		}
		net := inflow.Sub(outflow)
		next.OtherLiquid = next.OtherLiquid.Add(net)

		illiquid = illiquid.Mul(decimalOne.Add(pct(in.Illiquid.AnnualReturnRate))).
			Add(in.Illiquid.MonthlyContribution.Mul(decimalTwelve))

		row.Balances = next
		row.IlliquidValue = illiquid
		row.TotalInflow = inflow
		row.GoalOutflow = outflow
		row.NetCashflow = net
		row.NetCorpus = next.Total()
		row.PreInflowCorpus = row.NetCorpus.Sub(inflow)
		row.Shortfall = row.NetCorpus.IsNegative()

		if !opts.SkipRequirements {
			// retiring at the end of year y
			years := y + 1
			horizon := params.LifeExpectancy - (row.Age + 1)
			need := AnnualNeed(in, years)
			for _, s := range domain.AllStrategies() {
				req := RequiredCorpus(s, need, horizon, params)
				ok := !row.NetCorpus.LessThan(req)
				switch s {
				case domain.StrategySustainable:
					row.RequiredCorpus.Sustainable, row.CanRetire.Sustainable = req, ok
				case domain.StrategySafe4Percent:
					row.RequiredCorpus.Safe4Percent, row.CanRetire.Safe4Percent = req, ok
				case domain.StrategySimpleDepletion:
					row.RequiredCorpus.SimpleDepletion, row.CanRetire.SimpleDepletion = req, ok
				}
			}
		}

		rows = append(rows, row)
		balances = next
	}

	return rows
}

// FinalCorpus returns the corpus at the end of the last accumulation year,
// or the current corpus when there is no accumulation phase.
func FinalCorpus(in *domain.AggregatedInput, rows []domain.ProjectionRow) decimal.Decimal {
	if len(rows) == 0 {
		return in.CurrentCorpus()
	}
	return rows[len(rows)-1].NetCorpus
}
