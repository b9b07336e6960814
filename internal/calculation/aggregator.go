package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// bucketFor maps an investment type onto the projector bucket that holds it
func bucketFor(t domain.InvestmentType) domain.InstrumentType {
	switch t {
	case domain.InvestmentPPF:
		return domain.InstrumentPPF
	case domain.InvestmentEPF:
		return domain.InstrumentEPF
	case domain.InvestmentMutualFund, domain.InvestmentEquity, domain.InvestmentNPS:
		return domain.InstrumentMutualFund
	case domain.InvestmentGold, domain.InvestmentRealEstate:
		return domain.InstrumentIlliquid
	default:
		return domain.InstrumentOtherLiquid
	}
}

// weightedRate accumulates a value-weighted mean of per-record rates
type weightedRate struct {
	fallback    decimal.Decimal
	weighted    decimal.Decimal
	weight      decimal.Decimal
	hasOverride bool
}

func (w *weightedRate) add(value decimal.Decimal, override *decimal.Decimal) {
	rate := w.fallback
	if override != nil {
		rate = *override
		w.hasOverride = true
	}
	w.weighted = w.weighted.Add(value.Mul(rate))
	w.weight = w.weight.Add(value)
}

func (w *weightedRate) rate() decimal.Decimal {
	if !w.hasOverride || !w.weight.IsPositive() {
		return w.fallback
	}
	return w.weighted.Div(w.weight)
}

// Aggregate normalizes a plan's heterogeneous records into the inputs the
// projector, calculators and what-if engine consume. It never fails; every
// clamp or skipped record is reported in Warnings.
func Aggregate(plan *domain.Plan) *domain.AggregatedInput {
	if plan == nil {
		plan = &domain.Plan{}
	}
	working := plan.DeepCopy()
	working.AsOfYear = resolveAsOfYear(plan.AsOfYear)

	params, warnings := NormalizeParameters(working.Parameters)
	n := params.YearsToRetirement()

	in := &domain.AggregatedInput{
		AsOfYear:        working.AsOfYear,
		Parameters:      params,
		Warnings:        warnings,
		RequestedWhatIf: working.Scenarios,
		Maturities: domain.MaturitySummary{
			Total:                decimal.Zero,
			ReinvestedTotal:      decimal.Zero,
			PendingTotal:         decimal.Zero,
			AfterRetirementTotal: decimal.Zero,
		},
		MonthlySalary: decimal.Zero,
	}
	warn := func(format string, args ...any) {
		in.Warnings = append(in.Warnings, fmt.Sprintf(format, args...))
	}

	opening := map[domain.InstrumentType]decimal.Decimal{}
	monthly := map[domain.InstrumentType]decimal.Decimal{}
	otherRate := &weightedRate{fallback: params.OtherReturn}
	illiquidRate := &weightedRate{fallback: params.IlliquidReturn}

	addMaturity := func(name, source string, idx int, amount decimal.Decimal, reinvest bool) {
		switch {
		case idx < 0:
			warn("%s %q matured before %d; ignored", source, name, working.AsOfYear)
		case idx >= n:
			in.Maturities.AfterRetirementTotal = in.Maturities.AfterRetirementTotal.Add(amount)
		default:
			in.Maturities.Items = append(in.Maturities.Items, domain.MaturityItem{
				Name:       name,
				Source:     source,
				Year:       idx,
				Age:        params.CurrentAge + idx,
				Amount:     amount,
				Reinvested: reinvest,
			})
			in.Maturities.Total = in.Maturities.Total.Add(amount)
			if reinvest {
				in.Maturities.ReinvestedTotal = in.Maturities.ReinvestedTotal.Add(amount)
				in.Events = append(in.Events, domain.CashflowEvent{
					Year:      idx,
					Name:      name,
					Source:    source,
					Direction: domain.Inflow,
					Amount:    amount,
				})
			} else {
				in.Maturities.PendingTotal = in.Maturities.PendingTotal.Add(amount)
			}
		}
	}

	for _, inv := range working.Investments {
		value := inv.CurrentValue
		if value.IsNegative() {
			warn("investment %q has a negative value; using 0", inv.Name)
			value = decimal.Zero
		}
		contribution := inv.MonthlyContribution
		if contribution.IsNegative() {
			warn("investment %q has a negative contribution; using 0", inv.Name)
			contribution = decimal.Zero
		}

		// A holding that matures during accumulation is modelled by its payout.
		// Otherwise it keeps compounding in its bucket with its contributions.
		if inv.HasMaturity() {
			idx := working.YearIndex(*inv.MaturityDate)
			switch {
			case idx < 0:
				warn("investment %q matured before %d; kept as a holding", inv.Name, working.AsOfYear)
			case idx >= n:
				in.Maturities.AfterRetirementTotal = in.Maturities.AfterRetirementTotal.Add(inv.MaturityAmount)
			default:
				addMaturity(inv.Name, "investment", idx, inv.MaturityAmount, inv.ReinvestOnMaturity)
				if contribution.IsPositive() {
					warn("investment %q matures in %d; its %s monthly contribution stops and its value is replaced by the maturity amount",
						inv.Name, working.AsOfYear+idx, contribution.StringFixed(0))
				}
				continue
			}
		}

		bucket := bucketFor(inv.Type)
		switch bucket {
		case domain.InstrumentIlliquid:
			rate := params.IlliquidReturn
			if inv.ExpectedReturn != nil {
				rate = *inv.ExpectedReturn
			}
			in.IlliquidAssets = append(in.IlliquidAssets, domain.IlliquidAsset{
				Name:             inv.Name,
				CurrentValue:     value,
				AnnualReturnRate: rate,
			})
			illiquidRate.add(value, inv.ExpectedReturn)
		case domain.InstrumentOtherLiquid:
			otherRate.add(value, inv.ExpectedReturn)
		}
		opening[bucket] = opening[bucket].Add(value)
		monthly[bucket] = monthly[bucket].Add(contribution)
	}

	for _, t := range domain.LiquidInstruments() {
		rate := params.OtherReturn
		switch t {
		case domain.InstrumentPPF:
			rate = params.PPFReturn
		case domain.InstrumentEPF:
			rate = params.EPFReturn
		case domain.InstrumentMutualFund:
			rate = params.MFReturn
		case domain.InstrumentOtherLiquid:
			rate = otherRate.rate()
		}
		in.Balances = append(in.Balances, domain.InstrumentBalance{
			Type:                t,
			OpeningBalance:      opening[t],
			MonthlyContribution: monthly[t],
			AnnualReturnRate:    rate,
		})
	}
	in.Illiquid = domain.InstrumentBalance{
		Type:                domain.InstrumentIlliquid,
		OpeningBalance:      opening[domain.InstrumentIlliquid],
		MonthlyContribution: monthly[domain.InstrumentIlliquid],
		AnnualReturnRate:    illiquidRate.rate(),
	}

	for _, ins := range working.Insurance {
		if ins.MaturityDate != nil && ins.MaturityAmount.IsPositive() {
			addMaturity(ins.Name, "insurance", working.YearIndex(*ins.MaturityDate), ins.MaturityAmount, ins.ReinvestOnMaturity)
		}
		for i, p := range ins.MoneyBack {
			if !p.Amount.IsPositive() {
				continue
			}
			addMaturity(fmt.Sprintf("%s payout %d", ins.Name, i+1), "insurance", working.YearIndex(p.Date), p.Amount, ins.ReinvestOnMaturity)
		}

		if !ins.AnnualPremium.IsPositive() {
			continue
		}
		monthlyPremium := ins.AnnualPremium.Div(decimalTwelve)
		if ins.PremiumEndDate == nil {
			in.Needs.ContinuingPremiums = in.Needs.ContinuingPremiums.Add(monthlyPremium)
			continue
		}
		end := working.YearIndex(*ins.PremiumEndDate)
		switch {
		case end >= n:
			in.Needs.ContinuingPremiums = in.Needs.ContinuingPremiums.Add(monthlyPremium)
		case end >= 0 && end+1 < n:
			in.FreedCashflows = append(in.FreedCashflows, domain.FreedCashflow{
				Name:          ins.Name,
				Source:        "insurance",
				StartYear:     end + 1,
				MonthlyAmount: monthlyPremium,
			})
		}
	}

	for _, g := range working.Goals {
		idx := working.YearIndex(g.TargetDate)
		switch {
		case idx < 0:
			warn("goal %q is in the past; ignored", g.Name)
			continue
		case idx >= n:
			warn("goal %q falls at or after retirement and is not funded from the accumulation corpus", g.Name)
			continue
		}
		growth := params.InflationRate
		if g.GrowthRate != nil && !g.GrowthRate.IsNegative() {
			growth = *g.GrowthRate
		}
		in.Events = append(in.Events, domain.CashflowEvent{
			Year:      idx,
			Name:      g.Name,
			Source:    "goal",
			Direction: domain.Outflow,
			Amount:    g.Amount.Mul(growthFactor(growth, idx)),
		})
	}

	for _, l := range working.Loans {
		if !l.EMI.IsPositive() {
			continue
		}
		end := working.YearIndex(l.EndDate)
		switch {
		case l.EndDate.IsZero() || end >= n:
			in.Needs.ContinuingEMIs = in.Needs.ContinuingEMIs.Add(l.EMI)
		case end >= 0 && end+1 < n:
			in.FreedCashflows = append(in.FreedCashflows, domain.FreedCashflow{
				Name:          l.Name,
				Source:        "loan",
				StartYear:     end + 1,
				MonthlyAmount: l.EMI,
			})
		}
	}

	rentalGrowth := decimal.Zero
	for _, inc := range working.Income {
		switch inc.Type {
		case domain.IncomeSalary:
			in.MonthlySalary = in.MonthlySalary.Add(inc.MonthlyAmount)
		case domain.IncomeRental:
			if inc.ContinuesInRetirement {
				in.Income.MonthlyRental = in.Income.MonthlyRental.Add(inc.MonthlyAmount)
				rentalGrowth = rentalGrowth.Add(inc.MonthlyAmount.Mul(inc.GrowthRate))
			}
		case domain.IncomeAnnuity, domain.IncomePension:
			if inc.ContinuesInRetirement {
				in.Income.MonthlyAnnuity = in.Income.MonthlyAnnuity.Add(inc.MonthlyAmount)
			}
		}
	}
	if in.Income.MonthlyRental.IsPositive() {
		in.Income.RentalGrowth = rentalGrowth.Div(in.Income.MonthlyRental)
	}
	in.Needs.MonthlyExpenses = params.MonthlyExpenses

	sort.SliceStable(in.Events, func(i, j int) bool { return in.Events[i].Year < in.Events[j].Year })
	sort.SliceStable(in.Maturities.Items, func(i, j int) bool { return in.Maturities.Items[i].Year < in.Maturities.Items[j].Year })
	sort.SliceStable(in.FreedCashflows, func(i, j int) bool { return in.FreedCashflows[i].StartYear < in.FreedCashflows[j].StartYear })

	return in
}
