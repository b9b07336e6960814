package calculation

import (
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectIncome simulates the withdrawal phase for a strategy starting from
// the corpus at retirement. Yearly holds every year from retirement to life
// expectancy; Samples holds every SampleInterval-th year plus the last one.
func ProjectIncome(in *domain.AggregatedInput, startingCorpus decimal.Decimal, strategy domain.IncomeStrategy) domain.IncomeProjection {
	params := in.Parameters
	if !strategy.IsValid() {
		strategy = domain.StrategySustainable
	}
	interval := params.IncomeSampleInterval
	if interval <= 0 {
		interval = DefaultIncomeSampleInterval
	}

	n := params.YearsToRetirement()
	horizon := params.RetirementYears()
	start := maxDecimal(decimalZero, startingCorpus)

	proj := domain.IncomeProjection{
		Strategy:       strategy,
		StartingCorpus: start,
		SampleInterval: interval,
		EndingCorpus:   start,
	}

	withdrawal := pct(params.WithdrawalRate)
	if !withdrawal.IsPositive() {
		withdrawal = pct(DefaultWithdrawalRate)
	}
	growth := decimalOne.Add(pct(params.CorpusReturn))
	if strategy == domain.StrategySimpleDepletion {
		growth = decimalOne
	}

	// expenses and rental at the start of retirement
	expensesAtRetire := in.Needs.MonthlyExpenses.Mul(growthFactor(params.InflationRate, n))
	fixedOutgo := in.Needs.ContinuingEMIs.Add(in.Needs.ContinuingPremiums)
	rentalAtRetire := MonthlyRentalAt(in, n)

	corpus := start
	for t := 0; t <= horizon; t++ {
		var w decimal.Decimal
		if t < horizon {
			switch strategy {
			case domain.StrategySafe4Percent:
				w = start.Mul(safeWithdrawalRate).Mul(growthFactor(params.InflationRate, t))
			case domain.StrategySimpleDepletion:
				w = start.Div(decimal.NewFromInt(int64(horizon)))
			default:
				w = corpus.Mul(withdrawal)
			}
			w = minDecimal(w, corpus.Mul(growth))
		} else {
			w = decimalZero
		}

		monthly := w.Div(decimalTwelve)
		rental := rentalAtRetire.Mul(growthFactor(in.Income.RentalGrowth, t))
		sample := domain.IncomeSample{
			YearOffset:         t,
			Age:                params.RetirementAge + t,
			Corpus:             corpus,
			AnnualWithdrawal:   w,
			MonthlyIncome:      monthly,
			MonthlyRental:      rental,
			MonthlyAnnuity:     in.Income.MonthlyAnnuity,
			TotalMonthlyIncome: monthly.Add(rental).Add(in.Income.MonthlyAnnuity),
			MonthlyExpenses:    expensesAtRetire.Mul(growthFactor(params.InflationRate, t)).Add(fixedOutgo),
			Depleted:           corpus.LessThan(depletionEpsilon),
		}
		if sample.Depleted && proj.DepletionYear == nil {
			year := t
			proj.DepletionYear = &year
		}

		proj.Yearly = append(proj.Yearly, sample)
		if t%interval == 0 || t == horizon {
			proj.Samples = append(proj.Samples, sample)
		}

		if t < horizon {
			corpus = maxDecimal(decimalZero, corpus.Mul(growth).Sub(w))
		}
	}

	proj.EndingCorpus = corpus
	return proj
}

// Interpolate rebuilds a dense yearly series from sparse samples by linear
// interpolation between neighbouring samples. Depleted is carried from the
// earlier sample.
func Interpolate(samples []domain.IncomeSample) []domain.IncomeSample {
	if len(samples) < 2 {
		return append([]domain.IncomeSample(nil), samples...)
	}

	var dense []domain.IncomeSample
	for i := 0; i < len(samples)-1; i++ {
		a, b := samples[i], samples[i+1]
		span := b.YearOffset - a.YearOffset
		if span <= 0 {
			continue
		}
		steps := decimal.NewFromInt(int64(span))
		for k := 0; k < span; k++ {
			frac := decimal.NewFromInt(int64(k)).Div(steps)
			lerp := func(x, y decimal.Decimal) decimal.Decimal {
				return x.Add(y.Sub(x).Mul(frac))
			}
			dense = append(dense, domain.IncomeSample{
				YearOffset:         a.YearOffset + k,
				Age:                a.Age + k,
				Corpus:             lerp(a.Corpus, b.Corpus),
				AnnualWithdrawal:   lerp(a.AnnualWithdrawal, b.AnnualWithdrawal),
				MonthlyIncome:      lerp(a.MonthlyIncome, b.MonthlyIncome),
				MonthlyRental:      lerp(a.MonthlyRental, b.MonthlyRental),
				MonthlyAnnuity:     lerp(a.MonthlyAnnuity, b.MonthlyAnnuity),
				TotalMonthlyIncome: lerp(a.TotalMonthlyIncome, b.TotalMonthlyIncome),
				MonthlyExpenses:    lerp(a.MonthlyExpenses, b.MonthlyExpenses),
				Depleted:           a.Depleted,
			})
		}
	}
	return append(dense, samples[len(samples)-1])
}
