package calculation

import (
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizeStepUp finds the earliest year after which the SIP step-up can be
// frozen while the projected corpus still meets target. baseline is the
// full-schedule projection.
func OptimizeStepUp(in *domain.AggregatedInput, baseline []domain.ProjectionRow, target decimal.Decimal) domain.StepUpOptimization {
	params := in.Parameters
	n := len(baseline)

	opt := domain.StepUpOptimization{
		Mode:               params.OptimizerMode,
		TargetCorpus:       target,
		FullScheduleCorpus: FinalCorpus(in, baseline),
		ContributionSaving: decimalZero,
		MonthlySIPAtStop:   decimalZero,
	}
	if opt.Mode == "" {
		opt.Mode = domain.OptimizerFull
	}
	if n == 0 {
		return opt
	}

	blended := blendedContributionRate(in)
	candidates := make([]domain.StepUpCandidate, n)
	best := -1
	meeting := true

	for s := n - 1; s >= 0; s-- {
		var corpus decimal.Decimal
		if opt.Mode == domain.OptimizerApproximate {
			corpus = approximateCorpus(baseline, s, blended)
		} else {
			stop := s
			rows := ProjectCorpus(in, ProjectionOptions{StopYear: &stop, SkipRequirements: true})
			corpus = rows[n-1].NetCorpus
		}

		meets := !corpus.LessThan(target)
		candidates[s] = domain.StepUpCandidate{
			StopYear:        s,
			Age:             params.CurrentAge + s,
			MonthlySIP:      baseline[s].MonthlySIP,
			ProjectedCorpus: corpus,
			SurplusDeficit:  corpus.Sub(target),
			MeetsTarget:     meets,
		}

		if meeting && meets {
			best = s
		} else {
			meeting = false
		}
	}
	opt.Candidates = candidates

	if best < 0 {
		opt.OptimalStopYear = n - 1
		opt.OptimalStopAge = params.CurrentAge + n - 1
		opt.MonthlySIPAtStop = baseline[n-1].MonthlySIP
		return opt
	}

	opt.CanStopEarly = best < n-1
	opt.OptimalStopYear = best
	opt.OptimalStopAge = params.CurrentAge + best
	opt.MonthlySIPAtStop = baseline[best].MonthlySIP
	opt.ContributionSaving = contributionSaving(baseline, best)
	return opt
}

// contributionSaving is the total SIP not paid when the step-up freezes after year s
func contributionSaving(baseline []domain.ProjectionRow, s int) decimal.Decimal {
	saving := decimalZero
	frozen := baseline[s].MonthlySIP
	for y := s + 1; y < len(baseline); y++ {
		saving = saving.Add(baseline[y].MonthlySIP.Sub(frozen).Mul(decimalTwelve))
	}
	return saving
}

// approximateCorpus subtracts the future value of the average monthly SIP
// differential from the full-schedule corpus instead of re-running the projection.
func approximateCorpus(baseline []domain.ProjectionRow, s int, rate decimal.Decimal) decimal.Decimal {
	n := len(baseline)
	full := baseline[n-1].NetCorpus
	remaining := n - 1 - s
	if remaining <= 0 {
		return full
	}

	frozen := baseline[s].MonthlySIP
	total := decimalZero
	for y := s + 1; y < n; y++ {
		total = total.Add(baseline[y].MonthlySIP.Sub(frozen))
	}
	avg := total.Div(decimal.NewFromInt(int64(remaining)))
	return full.Sub(avg.Mul(decimalTwelve).Mul(annuityFactor(rate, remaining)))
}

// blendedContributionRate is the SIP-weighted return of the contributing buckets
func blendedContributionRate(in *domain.AggregatedInput) decimal.Decimal {
	weighted, weight := decimalZero, decimalZero
	for _, b := range in.Balances {
		weighted = weighted.Add(b.MonthlyContribution.Mul(b.AnnualReturnRate))
		weight = weight.Add(b.MonthlyContribution)
	}
	if !weight.IsPositive() {
		return in.Parameters.MFReturn
	}
	return weighted.Div(weight)
}
