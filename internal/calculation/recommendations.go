package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateRecommendations derives actionable suggestions from a finished result
func GenerateRecommendations(in *domain.AggregatedInput, r *domain.Result) []domain.Recommendation {
	var recs []domain.Recommendation
	ga := r.GapAnalysis

	if ga.Shortfall {
		msg := fmt.Sprintf("Projected corpus falls short of the %s requirement by %s",
			ga.SelectedStrategy.DisplayName(), rupees(ga.CorpusGap))
		if ga.AdditionalMonthlySIP.IsPositive() {
			msg += fmt.Sprintf("; an extra monthly SIP of %s in mutual funds closes the gap", rupees(ga.AdditionalMonthlySIP))
		}
		recs = append(recs, domain.Recommendation{Type: domain.RecommendIncreaseSIP, Message: msg, Impact: ga.CorpusGap})
	} else if r.Summary.YearsToRetirement > 0 {
		recs = append(recs, domain.Recommendation{
			Type:    domain.RecommendOnTrack,
			Message: fmt.Sprintf("On track: projected corpus exceeds the %s requirement by %s", ga.SelectedStrategy.DisplayName(), rupees(ga.CorpusGap.Neg())),
			Impact:  ga.CorpusGap.Neg(),
		})
	}

	if opt := r.StepUpOptimization; opt.CanStopEarly {
		recs = append(recs, domain.Recommendation{
			Type: domain.RecommendStopStepUp,
			Message: fmt.Sprintf("The SIP step-up can stop after year %d (age %d) at %s a month and still meet the target, saving %s in contributions",
				opt.OptimalStopYear, opt.OptimalStopAge, rupees(opt.MonthlySIPAtStop), rupees(opt.ContributionSaving)),
			Impact: opt.ContributionSaving,
		})
	}

	if ga.Shortfall && len(r.WhatIf.Scenarios) > 0 {
		scenarios := append([]domain.ScenarioResult(nil), r.WhatIf.Scenarios...)
		sort.SliceStable(scenarios, func(i, j int) bool {
			return scenarios[i].Scenario.DeltaCorpus.GreaterThan(scenarios[j].Scenario.DeltaCorpus)
		})
		best := scenarios[0]
		if best.Scenario.DeltaCorpus.IsPositive() {
			msg := fmt.Sprintf("%s in year %d adds %s at retirement", best.Scenario.Name, best.Scenario.DeploymentYear, rupees(best.Scenario.DeltaCorpus))
			if best.ClosesGap {
				msg += " and closes the gap on its own"
			}
			recs = append(recs, domain.Recommendation{Type: domain.RecommendWhatIf, Message: msg, Impact: best.Scenario.DeltaCorpus})
		}
	}

	for _, row := range r.Matrix {
		if row.Shortfall {
			recs = append(recs, domain.Recommendation{
				Type:    domain.RecommendGoalShortfall,
				Message: fmt.Sprintf("Goal outflows of %s in %d exceed the available corpus; the corpus turns negative", rupees(row.GoalOutflow), row.CalendarYear),
				Impact:  row.NetCorpus,
			})
			break
		}
	}

	if ip := r.IncomeProjection; ip.DepletionYear != nil && *ip.DepletionYear < r.Summary.RetirementYears {
		recs = append(recs, domain.Recommendation{
			Type:    domain.RecommendDepletion,
			Message: fmt.Sprintf("Under %s the corpus runs out at age %d, before life expectancy", ip.Strategy.DisplayName(), r.Summary.RetirementAge+*ip.DepletionYear),
			Impact:  decimal.NewFromInt(int64(r.Summary.RetirementYears - *ip.DepletionYear)),
		})
	}

	if emis := in.Needs.ContinuingEMIs; emis.IsPositive() {
		recs = append(recs, domain.Recommendation{
			Type:    domain.RecommendLoans,
			Message: fmt.Sprintf("Loan EMIs of %s a month continue into retirement and raise the required corpus; consider prepaying", rupees(emis)),
			Impact:  emis,
		})
	}

	if pending := in.Maturities.PendingTotal; pending.IsPositive() {
		recs = append(recs, domain.Recommendation{
			Type:    domain.RecommendReinvest,
			Message: fmt.Sprintf("%s of maturities before retirement are not marked for reinvestment", rupees(pending)),
			Impact:  pending,
		})
	}

	return recs
}

func rupees(d decimal.Decimal) string {
	return "₹" + d.Round(0).String()
}
