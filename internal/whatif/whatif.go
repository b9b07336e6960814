// Package whatif evaluates one-off and recurring interventions against a
// baseline accumulation projection. Every intervention is compounded at a
// single fixed rate so scenarios are directly comparable.
package whatif

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)

	// DefaultSIPIncreasePercent is the SIP increase offered as a candidate
	DefaultSIPIncreasePercent = decimal.NewFromInt(10)
)

// Analyzer evaluates what-if scenarios for one aggregated plan
type Analyzer struct {
	Input    *domain.AggregatedInput
	Baseline []domain.ProjectionRow
	// Required is the target corpus at retirement for the selected strategy
	Required decimal.Decimal
}

// NewAnalyzer creates an analyzer over a baseline projection
func NewAnalyzer(in *domain.AggregatedInput, baseline []domain.ProjectionRow, required decimal.Decimal) *Analyzer {
	return &Analyzer{Input: in, Baseline: baseline, Required: required}
}

// GrowthRate is the fixed compounding rate applied to every delta
func (a *Analyzer) GrowthRate() decimal.Decimal {
	return a.Input.Parameters.WhatIfGrowthRate()
}

func (a *Analyzer) horizon() int {
	return len(a.Baseline)
}

func (a *Analyzer) baselineFinal() decimal.Decimal {
	if len(a.Baseline) == 0 {
		return a.Input.CurrentCorpus()
	}
	return a.Baseline[len(a.Baseline)-1].NetCorpus
}

// Analyze generates the candidate interventions, resolves the plan's explicit
// scenarios and evaluates all of them. Explicit scenarios that cannot be
// resolved are returned as errors alongside the analysis.
func (a *Analyzer) Analyze() (domain.WhatIfAnalysis, error) {
	final := a.baselineFinal()
	analysis := domain.WhatIfAnalysis{
		GrowthRate:     a.GrowthRate(),
		BaselineCorpus: final,
		CombinedDelta:  decimal.Zero,
		CombinedCorpus: final,
		CombinedGap:    a.Required.Sub(final),
	}
	if a.horizon() == 0 {
		return analysis, nil
	}

	scenarios := a.Candidates()
	var errs []error
	for _, spec := range a.Input.RequestedWhatIf {
		sc, err := a.Resolve(spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, sc)
	}

	for _, sc := range scenarios {
		res := a.Evaluate(sc)
		analysis.Scenarios = append(analysis.Scenarios, res)
		analysis.CombinedDelta = analysis.CombinedDelta.Add(res.Scenario.DeltaCorpus)
	}
	analysis.CombinedCorpus = final.Add(analysis.CombinedDelta)
	analysis.CombinedGap = a.Required.Sub(analysis.CombinedCorpus)

	return analysis, errors.Join(errs...)
}

// Candidates lists the interventions the plan itself suggests: selling
// illiquid assets, reinvesting pending maturities, redirecting freed EMIs
// and premiums, and a flat SIP increase.
func (a *Analyzer) Candidates() []domain.Scenario {
	n := a.horizon()
	if n == 0 {
		return nil
	}
	var out []domain.Scenario

	for _, asset := range a.Input.IlliquidAssets {
		if !asset.CurrentValue.IsPositive() {
			continue
		}
		year := a.saleYear(asset)
		out = append(out, domain.Scenario{
			Name:           "Sell " + asset.Name,
			Type:           domain.ScenarioLumpSum,
			Source:         "illiquid",
			DeploymentYear: year,
			Magnitude:      assetValueAt(asset, year),
		})
	}

	for _, item := range a.Input.Maturities.Items {
		if item.Reinvested {
			continue
		}
		out = append(out, domain.Scenario{
			Name:           fmt.Sprintf("Reinvest %s maturity", item.Name),
			Type:           domain.ScenarioReinvest,
			Source:         item.Source,
			DeploymentYear: item.Year,
			Magnitude:      item.Amount,
		})
	}

	for _, f := range a.Input.FreedCashflows {
		if f.StartYear >= n {
			continue
		}
		label := "EMI"
		if f.Source == "insurance" {
			label = "premium"
		}
		out = append(out, domain.Scenario{
			Name:           fmt.Sprintf("Redirect %s %s", f.Name, label),
			Type:           domain.ScenarioSIPIncrease,
			Source:         f.Source,
			DeploymentYear: f.StartYear,
			Magnitude:      f.MonthlyAmount,
		})
	}

	if sip := a.Input.CurrentMonthlySIP(); sip.IsPositive() {
		out = append(out, domain.Scenario{
			Name:           fmt.Sprintf("Increase SIP by %s%%", DefaultSIPIncreasePercent.String()),
			Type:           domain.ScenarioSIPIncrease,
			Source:         "sip",
			DeploymentYear: 0,
			Magnitude:      sip.Mul(DefaultSIPIncreasePercent).Div(hundred),
		})
	}

	for i := range out {
		out[i].DeltaCorpus = a.deltaAt(out[i], n-1)
	}
	return out
}

// Resolve turns an explicit scenario request into a concrete scenario
func (a *Analyzer) Resolve(spec domain.ScenarioSpec) (domain.Scenario, error) {
	n := a.horizon()
	name := spec.Name
	if name == "" {
		name = string(spec.Type)
	}

	year := 0
	if spec.Year != nil {
		year = *spec.Year
	}
	if year < 0 || year >= n {
		return domain.Scenario{}, NewInterventionError(name, fmt.Sprintf("year %d is outside the accumulation phase [0, %d)", year, n), nil)
	}

	sc := domain.Scenario{
		Name:           name,
		Type:           spec.Type,
		Source:         "plan",
		DeploymentYear: year,
	}

	switch spec.Type {
	case domain.ScenarioLumpSum, domain.ScenarioReinvest:
		if !spec.Amount.IsPositive() {
			return domain.Scenario{}, NewInterventionError(name, "amount must be positive", nil)
		}
		sc.Magnitude = spec.Amount
	case domain.ScenarioSIPIncrease:
		switch {
		case spec.Amount.IsPositive():
			sc.Magnitude = spec.Amount
		case spec.Percent.IsPositive():
			sc.Magnitude = a.Input.CurrentMonthlySIP().Mul(spec.Percent).Div(hundred)
		default:
			return domain.Scenario{}, NewInterventionError(name, "sip-increase needs a positive amount or percent", nil)
		}
	default:
		return domain.Scenario{}, NewInterventionError(name, fmt.Sprintf("unknown scenario type %q", spec.Type), nil)
	}

	sc.DeltaCorpus = a.deltaAt(sc, n-1)
	return sc, nil
}

// Evaluate compares a scenario with the baseline year by year
func (a *Analyzer) Evaluate(sc domain.Scenario) domain.ScenarioResult {
	deltas := DeltaTrajectory(sc, a.horizon(), a.GrowthRate())
	table := make([]domain.ScenarioYear, len(a.Baseline))
	for y, row := range a.Baseline {
		table[y] = domain.ScenarioYear{
			Year:           y,
			Age:            row.Age,
			BaselineCorpus: row.NetCorpus,
			StrategyCorpus: row.NetCorpus.Add(deltas[y]),
			Delta:          deltas[y],
		}
	}

	delta := decimal.Zero
	if len(deltas) > 0 {
		delta = deltas[len(deltas)-1]
	}
	sc.DeltaCorpus = delta
	corpus := a.baselineFinal().Add(delta)
	gap := a.Required.Sub(corpus)
	return domain.ScenarioResult{
		Scenario:       sc,
		StrategyCorpus: corpus,
		NewGap:         gap,
		ClosesGap:      !gap.IsPositive(),
		Table:          table,
	}
}

func (a *Analyzer) deltaAt(sc domain.Scenario, year int) decimal.Decimal {
	deltas := DeltaTrajectory(sc, year+1, a.GrowthRate())
	if len(deltas) == 0 {
		return decimal.Zero
	}
	return deltas[len(deltas)-1]
}

// saleYear is the earliest year in which selling the asset lets the corpus
// clear the target, or year 0 when it never does
func (a *Analyzer) saleYear(asset domain.IlliquidAsset) int {
	for y, row := range a.Baseline {
		if !row.NetCorpus.Add(assetValueAt(asset, y)).LessThan(a.Required) {
			return y
		}
	}
	return 0
}

// assetValueAt is the asset's value at the end of year y
func assetValueAt(asset domain.IlliquidAsset, y int) decimal.Decimal {
	return asset.CurrentValue.Mul(compound(asset.AnnualReturnRate, y+1))
}

// DeltaTrajectory returns the corpus delta at the end of each of the first
// years years. Lump sums grow as L*(1+g)^(y-d); SIP increases accumulate
// 12*extra each year from d.
func DeltaTrajectory(sc domain.Scenario, years int, ratePct decimal.Decimal) []decimal.Decimal {
	if years <= 0 {
		return nil
	}
	growth := one.Add(ratePct.Div(hundred))
	out := make([]decimal.Decimal, years)
	delta := decimal.Zero
	for y := 0; y < years; y++ {
		if y >= sc.DeploymentYear {
			switch sc.Type {
			case domain.ScenarioSIPIncrease:
				delta = delta.Mul(growth).Add(sc.Magnitude.Mul(twelve))
			default:
				if y == sc.DeploymentYear {
					delta = sc.Magnitude
				} else {
					delta = delta.Mul(growth)
				}
			}
		}
		out[y] = delta
	}
	return out
}

func compound(ratePct decimal.Decimal, years int) decimal.Decimal {
	base := one.Add(ratePct.Div(hundred))
	result := one
	for i := 0; i < years; i++ {
		result = result.Mul(base)
	}
	return result
}
