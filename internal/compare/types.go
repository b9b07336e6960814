package compare

import (
	"fmt"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult holds the headline metrics of one plan variant
type ComparisonResult struct {
	ScenarioName string         `json:"scenarioName"`
	Description  string         `json:"description"`
	Result       *domain.Result `json:"-"`

	// Key Metrics
	RetirementAge             int             `json:"retirementAge"`
	FinalCorpus               decimal.Decimal `json:"finalCorpus"`
	RequiredCorpus            decimal.Decimal `json:"requiredCorpus"`
	CorpusGap                 decimal.Decimal `json:"corpusGap"`
	CanRetire                 bool            `json:"canRetire"`
	TotalContributions        decimal.Decimal `json:"totalContributions"`
	MonthlyIncomeAtRetirement decimal.Decimal `json:"monthlyIncomeAtRetirement"`
	CanStopStepUpEarly        bool            `json:"canStopStepUpEarly"`
	OptimalStopYear           int             `json:"optimalStopYear"`
	DepletionAge              *int            `json:"depletionAge,omitempty"`

	// Comparison to Base
	CorpusDiffFromBase       decimal.Decimal `json:"corpusDiffFromBase"`
	CorpusPctFromBase        decimal.Decimal `json:"corpusPctFromBase"`
	GapDiffFromBase          decimal.Decimal `json:"gapDiffFromBase"`
	IncomeDiffFromBase       decimal.Decimal `json:"incomeDiffFromBase"`
	ContributionDiffFromBase decimal.Decimal `json:"contributionDiffFromBase"`
}

// ComparisonSet represents a collection of plan comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// MetricsCalculator extracts key metrics from engine results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a result
func (mc *MetricsCalculator) CalculateMetrics(name string, result *domain.Result) ComparisonResult {
	s := result.Summary
	cr := ComparisonResult{
		ScenarioName:              name,
		Result:                    result,
		RetirementAge:             s.RetirementAge,
		FinalCorpus:               s.FinalCorpus,
		RequiredCorpus:            s.RequiredCorpus,
		CorpusGap:                 s.CorpusGap,
		CanRetire:                 s.CanRetire,
		TotalContributions:        s.TotalContributions,
		MonthlyIncomeAtRetirement: s.MonthlyIncomeAtRetirement,
		CanStopStepUpEarly:        result.StepUpOptimization.CanStopEarly,
		OptimalStopYear:           result.StepUpOptimization.OptimalStopYear,
	}

	if dy := result.IncomeProjection.DepletionYear; dy != nil && *dy < s.RetirementYears {
		age := s.RetirementAge + *dy
		cr.DepletionAge = &age
	}

	return cr
}

// CalculateComparison computes comparison metrics between a variant and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.CorpusDiffFromBase = scenario.FinalCorpus.Sub(base.FinalCorpus)

	if !base.FinalCorpus.IsZero() {
		scenario.CorpusPctFromBase = scenario.CorpusDiffFromBase.
			Div(base.FinalCorpus).
			Mul(decimal.NewFromInt(100))
	}

	scenario.GapDiffFromBase = scenario.CorpusGap.Sub(base.CorpusGap)
	scenario.IncomeDiffFromBase = scenario.MonthlyIncomeAtRetirement.Sub(base.MonthlyIncomeAtRetirement)
	scenario.ContributionDiffFromBase = scenario.TotalContributions.Sub(base.TotalContributions)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Largest corpus at retirement
	best := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.FinalCorpus.GreaterThan(best.FinalCorpus) {
			best = alt
		}
	}
	if best != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Largest Corpus: %s ends with %s more at retirement than the base plan",
			best.ScenarioName, best.FinalCorpus.Sub(base.FinalCorpus).StringFixed(0)))
	}

	// Smallest gap
	smallest := base
	for i := range compSet.AlternativeResults {
		if alt := &compSet.AlternativeResults[i]; alt.CorpusGap.LessThan(smallest.CorpusGap) {
			smallest = alt
		}
	}
	if smallest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Smallest Gap: %s narrows the corpus gap by %s",
			smallest.ScenarioName, base.CorpusGap.Sub(smallest.CorpusGap).StringFixed(0)))
	}

	// First variant that turns a shortfall into a surplus
	if !base.CanRetire {
		for _, alt := range compSet.AlternativeResults {
			if alt.CanRetire {
				recommendations = append(recommendations, fmt.Sprintf(
					"Closes Gap: %s fully funds retirement at age %d", alt.ScenarioName, alt.RetirementAge))
				break
			}
		}
	}

	// Cheapest variant that still funds retirement
	var cheapest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if !alt.CanRetire || !alt.ContributionDiffFromBase.IsNegative() {
			continue
		}
		if cheapest == nil || alt.TotalContributions.LessThan(cheapest.TotalContributions) {
			cheapest = alt
		}
	}
	if cheapest != nil {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Contributions: %s stays funded while investing %s less",
			cheapest.ScenarioName, cheapest.ContributionDiffFromBase.Abs().StringFixed(0)))
	}

	return recommendations
}
