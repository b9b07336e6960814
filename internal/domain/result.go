package domain

import (
	"github.com/shopspring/decimal"
)

// Result is the complete engine output. Field names are part of the
// external contract and must stay stable.
type Result struct {
	Summary                  Summary            `json:"summary"`
	GapAnalysis              GapAnalysis        `json:"gapAnalysis"`
	Matrix                   []ProjectionRow    `json:"matrix"`
	MaturingBeforeRetirement MaturitySummary    `json:"maturingBeforeRetirement"`
	Recommendations          []Recommendation   `json:"recommendations"`
	StepUpOptimization       StepUpOptimization `json:"stepUpOptimization"`
	IncomeProjection         IncomeProjection   `json:"incomeProjection"`
	WhatIf                   WhatIfAnalysis     `json:"whatIf"`
	Warnings                 []string           `json:"warnings"`
}

// Summary carries the headline metrics
type Summary struct {
	PlanName          string         `json:"planName"`
	AsOfYear          int            `json:"asOfYear"`
	CurrentAge        int            `json:"currentAge"`
	RetirementAge     int            `json:"retirementAge"`
	LifeExpectancy    int            `json:"lifeExpectancy"`
	YearsToRetirement int            `json:"yearsToRetirement"`
	RetirementYears   int            `json:"retirementYears"`
	SelectedStrategy  IncomeStrategy `json:"selectedStrategy"`

	CurrentCorpus          decimal.Decimal `json:"currentCorpus"`
	CurrentMonthlySIP      decimal.Decimal `json:"currentMonthlySip"`
	FinalCorpus            decimal.Decimal `json:"finalCorpus"`
	FinalCorpusTodaysValue decimal.Decimal `json:"finalCorpusTodaysValue"`
	TotalContributions     decimal.Decimal `json:"totalContributions"`
	TotalInflows           decimal.Decimal `json:"totalInflows"`
	TotalOutflows          decimal.Decimal `json:"totalOutflows"`
	TotalGrowth            decimal.Decimal `json:"totalGrowth"`
	IlliquidValueAtRetire  decimal.Decimal `json:"illiquidValueAtRetirement"`

	MonthlyExpensesAtRetirement decimal.Decimal `json:"monthlyExpensesAtRetirement"`
	RequiredCorpus              decimal.Decimal `json:"requiredCorpus"`
	CorpusGap                   decimal.Decimal `json:"corpusGap"`
	CanRetire                   bool            `json:"canRetire"`
	EarliestRetirementAge       *int            `json:"earliestRetirementAge,omitempty"`
	MonthlyIncomeAtRetirement   decimal.Decimal `json:"monthlyIncomeAtRetirement"`
	ShortfallYears              []int           `json:"shortfallYears,omitempty"`
}

// StrategyRequirement is the required corpus and gap for one strategy
type StrategyRequirement struct {
	Strategy       IncomeStrategy  `json:"strategy"`
	RequiredCorpus decimal.Decimal `json:"requiredCorpus"`
	Gap            decimal.Decimal `json:"gap"` // > 0 is a shortfall
	Shortfall      bool            `json:"shortfall"`
	FundedRatio    decimal.Decimal `json:"fundedRatio"` // projected / required, percent
}

// GapAnalysis compares projected and required corpus
type GapAnalysis struct {
	SelectedStrategy     IncomeStrategy        `json:"selectedStrategy"`
	ProjectedCorpus      decimal.Decimal       `json:"projectedCorpus"`
	RequiredCorpus       decimal.Decimal       `json:"requiredCorpus"`
	CorpusGap            decimal.Decimal       `json:"corpusGap"`
	Shortfall            bool                  `json:"shortfall"`
	AnnualNeedAtRetire   decimal.Decimal       `json:"annualNeedAtRetirement"`
	MonthlyNeedToday     decimal.Decimal       `json:"monthlyNeedToday"`
	AdditionalMonthlySIP decimal.Decimal       `json:"additionalMonthlySip"`
	Strategies           []StrategyRequirement `json:"strategies"`
}

// MaturityItem is a payout expected before retirement
type MaturityItem struct {
	Name       string          `json:"name"`
	Source     string          `json:"source"` // investment, insurance
	Year       int             `json:"year"`
	Age        int             `json:"age"`
	Amount     decimal.Decimal `json:"amount"`
	Reinvested bool            `json:"reinvested"`
}

// MaturitySummary lists payouts that land before retirement
type MaturitySummary struct {
	Items                []MaturityItem  `json:"items"`
	Total                decimal.Decimal `json:"total"`
	ReinvestedTotal      decimal.Decimal `json:"reinvestedTotal"`
	PendingTotal         decimal.Decimal `json:"pendingTotal"`
	AfterRetirementTotal decimal.Decimal `json:"afterRetirementTotal"`
}

// RecommendationType categorizes a recommendation
type RecommendationType string

const (
	RecommendIncreaseSIP   RecommendationType = "increase_sip"
	RecommendStopStepUp    RecommendationType = "stop_step_up"
	RecommendWhatIf        RecommendationType = "what_if"
	RecommendGoalShortfall RecommendationType = "goal_shortfall"
	RecommendDepletion     RecommendationType = "depletion"
	RecommendOnTrack       RecommendationType = "on_track"
	RecommendLoans         RecommendationType = "loans"
	RecommendReinvest      RecommendationType = "reinvest"
)

// Recommendation is an actionable suggestion derived from the result
type Recommendation struct {
	Type    RecommendationType `json:"type"`
	Message string             `json:"message"`
	Impact  decimal.Decimal    `json:"impact"`
}

// StepUpCandidate is one row of the optimizer's scenario table
type StepUpCandidate struct {
	StopYear        int             `json:"stopYear"`
	Age             int             `json:"age"`
	MonthlySIP      decimal.Decimal `json:"monthlySip"`
	ProjectedCorpus decimal.Decimal `json:"projectedCorpus"`
	SurplusDeficit  decimal.Decimal `json:"surplusDeficit"`
	MeetsTarget     bool            `json:"meetsTarget"`
}

// StepUpOptimization is the optimizer's result
type StepUpOptimization struct {
	Mode               OptimizerMode     `json:"mode"`
	TargetCorpus       decimal.Decimal   `json:"targetCorpus"`
	FullScheduleCorpus decimal.Decimal   `json:"fullScheduleCorpus"`
	CanStopEarly       bool              `json:"canStopEarly"`
	OptimalStopYear    int               `json:"optimalStopYear"`
	OptimalStopAge     int               `json:"optimalStopAge"`
	MonthlySIPAtStop   decimal.Decimal   `json:"monthlySipAtStop"`
	ContributionSaving decimal.Decimal   `json:"contributionSaving"`
	Candidates         []StepUpCandidate `json:"candidates"`
}

// IncomeSample is the post-retirement state at one year offset
type IncomeSample struct {
	YearOffset         int             `json:"yearOffset"`
	Age                int             `json:"age"`
	Corpus             decimal.Decimal `json:"corpus"`
	AnnualWithdrawal   decimal.Decimal `json:"annualWithdrawal"`
	MonthlyIncome      decimal.Decimal `json:"monthlyIncome"` // corpus-funded only
	MonthlyRental      decimal.Decimal `json:"monthlyRental"`
	MonthlyAnnuity     decimal.Decimal `json:"monthlyAnnuity"`
	TotalMonthlyIncome decimal.Decimal `json:"totalMonthlyIncome"`
	MonthlyExpenses    decimal.Decimal `json:"monthlyExpenses"`
	Depleted           bool            `json:"depleted"`
}

// IncomeProjection is the withdrawal-phase simulation for one strategy
type IncomeProjection struct {
	Strategy       IncomeStrategy  `json:"strategy"`
	StartingCorpus decimal.Decimal `json:"startingCorpus"`
	SampleInterval int             `json:"sampleInterval"`
	Samples        []IncomeSample  `json:"samples"`
	Yearly         []IncomeSample  `json:"yearly"`
	DepletionYear  *int            `json:"depletionYear,omitempty"`
	EndingCorpus   decimal.Decimal `json:"endingCorpus"`
}

// Scenario is a resolved what-if intervention
type Scenario struct {
	Name           string          `json:"name"`
	Type           ScenarioType    `json:"type"`
	Source         string          `json:"source"`
	DeploymentYear int             `json:"deploymentYear"`
	Magnitude      decimal.Decimal `json:"magnitude"` // lump sum, or extra monthly SIP
	DeltaCorpus    decimal.Decimal `json:"deltaCorpus"`
}

// ScenarioYear is one row of a scenario comparison table
type ScenarioYear struct {
	Year           int             `json:"year"`
	Age            int             `json:"age"`
	BaselineCorpus decimal.Decimal `json:"baselineCorpus"`
	StrategyCorpus decimal.Decimal `json:"strategyCorpus"`
	Delta          decimal.Decimal `json:"delta"`
}

// ScenarioResult is a scenario evaluated against the baseline
type ScenarioResult struct {
	Scenario       Scenario        `json:"scenario"`
	StrategyCorpus decimal.Decimal `json:"strategyCorpus"`
	NewGap         decimal.Decimal `json:"newGap"`
	ClosesGap      bool            `json:"closesGap"`
	Table          []ScenarioYear  `json:"table"`
}

// WhatIfAnalysis groups all evaluated scenarios
type WhatIfAnalysis struct {
	GrowthRate     decimal.Decimal  `json:"growthRate"`
	BaselineCorpus decimal.Decimal  `json:"baselineCorpus"`
	Scenarios      []ScenarioResult `json:"scenarios"`
	CombinedDelta  decimal.Decimal  `json:"combinedDelta"`
	CombinedCorpus decimal.Decimal  `json:"combinedCorpus"`
	CombinedGap    decimal.Decimal  `json:"combinedGap"`
}
