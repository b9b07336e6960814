package calculation

import (
	"context"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/whatif"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the corpus projection, gap analysis,
// step-up optimization, income projection and what-if evaluation.
// It holds no state between calls.
type CalculationEngine struct {
	Debug  bool // Enable debug output for detailed calculations
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger used for debug output
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Calculate runs the full pipeline. It never fails: invalid input is clamped
// and reported in Result.Warnings.
func (ce *CalculationEngine) Calculate(plan *domain.Plan) *domain.Result {
	res, _ := ce.run(context.Background(), plan)
	return res
}

// Run is Calculate with cancellation between pipeline stages. The only error
// it returns is the context's.
func (ce *CalculationEngine) Run(ctx context.Context, plan *domain.Plan) (*domain.Result, error) {
	return ce.run(ctx, plan)
}

func (ce *CalculationEngine) run(ctx context.Context, plan *domain.Plan) (*domain.Result, error) {
	log := ce.logger()

	in := Aggregate(plan)
	params := in.Parameters
	if ce.Debug {
		log.Debugf("aggregated plan: as-of %d, age %d->%d->%d, corpus %s, monthly SIP %s",
			in.AsOfYear, params.CurrentAge, params.RetirementAge, params.LifeExpectancy,
			in.CurrentCorpus().StringFixed(2), in.CurrentMonthlySIP().StringFixed(2))
	}
	for _, w := range in.Warnings {
		log.Warnf("%s", w)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matrix := ProjectCorpus(in, ProjectionOptions{})
	final := FinalCorpus(in, matrix)
	if ce.Debug {
		log.Debugf("projection: %d rows, final corpus %s", len(matrix), final.StringFixed(2))
	}

	gap := BuildGapAnalysis(in, final)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opt := OptimizeStepUp(in, matrix, gap.RequiredCorpus)
	if ce.Debug {
		log.Debugf("step-up optimizer (%s): canStopEarly=%t stopYear=%d", opt.Mode, opt.CanStopEarly, opt.OptimalStopYear)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	income := ProjectIncome(in, final, params.IncomeStrategy)

	analyzer := whatif.NewAnalyzer(in, matrix, gap.RequiredCorpus)
	wi, err := analyzer.Analyze()
	warnings := append([]string(nil), in.Warnings...)
	if err != nil {
		log.Warnf("what-if: %v", err)
		warnings = append(warnings, err.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &domain.Result{
		Summary:                  ce.buildSummary(plan, in, matrix, gap, income),
		GapAnalysis:              gap,
		Matrix:                   matrix,
		MaturingBeforeRetirement: in.Maturities,
		StepUpOptimization:       opt,
		IncomeProjection:         income,
		WhatIf:                   wi,
		Warnings:                 warnings,
	}
	res.Recommendations = GenerateRecommendations(in, res)
	return res, nil
}

// Project runs only the aggregation and accumulation projection
func (ce *CalculationEngine) Project(plan *domain.Plan, opts ProjectionOptions) (*domain.AggregatedInput, []domain.ProjectionRow) {
	in := Aggregate(plan)
	return in, ProjectCorpus(in, opts)
}

// Evaluate projects the plan, optionally with a flat extra monthly mutual
// fund SIP, and returns the gap analysis without the optimizer, income and
// what-if stages. Used by the break-even solver.
func (ce *CalculationEngine) Evaluate(plan *domain.Plan, extraMonthlySIP decimal.Decimal) domain.GapAnalysis {
	in := Aggregate(plan)
	rows := ProjectCorpus(in, ProjectionOptions{ExtraMonthlySIP: extraMonthlySIP, SkipRequirements: true})
	return BuildGapAnalysis(in, FinalCorpus(in, rows))
}

// Gap returns the corpus gap for the plan's selected strategy
func (ce *CalculationEngine) Gap(plan *domain.Plan, extraMonthlySIP decimal.Decimal) decimal.Decimal {
	return ce.Evaluate(plan, extraMonthlySIP).CorpusGap
}

func (ce *CalculationEngine) buildSummary(plan *domain.Plan, in *domain.AggregatedInput, matrix []domain.ProjectionRow, gap domain.GapAnalysis, income domain.IncomeProjection) domain.Summary {
	params := in.Parameters
	n := params.YearsToRetirement()
	final := FinalCorpus(in, matrix)

	s := domain.Summary{
		AsOfYear:                    in.AsOfYear,
		CurrentAge:                  params.CurrentAge,
		RetirementAge:               params.RetirementAge,
		LifeExpectancy:              params.LifeExpectancy,
		YearsToRetirement:           n,
		RetirementYears:             params.RetirementYears(),
		SelectedStrategy:            params.IncomeStrategy,
		CurrentCorpus:               in.CurrentCorpus(),
		CurrentMonthlySIP:           in.CurrentMonthlySIP(),
		FinalCorpus:                 final,
		FinalCorpusTodaysValue:      final.Div(growthFactor(params.InflationRate, n)),
		TotalContributions:          decimalZero,
		TotalInflows:                decimalZero,
		TotalOutflows:               decimalZero,
		IlliquidValueAtRetire:       in.Illiquid.OpeningBalance,
		MonthlyExpensesAtRetirement: gap.AnnualNeedAtRetire.Div(decimalTwelve),
		RequiredCorpus:              gap.RequiredCorpus,
		CorpusGap:                   gap.CorpusGap,
		CanRetire:                   !gap.Shortfall,
	}
	if plan != nil {
		s.PlanName = plan.Name
	}

	for _, row := range matrix {
		s.TotalContributions = s.TotalContributions.Add(row.Contributions.Total())
		s.TotalInflows = s.TotalInflows.Add(row.TotalInflow)
		s.TotalOutflows = s.TotalOutflows.Add(row.GoalOutflow)
		if row.Shortfall {
			s.ShortfallYears = append(s.ShortfallYears, row.Year)
		}
		if s.EarliestRetirementAge == nil && row.CanRetire.Get(params.IncomeStrategy) {
			age := row.Age + 1
			s.EarliestRetirementAge = &age
		}
	}
	if len(matrix) > 0 {
		s.IlliquidValueAtRetire = matrix[len(matrix)-1].IlliquidValue
	}
	s.TotalGrowth = final.Sub(s.CurrentCorpus).Sub(s.TotalContributions).Sub(s.TotalInflows).Add(s.TotalOutflows)

	if len(income.Yearly) > 0 {
		s.MonthlyIncomeAtRetirement = income.Yearly[0].TotalMonthlyIncome
	} else {
		s.MonthlyIncomeAtRetirement = decimalZero
	}
	return s
}
