package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders a one-screen summary
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	var buf bytes.Buffer
	s := report.Result.Summary
	ga := report.Result.GapAnalysis

	fmt.Fprintln(&buf, "RETIREMENT CORPUS SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if s.PlanName != "" {
		fmt.Fprintf(&buf, "Plan: %s\n", s.PlanName)
	}
	fmt.Fprintf(&buf, "Age %d → retire at %d (%d years), plan to %d\n", s.CurrentAge, s.RetirementAge, s.YearsToRetirement, s.LifeExpectancy)
	fmt.Fprintf(&buf, "Projected corpus:  %s (%s in today's money)\n", FormatCompactINR(s.FinalCorpus), FormatCompactINR(s.FinalCorpusTodaysValue))
	fmt.Fprintf(&buf, "Required corpus:   %s (%s)\n", FormatCompactINR(ga.RequiredCorpus), ga.SelectedStrategy.DisplayName())
	if ga.Shortfall {
		fmt.Fprintf(&buf, "Gap:               %s short; add %s/month SIP\n", FormatCompactINR(ga.CorpusGap), FormatRupees(ga.AdditionalMonthlySIP))
	} else {
		fmt.Fprintf(&buf, "Gap:               none (surplus %s)\n", FormatCompactINR(ga.CorpusGap.Neg()))
	}
	fmt.Fprintf(&buf, "Monthly income at retirement: %s\n", FormatRupees(s.MonthlyIncomeAtRetirement))
	if opt := report.Result.StepUpOptimization; opt.CanStopEarly {
		fmt.Fprintf(&buf, "Step-up can stop after year %d (age %d)\n", opt.OptimalStopYear, opt.OptimalStopAge)
	}
	for _, w := range report.Result.Warnings {
		fmt.Fprintf(&buf, "⚠ %s\n", w)
	}
	return buf.Bytes(), nil
}

// ConsoleVerboseFormatter renders the full report: assumptions, gap by
// strategy, the year-by-year matrix, optimizer, income and what-if tables.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	var buf bytes.Buffer
	r := report.Result
	s := r.Summary

	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	fmt.Fprintln(&buf, "RETIREMENT CORPUS PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 96))
	if s.PlanName != "" {
		fmt.Fprintf(&buf, "Plan: %s (as of %d)\n", s.PlanName, s.AsOfYear)
	}
	fmt.Fprintln(&buf)

	if report.Plan != nil {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range Assumptions(report.Plan.Parameters) {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "Current age / retirement / life expectancy: %d / %d / %d\n", s.CurrentAge, s.RetirementAge, s.LifeExpectancy)
	fmt.Fprintf(&buf, "Current corpus:          %s\n", FormatRupees(s.CurrentCorpus))
	fmt.Fprintf(&buf, "Current monthly SIP:     %s\n", FormatRupees(s.CurrentMonthlySIP))
	fmt.Fprintf(&buf, "Total contributions:     %s\n", FormatRupees(s.TotalContributions))
	fmt.Fprintf(&buf, "Net inflows / outflows:  %s / %s\n", FormatRupees(s.TotalInflows), FormatRupees(s.TotalOutflows))
	fmt.Fprintf(&buf, "Investment growth:       %s\n", FormatRupees(s.TotalGrowth))
	fmt.Fprintf(&buf, "Projected corpus:        %s\n", FormatRupees(s.FinalCorpus))
	fmt.Fprintf(&buf, "  in today's money:      %s\n", FormatRupees(s.FinalCorpusTodaysValue))
	if s.IlliquidValueAtRetire.IsPositive() {
		fmt.Fprintf(&buf, "Illiquid assets:         %s (not counted)\n", FormatRupees(s.IlliquidValueAtRetire))
	}
	fmt.Fprintf(&buf, "Monthly expenses at retirement: %s\n", FormatRupees(s.MonthlyExpensesAtRetirement))
	if s.EarliestRetirementAge != nil {
		fmt.Fprintf(&buf, "Earliest feasible retirement age: %d\n", *s.EarliestRetirementAge)
	}
	fmt.Fprintln(&buf)

	writeGapAnalysis(&buf, r.GapAnalysis)
	writeMatrix(&buf, r.Matrix, r.GapAnalysis.SelectedStrategy)
	writeMaturities(&buf, r.MaturingBeforeRetirement)
	writeStepUp(&buf, r.StepUpOptimization)
	writeIncome(&buf, r.IncomeProjection)
	writeWhatIf(&buf, r.WhatIf)

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(&buf, "RECOMMENDATIONS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&buf, "• %s\n", rec.Message)
		}
		fmt.Fprintln(&buf)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintln(&buf, "WARNINGS")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		for _, w := range r.Warnings {
			fmt.Fprintf(&buf, "⚠ %s\n", w)
		}
	}
	return buf.Bytes(), nil
}

func writeGapAnalysis(buf *bytes.Buffer, ga domain.GapAnalysis) {
	fmt.Fprintln(buf, "GAP ANALYSIS")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "Monthly need today: %s; first-year need at retirement: %s\n", FormatRupees(ga.MonthlyNeedToday), FormatRupees(ga.AnnualNeedAtRetire))
	fmt.Fprintf(buf, "%-24s %16s %16s %8s\n", "Strategy", "Required", "Gap", "Funded")
	for _, sr := range ga.Strategies {
		marker := " "
		if sr.Strategy == ga.SelectedStrategy {
			marker = "*"
		}
		fmt.Fprintf(buf, "%s%-23s %16s %16s %7s%%\n", marker, sr.Strategy.DisplayName(),
			FormatCompactINR(sr.RequiredCorpus), signedCompact(sr.Gap), sr.FundedRatio.StringFixed(0))
	}
	if ga.Shortfall && ga.AdditionalMonthlySIP.IsPositive() {
		fmt.Fprintf(buf, "Extra monthly SIP to close the gap: %s\n", FormatRupees(ga.AdditionalMonthlySIP))
	}
	fmt.Fprintln(buf)
}

func writeMatrix(buf *bytes.Buffer, rows []domain.ProjectionRow, strategy domain.IncomeStrategy) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(buf, "YEAR-BY-YEAR PROJECTION")
	fmt.Fprintln(buf, strings.Repeat("-", 96))
	fmt.Fprintf(buf, "%5s %4s %12s %12s %12s %12s %12s %13s %4s\n",
		"Year", "Age", "PPF", "EPF", "MF", "Other", "Monthly SIP", "Net corpus", "OK")
	for _, row := range rows {
		ok := ""
		if row.CanRetire.Get(strategy) {
			ok = "✓"
		}
		if row.Shortfall {
			ok = "✗"
		}
		fmt.Fprintf(buf, "%5d %4d %12s %12s %12s %12s %12s %13s %4s\n",
			row.CalendarYear, row.Age,
			FormatCompactINR(row.Balances.PPF), FormatCompactINR(row.Balances.EPF),
			FormatCompactINR(row.Balances.MutualFund), FormatCompactINR(row.Balances.OtherLiquid),
			FormatRupees(row.MonthlySIP), FormatCompactINR(row.NetCorpus), ok)
	}
	fmt.Fprintln(buf)
}

func writeMaturities(buf *bytes.Buffer, m domain.MaturitySummary) {
	if len(m.Items) == 0 {
		return
	}
	fmt.Fprintln(buf, "MATURING BEFORE RETIREMENT")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	for _, item := range m.Items {
		status := "pending"
		if item.Reinvested {
			status = "reinvested"
		}
		fmt.Fprintf(buf, "%-24s %5d age %-3d %14s  %s\n", truncate(item.Name, 24), item.Year, item.Age, FormatRupees(item.Amount), status)
	}
	fmt.Fprintf(buf, "Total %s (reinvested %s, pending %s)\n", FormatRupees(m.Total), FormatRupees(m.ReinvestedTotal), FormatRupees(m.PendingTotal))
	fmt.Fprintln(buf)
}

func writeStepUp(buf *bytes.Buffer, opt domain.StepUpOptimization) {
	if len(opt.Candidates) == 0 {
		return
	}
	fmt.Fprintf(buf, "STEP-UP OPTIMIZATION (%s)\n", opt.Mode)
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	if opt.CanStopEarly {
		fmt.Fprintf(buf, "Stop stepping up after year %d (age %d) at %s/month; saves %s\n",
			opt.OptimalStopYear, opt.OptimalStopAge, FormatRupees(opt.MonthlySIPAtStop), FormatRupees(opt.ContributionSaving))
	} else {
		fmt.Fprintln(buf, "The full step-up schedule is needed")
	}
	fmt.Fprintf(buf, "%5s %4s %14s %14s %14s\n", "Stop", "Age", "Monthly SIP", "Corpus", "Surplus")
	for _, c := range opt.Candidates {
		fmt.Fprintf(buf, "%5d %4d %14s %14s %14s\n", c.StopYear, c.Age, FormatRupees(c.MonthlySIP), FormatCompactINR(c.ProjectedCorpus), signedCompact(c.SurplusDeficit.Neg()))
	}
	fmt.Fprintln(buf)
}

func writeIncome(buf *bytes.Buffer, ip domain.IncomeProjection) {
	if len(ip.Samples) == 0 {
		return
	}
	fmt.Fprintf(buf, "INCOME PROJECTION (%s)\n", ip.Strategy.DisplayName())
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "%5s %4s %14s %14s %14s\n", "Year", "Age", "Corpus", "Income/mo", "Expenses/mo")
	for _, sm := range ip.Samples {
		fmt.Fprintf(buf, "%5d %4d %14s %14s %14s\n", sm.YearOffset, sm.Age, FormatCompactINR(sm.Corpus), FormatRupees(sm.TotalMonthlyIncome), FormatRupees(sm.MonthlyExpenses))
	}
	if ip.DepletionYear != nil {
		fmt.Fprintf(buf, "Corpus depleted in retirement year %d\n", *ip.DepletionYear)
	}
	fmt.Fprintln(buf)
}

func writeWhatIf(buf *bytes.Buffer, wi domain.WhatIfAnalysis) {
	if len(wi.Scenarios) == 0 {
		return
	}
	fmt.Fprintf(buf, "WHAT-IF SCENARIOS (growth %s)\n", FormatPercentage(wi.GrowthRate))
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	for _, sc := range wi.Scenarios {
		closes := ""
		if sc.ClosesGap {
			closes = "  closes gap"
		}
		fmt.Fprintf(buf, "%-24s year %-3d %14s → %s%s\n", truncate(sc.Scenario.Name, 24), sc.Scenario.DeploymentYear,
			signedCompact(sc.Scenario.DeltaCorpus), FormatCompactINR(sc.StrategyCorpus), closes)
	}
	if len(wi.Scenarios) > 1 {
		fmt.Fprintf(buf, "Combined: %s → %s\n", signedCompact(wi.CombinedDelta), FormatCompactINR(wi.CombinedCorpus))
	}
	fmt.Fprintln(buf)
}

func signedCompact(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + FormatCompactINR(d)
	}
	return FormatCompactINR(d)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatStepUp renders only the step-up optimizer section
func FormatStepUp(opt domain.StepUpOptimization) string {
	var buf bytes.Buffer
	writeStepUp(&buf, opt)
	return buf.String()
}

// FormatGap renders only the gap analysis section
func FormatGap(ga domain.GapAnalysis) string {
	var buf bytes.Buffer
	writeGapAnalysis(&buf, ga)
	return buf.String()
}

// FormatWhatIf renders only the what-if section
func FormatWhatIf(wi domain.WhatIfAnalysis) string {
	var buf bytes.Buffer
	writeWhatIf(&buf, wi)
	return buf.String()
}
