package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/corpus/internal/calculation"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func buildTestReport() *Report {
	plan := &domain.Plan{
		Name:     "Formatter test",
		AsOfYear: 2025,
		Parameters: domain.PlanningParameters{
			CurrentAge:              35,
			RetirementAge:           60,
			LifeExpectancy:          85,
			InflationRate:           d("6"),
			PPFReturn:               d("7.1"),
			EPFReturn:               d("8.25"),
			MFReturn:                d("12"),
			OtherReturn:             d("7"),
			IlliquidReturn:          d("5"),
			CorpusReturn:            d("10"),
			WithdrawalRate:          d("8"),
			SIPStepUpPercent:        d("10"),
			StepUpEffectiveFromYear: 1,
			IncomeStrategy:          domain.StrategySustainable,
			MonthlyExpenses:         d("200000"),
			IncomeSampleInterval:    5,
		},
		Investments: []domain.InvestmentRecord{
			{Name: "Equity funds", Type: domain.InvestmentMutualFund, CurrentValue: d("2000000"), MonthlyContribution: d("50000")},
			{Name: "PPF", Type: domain.InvestmentPPF, CurrentValue: d("500000"), MonthlyContribution: d("12500")},
		},
		Goals: []domain.GoalRecord{
			{Name: "College", Amount: d("2500000"), TargetDate: time.Date(2036, 6, 30, 0, 0, 0, 0, time.UTC)},
		},
	}
	return NewReport(plan, calculation.NewCalculationEngine().Calculate(plan))
}

func TestFormatterFunc(t *testing.T) {
	called := false
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(report *Report) ([]byte, error) {
			called = true
			return []byte("test output"), nil
		},
	}

	out, err := f.Format(buildTestReport())
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "test-formatter", f.Name())
	assert.Equal(t, []byte("test output"), out)
}

func TestWriteFormatted(t *testing.T) {
	t.Chdir(t.TempDir())

	f := FormatterFunc{ID: "test", F: func(*Report) ([]byte, error) { return []byte("content"), nil }}
	filename, err := WriteFormatted(f, buildTestReport(), "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "corpus_report_"))
	assert.True(t, strings.HasSuffix(filename, ".txt"))

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestWriteFormatted_FormatterError(t *testing.T) {
	f := FormatterFunc{ID: "err", F: func(*Report) ([]byte, error) { return nil, fmt.Errorf("formatter error") }}
	filename, err := WriteFormatted(f, buildTestReport(), "txt")
	assert.ErrorContains(t, err, "formatter error")
	assert.Empty(t, filename)
}

func TestGetFormatterByName(t *testing.T) {
	for _, name := range []string{"console", "console-lite", "csv", "summary-csv", "json", "markdown"} {
		f := GetFormatterByName(name)
		require.NotNil(t, f, name)
		assert.Equal(t, name, f.Name())
	}

	assert.Equal(t, "console", GetFormatterByName("verbose").Name())
	assert.Equal(t, "markdown", GetFormatterByName(" MD ").Name())
	assert.Nil(t, GetFormatterByName("html"))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "console-lite", "csv", "json", "markdown", "summary-csv"}, names)
	assert.Contains(t, AvailableFormatAliases(), "verbose")
}

func TestFormatters_NilReport(t *testing.T) {
	for _, name := range AvailableFormatterNames() {
		_, err := GetFormatterByName(name).Format(nil)
		assert.Error(t, err, name)
	}
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "RETIREMENT CORPUS SUMMARY")
	assert.Contains(t, content, "Plan: Formatter test")
	assert.Contains(t, content, "Sustainable withdrawal")
	assert.Contains(t, content, " Cr")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	report := buildTestReport()
	out, err := ConsoleVerboseFormatter{}.Format(report)
	require.NoError(t, err)

	content := string(out)
	assert.Contains(t, content, "RETIREMENT CORPUS PROJECTION")
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, "Inflation: 6.0% a year")
	assert.Contains(t, content, "GAP ANALYSIS")
	assert.Contains(t, content, "*Sustainable withdrawal")
	assert.Contains(t, content, "YEAR-BY-YEAR PROJECTION")
	assert.Contains(t, content, "2049")
	assert.Contains(t, content, "INCOME PROJECTION")
	if len(report.Result.Recommendations) > 0 {
		assert.Contains(t, content, "RECOMMENDATIONS")
	}
}

func TestCSVMatrixFormatter(t *testing.T) {
	report := buildTestReport()
	out, err := CSVMatrixFormatter{}.Format(report)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(report.Result.Matrix)+1)
	assert.Equal(t, "Year", records[0][0])
	assert.Len(t, records[0], 20)
	assert.Equal(t, "2025", records[1][1])
	assert.Equal(t, report.Result.Matrix[0].NetCorpus.StringFixed(2), records[1][12])
}

func TestCSVSummarizer(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "SUSTAINABLE", records[1][0])
	assert.Equal(t, "true", records[1][1])
	assert.Equal(t, "false", records[2][1])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	for _, key := range []string{"summary", "gapAnalysis", "matrix", "maturingBeforeRetirement", "recommendations"} {
		assert.Contains(t, decoded, key)
	}
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := MarkdownFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	content := string(out)
	assert.True(t, strings.HasPrefix(content, "# Retirement corpus projection: Formatter test"))
	assert.Contains(t, content, "| Projected corpus |")
	assert.Contains(t, content, "**Sustainable withdrawal**")
	assert.Contains(t, content, "## Year by year")
	assert.Contains(t, content, "## Assumptions")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown([]byte("# Title\n\nSome **bold** text\n"), 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}

func TestAssumptions(t *testing.T) {
	p := buildTestReport().Plan.Parameters
	lines := Assumptions(p)
	assert.Len(t, lines, 4)

	p.RateReduction = domain.RateReduction{Enabled: true, Percent: d("0.5"), EveryYears: 5}
	p.WhatIfReturn = d("9")
	lines = Assumptions(p)
	require.Len(t, lines, 6)
	assert.Contains(t, lines[4], "every 5 years")
	assert.Contains(t, lines[5], "9.0%")
}

func TestSectionFormatters(t *testing.T) {
	r := buildTestReport().Result

	assert.Contains(t, FormatGap(r.GapAnalysis), "GAP ANALYSIS")
	assert.Contains(t, FormatStepUp(r.StepUpOptimization), "STEP-UP OPTIMIZATION")
	assert.Empty(t, FormatStepUp(domain.StepUpOptimization{}))
	assert.Empty(t, FormatWhatIf(domain.WhatIfAnalysis{}))
}
