package output

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/rgehrsitz/corpus/internal/domain"
)

// MarkdownFormatter renders the report as GitHub-flavoured markdown
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	var buf bytes.Buffer
	r := report.Result
	s := r.Summary
	ga := r.GapAnalysis

	title := "Retirement corpus projection"
	if s.PlanName != "" {
		title += ": " + s.PlanName
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)

	status := "✅ On track"
	if ga.Shortfall {
		status = "⚠️ Shortfall"
	}
	fmt.Fprintf(&buf, "**%s** under *%s*. Retiring at %d after %d years.\n\n", status, ga.SelectedStrategy.DisplayName(), s.RetirementAge, s.YearsToRetirement)

	fmt.Fprintln(&buf, "| Metric | Value |")
	fmt.Fprintln(&buf, "|---|---:|")
	fmt.Fprintf(&buf, "| Projected corpus | %s |\n", FormatRupees(s.FinalCorpus))
	fmt.Fprintf(&buf, "| In today's money | %s |\n", FormatRupees(s.FinalCorpusTodaysValue))
	fmt.Fprintf(&buf, "| Required corpus | %s |\n", FormatRupees(ga.RequiredCorpus))
	fmt.Fprintf(&buf, "| Gap | %s |\n", FormatRupees(ga.CorpusGap))
	fmt.Fprintf(&buf, "| Extra monthly SIP | %s |\n", FormatRupees(ga.AdditionalMonthlySIP))
	fmt.Fprintf(&buf, "| Monthly income at retirement | %s |\n\n", FormatRupees(s.MonthlyIncomeAtRetirement))

	fmt.Fprintln(&buf, "## Strategies")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Strategy | Required | Gap | Funded |")
	fmt.Fprintln(&buf, "|---|---:|---:|---:|")
	for _, sr := range ga.Strategies {
		name := sr.Strategy.DisplayName()
		if sr.Strategy == ga.SelectedStrategy {
			name = "**" + name + "**"
		}
		fmt.Fprintf(&buf, "| %s | %s | %s | %s%% |\n", name, FormatCompactINR(sr.RequiredCorpus), FormatCompactINR(sr.Gap), sr.FundedRatio.StringFixed(0))
	}
	fmt.Fprintln(&buf)

	writeMarkdownMatrix(&buf, r.Matrix, ga.SelectedStrategy)

	if len(r.Recommendations) > 0 {
		fmt.Fprintln(&buf, "## Recommendations")
		fmt.Fprintln(&buf)
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&buf, "- %s\n", rec.Message)
		}
		fmt.Fprintln(&buf)
	}

	if report.Plan != nil {
		fmt.Fprintln(&buf, "## Assumptions")
		fmt.Fprintln(&buf)
		for _, a := range Assumptions(report.Plan.Parameters) {
			fmt.Fprintf(&buf, "- %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(&buf, "> **Warnings**")
		for _, w := range r.Warnings {
			fmt.Fprintf(&buf, "> - %s\n", w)
		}
	}
	return buf.Bytes(), nil
}

func writeMarkdownMatrix(buf *bytes.Buffer, rows []domain.ProjectionRow, strategy domain.IncomeStrategy) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintln(buf, "## Year by year")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "| Year | Age | Monthly SIP | Net corpus | Required | Can retire |")
	fmt.Fprintln(buf, "|---:|---:|---:|---:|---:|:---:|")
	for _, row := range rows {
		can := ""
		if row.CanRetire.Get(strategy) {
			can = "✓"
		}
		fmt.Fprintf(buf, "| %d | %d | %s | %s | %s | %s |\n", row.CalendarYear, row.Age,
			FormatRupees(row.MonthlySIP), FormatCompactINR(row.NetCorpus), FormatCompactINR(row.RequiredCorpus.Get(strategy)), can)
	}
	fmt.Fprintln(buf)
}

// RenderMarkdown styles markdown for a terminal of the given width
func RenderMarkdown(md []byte, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := r.Render(string(md))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
