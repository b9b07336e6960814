package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/corpus/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing plan variants
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	// Header
	sb.WriteString("RETIREMENT PLAN COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Base Plan: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	// Column widths
	nameWidth := 28
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Plan",
		numWidth, "Final Corpus",
		numWidth, "Required",
		numWidth, "Gap",
		numWidth, "Income/month"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(" " + alt.Description)
			}
			sb.WriteString("\n")

			sb.WriteString(fmt.Sprintf("  Final Corpus:     %s%s (%s%%)\n",
				tf.deltaSymbol(alt.CorpusDiffFromBase),
				output.FormatCompactINR(alt.CorpusDiffFromBase.Abs()),
				alt.CorpusPctFromBase.StringFixed(1)))

			if !alt.GapDiffFromBase.IsZero() {
				// a smaller gap is better
				sb.WriteString(fmt.Sprintf("  Corpus Gap:       %s%s\n",
					tf.deltaSymbol(alt.GapDiffFromBase.Neg()),
					output.FormatCompactINR(alt.GapDiffFromBase.Abs())))
			}

			if !alt.ContributionDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Contributions:    %s%s\n",
					signed(alt.ContributionDiffFromBase),
					output.FormatCompactINR(alt.ContributionDiffFromBase.Abs())))
			}

			if alt.DepletionAge != nil {
				sb.WriteString(fmt.Sprintf("  Corpus depletes at age %d\n", *alt.DepletionAge))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single plan row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	gap := output.FormatCompactINR(result.CorpusGap)
	if result.CanRetire {
		gap = "surplus " + output.FormatCompactINR(result.CorpusGap.Abs())
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, output.FormatCompactINR(result.FinalCorpus),
		numWidth, output.FormatCompactINR(result.RequiredCorpus),
		numWidth, gap,
		numWidth, output.FormatCompactINR(result.MonthlyIncomeAtRetirement))
}

// deltaSymbol marks an improvement with + and a regression with -
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	return signed(delta)
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+"
	} else if d.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each variant
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.CorpusDiffFromBase.IsZero() {
			change = signed(alt.CorpusDiffFromBase) + output.FormatCompactINR(alt.CorpusDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
