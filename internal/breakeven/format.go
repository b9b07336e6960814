package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/corpus/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Goal))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalMonthlySIP != nil {
		sb.WriteString(fmt.Sprintf("Extra Monthly SIP:   %s\n", output.FormatRupees(*result.OptimalMonthlySIP)))
	}
	if result.OptimalStepUp != nil {
		sb.WriteString(fmt.Sprintf("Annual Step-Up:      %s%%\n", result.OptimalStepUp.StringFixed(2)))
	}
	if result.OptimalRetirementAge != nil {
		sb.WriteString(fmt.Sprintf("Retirement Age:      %d\n", *result.OptimalRetirementAge))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Projected Corpus:    %s\n", output.FormatCompactINR(result.FinalCorpus)))
	sb.WriteString(fmt.Sprintf("Required Corpus:     %s\n", output.FormatCompactINR(result.RequiredCorpus)))
	sb.WriteString(fmt.Sprintf("Remaining Shortfall: %s\n", tf.formatShortfall(result.Shortfall)))
	sb.WriteString("\n")

	sb.WriteString("COMPARISON TO BASE PLAN\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	diff := result.FinalCorpus.Sub(result.BaseFinalCorpus)
	sb.WriteString(fmt.Sprintf("Base Corpus:         %s\n", output.FormatCompactINR(result.BaseFinalCorpus)))
	sb.WriteString(fmt.Sprintf("Corpus Change:       %s%s\n", tf.deltaSymbol(diff), output.FormatCompactINR(diff)))
	sb.WriteString(fmt.Sprintf("Base Shortfall:      %s\n", tf.formatShortfall(result.BaseShortfall)))
	sb.WriteString("\n")

	return sb.String()
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("MULTI-DIMENSIONAL OPTIMIZATION RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString("SUMMARY OF ALL OPTIMIZATIONS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-18s %-18s %14s %14s %12s\n",
		"Lever", "Change", "Corpus", "Required", "Evaluations"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-18s %-18s %14s %14s %12d\n",
			tf.truncate(string(res.Target), 18),
			tf.truncate(tf.change(res), 18),
			output.FormatCompactINR(res.FinalCorpus),
			output.FormatCompactINR(res.RequiredCorpus),
			res.Iterations))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (tf *TableFormatter) change(res OptimizationResult) string {
	switch {
	case res.OptimalMonthlySIP != nil:
		return "+" + output.FormatRupees(*res.OptimalMonthlySIP) + "/mo"
	case res.OptimalStepUp != nil:
		return res.OptimalStepUp.StringFixed(2) + "% step-up"
	case res.OptimalRetirementAge != nil:
		return fmt.Sprintf("retire at %d", *res.OptimalRetirementAge)
	}
	return "-"
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Goal met"
	}
	return "⚠ Goal not met"
}

func (tf *TableFormatter) formatShortfall(d decimal.Decimal) string {
	if d.IsPositive() {
		return output.FormatCompactINR(d)
	}
	return "none (surplus " + output.FormatCompactINR(d.Neg()) + ")"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
