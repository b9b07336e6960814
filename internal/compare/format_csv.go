package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Plan",
		"Type",
		"Retirement Age",
		"Final Corpus",
		"Required Corpus",
		"Corpus Gap",
		"Can Retire",
		"Total Contributions",
		"Monthly Income",
		"Corpus Diff from Base",
		"Corpus % Change",
		"Gap Diff from Base",
		"Contribution Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		result.ScenarioName,
		kind,
		strconv.Itoa(result.RetirementAge),
		result.FinalCorpus.StringFixed(2),
		result.RequiredCorpus.StringFixed(2),
		result.CorpusGap.StringFixed(2),
		strconv.FormatBool(result.CanRetire),
		result.TotalContributions.StringFixed(2),
		result.MonthlyIncomeAtRetirement.StringFixed(2),
		result.CorpusDiffFromBase.StringFixed(2),
		result.CorpusPctFromBase.StringFixed(2),
		result.GapDiffFromBase.StringFixed(2),
		result.ContributionDiffFromBase.StringFixed(2),
	}
}
