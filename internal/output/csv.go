package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVMatrixFormatter writes the year-by-year projection matrix
type CSVMatrixFormatter struct{}

func (c CSVMatrixFormatter) Name() string { return "csv" }

func (c CSVMatrixFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Year", "CalendarYear", "Age",
		"PPF", "EPF", "MutualFund", "OtherLiquid", "Illiquid",
		"MonthlySIP", "Inflow", "GoalOutflow", "PreInflowCorpus", "NetCorpus", "Shortfall",
		"RequiredSustainable", "RequiredSafe4Percent", "RequiredSimpleDepletion",
		"CanRetireSustainable", "CanRetireSafe4Percent", "CanRetireSimpleDepletion",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range report.Result.Matrix {
		record := []string{
			strconv.Itoa(row.Year), strconv.Itoa(row.CalendarYear), strconv.Itoa(row.Age),
			row.Balances.PPF.StringFixed(2), row.Balances.EPF.StringFixed(2),
			row.Balances.MutualFund.StringFixed(2), row.Balances.OtherLiquid.StringFixed(2),
			row.IlliquidValue.StringFixed(2),
			row.MonthlySIP.StringFixed(2), row.TotalInflow.StringFixed(2), row.GoalOutflow.StringFixed(2),
			row.PreInflowCorpus.StringFixed(2), row.NetCorpus.StringFixed(2), strconv.FormatBool(row.Shortfall),
			row.RequiredCorpus.Sustainable.StringFixed(2), row.RequiredCorpus.Safe4Percent.StringFixed(2),
			row.RequiredCorpus.SimpleDepletion.StringFixed(2),
			strconv.FormatBool(row.CanRetire.Sustainable), strconv.FormatBool(row.CanRetire.Safe4Percent),
			strconv.FormatBool(row.CanRetire.SimpleDepletion),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVSummarizer writes one row per income strategy
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "summary-csv" }

func (c CSVSummarizer) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Strategy", "Selected", "ProjectedCorpus", "RequiredCorpus", "Gap", "FundedPercent"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	ga := report.Result.GapAnalysis
	for _, sr := range ga.Strategies {
		row := []string{
			string(sr.Strategy),
			strconv.FormatBool(sr.Strategy == ga.SelectedStrategy),
			ga.ProjectedCorpus.StringFixed(2),
			sr.RequiredCorpus.StringFixed(2),
			sr.Gap.StringFixed(2),
			sr.FundedRatio.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
