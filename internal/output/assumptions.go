package output

import (
	"fmt"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

// Assumptions lists the modeling assumptions behind a plan's projection,
// rendered in the detailed outputs.
func Assumptions(p domain.PlanningParameters) []string {
	out := []string{
		fmt.Sprintf("Inflation: %s a year", FormatPercentage(p.InflationRate)),
		fmt.Sprintf("Returns: mutual funds %s, EPF %s, PPF %s, other liquid %s, illiquid %s",
			FormatPercentage(p.MFReturn), FormatPercentage(p.EPFReturn), FormatPercentage(p.PPFReturn),
			FormatPercentage(p.OtherReturn), FormatPercentage(p.IlliquidReturn)),
		fmt.Sprintf("SIP step-up: %s a year from year %d", FormatPercentage(p.SIPStepUpPercent), p.StepUpEffectiveFromYear),
		fmt.Sprintf("Post-retirement corpus return: %s, withdrawal rate %s", FormatPercentage(p.CorpusReturn), FormatPercentage(p.WithdrawalRate)),
	}
	if rr := p.RateReduction; rr.Enabled && rr.EveryYears > 0 && rr.Percent.IsPositive() {
		out = append(out, fmt.Sprintf("Fixed-income returns fall by %s every %d years", FormatPercentage(rr.Percent), rr.EveryYears))
	}
	if p.WhatIfReturn.IsPositive() {
		out = append(out, fmt.Sprintf("What-if deployments grow at %s", FormatPercentage(p.WhatIfReturn)))
	}
	return out
}

// FormatPercentage formats a percent-unit rate, e.g. 7.1%
func FormatPercentage(rate decimal.Decimal) string {
	return rate.StringFixed(1) + "%"
}
