package scenes

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/output"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return output.FormatCompactINR(d)
}

// signedMoney prefixes non-negative amounts with "+"
func signedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return output.FormatCompactINR(d)
	}
	return "+" + output.FormatCompactINR(d)
}

func percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func sectionTitle(title string) string {
	return tuistyles.SectionStyle.Render(title)
}

func label(s string) string {
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(s)
}

func value(s string) string {
	return lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(s)
}

func helpLine(s string) string {
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(s)
}

// gapText describes a corpus gap, positive meaning a shortfall
func gapText(gap decimal.Decimal) string {
	if gap.IsPositive() {
		return tuistyles.MetricNegativeStyle.Render("shortfall " + money(gap))
	}
	return tuistyles.MetricPositiveStyle.Render("surplus " + money(gap.Neg()))
}

// selectedRequirement returns the gap entry for the plan's strategy
func selectedRequirement(gap domain.GapAnalysis) (domain.StrategyRequirement, bool) {
	for _, s := range gap.Strategies {
		if s.Strategy == gap.SelectedStrategy {
			return s, true
		}
	}
	return domain.StrategyRequirement{}, false
}

var decimalTwelve = decimal.NewFromInt(12)
