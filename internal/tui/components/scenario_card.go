package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/corpus/internal/output"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

// ScenarioCard is one what-if scenario in the selection list
type ScenarioCard struct {
	Name      string
	Source    string // illiquid, maturity, loan, insurance, sip, plan
	Delta     decimal.Decimal
	ClosesGap bool
}

func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{Name: name}
}

func (s *ScenarioCard) WithSource(source string) *ScenarioCard {
	s.Source = source
	return s
}

// WithImpact sets the change in final corpus and whether it closes the gap
func (s *ScenarioCard) WithImpact(delta decimal.Decimal, closesGap bool) *ScenarioCard {
	s.Delta = delta
	s.ClosesGap = closesGap
	return s
}

// Impact formats the corpus change with an explicit sign
func (s *ScenarioCard) Impact() string {
	if s.Delta.IsNegative() {
		return output.FormatCompactINR(s.Delta)
	}
	return "+" + output.FormatCompactINR(s.Delta)
}

// RenderCompact returns the card as one list line
func (s *ScenarioCard) RenderCompact() string {
	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(s.Name),
		tuistyles.MetricTrendStyle(s.ClosesGap).Render(s.Impact()),
	}
	if s.Source != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render("("+s.Source+")"))
	}
	return strings.Join(parts, " ")
}

// ScenarioListCompact renders the cards with a marker on the selected one
func ScenarioListCompact(cards []*ScenarioCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix, style := "  ", tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix, style = "▸ ", tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}
	return strings.Join(rendered, "\n")
}
