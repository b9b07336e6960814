package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/corpus/internal/output"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

// MetricCard shows one headline figure of a projection
type MetricCard struct {
	Label       string
	Value       string
	Description string
	Width       int
	trend       string
	positive    bool
}

// NewMetricCard creates a card for a pre-formatted value
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 30}
}

// NewAmountCard creates a card for a rupee amount in lakh/crore shorthand
func NewAmountCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, output.FormatCompactINR(amount))
}

// WithGap marks the card with the corpus gap, positive meaning a shortfall
func (m *MetricCard) WithGap(gap decimal.Decimal) *MetricCard {
	m.positive = !gap.IsPositive()
	if m.positive {
		m.trend = "surplus " + output.FormatCompactINR(gap.Neg())
	} else {
		m.trend = "short " + output.FormatCompactINR(gap)
	}
	return m
}

func (m *MetricCard) WithDescription(desc string) *MetricCard {
	m.Description = desc
	return m
}

func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

// Render returns the bordered card
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" + tuistyles.MetricValueStyle.Render(m.Value)
	if m.trend != "" {
		content += "\n" + tuistyles.MetricTrendStyle(m.positive).Render(tuistyles.TrendIndicator(m.positive)+" "+m.trend)
	}
	if m.Description != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Description)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(m.Width).
		Render(content)
}

// MetricGrid lays cards out in rows of the given number of columns
func MetricGrid(cards []*MetricCard, columns int) string {
	if columns < 1 {
		columns = 1
	}
	var rows []string
	for start := 0; start < len(cards); start += columns {
		end := min(start+columns, len(cards))
		row := make([]string, 0, end-start)
		for _, card := range cards[start:end] {
			row = append(row, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
