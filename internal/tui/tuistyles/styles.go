// Package tuistyles holds the colour palette and lipgloss styles shared by
// the TUI model, scenes and components.
package tuistyles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#00B4D8")
	ColorAccent    = lipgloss.Color("#FFB703")
	ColorSuccess   = lipgloss.Color("#2A9D8F")
	ColorDanger    = lipgloss.Color("#E63946")
	ColorInfo      = lipgloss.Color("#8ECAE6")

	ColorBackground = lipgloss.Color("#1A1B26")
	ColorForeground = lipgloss.Color("#E0E0E0")
	ColorMuted      = lipgloss.Color("#6C757D")
	ColorBorder     = lipgloss.Color("#3B3D4A")

	ColorChartLine1 = lipgloss.Color("#7D56F4")
	ColorChartLine2 = lipgloss.Color("#2A9D8F")
	ColorChartLine3 = lipgloss.Color("#FFB703")
	ColorChartLine4 = lipgloss.Color("#E63946")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorForeground).
			Background(ColorBorder).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Bold(true)

	ParameterValueStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
)

// MetricTrendStyle colours a change by direction
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change direction
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}
