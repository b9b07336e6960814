package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/tui/components"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

const resultsPageSize = 10

// ResultsModel shows the headline metrics, a corpus chart and the
// year-by-year projection
type ResultsModel struct {
	planName string
	result   *domain.Result
	offset   int
	width    int
	height   int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResult updates the result to display
func (m *ResultsModel) SetResult(planName string, result *domain.Result) {
	m.planName = planName
	m.result = result
	if result == nil || m.offset >= len(result.Matrix) {
		m.offset = 0
	}
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update scrolls the projection table
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.result == nil {
		return m, nil
	}

	last := max(0, len(m.result.Matrix)-resultsPageSize)
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		m.offset = min(m.offset+1, last)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		m.offset = max(m.offset-1, 0)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("pgdown", "f"))):
		m.offset = min(m.offset+resultsPageSize, last)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("pgup", "b"))):
		m.offset = max(m.offset-resultsPageSize, 0)
	}
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.result == nil {
		return "No results to display.\n\nLoad a plan or adjust parameters first.\n\nPress ESC to go back."
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Projection Results"),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s • %s", m.planName, m.result.GapAnalysis.SelectedStrategy.DisplayName())),
	)

	sections := []string{header, "", m.renderMetrics(), "", m.renderChart(), "", m.renderTable()}
	if len(m.result.Warnings) > 0 {
		sections = append(sections, "", m.renderWarnings())
	}
	sections = append(sections, "", helpLine("↑/↓ scroll • PgUp/PgDn page • ESC back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *ResultsModel) renderMetrics() string {
	s := m.result.Summary
	gap := m.result.GapAnalysis

	corpus := components.NewAmountCard("Projected Corpus", s.FinalCorpus).
		WithGap(gap.CorpusGap).
		WithWidth(28).
		WithDescription(money(s.FinalCorpusTodaysValue) + " in today's money")

	required := components.NewAmountCard("Required Corpus", gap.RequiredCorpus).
		WithWidth(28).
		WithDescription(money(gap.AnnualNeedAtRetire.Div(decimalTwelve)) + "/month at retirement")

	income := components.NewAmountCard("Monthly Income", s.MonthlyIncomeAtRetirement).
		WithWidth(28).
		WithDescription("first year of retirement")

	earliest := "not within plan"
	if s.EarliestRetirementAge != nil {
		earliest = fmt.Sprintf("age %d", *s.EarliestRetirementAge)
	}
	canRetire := components.NewMetricCard("Earliest Retirement", earliest).WithWidth(28)

	contributions := components.NewAmountCard("Total Contributions", s.TotalContributions).
		WithWidth(28).
		WithDescription("growth " + money(s.TotalGrowth))

	extraSIP := components.NewAmountCard("Extra SIP Needed", gap.AdditionalMonthlySIP).
		WithWidth(28).
		WithDescription("per month to close the gap")

	grid := components.MetricGrid([]*components.MetricCard{corpus, required, income, canRetire, contributions, extraSIP}, 3)

	if req, ok := selectedRequirement(gap); ok {
		bar := components.NewFundedBar(req.FundedRatio).WithWidth(60)
		return lipgloss.JoinVertical(lipgloss.Left, grid, bar.Render())
	}
	return grid
}

func (m *ResultsModel) renderChart() string {
	rows := m.result.Matrix
	if len(rows) < 2 {
		return ""
	}

	strategy := m.result.GapAnalysis.SelectedStrategy
	corpus := make([]float64, len(rows))
	required := make([]float64, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		corpus[i] = row.NetCorpus.InexactFloat64()
		required[i] = row.RequiredCorpus.Get(strategy).InexactFloat64()
		labels[i] = fmt.Sprintf("%d", row.CalendarYear)
	}

	width := 72
	if m.width > 0 {
		width = min(max(m.width-10, 40), 100)
	}
	return components.NewASCIIChart("Corpus vs Required").
		AddSeries("Net corpus", corpus, tuistyles.ColorChartLine1).
		AddSeries("Required ("+strategy.DisplayName()+")", required, tuistyles.ColorChartLine4).
		WithLabels(labels).
		WithSize(width, 12).
		Render()
}

func (m *ResultsModel) renderTable() string {
	rows := m.result.Matrix
	strategy := m.result.GapAnalysis.SelectedStrategy

	var content strings.Builder
	content.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-6s %-4s %12s %12s %12s %14s %14s %-6s",
		"Year", "Age", "Monthly SIP", "Inflow", "Outflow", "Net Corpus", "Required", "Retire")))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 88))
	content.WriteString("\n")

	end := min(m.offset+resultsPageSize, len(rows))
	for _, row := range rows[m.offset:end] {
		retire := "-"
		if row.CanRetire.Get(strategy) {
			retire = "✓"
		}
		line := fmt.Sprintf("%-6d %-4d %12s %12s %12s %14s %14s %-6s",
			row.CalendarYear, row.Age,
			money(row.MonthlySIP), money(row.TotalInflow), money(row.GoalOutflow),
			money(row.NetCorpus), money(row.RequiredCorpus.Get(strategy)), retire)
		if row.Shortfall {
			line = tuistyles.MetricNegativeStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}
	content.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("rows %d-%d of %d", m.offset+1, end, len(rows))))

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *ResultsModel) renderWarnings() string {
	var content strings.Builder
	content.WriteString(sectionTitle("Warnings"))
	for _, w := range m.result.Warnings {
		content.WriteString("\n")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorAccent).Render("• " + w))
	}
	return content.String()
}
