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

// ScenariosModel browses the what-if scenarios of the latest result
type ScenariosModel struct {
	analysis      domain.WhatIfAnalysis
	selectedIndex int
	cards         []*components.ScenarioCard
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetAnalysis replaces the scenarios shown
func (m *ScenariosModel) SetAnalysis(analysis domain.WhatIfAnalysis) {
	m.analysis = analysis
	m.cards = make([]*components.ScenarioCard, len(analysis.Scenarios))
	for i, sr := range analysis.Scenarios {
		m.cards[i] = components.NewScenarioCard(sr.Scenario.Name).
			WithSource(sr.Scenario.Source).
			WithImpact(sr.Scenario.DeltaCorpus, sr.ClosesGap)
	}
	if m.selectedIndex >= len(m.cards) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted scenario
func (m *ScenariosModel) Selected() (domain.ScenarioResult, bool) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.analysis.Scenarios) {
		return domain.ScenarioResult{}, false
	}
	return m.analysis.Scenarios[m.selectedIndex], true
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.cards)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, len(m.cards)-1)
	}
	return m, nil
}

// View renders the scenarios scene
func (m *ScenariosModel) View() string {
	if len(m.analysis.Scenarios) == 0 {
		return "No what-if scenarios apply to this plan.\n\nAdd illiquid assets, maturities or plan scenarios to see candidates.\n\nPress ESC to return to home."
	}

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(44)
	list := listStyle.Render(tuistyles.TitleStyle.Render("What-If Scenarios") + "\n\n" +
		components.ScenarioListCompact(m.cards, m.selectedIndex))

	sr, _ := m.Selected()
	content := lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.renderDetails(sr))

	return lipgloss.JoinVertical(lipgloss.Left,
		content,
		"",
		m.renderCombined(),
		"",
		helpLine("↑/k up • ↓/j down • g top • G bottom • ESC back"),
	)
}

func (m *ScenariosModel) renderDetails(sr domain.ScenarioResult) string {
	detailStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorPrimary).
		Padding(1, 2).
		Width(64)

	sc := sr.Scenario
	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(sc.Name))
	content.WriteString("\n\n")

	magnitude := money(sc.Magnitude)
	if sc.Type == domain.ScenarioSIPIncrease {
		magnitude += "/month"
	}
	rows := [][2]string{
		{"Type", string(sc.Type)},
		{"Source", sc.Source},
		{"Deploy in year", fmt.Sprintf("%d", sc.DeploymentYear)},
		{"Amount", magnitude},
		{"Corpus impact", signedMoney(sc.DeltaCorpus)},
		{"Strategy corpus", money(sr.StrategyCorpus)},
	}
	for _, r := range rows {
		content.WriteString(label(fmt.Sprintf("%-16s", r[0])))
		content.WriteString(value(r[1]))
		content.WriteString("\n")
	}
	content.WriteString(label(fmt.Sprintf("%-16s", "New gap")))
	content.WriteString(gapText(sr.NewGap))
	content.WriteString("\n\n")

	content.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-5s %-4s %13s %13s %12s", "Year", "Age", "Baseline", "With change", "Delta")))
	for i, y := range sr.Table {
		// every fifth year plus the horizon
		if i%5 != 0 && i != len(sr.Table)-1 {
			continue
		}
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("%-5d %-4d %13s %13s %12s",
			y.Year, y.Age, money(y.BaselineCorpus), money(y.StrategyCorpus), signedMoney(y.Delta)))
	}

	return detailStyle.Render(content.String())
}

func (m *ScenariosModel) renderCombined() string {
	a := m.analysis
	return sectionTitle("All scenarios together") + "\n" +
		label(fmt.Sprintf("  growth %s • ", percent(a.GrowthRate))) +
		value("corpus "+money(a.CombinedCorpus)) +
		label(" ("+signedMoney(a.CombinedDelta)+") • ") +
		gapText(a.CombinedGap)
}
