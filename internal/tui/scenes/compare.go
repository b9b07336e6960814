package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/corpus/internal/compare"
	"github.com/rgehrsitz/corpus/internal/transform"
	"github.com/rgehrsitz/corpus/internal/tui/components"
	"github.com/rgehrsitz/corpus/internal/tui/tuimsg"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

// CompareModel compares the working plan against built-in alternatives
type CompareModel struct {
	templates   []transform.Template
	selected    map[int]bool
	cursorIndex int
	set         *compare.ComparisonSet
	err         error
	comparing   bool
	width       int
	height      int
}

// NewCompareModel lists the built-in plan templates
func NewCompareModel(registry *transform.TemplateRegistry) *CompareModel {
	m := &CompareModel{selected: make(map[int]bool)}
	for _, name := range registry.List() {
		if t, ok := registry.Get(name); ok {
			m.templates = append(m.templates, t)
		}
	}
	return m
}

// SetResults stores a finished comparison
func (m *CompareModel) SetResults(set *compare.ComparisonSet, err error) {
	m.set = set
	m.err = err
	m.comparing = false
}

// Invalidate drops a comparison made against an older plan
func (m *CompareModel) Invalidate() {
	if !m.comparing {
		m.set = nil
		m.err = nil
	}
}

// SetSize updates the model dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedTemplates returns the chosen template names in list order
func (m *CompareModel) SelectedTemplates() []string {
	var names []string
	for i, t := range m.templates {
		if m.selected[i] {
			names = append(names, t.Name)
		}
	}
	return names
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.comparing {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.cursorIndex > 0 {
			m.cursorIndex--
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.cursorIndex < len(m.templates)-1 {
			m.cursorIndex++
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys(" ", "x"))):
		m.selected[m.cursorIndex] = !m.selected[m.cursorIndex]

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a"))):
		for i := range m.templates {
			m.selected[i] = true
		}

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("backspace", "delete"))):
		m.selected = make(map[int]bool)
		m.set = nil
		m.err = nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		names := m.SelectedTemplates()
		if len(names) == 0 {
			return m, nil
		}
		m.comparing = true
		m.set = nil
		m.err = nil
		return m, func() tea.Msg {
			return tuimsg.ComparisonStartedMsg{Templates: names}
		}
	}
	return m, nil
}

// View renders the compare scene
func (m *CompareModel) View() string {
	var sections []string
	sections = append(sections, tuistyles.TitleStyle.Render("Compare Alternatives"), "", m.renderSelection())

	switch {
	case m.comparing:
		sections = append(sections, "", m.renderProgress())
	case m.err != nil:
		sections = append(sections, "", tuistyles.ErrorStyle.Render(m.err.Error()))
	case m.set != nil:
		sections = append(sections, "", m.renderComparison())
	}

	sections = append(sections, "", helpLine("↑/↓ navigate • Space/x select • a all • Enter compare • Backspace clear • ESC back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *CompareModel) renderSelection() string {
	var content strings.Builder
	cursorStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)
	checkStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true)

	for i, t := range m.templates {
		if i == m.cursorIndex {
			content.WriteString(cursorStyle.Render("❯ "))
		} else {
			content.WriteString("  ")
		}
		if m.selected[i] {
			content.WriteString(checkStyle.Render("[✓] "))
		} else {
			content.WriteString(label("[ ] "))
		}
		name := fmt.Sprintf("%-22s", t.Name)
		if i == m.cursorIndex {
			name = tuistyles.SelectedItemStyle.Render(name)
		}
		content.WriteString(name)
		content.WriteString(label(t.Description))
		content.WriteString("\n")
	}

	count := len(m.SelectedTemplates())
	if count == 0 {
		content.WriteString("\n" + label("Select at least one alternative"))
	} else {
		content.WriteString("\n" + tuistyles.MetricPositiveStyle.Render(fmt.Sprintf("%d alternative%s selected", count, plural(count))))
	}
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *CompareModel) renderProgress() string {
	panel := components.NewProgressPanel("Calculating alternatives")
	panel.AddPlan("base plan", components.RunRunning)
	for _, name := range m.SelectedTemplates() {
		panel.AddPlan(name, components.RunRunning)
	}
	return panel.Render()
}

func (m *CompareModel) renderComparison() string {
	var content strings.Builder
	header := fmt.Sprintf("%-30s %-4s %12s %12s %13s %12s", "Plan", "Ret", "Corpus", "vs Base", "Surplus", "Income/mo")
	content.WriteString(tuistyles.TableHeaderStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", len(header)))
	content.WriteString("\n")

	row := func(r compare.ComparisonResult, diff string) string {
		name := r.ScenarioName
		if len([]rune(name)) > 30 {
			name = string([]rune(name)[:27]) + "..."
		}
		return fmt.Sprintf("%-30s %-4d %12s %12s %13s %12s",
			name, r.RetirementAge, money(r.FinalCorpus), diff, signedMoney(r.CorpusGap.Neg()), money(r.MonthlyIncomeAtRetirement))
	}

	content.WriteString(tuistyles.TableHighlightStyle.Render(row(*m.set.BaseResult, "-")))
	for _, alt := range m.set.AlternativeResults {
		content.WriteString("\n")
		line := row(alt, signedMoney(alt.CorpusDiffFromBase))
		content.WriteString(tuistyles.MetricTrendStyle(!alt.CorpusGap.IsPositive()).Render(line))
	}

	if len(m.set.Recommendations) > 0 {
		content.WriteString("\n\n")
		content.WriteString(sectionTitle("Recommendations"))
		for _, rec := range m.set.Recommendations {
			content.WriteString("\n" + value("• "+rec))
		}
	}
	return tuistyles.BorderStyle.Render(content.String())
}
