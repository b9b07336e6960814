package scenes

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

// HomeModel is the plan dashboard
type HomeModel struct {
	plan   *domain.Plan
	result *domain.Result
	path   string
	width  int
	height int
}

// NewHomeModel creates a new home scene model
func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

// SetPlan updates the plan and its latest result
func (m *HomeModel) SetPlan(path string, plan *domain.Plan, result *domain.Result) {
	m.path = path
	m.plan = plan
	m.result = result
}

// SetSize updates the model dimensions
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	// navigation is handled by the parent
	return m, nil
}

// View renders the home dashboard
func (m *HomeModel) View() string {
	var content strings.Builder

	content.WriteString(tuistyles.TitleStyle.Render("Retirement Corpus Planner"))
	content.WriteString("\n\n")

	if m.plan == nil {
		content.WriteString(label("Loading plan..."))
		return tuistyles.BorderStyle.Render(content.String())
	}

	content.WriteString(m.renderPlanOverview())
	content.WriteString("\n\n")
	if m.result != nil {
		content.WriteString(m.renderStatus())
		content.WriteString("\n\n")
	}
	content.WriteString(m.renderQuickActions())

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *HomeModel) renderPlanOverview() string {
	var content strings.Builder
	p := m.plan.Parameters

	content.WriteString(sectionTitle("Plan Overview"))
	content.WriteString("\n")

	name := m.plan.Name
	if name == "" {
		name = filepath.Base(m.path)
	}
	rows := [][2]string{
		{"Plan", name},
		{"Ages", fmt.Sprintf("%d now → retire at %d → plan to %d", p.CurrentAge, p.RetirementAge, p.LifeExpectancy)},
		{"Strategy", p.IncomeStrategy.DisplayName()},
		{"Holdings", fmt.Sprintf("%d investment%s, %d loan%s, %d goal%s, %d polic%s, %d income source%s",
			len(m.plan.Investments), plural(len(m.plan.Investments)),
			len(m.plan.Loans), plural(len(m.plan.Loans)),
			len(m.plan.Goals), plural(len(m.plan.Goals)),
			len(m.plan.Insurance), policySuffix(len(m.plan.Insurance)),
			len(m.plan.Income), plural(len(m.plan.Income)))},
	}
	if m.result != nil {
		s := m.result.Summary
		rows = append(rows,
			[2]string{"Corpus today", money(s.CurrentCorpus)},
			[2]string{"Monthly SIP", money(s.CurrentMonthlySIP)},
		)
	}
	for _, r := range rows {
		content.WriteString(label(fmt.Sprintf("  %-13s", r[0])))
		content.WriteString(value(r[1]))
		content.WriteString("\n")
	}
	return strings.TrimRight(content.String(), "\n")
}

func (m *HomeModel) renderStatus() string {
	var content strings.Builder
	s := m.result.Summary

	content.WriteString(sectionTitle("Status"))
	content.WriteString("\n")
	content.WriteString(label("  Projected at retirement  "))
	content.WriteString(value(money(s.FinalCorpus)))
	content.WriteString("\n")
	content.WriteString(label("  Required                 "))
	content.WriteString(value(money(s.RequiredCorpus)))
	content.WriteString("\n  ")
	if s.CanRetire {
		content.WriteString(tuistyles.MetricPositiveStyle.Render("✓ On track"))
	} else {
		content.WriteString(tuistyles.MetricNegativeStyle.Render("⚠ Not yet on track"))
	}
	content.WriteString("  ")
	content.WriteString(gapText(s.CorpusGap))
	if len(m.result.Warnings) > 0 {
		content.WriteString("\n  ")
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorAccent).
			Render(fmt.Sprintf("%d input warning%s, see results", len(m.result.Warnings), plural(len(m.result.Warnings)))))
	}
	return content.String()
}

func (m *HomeModel) renderQuickActions() string {
	var content strings.Builder

	content.WriteString(sectionTitle("Quick Actions"))
	content.WriteString("\n")

	actions := []struct {
		key  string
		desc string
	}{
		{"p", "Edit assumptions with live recalculation"},
		{"r", "Year-by-year projection and chart"},
		{"s", "What-if scenarios"},
		{"o", "Step-up optimizer and break-even levers"},
		{"c", "Compare plan alternatives"},
		{"?", "Show help"},
	}
	for _, a := range actions {
		content.WriteString("  ")
		content.WriteString(tuistyles.HelpKeyStyle.Render(a.key))
		content.WriteString(value("  " + a.desc))
		content.WriteString("\n")
	}
	return strings.TrimRight(content.String(), "\n")
}

func policySuffix(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
