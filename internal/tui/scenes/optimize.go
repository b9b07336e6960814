package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/corpus/internal/breakeven"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/tui/tuimsg"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

// OptimizeMode is the input state of the optimize scene
type OptimizeMode int

const (
	ModeOverview OptimizeMode = iota
	ModeSetTarget
)

// OptimizeModel shows the step-up optimizer and solves break-even levers
type OptimizeModel struct {
	optimization domain.StepUpOptimization
	loaded       bool
	mode         OptimizeMode
	targetInput  textinput.Model
	solving      bool
	breakEven    *breakeven.MultiDimensionalResult
	breakEvenErr error
	width        int
	height       int
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 50000000"
	ti.CharLimit = 14
	ti.Width = 20

	return &OptimizeModel{targetInput: ti}
}

// SetOptimization replaces the step-up optimizer result. Break-even
// results from an earlier plan are dropped.
func (m *OptimizeModel) SetOptimization(opt domain.StepUpOptimization) {
	m.optimization = opt
	m.loaded = true
	m.breakEven = nil
	m.breakEvenErr = nil
}

// SetBreakEven stores the solver outcome
func (m *OptimizeModel) SetBreakEven(result *breakeven.MultiDimensionalResult, err error) {
	m.solving = false
	m.breakEven = result
	m.breakEvenErr = err
}

// Editing reports whether the scene is capturing text input
func (m *OptimizeModel) Editing() bool {
	return m.mode == ModeSetTarget
}

// SetSize updates the model dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == ModeSetTarget {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			target, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(m.targetInput.Value()), ",", ""))
			if err != nil || !target.IsPositive() {
				m.breakEvenErr = fmt.Errorf("target corpus must be a positive amount")
				return m, nil
			}
			m.mode = ModeOverview
			m.targetInput.Blur()
			return m, m.solve(&target)

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
			m.mode = ModeOverview
			m.targetInput.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.targetInput, cmd = m.targetInput.Update(keyMsg)
		return m, cmd
	}

	if !m.loaded || m.solving {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("b", "enter"))):
		return m, m.solve(nil)

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("t"))):
		m.mode = ModeSetTarget
		m.targetInput.SetValue("")
		return m, m.targetInput.Focus()
	}
	return m, nil
}

func (m *OptimizeModel) solve(target *decimal.Decimal) tea.Cmd {
	m.solving = true
	m.breakEven = nil
	m.breakEvenErr = nil
	return func() tea.Msg {
		return tuimsg.BreakEvenStartedMsg{TargetCorpus: target}
	}
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	if !m.loaded {
		return "No plan loaded.\n\nPress ESC to return to home."
	}

	sections := []string{
		tuistyles.TitleStyle.Render("Optimize"),
		"",
		m.renderStepUp(),
		"",
		m.renderBreakEven(),
		"",
	}
	if m.mode == ModeSetTarget {
		sections = append(sections, "Target corpus (₹): "+m.targetInput.View(), helpLine("Enter solve • ESC cancel"))
	} else {
		sections = append(sections, helpLine("b solve break-even • t solve for a target corpus • ESC back"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *OptimizeModel) renderStepUp() string {
	opt := m.optimization
	var content strings.Builder

	content.WriteString(sectionTitle(fmt.Sprintf("SIP Step-Up Optimizer (%s)", opt.Mode)))
	content.WriteString("\n")
	content.WriteString(label("Target corpus        ") + value(money(opt.TargetCorpus)) + "\n")
	content.WriteString(label("Full schedule corpus ") + value(money(opt.FullScheduleCorpus)) + "\n")
	if opt.CanStopEarly {
		content.WriteString(tuistyles.MetricPositiveStyle.Render(fmt.Sprintf(
			"✓ Stop stepping up after year %d (age %d) at %s/month, saving %s in contributions",
			opt.OptimalStopYear, opt.OptimalStopAge, money(opt.MonthlySIPAtStop), money(opt.ContributionSaving))))
	} else {
		content.WriteString(tuistyles.MetricNegativeStyle.Render("✗ The full step-up schedule is needed"))
	}
	content.WriteString("\n\n")

	content.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-9s %-4s %13s %14s %14s %-5s",
		"Stop Year", "Age", "Monthly SIP", "Corpus", "Surplus", "Meets")))
	for _, c := range opt.Candidates {
		meets := "-"
		if c.MeetsTarget {
			meets = "✓"
		}
		line := fmt.Sprintf("%-9d %-4d %13s %14s %14s %-5s",
			c.StopYear, c.Age, money(c.MonthlySIP), money(c.ProjectedCorpus), signedMoney(c.SurplusDeficit), meets)
		if opt.CanStopEarly && c.StopYear == opt.OptimalStopYear {
			line = tuistyles.TableHighlightStyle.Render(line)
		}
		content.WriteString("\n")
		content.WriteString(line)
	}

	return tuistyles.BorderStyle.Render(content.String())
}

func (m *OptimizeModel) renderBreakEven() string {
	var content strings.Builder
	content.WriteString(sectionTitle("Break-Even Levers"))
	content.WriteString("\n")

	switch {
	case m.solving:
		content.WriteString(tuistyles.InfoStyle.Render("Solving..."))
	case m.breakEvenErr != nil:
		content.WriteString(tuistyles.ErrorStyle.Render(m.breakEvenErr.Error()))
	case m.breakEven == nil:
		content.WriteString(label("Press b to find the smallest change that closes the gap"))
	default:
		content.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-16s %-22s %14s %14s", "Lever", "Change", "Corpus", "Required")))
		for _, r := range m.breakEven.Results {
			content.WriteString("\n")
			content.WriteString(fmt.Sprintf("%-16s %-22s %14s %14s",
				r.Target, leverChange(r), money(r.FinalCorpus), money(r.RequiredCorpus)))
		}
		for _, rec := range m.breakEven.Recommendations {
			content.WriteString("\n")
			content.WriteString(value("• " + rec))
		}
	}
	return tuistyles.BorderStyle.Render(content.String())
}

func leverChange(r breakeven.OptimizationResult) string {
	switch {
	case r.OptimalMonthlySIP != nil:
		return "+" + money(*r.OptimalMonthlySIP) + "/month"
	case r.OptimalStepUp != nil:
		return r.OptimalStepUp.StringFixed(2) + "% step-up"
	case r.OptimalRetirementAge != nil:
		return fmt.Sprintf("retire at %d", *r.OptimalRetirementAge)
	}
	return "-"
}
