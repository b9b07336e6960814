package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/tui/components"
	"github.com/rgehrsitz/corpus/internal/tui/tuimsg"
	"github.com/rgehrsitz/corpus/internal/tui/tuistyles"
)

// parameterField binds a slider to one planning parameter
type parameterField struct {
	label       string
	description string
	kind        components.SliderKind
	min, max    float64
	step        float64
	get         func(p *domain.PlanningParameters) float64
	set         func(p *domain.PlanningParameters, v float64)
}

func rateField(label, description string, min, max, step float64, field func(p *domain.PlanningParameters) *decimal.Decimal) parameterField {
	return parameterField{
		label:       label,
		description: description,
		kind:        components.SliderRate,
		min:         min,
		max:         max,
		step:        step,
		get:         func(p *domain.PlanningParameters) float64 { return field(p).InexactFloat64() },
		set:         func(p *domain.PlanningParameters, v float64) { *field(p) = decimal.NewFromFloat(v).Round(2) },
	}
}

func ageField(label, description string, min, max float64, field func(p *domain.PlanningParameters) *int) parameterField {
	return parameterField{
		label:       label,
		description: description,
		kind:        components.SliderAge,
		min:         min,
		max:         max,
		step:        1,
		get:         func(p *domain.PlanningParameters) float64 { return float64(*field(p)) },
		set:         func(p *domain.PlanningParameters, v float64) { *field(p) = int(v) },
	}
}

func parameterFields(base domain.PlanningParameters) []parameterField {
	current := float64(base.CurrentAge)
	return []parameterField{
		ageField("Retirement Age", "Age at which contributions stop and withdrawals begin",
			current+1, 80, func(p *domain.PlanningParameters) *int { return &p.RetirementAge }),
		ageField("Life Expectancy", "Age the corpus has to last until",
			current+2, 110, func(p *domain.PlanningParameters) *int { return &p.LifeExpectancy }),
		{
			label:       "Monthly Expenses",
			description: "Household spending in today's rupees",
			kind:        components.SliderRupees,
			min:         0,
			max:         1000000,
			step:        5000,
			get:         func(p *domain.PlanningParameters) float64 { return p.MonthlyExpenses.InexactFloat64() },
			set:         func(p *domain.PlanningParameters, v float64) { p.MonthlyExpenses = decimal.NewFromFloat(v).Round(0) },
		},
		rateField("SIP Step-Up", "Yearly increase of mutual fund SIPs", 0, 30, 1,
			func(p *domain.PlanningParameters) *decimal.Decimal { return &p.SIPStepUpPercent }),
		{
			label:       "Step-Up From Year",
			description: "First projection year in which the step-up applies",
			kind:        components.SliderYearIndex,
			min:         0,
			max:         10,
			step:        1,
			get:         func(p *domain.PlanningParameters) float64 { return float64(p.StepUpEffectiveFromYear) },
			set:         func(p *domain.PlanningParameters, v float64) { p.StepUpEffectiveFromYear = int(v) },
		},
		rateField("Mutual Fund Return", "Expected yearly return on mutual funds and equity", 4, 18, 0.5,
			func(p *domain.PlanningParameters) *decimal.Decimal { return &p.MFReturn }),
		rateField("Inflation", "Yearly growth of expenses and goals", 2, 12, 0.5,
			func(p *domain.PlanningParameters) *decimal.Decimal { return &p.InflationRate }),
		rateField("Corpus Return", "Return on the corpus after retirement", 4, 14, 0.5,
			func(p *domain.PlanningParameters) *decimal.Decimal { return &p.CorpusReturn }),
		rateField("Withdrawal Rate", "Yearly draw used by the sustainable strategy", 2, 12, 0.5,
			func(p *domain.PlanningParameters) *decimal.Decimal { return &p.WithdrawalRate }),
	}
}

// ParametersModel edits the planning assumptions; every change triggers a
// recalculation.
type ParametersModel struct {
	base     domain.PlanningParameters
	params   domain.PlanningParameters
	fields   []parameterField
	sliders  []*components.ParameterSlider
	focused  int
	modified bool
	loaded   bool
	width    int
	height   int
}

// NewParametersModel creates a new parameters scene model
func NewParametersModel() *ParametersModel {
	return &ParametersModel{}
}

// SetParameters loads the plan's parameters as the reset point
func (m *ParametersModel) SetParameters(params domain.PlanningParameters) {
	m.base = params
	m.params = params
	m.loaded = true
	m.modified = false
	m.buildSliders()
}

// Parameters returns the edited parameters
func (m *ParametersModel) Parameters() domain.PlanningParameters {
	return m.params
}

// Modified reports whether the parameters differ from the loaded plan
func (m *ParametersModel) Modified() bool {
	return m.modified
}

// SetSize updates the scene dimensions
func (m *ParametersModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ParametersModel) buildSliders() {
	m.fields = parameterFields(m.base)
	m.sliders = make([]*components.ParameterSlider, len(m.fields))
	for i, f := range m.fields {
		s := components.NewParameterSlider(f.label, 0, f.min, f.max, f.step).
			WithKind(f.kind).
			WithWidth(40).
			WithDescription(f.description)
		s.SetValue(f.get(&m.params))
		m.sliders[i] = s
	}
	if m.focused >= len(m.sliders) {
		m.focused = 0
	}
	if len(m.sliders) > 0 {
		m.sliders[m.focused].SetFocused(true)
	}
}

// Update handles messages for the parameters scene
func (m *ParametersModel) Update(msg tea.Msg) (*ParametersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *ParametersModel) handleKeyPress(msg tea.KeyMsg) (*ParametersModel, tea.Cmd) {
	if !m.loaded || len(m.sliders) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left"))):
		m.sliders[m.focused].Decrement()
		return m, m.applyChanges()

	case key.Matches(msg, key.NewBinding(key.WithKeys("right"))):
		m.sliders[m.focused].Increment()
		return m, m.applyChanges()

	case key.Matches(msg, key.NewBinding(key.WithKeys("t"))):
		m.params.IncomeStrategy = nextStrategy(m.params.IncomeStrategy)
		m.modified = true
		return m, m.changed()

	case key.Matches(msg, key.NewBinding(key.WithKeys("z"))):
		m.params = m.base
		m.modified = false
		m.buildSliders()
		return m, func() tea.Msg { return tuimsg.ResetParametersMsg{} }

	case key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+s"))):
		if !m.modified {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.SavePlanMsg{} }
	}

	return m, nil
}

func (m *ParametersModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

// applyChanges copies the focused slider back into the parameters
func (m *ParametersModel) applyChanges() tea.Cmd {
	f := m.fields[m.focused]
	f.set(&m.params, m.sliders[m.focused].Value)
	m.modified = true
	return m.changed()
}

func (m *ParametersModel) changed() tea.Cmd {
	params := m.params
	return func() tea.Msg {
		return tuimsg.ParametersChangedMsg{Parameters: params}
	}
}

func nextStrategy(s domain.IncomeStrategy) domain.IncomeStrategy {
	all := domain.AllStrategies()
	for i, candidate := range all {
		if candidate == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// View renders the parameters scene
func (m *ParametersModel) View() string {
	if !m.loaded {
		return "No plan loaded.\n\nPress ESC to return to home."
	}

	title := tuistyles.TitleStyle.Render("Edit Assumptions")
	strategy := label("Income strategy: ") +
		tuistyles.SelectedItemStyle.Render(m.params.IncomeStrategy.DisplayName()) +
		label("  (t to cycle)")

	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 3).
		Width(70)

	var rendered []string
	for i, s := range m.sliders {
		if i == m.focused {
			rendered = append(rendered, s.Render())
		} else {
			rendered = append(rendered, s.RenderCompact())
		}
	}
	sliders := containerStyle.Render(strings.Join(rendered, "\n\n"))

	var status string
	if m.modified {
		status = lipgloss.NewStyle().Foreground(tuistyles.ColorInfo).Bold(true).
			Render("⚠ Modified - results update live • Ctrl+S save to plan file • z reset")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		strategy,
		"",
		sliders,
		"",
		status,
		helpLine("↑/↓ navigate • ←/→ adjust • t strategy • z reset • Ctrl+S save • ESC back"),
	)
}
