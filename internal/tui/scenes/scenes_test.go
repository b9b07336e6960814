package scenes

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/corpus/internal/config"
	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/transform"
	"github.com/rgehrsitz/corpus/internal/tui/tuimsg"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testParameters() domain.PlanningParameters {
	p := config.DefaultParameters()
	p.CurrentAge = 35
	p.RetirementAge = 60
	p.LifeExpectancy = 85
	p.MonthlyExpenses = decimal.NewFromInt(100000)
	return p
}

func TestParametersModel_AdjustEmitsChange(t *testing.T) {
	m := NewParametersModel()
	m.SetParameters(testParameters())

	m, cmd := m.Update(keyPress("right"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.ParametersChangedMsg)
	require.True(t, ok)
	assert.Equal(t, 61, msg.Parameters.RetirementAge)
	assert.True(t, m.Modified())

	// focus the mutual fund return slider and step it down by half a point
	for i := 0; i < 5; i++ {
		m, _ = m.Update(keyPress("down"))
	}
	_, cmd = m.Update(keyPress("left"))
	msg = cmd().(tuimsg.ParametersChangedMsg)
	assert.Equal(t, "11.5", msg.Parameters.MFReturn.String())
	assert.Equal(t, 61, msg.Parameters.RetirementAge)
}

func TestParametersModel_CycleResetAndSave(t *testing.T) {
	m := NewParametersModel()
	m.SetParameters(testParameters())

	_, cmd := m.Update(keyPress("ctrl+s"))
	assert.Nil(t, cmd, "nothing to save before an edit")

	_, cmd = m.Update(keyPress("t"))
	msg := cmd().(tuimsg.ParametersChangedMsg)
	assert.NotEqual(t, domain.StrategySustainable, msg.Parameters.IncomeStrategy)

	_, cmd = m.Update(keyPress("ctrl+s"))
	require.NotNil(t, cmd)
	assert.IsType(t, tuimsg.SavePlanMsg{}, cmd())

	_, cmd = m.Update(keyPress("z"))
	assert.IsType(t, tuimsg.ResetParametersMsg{}, cmd())
	assert.False(t, m.Modified())
	assert.Equal(t, domain.StrategySustainable, m.Parameters().IncomeStrategy)
}

func TestParametersModel_ClampsAtBounds(t *testing.T) {
	params := testParameters()
	params.RetirementAge = 80
	m := NewParametersModel()
	m.SetParameters(params)

	_, cmd := m.Update(keyPress("right"))
	msg := cmd().(tuimsg.ParametersChangedMsg)
	assert.Equal(t, 80, msg.Parameters.RetirementAge)
}

func TestNextStrategy_Wraps(t *testing.T) {
	all := domain.AllStrategies()
	assert.Equal(t, all[1], nextStrategy(all[0]))
	assert.Equal(t, all[0], nextStrategy(all[len(all)-1]))
	assert.Equal(t, all[0], nextStrategy("unknown"))
}

func TestOptimizeModel_TargetInput(t *testing.T) {
	m := NewOptimizeModel()
	m.SetOptimization(domain.StepUpOptimization{Mode: domain.OptimizerFull})

	m, _ = m.Update(keyPress("t"))
	require.True(t, m.Editing())

	// global navigation keys are typed into the input
	for _, r := range "5,00,00,000" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m, cmd := m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.False(t, m.Editing())

	msg := cmd().(tuimsg.BreakEvenStartedMsg)
	require.NotNil(t, msg.TargetCorpus)
	assert.Equal(t, "50000000", msg.TargetCorpus.String())
	assert.Contains(t, m.View(), "Solving")
}

func TestOptimizeModel_RejectsBadTarget(t *testing.T) {
	m := NewOptimizeModel()
	m.SetOptimization(domain.StepUpOptimization{Mode: domain.OptimizerFull})

	m, _ = m.Update(keyPress("t"))
	m, _ = m.Update(keyPress("x"))
	m, cmd := m.Update(keyPress("enter"))
	assert.Nil(t, cmd)
	assert.True(t, m.Editing())
	assert.Contains(t, m.View(), "positive amount")
}

func TestCompareModel_Selection(t *testing.T) {
	m := NewCompareModel(transform.CreateBuiltInTemplates())

	_, cmd := m.Update(keyPress("enter"))
	assert.Nil(t, cmd, "no templates selected")

	m, _ = m.Update(keyPress(" "))
	m, _ = m.Update(keyPress("down"))
	m, _ = m.Update(keyPress("x"))
	selected := m.SelectedTemplates()
	require.Len(t, selected, 2)

	m, cmd = m.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	msg := cmd().(tuimsg.ComparisonStartedMsg)
	assert.Equal(t, selected, msg.Templates)
	assert.Contains(t, m.View(), "Calculating alternatives")

	// keys are ignored while a comparison runs
	m, _ = m.Update(keyPress("backspace"))
	assert.Len(t, m.SelectedTemplates(), 2)

	m.SetResults(nil, assert.AnError)
	assert.Contains(t, m.View(), assert.AnError.Error())
}

func TestHomeModel_NoPlan(t *testing.T) {
	m := NewHomeModel()
	assert.Contains(t, m.View(), "Loading plan")
}

func TestGapText(t *testing.T) {
	assert.Contains(t, gapText(decimal.NewFromInt(2500000)), "short")
	assert.Contains(t, gapText(decimal.NewFromInt(-2500000)), "surplus")
}
