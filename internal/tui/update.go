package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/rgehrsitz/corpus/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeScenes()
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case TickMsg:
		m.spinner.Next()
		return m, tickCmd()

	case reloadMsg:
		model, cmd := m.Update(msg.msg)
		return model, tea.Batch(cmd, waitForReloadCmd(m.reloads))

	case watchStoppedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Plan watcher stopped: %v", msg.err)
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tuimsg.PlanLoadedMsg:
		m.plan = msg.Plan
		m.working = msg.Plan.DeepCopy()
		m.parametersModel.SetParameters(m.working.Parameters)
		m.compareModel.Invalidate()
		if msg.Reloaded {
			m.status = "Reloaded " + m.planPath
		}
		return m, m.recalculate("Calculating projection...")

	case tuimsg.ParametersChangedMsg:
		if m.plan == nil {
			return m, nil
		}
		m.working = m.plan.DeepCopy()
		m.working.Parameters = msg.Parameters
		m.status = "Parameters modified"
		return m, m.recalculate("")

	case tuimsg.ResetParametersMsg:
		if m.plan == nil {
			return m, nil
		}
		m.working = m.plan.DeepCopy()
		m.parametersModel.SetParameters(m.working.Parameters)
		m.status = "Parameters reset"
		return m, m.recalculate("")

	case tuimsg.CalculationCompleteMsg:
		// a newer edit superseded this calculation
		if msg.Plan != m.working {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.applyResult(msg.Result)
		return m, nil

	case tuimsg.ComparisonStartedMsg:
		if m.working == nil {
			return m, nil
		}
		return m, compareCmd(m.compareEngine, m.working, m.planPath, msg.Templates)

	case tuimsg.ComparisonCompleteMsg:
		m.compareModel.SetResults(msg.Set, msg.Err)
		return m, nil

	case tuimsg.BreakEvenStartedMsg:
		if m.working == nil {
			return m, nil
		}
		return m, breakEvenCmd(m.solver, m.working, msg.TargetCorpus)

	case tuimsg.BreakEvenCompleteMsg:
		m.optimizeModel.SetBreakEven(msg.Result, msg.Err)
		return m, nil

	case tuimsg.SavePlanMsg:
		if m.working == nil {
			return m, nil
		}
		return m, savePlanCmd(m.planPath, m.working)

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.plan = m.working.DeepCopy()
		m.parametersModel.SetParameters(m.working.Parameters)
		m.status = "Saved " + msg.Filename
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// recalculate schedules a calculation of the working plan. A non-empty
// message shows the full-screen loading view while it runs.
func (m *Model) recalculate(message string) tea.Cmd {
	if message != "" {
		m.loading = true
		m.loadingMessage = message
	}
	return calculateCmd(m.calcEngine, m.working)
}

// applyResult hands a fresh result to every scene that renders it
func (m *Model) applyResult(result *domain.Result) {
	m.result = result
	m.homeModel.SetPlan(m.planPath, m.working, result)
	m.resultsModel.SetResult(m.working.Name, result)
	m.scenariosModel.SetAnalysis(result.WhatIf)
	m.optimizeModel.SetOptimization(result.StepUpOptimization)
	m.compareModel.Invalidate()
}

func (m *Model) resizeScenes() {
	h := max(0, m.height-4)
	m.homeModel.SetSize(m.width, h)
	m.parametersModel.SetSize(m.width, h)
	m.resultsModel.SetSize(m.width, h)
	m.scenariosModel.SetSize(m.width, h)
	m.optimizeModel.SetSize(m.width, h)
	m.compareModel.SetSize(m.width, h)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}

	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// the target input owns the keyboard while it is open
	if m.currentScene == SceneOptimize && m.optimizeModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		m.Close()
		return m, tea.Quit
	case "?":
		return m, navigate(SceneHelp)
	case "esc":
		if m.currentScene == SceneHome {
			return m, nil
		}
		if m.previousScene != m.currentScene {
			return m, navigate(m.previousScene)
		}
		return m, navigate(SceneHome)
	case "h":
		return m, navigate(SceneHome)
	case "p":
		return m, navigate(SceneParameters)
	case "r":
		return m, navigate(SceneResults)
	case "s":
		return m, navigate(SceneScenarios)
	case "o":
		return m, navigate(SceneOptimize)
	case "c":
		return m, navigate(SceneCompare)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
