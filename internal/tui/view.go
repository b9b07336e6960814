package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(m.renderError())
	}
	if m.loading {
		return m.renderApp(m.renderLoading())
	}

	var content string
	switch m.currentScene {
	case SceneHome:
		content = m.homeModel.View()
	case SceneParameters:
		content = m.parametersModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(0, m.height-4) // title (2) + status (1) + padding (1)

	container := lipgloss.NewStyle().
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Corpus - Retirement Planner")

	crumb := m.currentScene.String()
	if m.working != nil && m.working.Name != "" {
		crumb = fmt.Sprintf("%s / %s", m.working.Name, crumb)
	}
	if m.parametersModel.Modified() {
		crumb += " (modified)"
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("p", "parameters"),
		formatShortcut("r", "results"),
		formatShortcut("s", "what-if"),
		formatShortcut("o", "optimize"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.status != "" {
		note := InfoStyle.Render(m.status)
		gap := m.width - lipgloss.Width(statusText) - lipgloss.Width(note) - 4
		statusText += strings.Repeat(" ", max(1, gap)) + note
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return BorderStyle.Render(m.spinner.WithMessage(message).Render())
}

func (m Model) renderError() string {
	return ErrorStyle.Render(
		fmt.Sprintf("Error: %v\n\nPress any key to continue...", m.err),
	)
}

func (m Model) renderHelp() string {
	helpText := `
Corpus - Retirement Corpus Planner

NAVIGATION:
  h        Home dashboard
  p        Edit planning parameters
  r        Year-by-year projection
  s        What-if scenarios
  o        Step-up optimizer and break-even levers
  c        Compare against built-in templates
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

PARAMETERS:
  ↑/↓      Select a parameter
  ←/→      Adjust the selected value (recalculates)
  t        Cycle the income strategy
  z        Reset to the values in the plan file
  Ctrl+S   Save edits back to the plan file

OPTIMIZE:
  b/Enter  Solve the break-even levers for the corpus gap
  t        Solve for a custom target corpus

COMPARE:
  Space    Toggle a template
  a        Select all templates
  Enter    Run the comparison

The plan file is watched; saving it in an editor reloads the projection.
`
	if m.watch {
		return BorderStyle.Render(strings.TrimPrefix(helpText, "\n"))
	}
	return BorderStyle.Render(strings.TrimPrefix(strings.Replace(helpText,
		"The plan file is watched; saving it in an editor reloads the projection.\n", "", 1), "\n"))
}
