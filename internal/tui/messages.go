package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneParameters
	SceneResults
	SceneScenarios
	SceneOptimize
	SceneCompare
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneParameters:
		return "Parameters"
	case SceneResults:
		return "Results"
	case SceneScenarios:
		return "What-If"
	case SceneOptimize:
		return "Optimize"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// TickMsg advances the loading spinner
type TickMsg struct{}

// watchStoppedMsg is sent when the plan watcher exits
type watchStoppedMsg struct {
	err error
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}
