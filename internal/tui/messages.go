package tui

import (
	"github.com/rgehrsitz/drawdown/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneScenarios
	SceneResults
	SceneCompare
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneScenarios:
		return "Scenarios"
	case SceneResults:
		return "Results"
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

// Messages shared with the scenes.
type (
	ConfigLoadedMsg       = tuimsg.ConfigLoadedMsg
	ErrorMsg              = tuimsg.ErrorMsg
	RunScenarioMsg        = tuimsg.RunScenarioMsg
	RunComparisonMsg      = tuimsg.RunComparisonMsg
	ProgressMsg           = tuimsg.ProgressMsg
	SimulationCompleteMsg = tuimsg.SimulationCompleteMsg
	ComparisonCompleteMsg = tuimsg.ComparisonCompleteMsg
)
