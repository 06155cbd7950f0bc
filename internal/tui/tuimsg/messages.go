// Package tuimsg holds the messages scenes send to the root model. It lives
// apart from package tui so that scenes can import it without a cycle.
package tuimsg

import (
	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/domain"
)

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// RunScenarioMsg asks the root model to simulate the named scenario.
type RunScenarioMsg struct {
	ScenarioName string
}

// RunComparisonMsg asks the root model to compare every scenario.
type RunComparisonMsg struct{}

// ProgressMsg reports how much of a running job has finished.
type ProgressMsg struct {
	Done  int
	Total int
	Label string
}

// SimulationCompleteMsg carries the outcome of a single scenario run.
type SimulationCompleteMsg struct {
	ScenarioName string
	Result       *calculation.Result
	Err          error
}

// ComparisonCompleteMsg carries the outcome of a comparison.
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
