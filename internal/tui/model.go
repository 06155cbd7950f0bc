// Package tui is the interactive terminal front end: browse the portfolio,
// run scenarios with live progress, and compare them.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration

	selectedScenario string

	homeModel      *scenes.HomeModel
	scenariosModel *scenes.ScenariosModel
	resultsModel   *scenes.ResultsModel
	compareModel   *scenes.CompareModel

	// Running job state. events carries progress and the final message from
	// the worker goroutine.
	running     bool
	runningText string
	events      chan tea.Msg
	cancel      context.CancelFunc
	spinner     spinner.Model
	progress    progress.Model

	err error
}

// NewModel creates a new application model
func NewModel(configPath string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = InfoStyle
	return Model{
		currentScene:   SceneHome,
		configPath:     configPath,
		homeModel:      scenes.NewHomeModel(),
		scenariosModel: scenes.NewScenariosModel(),
		resultsModel:   scenes.NewResultsModel(),
		compareModel:   scenes.NewCompareModel(),
		spinner:        s,
		progress:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		width:          80,
		height:         24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadConfigCmd(m.configPath)
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// resolveScenario returns the configuration the named scenario runs with.
func resolveScenario(cfg *domain.Configuration, name string) (*domain.Configuration, error) {
	if name == compare.BaseName {
		return cfg, nil
	}
	for _, s := range cfg.Scenarios {
		if s.Name == name {
			return config.ResolveScenario(cfg, s), nil
		}
	}
	return nil, fmt.Errorf("scenario %s not found in configuration", name)
}

// waitForEvent blocks until the worker goroutine sends its next message.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// sendProgress never blocks the simulation; a dropped update is superseded
// by the next one. The last buffer slot stays free for the completion message,
// so the worker can always finish and exit even after the UI stops reading.
func sendProgress(events chan<- tea.Msg, msg ProgressMsg) {
	if len(events) >= cap(events)-1 {
		return
	}
	select {
	case events <- msg:
	default:
	}
}

// simulateCmd runs one scenario in the background and streams trial progress.
func simulateCmd(ctx context.Context, cfg *domain.Configuration, name string, events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			resolved, err := resolveScenario(cfg, name)
			if err != nil {
				events <- SimulationCompleteMsg{ScenarioName: name, Err: err}
				return
			}
			params, err := config.BuildParams(resolved)
			if err != nil {
				events <- SimulationCompleteMsg{ScenarioName: name, Err: err}
				return
			}
			sim := calculation.NewSimulator(params)
			sim.OnTrialComplete(func(done, total int) {
				sendProgress(events, ProgressMsg{Done: done, Total: total, Label: name})
			})
			result, err := sim.Run(ctx)
			events <- SimulationCompleteMsg{ScenarioName: name, Result: result, Err: err}
		}()
		return <-events
	}
}

// compareCmd runs every scenario against the base in the background.
func compareCmd(ctx context.Context, cfg *domain.Configuration, events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			engine := compare.NewCompareEngine()
			engine.OnScenario = func(name string, index, total int) {
				sendProgress(events, ProgressMsg{Done: index, Total: total, Label: name})
			}
			set, err := engine.Compare(ctx, cfg, compare.CompareOptions{})
			events <- ComparisonCompleteMsg{Set: set, Err: err}
		}()
		return <-events
	}
}
