package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// eventBuffer bounds how many progress updates can queue behind a slow UI.
const eventBuffer = 64

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(60, max(10, msg.Width-10))
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.scenariosModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.compareModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.homeModel.SetConfig(msg.Config)
		m.scenariosModel.SetConfig(msg.Config)
		return m, nil

	case RunScenarioMsg:
		if m.running || m.config == nil {
			return m, nil
		}
		m.selectedScenario = msg.ScenarioName
		ctx := m.startJob("Simulating " + msg.ScenarioName)
		return m, tea.Batch(m.spinner.Tick, simulateCmd(ctx, m.config, msg.ScenarioName, m.events))

	case RunComparisonMsg:
		if m.running || m.config == nil {
			return m, nil
		}
		ctx := m.startJob("Comparing scenarios")
		return m, tea.Batch(m.spinner.Tick, compareCmd(ctx, m.config, m.events))

	case ProgressMsg:
		if !m.running {
			return m, nil
		}
		cmds := []tea.Cmd{waitForEvent(m.events)}
		if msg.Total > 0 {
			cmds = append(cmds, m.progress.SetPercent(float64(msg.Done)/float64(msg.Total)))
		}
		return m, tea.Batch(cmds...)

	case SimulationCompleteMsg:
		m.finishJob()
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetResults(msg.ScenarioName, msg.Result)
		return m.navigate(SceneResults)

	case ComparisonCompleteMsg:
		m.finishJob()
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetResults(msg.Set)
		return m.navigate(SceneCompare)

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress = pm.(progress.Model)
		return m, cmd
	}

	return m.updateCurrentScene(msg)
}

// startJob puts the model into the running state and returns the context
// the job must honor.
func (m *Model) startJob(text string) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	m.running = true
	m.runningText = text
	m.events = make(chan tea.Msg, eventBuffer)
	m.cancel = cancel
	m.err = nil
	m.progress.SetPercent(0)
	return ctx
}

func (m *Model) finishJob() {
	if m.cancel != nil {
		m.cancel()
	}
	m.running = false
	m.cancel = nil
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	}

	if m.running {
		// Only cancellation is accepted while a job runs; the worker reports
		// the cancellation as an error.
		if msg.String() == "esc" && m.cancel != nil {
			m.cancel()
		}
		return m, nil
	}

	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m.navigate(SceneHelp)
	case "esc":
		if m.currentScene == SceneHome {
			return m, nil
		}
		if m.previousScene != m.currentScene {
			return m.navigate(m.previousScene)
		}
		return m.navigate(SceneHome)
	case "h":
		return m.navigate(SceneHome)
	case "s":
		return m.navigate(SceneScenarios)
	case "r":
		return m.navigate(SceneResults)
	case "c":
		return m.navigate(SceneCompare)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	}
	return m, cmd
}
