package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.running:
		content = m.renderRunning()
	case m.err != nil:
		content = ErrorStyle.Render(fmt.Sprintf("Error: %s", m.err)) + "\n\n" + SubtitleStyle.Render("Press any key to continue...")
	default:
		content = m.renderScene()
	}
	return m.renderApp(content)
}

func (m Model) renderScene() string {
	switch m.currentScene {
	case SceneHome:
		return m.homeModel.View()
	case SceneScenarios:
		return m.scenariosModel.View()
	case SceneResults:
		return m.resultsModel.View()
	case SceneCompare:
		return m.compareModel.View()
	case SceneHelp:
		return BorderStyle.Render(helpText)
	}
	return "Unknown scene"
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(1, m.height-4)
	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitleBar(),
		lipgloss.NewStyle().Height(contentHeight).Render(content),
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	breadcrumb := m.currentScene.String()
	if m.selectedScenario != "" && m.currentScene == SceneResults {
		breadcrumb += " / " + m.selectedScenario
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("Drawdown - Monte Carlo Retirement Planning"),
		SubtitleStyle.Render(breadcrumb),
	)
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("h", "home"),
		formatShortcut("s", "scenarios"),
		formatShortcut("r", "results"),
		formatShortcut("c", "compare"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	if m.running {
		shortcuts = []string{formatShortcut("esc", "cancel"), formatShortcut("ctrl+c", "quit")}
	}
	status := strings.Join(shortcuts, " • ")
	if m.configPath != "" {
		spacer := strings.Repeat(" ", max(1, m.width-lipgloss.Width(status)-lipgloss.Width(m.configPath)-4))
		status += spacer + m.configPath
	}
	return StatusBarStyle.Width(m.width).Render(status)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderRunning() string {
	return BorderStyle.Render(
		m.spinner.View() + " " + m.runningText + "\n\n" + m.progress.View(),
	)
}

const helpText = `Drawdown - Monte Carlo Retirement Planning

KEYBOARD SHORTCUTS:
  h        Home (portfolio overview)
  s        Scenarios
  r        Results of the last run
  c        Compare all scenarios
  ?        Show this help
  ESC      Go back, or cancel a running simulation
  q/Ctrl+C Quit

SCENARIOS:
  ↑/↓      Move the selection
  Enter    Simulate the selected scenario

COMPARE:
  Enter    Run every scenario on the same market paths and rank them`
