package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/tui/components"
	"github.com/rgehrsitz/drawdown/internal/tui/tuimsg"
	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

type scenarioEntry struct {
	name   string
	config *domain.Configuration
}

// ScenariosModel lists the base configuration and its scenarios.
type ScenariosModel struct {
	entries       []scenarioEntry
	cards         []*components.ScenarioCard
	selectedIndex int
	width         int
	height        int
}

var (
	keyUp     = key.NewBinding(key.WithKeys("up", "k"))
	keyDown   = key.NewBinding(key.WithKeys("down", "j"))
	keyEnter  = key.NewBinding(key.WithKeys("enter"))
	keyTop    = key.NewBinding(key.WithKeys("g"))
	keyBottom = key.NewBinding(key.WithKeys("G"))
)

func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetConfig resolves every scenario of cfg and rebuilds the list. The base
// configuration comes first.
func (m *ScenariosModel) SetConfig(cfg *domain.Configuration) {
	m.entries = []scenarioEntry{{name: compare.BaseName, config: cfg}}
	for _, s := range cfg.Scenarios {
		m.entries = append(m.entries, scenarioEntry{name: s.Name, config: config.ResolveScenario(cfg, s)})
	}
	m.cards = make([]*components.ScenarioCard, len(m.entries))
	for i, e := range m.entries {
		m.cards[i] = components.NewScenarioCard(e.name, e.config.Strategy.Type)
	}
	if m.selectedIndex >= len(m.entries) {
		m.selectedIndex = 0
	}
}

func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedScenario returns the currently selected scenario name
func (m *ScenariosModel) SelectedScenario() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.entries) {
		return m.entries[m.selectedIndex].name
	}
	return ""
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, keyUp):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, keyDown):
		if m.selectedIndex < len(m.entries)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, keyTop):
		m.selectedIndex = 0
	case key.Matches(keyMsg, keyBottom):
		m.selectedIndex = max(0, len(m.entries)-1)
	case key.Matches(keyMsg, keyEnter):
		name := m.SelectedScenario()
		if name == "" {
			return m, nil
		}
		return m, func() tea.Msg { return tuimsg.RunScenarioMsg{ScenarioName: name} }
	}
	return m, nil
}

// View renders the list next to the selected scenario's details.
func (m *ScenariosModel) View() string {
	if len(m.entries) == 0 {
		return "No configuration loaded.\n\nPress ESC to return to home."
	}
	list := tuistyles.BorderStyle.Width(36).Render(
		tuistyles.TitleStyle.Render("Scenarios") + "\n\n" + components.ScenarioListCompact(m.cards, m.selectedIndex))
	details := renderScenarioDetails(m.entries[m.selectedIndex])
	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", details) + "\n\n" +
		tuistyles.HelpDescStyle.Render("↑/k up • ↓/j down • Enter run • g top • G bottom • ESC back")
}

func renderScenarioDetails(e scenarioEntry) string {
	cfg := e.config
	card := components.NewScenarioCard(e.name, cfg.Strategy.Type).SetSelected(true)
	for _, line := range strategyLines(cfg.Strategy) {
		card.AddHighlight(line)
	}
	order := cfg.Strategy.WithdrawalOrder
	if order == "" {
		order = orDefault(cfg.Portfolio.WithdrawalOrder, "strategy default")
	}
	card.AddHighlight("withdrawal order: " + order)
	if cfg.Simulation.PayMortgage != nil && !*cfg.Simulation.PayMortgage {
		card.AddHighlight("mortgage: not paid down")
	}
	card.AddHighlight(fmt.Sprintf("%d years × %d trials", cfg.Simulation.Years, cfg.Simulation.NumSimulations))
	return card.Render() + "\n" + tuistyles.InfoStyle.Italic(true).Render("Press Enter to simulate this scenario")
}

func strategyLines(s domain.StrategyConfig) []string {
	var lines []string
	add := func(label string, v *decimal.Decimal, suffix string) {
		if v != nil {
			lines = append(lines, label+": "+v.String()+suffix)
		}
	}
	switch strings.ToLower(s.Type) {
	case "fixed":
		add("initial withdrawal", s.InitialWithdrawal, "")
		add("inflation", s.InflationRate, "")
	case "percentage":
		add("rate", s.WithdrawalRate, "%")
		add("floor", s.MinWithdrawal, "")
		add("ceiling", s.MaxWithdrawal, "")
	case "dynamic":
		add("base withdrawal", s.BaseWithdrawal, "")
		add("min rate", s.MinRate, "%")
		add("max rate", s.MaxRate, "%")
	case "bucket":
		add("annual expenses", s.AnnualExpenses, "")
		lines = append(lines, fmt.Sprintf("buckets: %d years cash, %d years taxable", s.YearsInCash, s.YearsInTaxable))
	}
	return lines
}
