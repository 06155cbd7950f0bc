package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

// HomeModel represents the home dashboard scene
type HomeModel struct {
	config *domain.Configuration
	width  int
	height int
}

func NewHomeModel() *HomeModel {
	return &HomeModel{}
}

func (m *HomeModel) SetConfig(config *domain.Configuration) {
	m.config = config
}

func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the home scene. Navigation is handled by the
// parent.
func (m *HomeModel) Update(msg tea.Msg) (*HomeModel, tea.Cmd) {
	return m, nil
}

// View renders the portfolio overview.
func (m *HomeModel) View() string {
	title := tuistyles.TitleStyle.MarginBottom(1).Render("Drawdown - Retirement Solvency Simulator")
	if m.config == nil {
		return tuistyles.BorderStyle.Render(title + "\n\n" + tuistyles.SubtitleStyle.Render("Loading configuration..."))
	}

	sections := []string{title, m.renderPortfolio(), m.renderAccounts(), m.renderSimulation(), renderHomeHelp()}
	return tuistyles.BorderStyle.Render(strings.Join(sections, "\n\n"))
}

func (m *HomeModel) renderPortfolio() string {
	pc := m.config.Portfolio
	lines := []string{
		section("Portfolio"),
		field("Owner", fmt.Sprintf("%s (age %d)", pc.Owner, pc.Age)),
		field("Withdrawal order", orDefault(pc.WithdrawalOrder, "strategy default")),
	}
	p, err := config.BuildPortfolio(&pc)
	if err != nil {
		return strings.Join(append(lines, tuistyles.ErrorStyle.Render(err.Error())), "\n")
	}
	lines = append(lines,
		field("Total assets", p.TotalAssets().String()),
		field("Liabilities", p.TotalLiabilities().String()),
		field("Net worth", tuistyles.MetricValueStyle.Render(p.NetWorth().String())),
	)
	return strings.Join(lines, "\n")
}

func (m *HomeModel) renderAccounts() string {
	header := tuistyles.TableHeaderStyle.Render(fmt.Sprintf("  %-14s %-22s %16s", "Type", "Name", "Balance"))
	lines := []string{section(fmt.Sprintf("Accounts (%d)", len(m.config.Portfolio.Accounts))), header}
	for _, a := range m.config.Portfolio.Accounts {
		name := a.Name
		if name == "" {
			name = a.ID
		}
		balance := money.New(a.Balance, m.config.Portfolio.Currency).String()
		lines = append(lines, tuistyles.TableCellStyle.Render(fmt.Sprintf("  %-14s %-22s %16s", a.Type, truncate(name, 22), balance)))
	}
	return strings.Join(lines, "\n")
}

func (m *HomeModel) renderSimulation() string {
	sim := m.config.Simulation
	return strings.Join([]string{
		section("Simulation"),
		field("Strategy", m.config.Strategy.Type),
		field("Horizon", fmt.Sprintf("%d years, %d trials", sim.Years, sim.NumSimulations)),
		field("Scenarios", fmt.Sprintf("%d configured", len(m.config.Scenarios))),
	}, "\n")
}

func renderHomeHelp() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tuistyles.HelpKeyStyle.Render("s"), tuistyles.HelpDescStyle.Render(" run a scenario  "),
		tuistyles.HelpKeyStyle.Render("c"), tuistyles.HelpDescStyle.Render(" compare scenarios  "),
		tuistyles.HelpKeyStyle.Render("?"), tuistyles.HelpDescStyle.Render(" help"),
	)
}

func section(title string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorSecondary).Render(title)
}

func field(label, value string) string {
	return tuistyles.MetricLabelStyle.Width(20).Render("  "+label+":") + value
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
