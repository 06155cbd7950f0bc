package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/tui/components"
	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)


// ResultsModel represents the results display scene
type ResultsModel struct {
	scenarioName string
	result       *calculation.Result
	width        int
	height       int
}

func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetResults updates the results to display
func (m *ResultsModel) SetResults(scenarioName string, result *calculation.Result) {
	m.scenarioName = scenarioName
	m.result = result
}

func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene. It is read-only.
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	return m, nil
}

func (m *ResultsModel) View() string {
	if m.result == nil {
		return "No results to display.\n\nRun a scenario from the Scenarios screen first.\n\nPress ESC to go back."
	}
	r := m.result
	header := lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Simulation Results"),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("Scenario: %s • %s strategy, %s order • %d trials, seed %d",
			m.scenarioName, r.Strategy, r.WithdrawalOrder, r.NumSimulations, r.Seed)),
	)

	chartWidth := 64
	if m.width > 0 && m.width-4 < chartWidth {
		chartWidth = max(24, m.width-4)
	}
	chart := components.NetWorthChart(r.NetWorthPaths()).WithSize(chartWidth, 10).Render()

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "",
		renderKeyMetrics(r), "",
		chart, "",
		renderDepletion(r), "",
		tuistyles.HelpDescStyle.Render("ESC back • s scenarios • c compare • h home"),
	)
}

func renderKeyMetrics(r *calculation.Result) string {
	completed := r.NumSimulations - r.FailedRuns
	cards := []*components.MetricCard{
		components.NewMetricCard("Success Rate", r.SuccessRate.StringFixed(1)+"%").
			WithValueStyle(tuistyles.SuccessRateStyle(r.SuccessRate)).
			WithDescription(fmt.Sprintf("of %d trials", completed)),
		components.NewMetricCard("Median Final Net Worth", tuistyles.FormatCurrency(r.MedianFinalNetWorth)),
		components.NewMetricCard("Average Annual Taxes", tuistyles.FormatCurrency(r.AverageAnnualTaxes)),
	}
	if r.MortgagePaidOffRuns > 0 {
		cards = append(cards, components.NewMetricCard("Mortgage Paid Off", fmt.Sprintf("year %d", r.MedianMortgagePayoffYear)).
			WithDescription(fmt.Sprintf("median, in %d trials", r.MortgagePaidOffRuns)))
	}
	return components.MetricGrid(cards, 2)
}

func renderDepletion(r *calculation.Result) string {
	if len(r.AccountDepletion) == 0 {
		return tuistyles.MetricPositiveStyle.Render("No account type ran dry in any trial.")
	}
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-15s %11s %7s %9s", "Depleted", "Probability", "Median", "Earliest")))
	for _, d := range r.AccountDepletion {
		b.WriteString("\n" + tuistyles.TableCellStyle.Render(fmt.Sprintf("%-15s %10s%% %7d %9d",
			d.Type, d.Probability.Shift(2).StringFixed(1), d.Median, d.Earliest)))
	}
	return b.String()
}
