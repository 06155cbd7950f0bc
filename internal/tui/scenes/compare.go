package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/tui/tuimsg"
	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

// CompareModel shows a ranked comparison of every scenario against the base.
type CompareModel struct {
	set    *compare.ComparisonSet
	width  int
	height int
}

func NewCompareModel() *CompareModel {
	return &CompareModel{}
}

func (m *CompareModel) SetResults(set *compare.ComparisonSet) {
	m.set = set
}

func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update starts a comparison on Enter.
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		return m, func() tea.Msg { return tuimsg.RunComparisonMsg{} }
	}
	return m, nil
}

func (m *CompareModel) View() string {
	if m.set == nil {
		return tuistyles.BorderStyle.Render(
			tuistyles.TitleStyle.Render("Compare Scenarios") + "\n\n" +
				"Every scenario is simulated against the same market paths and\nranked by success rate, then median final net worth.\n\n" +
				tuistyles.InfoStyle.Render("Press Enter to run the comparison"))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		tuistyles.TitleStyle.Render("Scenario Comparison"),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("Base: %s • shared seed %d", m.set.BaseScenarioName, m.set.Seed)),
		"",
		m.renderTable(),
		"",
		m.renderRecommendations(),
		"",
		tuistyles.HelpDescStyle.Render("Enter re-run • ESC back • h home"),
	)
}

func (m *CompareModel) renderTable() string {
	results := m.set.All()
	byName := make(map[string]*compare.ComparisonResult, len(results))
	for _, r := range results {
		byName[r.ScenarioName] = r
	}

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-4s %-20s %9s %13s %13s %12s", "#", "Scenario", "Success", "Median NW", "vs Base", "Taxes/yr")))
	for _, name := range m.set.Ranking {
		r, ok := byName[name]
		if !ok {
			continue
		}
		delta := "base"
		if name != m.set.BaseScenarioName {
			delta = signedCompact(r.NetWorthDiffFromBase)
		}
		line := fmt.Sprintf("%-4d %-20s %8s%% %13s %13s %12s",
			r.Rank, truncate(name, 20), r.SuccessRate.StringFixed(1),
			tuistyles.FormatCompact(r.MedianFinalNetWorth), delta, tuistyles.FormatCompact(r.AverageAnnualTaxes))
		style := tuistyles.TableCellStyle
		if r.Rank == 1 {
			style = tuistyles.TableHighlightStyle
		}
		b.WriteString("\n" + style.Render(line))
	}
	return b.String()
}

func (m *CompareModel) renderRecommendations() string {
	if len(m.set.Recommendations) == 0 {
		return tuistyles.SubtitleStyle.Render("No alternative beats the base scenario.")
	}
	lines := []string{tuistyles.TitleStyle.Render("Recommendations")}
	for _, r := range m.set.Recommendations {
		lines = append(lines, "• "+r)
	}
	return strings.Join(lines, "\n")
}

func signedCompact(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + tuistyles.FormatCompact(d)
	}
	return tuistyles.FormatCompact(d)
}
