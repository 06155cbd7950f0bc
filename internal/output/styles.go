package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	colorPrimary = lipgloss.Color("#7D56F4")
	colorSuccess = lipgloss.Color("#04B575")
	colorWarning = lipgloss.Color("#F5A623")
	colorDanger  = lipgloss.Color("#FF5F87")
	colorMuted   = lipgloss.Color("#767676")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.DoubleBorder(), false, false, true, false).
			BorderForeground(colorPrimary)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(26)
	valueStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// successStyle colors a success rate: green from 90%, amber from 75%, red below.
func successStyle(rate decimal.Decimal) lipgloss.Style {
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return valueStyle.Foreground(colorSuccess)
	case rate.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return valueStyle.Foreground(colorWarning)
	}
	return valueStyle.Foreground(colorDanger)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value) + "\n"
}
