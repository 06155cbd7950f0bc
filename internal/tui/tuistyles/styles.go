// Package tuistyles holds the TUI palette and styles. It has no TUI
// dependencies so that scenes and components can share it.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/drawdown/internal/money"
)

var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorAccent    = lipgloss.Color("#F5A623")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorDanger    = lipgloss.Color("#FF5F87")
	ColorInfo      = lipgloss.Color("#3C9EE7")

	ColorForeground = lipgloss.Color("#E4E4E4")
	ColorMuted      = lipgloss.Color("#767676")
	ColorBorder     = lipgloss.Color("#444444")

	// Percentile bands of the net worth chart, low to high.
	ColorChartLow    = lipgloss.Color("#FF5F87")
	ColorChartMedian = lipgloss.Color("#7D56F4")
	ColorChartHigh   = lipgloss.Color("#04B575")
)

var (
	AppStyle      = lipgloss.NewStyle().Padding(0, 1)
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	StatusBarStyle = lipgloss.NewStyle().Foreground(ColorForeground).Background(lipgloss.Color("#2A2A2A")).Padding(0, 1)
	StatusKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)

	BorderStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(1, 2)
	ActiveBorderStyle = BorderStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	HelpKeyStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
)

// MetricTrendStyle returns the style for a change in the given direction.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change in the given direction.
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "↑"
	}
	return "↓"
}

// SuccessRateStyle colors a success rate percentage: green from 90, amber
// from 75, red below.
func SuccessRateStyle(rate decimal.Decimal) lipgloss.Style {
	switch {
	case rate.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return MetricValueStyle.Foreground(ColorSuccess)
	case rate.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return MetricValueStyle.Foreground(ColorAccent)
	}
	return MetricValueStyle.Foreground(ColorDanger)
}

// FormatCurrency formats an amount with its currency symbol.
func FormatCurrency(m money.Money) string {
	return m.String()
}

// FormatCompact shortens large amounts to K or M.
func FormatCompact(d decimal.Decimal) string {
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		return "$" + d.Div(decimal.NewFromInt(1_000_000)).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1_000)):
		return "$" + d.Div(decimal.NewFromInt(1_000)).StringFixed(0) + "K"
	}
	return "$" + d.StringFixed(0)
}
