package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
	Char   rune
}

// ASCIIChart draws one or more series on a character grid.
type ASCIIChart struct {
	Title  string
	Series []*DataSeries
	Width  int
	Height int
}

const yAxisWidth = 9

func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{Title: title, Width: 64, Height: 12}
}

func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color, char rune) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color, Char: char})
	return c
}

func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// NetWorthChart plots the 10th, 50th and 90th percentile net worth paths.
func NetWorthChart(paths []calculation.NetWorthPath) *ASCIIChart {
	series := map[string][]float64{}
	for _, p := range paths {
		for _, k := range []string{"10th", "50th", "90th"} {
			series[k] = append(series[k], p.Percentiles[k].InexactFloat64())
		}
	}
	return NewASCIIChart("Net Worth by Year").
		AddSeries("90th percentile", series["90th"], tuistyles.ColorChartHigh, '▲').
		AddSeries("median", series["50th"], tuistyles.ColorChartMedian, '●').
		AddSeries("10th percentile", series["10th"], tuistyles.ColorChartLow, '▼')
}

func (c *ASCIIChart) bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

// Render returns the chart, or a placeholder when there is nothing to plot.
func (c *ASCIIChart) Render() string {
	points := 0
	for _, s := range c.Series {
		if len(s.Points) > points {
			points = len(s.Points)
		}
	}
	if points == 0 || c.Height < 2 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	plotWidth := c.Width - yAxisWidth - 3
	if plotWidth < 2 {
		plotWidth = 2
	}
	lo, hi := c.bounds()
	grid := make([][]string, c.Height)
	for y := range grid {
		grid[y] = make([]string, plotWidth)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	// Later series are drawn under earlier ones where they overlap.
	for i := len(c.Series) - 1; i >= 0; i-- {
		s := c.Series[i]
		style := lipgloss.NewStyle().Foreground(s.Color)
		for x := 0; x < plotWidth; x++ {
			if len(s.Points) == 0 {
				break
			}
			idx := 0
			if plotWidth > 1 {
				idx = int(math.Round(float64(x) / float64(plotWidth-1) * float64(len(s.Points)-1)))
			}
			row := c.Height - 1 - int(math.Round((s.Points[idx]-lo)/(hi-lo)*float64(c.Height-1)))
			grid[row][x] = style.Render(string(s.Char))
		}
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(tuistyles.TitleStyle.Render(c.Title) + "\n\n")
	}
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y, row := range grid {
		label := ""
		if y == 0 || y == c.Height-1 || y == c.Height/2 {
			v := hi - float64(y)/float64(c.Height-1)*(hi-lo)
			label = formatChartValue(v)
		}
		b.WriteString(axis.Render(label) + " │ " + strings.Join(row, "") + "\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", plotWidth+1) + "\n")
	b.WriteString(strings.Repeat(" ", yAxisWidth+3) + fmt.Sprintf("year 0%syear %d", strings.Repeat(" ", max(1, plotWidth-12-len(fmt.Sprint(points-1)))), points-1))
	b.WriteString("\n\n" + c.renderLegend())
	return b.String()
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for _, s := range c.Series {
		items = append(items, lipgloss.NewStyle().Foreground(s.Color).Render(string(s.Char))+" "+s.Name)
	}
	return tuistyles.HelpDescStyle.Render(strings.Join(items, "  "))
}

func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1_000_000:
		return fmt.Sprintf("$%.1fM", value/1_000_000)
	case math.Abs(value) >= 1_000:
		return fmt.Sprintf("$%.0fK", value/1_000)
	}
	return fmt.Sprintf("$%.0f", value)
}
