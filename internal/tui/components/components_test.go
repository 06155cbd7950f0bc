package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/drawdown/internal/calculation"
)

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Success Rate", "92.00%").WithTrend(true, "+4.0 pts").WithDescription("of 1000 trials")
	out := card.Render()
	assert.Contains(t, out, "Success Rate")
	assert.Contains(t, out, "92.00%")
	assert.Contains(t, out, "↑ +4.0 pts")
	assert.Contains(t, out, "of 1000 trials")

	compact := NewMetricCard("Taxes", "$1,200.00").WithTrend(false, "-$300").RenderCompact()
	assert.Contains(t, compact, "Taxes: $1,200.00 ↓ -$300")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))
	cards := []*MetricCard{NewMetricCard("a", "1"), NewMetricCard("b", "2"), NewMetricCard("c", "3")}
	out := MetricGrid(cards, 2)
	for _, v := range []string{"a", "b", "c"} {
		assert.Contains(t, out, v)
	}
}

func TestNetWorthChart(t *testing.T) {
	var paths []calculation.NetWorthPath
	for year := 0; year < 10; year++ {
		v := decimal.NewFromInt(int64(100000 + year*10000))
		paths = append(paths, calculation.NetWorthPath{Year: year, Percentiles: map[string]decimal.Decimal{
			"10th": v.Sub(decimal.NewFromInt(50000)), "50th": v, "90th": v.Add(decimal.NewFromInt(50000)),
		}})
	}
	out := NetWorthChart(paths).Render()
	assert.Contains(t, out, "Net Worth by Year")
	assert.Contains(t, out, "$240K")
	assert.Contains(t, out, "$50K")
	assert.Contains(t, out, "year 9")
	assert.Contains(t, out, "median")

	assert.Contains(t, NewASCIIChart("empty").Render(), "No data to display")
}

func TestScenarioListCompact(t *testing.T) {
	cards := []*ScenarioCard{
		NewScenarioCard("base", "fixed"),
		NewScenarioCard("four percent", "percentage"),
	}
	out := ScenarioListCompact(cards, 1)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "▸ four percent (percentage)")
	assert.NotContains(t, lines[0], "▸")

	assert.Contains(t, ScenarioListCompact(nil, 0), "No scenarios available")

	card := NewScenarioCard("base", "fixed").AddHighlight("order tax_efficient").SetSelected(true).Render()
	assert.Contains(t, card, "order tax_efficient")
}
