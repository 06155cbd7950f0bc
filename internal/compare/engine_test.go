package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cash-only portfolios have no market risk, so every trial is identical.
const scenarioYAML = `
portfolio:
  age: 65
  accounts:
    - id: savings
      type: cash
      balance: 1000000
strategy:
  type: fixed
  initial_withdrawal: 20000
  inflation_rate: 0.03
simulation:
  years: 30
  num_simulations: 5
  seed: 9
scenarios:
  - name: overspend
    strategy:
      type: fixed
      initial_withdrawal: 100000
      inflation_rate: 0.03
  - name: frugal
    strategy:
      type: fixed
      initial_withdrawal: 10000
      inflation_rate: 0.03
`

func loadScenarios(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().Parse([]byte(scenarioYAML))
	require.NoError(t, err)
	return cfg
}

func TestCompareEngine_Compare(t *testing.T) {
	var seen []string
	engine := NewCompareEngine()
	engine.OnScenario = func(name string, index, total int) {
		assert.Equal(t, 3, total)
		seen = append(seen, name)
	}

	compSet, err := engine.Compare(context.Background(), loadScenarios(t), CompareOptions{ConfigPath: "retiree.yaml"})
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "overspend", "frugal"}, seen)
	assert.Equal(t, BaseName, compSet.BaseScenarioName)
	assert.Equal(t, int64(9), compSet.Seed)
	assert.Equal(t, "retiree.yaml", compSet.ConfigPath)
	assert.Equal(t, []string{"frugal", "base", "overspend"}, compSet.Ranking)

	assert.Equal(t, "100", compSet.BaseResult.SuccessRate.String())
	overspend := compSet.AlternativeResults[0]
	assert.True(t, overspend.SuccessRate.IsZero())
	assert.Equal(t, "-100", overspend.SuccessDiffFromBase.String())
	assert.True(t, overspend.NetWorthDiffFromBase.IsNegative())

	frugal := compSet.AlternativeResults[1]
	assert.True(t, frugal.NetWorthDiffFromBase.IsPositive())
	require.Len(t, compSet.Recommendations, 2)
	assert.Contains(t, compSet.Recommendations[0], "frugal")
}

func TestCompareEngine_Compare_SelectedScenarios(t *testing.T) {
	compSet, err := NewCompareEngine().Compare(context.Background(), loadScenarios(t), CompareOptions{
		BaseScenarioName: "frugal",
		Scenarios:        []string{"base"},
	})
	require.NoError(t, err)

	assert.Equal(t, "frugal", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 1)
	assert.Equal(t, BaseName, compSet.AlternativeResults[0].ScenarioName)
	assert.True(t, compSet.AlternativeResults[0].NetWorthDiffFromBase.IsNegative())
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	engine := NewCompareEngine()
	cfg := loadScenarios(t)

	_, err := engine.Compare(context.Background(), cfg, CompareOptions{BaseScenarioName: "missing"})
	assert.ErrorContains(t, err, "base scenario missing not found")

	_, err = engine.Compare(context.Background(), cfg, CompareOptions{Scenarios: []string{"missing"}})
	assert.ErrorContains(t, err, "alternative scenario missing not found")

	cfg.Scenarios = nil
	_, err = engine.Compare(context.Background(), cfg, CompareOptions{})
	assert.ErrorContains(t, err, "no scenarios to compare")
}
