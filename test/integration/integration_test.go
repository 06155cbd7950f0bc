package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/compare"
	"github.com/rgehrsitz/drawdown/internal/config"
	"github.com/rgehrsitz/drawdown/internal/output"
)

const configPath = "../testdata/retiree_config.yaml"

func simulate(t *testing.T, seed int64) *calculation.Result {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(configPath)
	require.NoError(t, err)
	params, err := config.BuildParams(cfg)
	require.NoError(t, err)
	params.Seed = seed

	result, err := calculation.NewSimulator(params).Run(context.Background())
	require.NoError(t, err)
	return result
}

func TestEndToEndSimulation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end simulation in short mode")
	}
	result := simulate(t, 1)

	assert.Equal(t, "retiree", result.PortfolioID)
	assert.Equal(t, 200, result.NumSimulations)
	assert.Zero(t, result.FailedRuns)
	assert.False(t, result.SuccessRate.IsNegative())
	assert.True(t, result.SuccessRate.LessThanOrEqual(decimal.NewFromInt(100)))
	assert.Len(t, result.NetWorthPaths(), 30)
	for _, run := range result.Runs {
		assert.Len(t, run.NetWorth, 30)
		assert.Len(t, run.Withdrawals, 30)
	}

	// Same seed, same answer regardless of worker scheduling.
	again := simulate(t, 1)
	assert.True(t, result.SuccessRate.Equal(again.SuccessRate))
	assert.True(t, result.MedianFinalNetWorth.Equal(again.MedianFinalNetWorth))
}

func TestEndToEndFormatters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end simulation in short mode")
	}
	result := simulate(t, 2)
	for _, name := range output.AvailableFormatterNames() {
		t.Run(name, func(t *testing.T) {
			data, err := output.GetFormatterByName(name).Format(result)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}

func TestEndToEndComparison(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end comparison in short mode")
	}
	cfg, err := config.NewInputParser().LoadFromFile(configPath)
	require.NoError(t, err)
	cfg.Simulation.NumSimulations = 50

	set, err := compare.NewCompareEngine().Compare(context.Background(), cfg, compare.CompareOptions{ConfigPath: configPath})
	require.NoError(t, err)
	assert.Equal(t, int64(1), set.Seed)
	assert.ElementsMatch(t, []string{"base", "four percent", "keep mortgage"}, set.Ranking)
	for i, r := range set.All() {
		assert.NotZero(t, r.Rank, i)
	}
}
