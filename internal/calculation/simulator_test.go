package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/portfolio"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/rgehrsitz/drawdown/internal/withdrawal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(v int64) money.Money { return money.FromInt(v) }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decimalPtr(v decimal.Decimal) *decimal.Decimal { return &v }

// retireePortfolio is a 62-year-old with a large mortgage relative to savings.
func retireePortfolio(t *testing.T) *portfolio.Portfolio {
	t.Helper()
	p := portfolio.New("retiree", "owner", 62)
	p.WithdrawalOrder = sequencing.OrderTaxEfficient
	p.InflationRate = d("0.03")

	accounts := []account.Account{
		account.NewCash("cash", "Savings", usd(50000), d("0.03")),
		account.NewTaxable("taxable", "Brokerage", usd(300000), account.TaxableParams{
			MarketParams:    account.MarketParams{StockAllocation: d("0.75"), StockReturn: d("0.10"), StockVolatility: d("0.16"), CashReturn: d("0.02")},
			DividendYield:   d("0.02"),
			CapitalGainsTax: d("0.15"),
		}),
		account.NewIRA("ira", "IRA", usd(200000), account.IRAParams{
			MarketParams:           account.MarketParams{StockAllocation: d("0.70"), StockReturn: d("0.10"), StockVolatility: d("0.16"), CashReturn: d("0.02")},
			OrdinaryIncomeTax:      d("0.22"),
			EarlyWithdrawalPenalty: d("0.10"),
		}),
		account.NewMortgage("mortgage", "Home", usd(570000), account.MortgageParams{OriginalBalance: usd(570000), InterestRate: d("0.06"), RemainingYears: 23}),
		account.NewIncome("pension", "Pension", account.IncomeParams{Amount: usd(32400), DurationYears: 30, AnnualAdjustment: d("0.025"), TaxRate: d("0.22")}),
	}
	for _, a := range accounts {
		require.NoError(t, p.AddAccount(a))
	}
	return p
}

func retireeParams(t *testing.T, trials int, seed int64, parallel bool) Params {
	return Params{
		Portfolio:      retireePortfolio(t),
		Strategy:       withdrawal.NewFixed(usd(80000), decimalPtr(d("0.03"))),
		Years:          30,
		NumSimulations: trials,
		PayMortgage:    true,
		Parallel:       parallel,
		MaxWorkers:     4,
		Seed:           seed,
	}
}

func cashOnly(t *testing.T, balance int64) *portfolio.Portfolio {
	t.Helper()
	p := portfolio.New("cash-only", "owner", 65)
	require.NoError(t, p.AddAccount(account.NewCash("cash", "Savings", usd(balance), decimal.Zero)))
	return p
}

func TestParams_Validate(t *testing.T) {
	valid := Params{Portfolio: portfolio.New("p", "o", 60), Strategy: withdrawal.NewBucket(usd(1)), Years: 1, NumSimulations: 1}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"missing portfolio", func(p *Params) { p.Portfolio = nil }},
		{"missing strategy", func(p *Params) { p.Strategy = nil }},
		{"zero years", func(p *Params) { p.Years = 0 }},
		{"zero trials", func(p *Params) { p.NumSimulations = 0 }},
		{"negative workers", func(p *Params) { p.MaxWorkers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.Validate())

			_, err := NewSimulator(p).Run(context.Background())
			assert.ErrorContains(t, err, "invalid simulation parameters")
		})
	}
}

func TestSimulator_SetLogger(t *testing.T) {
	sim := NewSimulator(Params{})
	assert.IsType(t, NopLogger{}, sim.Logger)

	custom := &TestLogger{}
	sim.SetLogger(custom)
	assert.Equal(t, custom, sim.Logger)

	sim.SetLogger(nil)
	assert.IsType(t, NopLogger{}, sim.Logger, "Should be no-op logger")
}

func TestSimulator_DeterministicDepletion(t *testing.T) {
	params := Params{
		Portfolio:      cashOnly(t, 100000),
		Strategy:       withdrawal.NewFixed(usd(30000), decimalPtr(decimal.Zero)),
		Years:          10,
		NumSimulations: 3,
		Seed:           7,
	}
	result, err := NewSimulator(params).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.SuccessRate.IsZero())
	require.Len(t, result.Runs, 3)
	for _, run := range result.Runs {
		require.NoError(t, run.Err)
		assert.True(t, run.Depleted)
		assert.Equal(t, 4, run.DepletionYear)
		assert.Len(t, run.YearlySnapshots, 10)
		assert.Len(t, run.NetWorth, 10)
		assert.Len(t, run.Withdrawals, 10)
		assert.Len(t, run.Taxes, 10)
		assert.Len(t, run.MortgagePayments, 10)

		assert.True(t, run.Withdrawals[2].Equal(usd(30000)))
		assert.True(t, run.Withdrawals[3].Equal(usd(10000)), "shortfall is clamped, not an error")
		for y := 4; y < 10; y++ {
			assert.True(t, run.Withdrawals[y].IsZero())
			assert.True(t, run.NetWorth[y].IsZero())
			assert.Equal(t, run.YearlySnapshots[4], run.YearlySnapshots[y])
		}
		assert.Equal(t, 4, run.AccountDepletion[account.TypeCash])
	}

	require.Len(t, result.AccountDepletion, 1)
	stats := result.AccountDepletion[0]
	assert.Equal(t, account.TypeCash, stats.Type)
	assert.Equal(t, 4, stats.Median)
	assert.Equal(t, 4, stats.Earliest)
	assert.Equal(t, 4, stats.Latest)
	assert.True(t, stats.Probability.Equal(decimal.NewFromInt(1)))
	assert.Empty(t, result.SuccessfulRuns())
}

func TestSimulator_FullyFunded(t *testing.T) {
	params := Params{
		Portfolio:      cashOnly(t, 1000000),
		Strategy:       withdrawal.NewFixed(usd(10000), decimalPtr(decimal.Zero)),
		Years:          20,
		NumSimulations: 5,
		Seed:           1,
		Parallel:       true,
	}
	result, err := NewSimulator(params).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.SuccessRate.Equal(decimal.NewFromInt(100)))
	assert.True(t, result.MedianFinalNetWorth.Equal(usd(800000)))
	assert.Len(t, result.SuccessfulRuns(), 5)
	assert.Empty(t, result.AccountDepletion)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "cash-only", result.PortfolioID)
	assert.Equal(t, "fixed", result.Strategy)
	assert.Equal(t, string(sequencing.OrderTaxEfficient), result.WithdrawalOrder)
	assert.Equal(t, int64(1), result.Seed)
}

func TestSimulator_IncomeOffsetsWithdrawal(t *testing.T) {
	p := cashOnly(t, 10000)
	require.NoError(t, p.AddAccount(account.NewIncome("pension", "Pension", account.IncomeParams{Amount: usd(50000), DurationYears: 5})))

	params := Params{
		Portfolio:      p,
		Strategy:       withdrawal.NewFixed(usd(40000), decimalPtr(decimal.Zero)),
		Years:          5,
		NumSimulations: 1,
		Seed:           3,
	}
	result, err := NewSimulator(params).Run(context.Background())
	require.NoError(t, err)

	run := result.Runs[0]
	for _, w := range run.Withdrawals {
		assert.True(t, w.IsZero(), "income covers spending")
	}
	// 10k start plus 5 years of 50k income deposited into cash.
	assert.True(t, run.FinalNetWorth.Equal(usd(260000)), "final %s", run.FinalNetWorth)
}

func TestSimulator_MortgagePayoff(t *testing.T) {
	p := cashOnly(t, 500000)
	require.NoError(t, p.AddAccount(account.NewMortgage("home", "Home", usd(24000), account.MortgageParams{InterestRate: decimal.Zero, RemainingYears: 4})))

	params := Params{
		Portfolio:      p,
		Strategy:       withdrawal.NewFixed(usd(0), nil),
		Years:          6,
		NumSimulations: 2,
		PayMortgage:    true,
		Seed:           5,
	}
	result, err := NewSimulator(params).Run(context.Background())
	require.NoError(t, err)

	// 6k a year is paid from cash and the scheduled 6k again when the year
	// closes, so the loan is gone by the end of year 1.
	run := result.Runs[0]
	assert.True(t, run.MortgagePaidOff)
	assert.Equal(t, 1, run.MortgagePaidOffYear)
	assert.True(t, run.MortgagePayments[0].Equal(usd(6000)))
	assert.True(t, run.MortgagePayments[2].IsZero())
	assert.Equal(t, 2, result.MortgagePaidOffRuns)
	assert.Equal(t, 1, result.MedianMortgagePayoffYear)
}

type panicSource struct{}

func (panicSource) Draw(decimal.Decimal, decimal.Decimal) decimal.Decimal {
	panic(errors.New("market data unavailable"))
}

func TestSimulator_TrialFailureIsIsolated(t *testing.T) {
	params := retireeParams(t, 10, 11, true)
	params.Years = 5
	params.NewSource = func(trial int, seed int64) account.ReturnSource {
		if trial == 3 {
			return panicSource{}
		}
		return account.NewGaussianSource(seed)
	}

	logger := &TestLogger{}
	sim := NewSimulator(params)
	sim.SetLogger(logger)
	result, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.FailedRuns)
	require.Error(t, result.Runs[3].Err)
	assert.ErrorContains(t, result.Runs[3].Err, "market data unavailable")
	for i, run := range result.Runs {
		if i != 3 {
			assert.NoError(t, run.Err)
			assert.Len(t, run.NetWorth, 5)
		}
	}
	assert.Contains(t, logger.messages, "ERROR: trial %d failed: %v")
}

func TestSimulator_AllTrialsFailed(t *testing.T) {
	params := retireeParams(t, 3, 11, false)
	params.NewSource = func(int, int64) account.ReturnSource { return panicSource{} }

	_, err := NewSimulator(params).Run(context.Background())
	assert.ErrorIs(t, err, ErrAllTrialsFailed)
}

func TestSimulator_Progress(t *testing.T) {
	params := retireeParams(t, 25, 9, true)
	params.Years = 3

	var calls, last int
	sim := NewSimulator(params)
	sim.OnTrialComplete(func(done, total int) {
		calls++
		last = done
		assert.Equal(t, 25, total)
	})
	_, err := sim.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25, calls)
	assert.Equal(t, 25, last)
}

func TestSimulator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSimulator(retireeParams(t, 10, 1, false)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_SequentialMatchesParallel(t *testing.T) {
	seq, err := NewSimulator(retireeParams(t, 200, 42, false)).Run(context.Background())
	require.NoError(t, err)
	par, err := NewSimulator(retireeParams(t, 200, 42, true)).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, seq.SuccessRate.Equal(par.SuccessRate))
	assert.True(t, seq.MedianFinalNetWorth.Equal(par.MedianFinalNetWorth))
	require.Len(t, par.Runs, len(seq.Runs))
	for i := range seq.Runs {
		assert.Equal(t, seq.Runs[i].ID, par.Runs[i].ID)
		assert.True(t, seq.Runs[i].FinalNetWorth.Equal(par.Runs[i].FinalNetWorth), "trial %d", i)
	}
}

func TestSimulator_TemplateUntouched(t *testing.T) {
	params := retireeParams(t, 20, 8, true)
	before := params.Portfolio.Snapshot()

	_, err := NewSimulator(params).Run(context.Background())
	require.NoError(t, err)

	after := params.Portfolio.Snapshot()
	for id, bal := range before.Balances {
		assert.True(t, bal.Equal(after.Balances[id]), "account %s changed", id)
	}
	assert.Equal(t, 62, params.Portfolio.CurrentAge)
}

func TestSimulator_DepletionInvariants(t *testing.T) {
	result, err := NewSimulator(retireeParams(t, 100, 2024, true)).Run(context.Background())
	require.NoError(t, err)

	for _, run := range result.Runs {
		require.Len(t, run.NetWorth, 30)
		if !run.Depleted {
			continue
		}
		first := len(run.NetWorth)
		for i, nw := range run.NetWorth {
			if !nw.IsPositive() {
				first = i
				break
			}
		}
		assert.Equal(t, first, run.DepletionYear, "trial %d", run.ID)
	}
}

func TestSimulator_RetireeScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("long Monte Carlo run")
	}

	anySuccess := false
	for _, seed := range []int64{1, 2, 3} {
		result, err := NewSimulator(retireeParams(t, 1000, seed, true)).Run(context.Background())
		require.NoError(t, err)

		assert.True(t, result.SuccessRate.LessThan(decimal.NewFromInt(100)), "seed %d: %s%%", seed, result.SuccessRate)
		assert.False(t, result.SuccessRate.IsNegative())
		if result.SuccessRate.IsPositive() {
			anySuccess = true
		}
		assert.Equal(t, 0, result.FailedRuns)
		assert.NotEmpty(t, result.FinalNetWorthPercentiles)
		assert.True(t, result.FinalNetWorthPercentiles["10th"].LessThanOrEqual(result.FinalNetWorthPercentiles["90th"]))
		assert.True(t, result.AverageAnnualTaxes.IsPositive())
	}
	assert.True(t, anySuccess, "a small share of trials should survive")
}

// TestLogger records formats for assertions.
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...interface{}) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}
