package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const retireeYAML = `
portfolio:
  owner: pat
  age: 62
  withdrawal_order: tax_efficient
  accounts:
    - id: cash
      type: cash
      balance: 50000
      annual_return: 0.03
    - id: brokerage
      type: taxable
      balance: 300000
      stock_allocation: 0.75
      cost_basis: 200000
    - type: ira
      balance: 200000
    - id: house
      type: mortgage
      balance: 570000
      interest_rate: 0.06
      remaining_years: 23
    - id: pension
      type: income
      balance: 0
      annual_income: 32400
      duration_years: 30
      annual_adjustment: 0.025
strategy:
  type: fixed
  initial_withdrawal: 80000
  inflation_rate: 0.03
simulation:
  years: 30
  num_simulations: 500
  seed: 42
scenarios:
  - name: four percent
    strategy:
      type: percentage
      withdrawal_rate: 4
  - name: keep mortgage
    pay_mortgage: false
`

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func validConfig() *domain.Configuration {
	config := &domain.Configuration{
		Portfolio: domain.PortfolioConfig{
			Age: 65,
			Accounts: []domain.AccountConfig{
				{ID: "cash", Type: "cash", Balance: decimal.NewFromInt(100000)},
			},
		},
		Strategy: domain.StrategyConfig{Type: "fixed", InitialWithdrawal: d("40000")},
	}
	ApplyDefaults(config)
	return config
}

func TestNewInputParser(t *testing.T) {
	assert.NotNil(t, NewInputParser())
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	config, err := NewInputParser().LoadFromFile("nonexistent.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: [unclosed"), 0644))

	config, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_ValidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "retiree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(retireeYAML), 0644))

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	p := config.Portfolio
	assert.Equal(t, "pat", p.Owner)
	assert.Equal(t, 62, p.Age)
	assert.Equal(t, "USD", p.Currency)
	assert.True(t, p.InflationRate.Equal(decimal.RequireFromString("0.03")))
	require.Len(t, p.Accounts, 5)

	ira := p.Accounts[2]
	assert.Equal(t, "ira_003", ira.ID)
	assert.True(t, ira.StockAllocation.Equal(decimal.RequireFromString("0.70")))
	assert.True(t, ira.OrdinaryIncomeTaxRate.Equal(decimal.RequireFromString("0.22")))

	brokerage := p.Accounts[1]
	assert.True(t, brokerage.StockAllocation.Equal(decimal.RequireFromString("0.75")), "explicit values survive defaults")
	assert.True(t, brokerage.CapitalGainsTaxRate.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, brokerage.CostBasis.Equal(decimal.NewFromInt(200000)))

	mortgage := p.Accounts[3]
	assert.True(t, mortgage.OriginalBalance.Equal(decimal.NewFromInt(570000)))

	assert.Equal(t, "fixed", config.Strategy.Type)
	assert.Equal(t, 500, config.Simulation.NumSimulations)
	assert.Equal(t, int64(42), config.Simulation.Seed)
	assert.Equal(t, DefaultMaxWorkers, config.Simulation.MaxWorkers)
	assert.True(t, *config.Simulation.PayMortgage)
	require.Len(t, config.Scenarios, 2)
	assert.False(t, *config.Scenarios[1].PayMortgage)
}

func TestApplyDefaults(t *testing.T) {
	config := &domain.Configuration{
		Portfolio: domain.PortfolioConfig{
			Accounts: []domain.AccountConfig{
				{Type: "Private_Stock", Balance: decimal.NewFromInt(10)},
				{Type: "inheritance", Balance: decimal.NewFromInt(10)},
			},
		},
		Strategy: domain.StrategyConfig{Type: "Dynamic", BaseWithdrawal: d("40000")},
		Scenarios: []domain.Scenario{
			{Name: "buckets", Strategy: &domain.StrategyConfig{Type: "bucket", AnnualExpenses: d("50000")}},
		},
	}

	ApplyDefaults(config)

	assert.Equal(t, DefaultAge, config.Portfolio.Age)
	assert.Equal(t, DefaultOwner, config.Portfolio.Owner)
	assert.True(t, config.Portfolio.InflationVolatility.Equal(decimal.RequireFromString("0.01")))

	ps := config.Portfolio.Accounts[0]
	assert.Equal(t, "private_stock", ps.Type)
	assert.Equal(t, "private_stock_001", ps.ID)
	assert.True(t, ps.StockVolatility.Equal(decimal.RequireFromString("0.20")))

	inh := config.Portfolio.Accounts[1]
	assert.True(t, *inh.StepUpBasis)
	assert.True(t, inh.GrowthRate.Equal(decimal.RequireFromString("0.06")))
	assert.True(t, inh.TaxRate.Equal(decimal.RequireFromString("0.15")))

	s := config.Strategy
	assert.Equal(t, "dynamic", s.Type)
	assert.True(t, s.MinRate.Equal(decimal.NewFromInt(3)))
	assert.True(t, s.MaxRate.Equal(decimal.NewFromInt(6)))
	assert.True(t, s.TargetMultiple.Equal(decimal.NewFromInt(25)))

	bucket := config.Scenarios[0].Strategy
	assert.Equal(t, DefaultYearsInCash, bucket.YearsInCash)
	assert.Equal(t, DefaultYearsInTaxable, bucket.YearsInTaxable)

	assert.Equal(t, DefaultYears, config.Simulation.Years)
	assert.Equal(t, DefaultNumSimulations, config.Simulation.NumSimulations)
	assert.True(t, *config.Simulation.Parallel)
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	config := validConfig()
	first := *config.Portfolio.Accounts[0].AnnualReturn

	ApplyDefaults(config)

	assert.True(t, first.Equal(*config.Portfolio.Accounts[0].AnnualReturn))
	assert.Equal(t, "cash", config.Portfolio.Accounts[0].ID)

	id := config.Portfolio.ID
	assert.NotEmpty(t, id)
	ApplyDefaults(config)
	assert.Equal(t, id, config.Portfolio.ID)
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *domain.Configuration)
		wantErr string
	}{
		{"valid", func(c *domain.Configuration) {}, ""},
		{"age too low", func(c *domain.Configuration) { c.Portfolio.Age = 10 }, "age must be between"},
		{"bad currency", func(c *domain.Configuration) { c.Portfolio.Currency = "ZZZ" }, "portfolio validation failed"},
		{"bad order", func(c *domain.Configuration) { c.Portfolio.WithdrawalOrder = "random" }, "portfolio validation failed"},
		{"inflation out of range", func(c *domain.Configuration) { c.Portfolio.InflationRate = d("0.5") }, "inflation rate must be between"},
		{"no accounts", func(c *domain.Configuration) { c.Portfolio.Accounts = nil }, "at least one account"},
		{"unknown account type", func(c *domain.Configuration) { c.Portfolio.Accounts[0].Type = "roth" }, "account 0"},
		{"negative balance", func(c *domain.Configuration) {
			c.Portfolio.Accounts[0].Balance = decimal.NewFromInt(-1)
		}, "balance cannot be negative"},
		{"duplicate id", func(c *domain.Configuration) {
			c.Portfolio.Accounts = append(c.Portfolio.Accounts, c.Portfolio.Accounts[0])
		}, "duplicate account id"},
		{"allocation out of range", func(c *domain.Configuration) {
			c.Portfolio.Accounts[0].StockAllocation = d("1.5")
		}, "stock allocation must be between"},
		{"income without amount", func(c *domain.Configuration) {
			c.Portfolio.Accounts = append(c.Portfolio.Accounts, domain.AccountConfig{ID: "ss", Type: "income", DurationYears: 10})
		}, "annual income is required"},
		{"income without duration", func(c *domain.Configuration) {
			c.Portfolio.Accounts = append(c.Portfolio.Accounts, domain.AccountConfig{ID: "ss", Type: "income", AnnualIncome: d("1000")})
		}, "duration years"},
		{"mortgage without term", func(c *domain.Configuration) {
			c.Portfolio.Accounts = append(c.Portfolio.Accounts, domain.AccountConfig{ID: "m", Type: "mortgage", Balance: decimal.NewFromInt(1000)})
		}, "remaining years"},
		{"unknown strategy", func(c *domain.Configuration) { c.Strategy.Type = "yolo" }, "strategy validation failed"},
		{"fixed without amount", func(c *domain.Configuration) { c.Strategy.InitialWithdrawal = nil }, "initial withdrawal is required"},
		{"percentage rate too high", func(c *domain.Configuration) {
			c.Strategy = domain.StrategyConfig{Type: "percentage", WithdrawalRate: d("150")}
		}, "withdrawal rate must be between"},
		{"percentage bounds crossed", func(c *domain.Configuration) {
			c.Strategy = domain.StrategyConfig{Type: "percentage", WithdrawalRate: d("4"), MinWithdrawal: d("50000"), MaxWithdrawal: d("40000")}
		}, "min withdrawal cannot exceed"},
		{"dynamic rates crossed", func(c *domain.Configuration) {
			c.Strategy = domain.StrategyConfig{Type: "dynamic", BaseWithdrawal: d("40000"), MinRate: d("7"), MaxRate: d("6")}
		}, "min rate cannot exceed"},
		{"bucket without expenses", func(c *domain.Configuration) {
			c.Strategy = domain.StrategyConfig{Type: "bucket"}
		}, "annual expenses is required"},
		{"zero years", func(c *domain.Configuration) { c.Simulation.Years = 0 }, "years must be between"},
		{"zero simulations", func(c *domain.Configuration) { c.Simulation.NumSimulations = 0 }, "num_simulations"},
		{"zero workers", func(c *domain.Configuration) { c.Simulation.MaxWorkers = 0 }, "max_workers"},
		{"unnamed scenario", func(c *domain.Configuration) {
			c.Scenarios = []domain.Scenario{{}}
		}, "name is required"},
		{"duplicate scenario", func(c *domain.Configuration) {
			c.Scenarios = []domain.Scenario{{Name: "a"}, {Name: "a"}}
		}, "duplicate scenario name"},
		{"invalid scenario strategy", func(c *domain.Configuration) {
			c.Scenarios = []domain.Scenario{{Name: "a", Strategy: &domain.StrategyConfig{Type: "fixed"}}}
		}, "scenario 0 validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validConfig()
			tt.mutate(config)

			err := NewInputParser().ValidateConfiguration(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputParser_Parse_ReportsValidationFailure(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("portfolio:\n  age: 70\nstrategy:\n  type: fixed\n  initial_withdrawal: 1000\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "at least one account")
}
