package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/rgehrsitz/drawdown/internal/withdrawal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a YAML scenario file, applies defaults and validates it.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes YAML scenario data, applies defaults and validates it.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ApplyDefaults(&config)

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// ValidateConfiguration validates a configuration with defaults applied.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validatePortfolio(&config.Portfolio); err != nil {
		return fmt.Errorf("portfolio validation failed: %w", err)
	}
	if err := ip.validateStrategy(&config.Strategy); err != nil {
		return fmt.Errorf("strategy validation failed: %w", err)
	}
	if err := ip.validateSimulation(&config.Simulation); err != nil {
		return fmt.Errorf("simulation validation failed: %w", err)
	}

	seen := map[string]bool{}
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
	}
	return nil
}

func (ip *InputParser) validatePortfolio(p *domain.PortfolioConfig) error {
	if p.Age < 18 || p.Age > 120 {
		return fmt.Errorf("age must be between 18 and 120, got %d", p.Age)
	}
	if err := money.ValidateCurrency(p.Currency); err != nil {
		return err
	}
	if p.WithdrawalOrder != "" {
		if _, err := sequencing.ParseOrder(p.WithdrawalOrder); err != nil {
			return err
		}
	}
	if p.InflationRate != nil {
		if err := inRange("inflation rate", *p.InflationRate, "-0.10", "0.20"); err != nil {
			return err
		}
	}
	if p.InflationVolatility != nil {
		if err := inRange("inflation volatility", *p.InflationVolatility, "0", "1"); err != nil {
			return err
		}
	}
	if len(p.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}

	ids := map[string]bool{}
	for i := range p.Accounts {
		a := &p.Accounts[i]
		if err := ip.validateAccount(a); err != nil {
			return fmt.Errorf("account %d (%s) validation failed: %w", i, a.ID, err)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate account id %q", a.ID)
		}
		ids[a.ID] = true
	}
	return nil
}

func (ip *InputParser) validateAccount(a *domain.AccountConfig) error {
	t, err := account.ParseType(a.Type)
	if err != nil {
		return err
	}
	if a.Balance.IsNegative() {
		return fmt.Errorf("balance cannot be negative")
	}

	checks := []struct {
		name     string
		value    *decimal.Decimal
		min, max string
	}{
		{"stock allocation", a.StockAllocation, "0", "1"},
		{"asset allocation", a.AssetAllocation, "0", "1"},
		{"stock return", a.StockReturn, "-0.5", "0.5"},
		{"growth rate", a.GrowthRate, "-0.5", "0.5"},
		{"stock volatility", a.StockVolatility, "0", "1"},
		{"volatility", a.Volatility, "0", "1"},
		{"annual return", a.AnnualReturn, "-0.5", "0.5"},
		{"cash return", a.CashReturn, "-0.5", "0.5"},
		{"dividend yield", a.DividendYield, "0", "1"},
		{"capital gains tax rate", a.CapitalGainsTaxRate, "0", "1"},
		{"ordinary income tax rate", a.OrdinaryIncomeTaxRate, "0", "1"},
		{"early withdrawal penalty", a.EarlyWithdrawalPenalty, "0", "1"},
		{"tax rate", a.TaxRate, "0", "1"},
		{"interest rate", a.InterestRate, "0", "1"},
		{"annual adjustment", a.AnnualAdjustment, "-0.5", "0.5"},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if err := inRange(c.name, *c.value, c.min, c.max); err != nil {
			return err
		}
	}

	switch t {
	case account.TypeTaxable:
		if a.CostBasis != nil && a.CostBasis.IsNegative() {
			return fmt.Errorf("cost basis cannot be negative")
		}
	case account.TypePrivateStock:
		if a.ConversionYear < 0 {
			return fmt.Errorf("conversion year cannot be negative")
		}
	case account.TypeInheritance:
		if a.InheritanceYear < 0 {
			return fmt.Errorf("inheritance year cannot be negative")
		}
	case account.TypeMortgage:
		if a.Balance.IsPositive() && a.RemainingYears < 1 {
			return fmt.Errorf("remaining years must be at least 1 for an outstanding mortgage")
		}
	case account.TypeIncome:
		if a.AnnualIncome == nil || a.AnnualIncome.IsNegative() {
			return fmt.Errorf("annual income is required and cannot be negative")
		}
		if a.StartYear < 0 {
			return fmt.Errorf("start year cannot be negative")
		}
		if a.DurationYears < 1 {
			return fmt.Errorf("duration years must be at least 1")
		}
	}
	return nil
}

func (ip *InputParser) validateStrategy(s *domain.StrategyConfig) error {
	kind, err := withdrawal.ParseKind(s.Type)
	if err != nil {
		return err
	}
	if s.WithdrawalOrder != "" {
		if _, err := sequencing.ParseOrder(s.WithdrawalOrder); err != nil {
			return err
		}
	}

	switch kind {
	case withdrawal.KindFixed:
		if err := required("initial withdrawal", s.InitialWithdrawal); err != nil {
			return err
		}
		if s.InflationRate != nil {
			if err := inRange("inflation rate", *s.InflationRate, "-0.10", "0.20"); err != nil {
				return err
			}
		}
	case withdrawal.KindPercentage:
		if s.WithdrawalRate == nil {
			return fmt.Errorf("withdrawal rate is required")
		}
		if err := inRange("withdrawal rate", *s.WithdrawalRate, "0", "100"); err != nil {
			return err
		}
		if s.MinWithdrawal != nil && s.MaxWithdrawal != nil && s.MinWithdrawal.GreaterThan(*s.MaxWithdrawal) {
			return fmt.Errorf("min withdrawal cannot exceed max withdrawal")
		}
	case withdrawal.KindDynamic:
		if err := required("base withdrawal", s.BaseWithdrawal); err != nil {
			return err
		}
		if s.MinRate != nil && s.MaxRate != nil && s.MinRate.GreaterThan(*s.MaxRate) {
			return fmt.Errorf("min rate cannot exceed max rate")
		}
		if s.TargetMultiple != nil && !s.TargetMultiple.IsPositive() {
			return fmt.Errorf("target multiple must be positive")
		}
	case withdrawal.KindBucket:
		if err := required("annual expenses", s.AnnualExpenses); err != nil {
			return err
		}
		if s.YearsInCash < 0 || s.YearsInTaxable < 0 {
			return fmt.Errorf("bucket years cannot be negative")
		}
	}
	return nil
}

func (ip *InputParser) validateSimulation(s *domain.SimulationConfig) error {
	if s.Years < 1 || s.Years > 100 {
		return fmt.Errorf("years must be between 1 and 100, got %d", s.Years)
	}
	if s.NumSimulations < 1 {
		return fmt.Errorf("num_simulations must be at least 1, got %d", s.NumSimulations)
	}
	if s.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1, got %d", s.MaxWorkers)
	}
	return nil
}

func (ip *InputParser) validateScenario(s *domain.Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.WithdrawalOrder != "" {
		if _, err := sequencing.ParseOrder(s.WithdrawalOrder); err != nil {
			return err
		}
	}
	if s.Strategy != nil {
		if err := ip.validateStrategy(s.Strategy); err != nil {
			return fmt.Errorf("strategy: %w", err)
		}
	}
	return nil
}

func inRange(name string, v decimal.Decimal, min, max string) error {
	lo, hi := decimal.RequireFromString(min), decimal.RequireFromString(max)
	if v.LessThan(lo) || v.GreaterThan(hi) {
		return fmt.Errorf("%s must be between %s and %s, got %s", name, min, max, v.String())
	}
	return nil
}

func required(name string, v *decimal.Decimal) error {
	if v == nil {
		return fmt.Errorf("%s is required", name)
	}
	if !v.IsPositive() {
		return fmt.Errorf("%s must be positive", name)
	}
	return nil
}
