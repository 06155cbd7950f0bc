package config

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/withdrawal"
	"github.com/shopspring/decimal"
)

// Defaults applied to fields a scenario file leaves out.
const (
	DefaultAge            = 65
	DefaultOwner          = "owner"
	DefaultYears          = 30
	DefaultNumSimulations = 1000
	DefaultMaxWorkers     = 4
	DefaultYearsInCash    = 2
	DefaultYearsInTaxable = 5
)

var (
	defaultInflation           = "0.03"
	defaultInflationVolatility = "0.01"

	cashDefaults = map[string]string{"annual_return": "0.02"}

	taxableDefaults = map[string]string{
		"stock_allocation": "0.80", "stock_return": "0.10", "stock_volatility": "0.18",
		"cash_return": "0.02", "dividend_yield": "0.02", "capital_gains_tax_rate": "0.15",
	}
	iraDefaults = map[string]string{
		"stock_allocation": "0.70", "stock_return": "0.10", "stock_volatility": "0.18",
		"cash_return": "0.02", "ordinary_income_tax_rate": "0.22", "early_withdrawal_penalty": "0.10",
	}
	privateStockDefaults = map[string]string{
		"stock_allocation": "1.0", "stock_return": "0.10", "stock_volatility": "0.20",
		"cash_return": "0.02", "capital_gains_tax_rate": "0.15",
	}
	inheritanceDefaults = map[string]string{
		"asset_allocation": "0.60", "growth_rate": "0.06", "volatility": "0.12",
		"cash_return": "0.02", "tax_rate": account.DefaultInheritanceTax.String(),
	}
	mortgageDefaults = map[string]string{"interest_rate": "0.06"}
	incomeDefaults   = map[string]string{"tax_rate": "0.22", "annual_adjustment": "0"}

	dynamicDefaults = map[string]string{
		"min_rate": "3.0", "max_rate": "6.0", "target_multiple": "25", "adjustment_factor": "0.1",
	}
)

// ApplyDefaults fills every omitted field with its default. It is idempotent.
func ApplyDefaults(config *domain.Configuration) {
	p := &config.Portfolio
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Owner == "" {
		p.Owner = DefaultOwner
	}
	if p.Age == 0 {
		p.Age = DefaultAge
	}
	if p.Currency == "" {
		p.Currency = money.DefaultCurrency
	}
	setDefault(&p.InflationRate, defaultInflation)
	setDefault(&p.InflationVolatility, defaultInflationVolatility)

	for i := range p.Accounts {
		a := &p.Accounts[i]
		if a.ID == "" {
			a.ID = fmt.Sprintf("%s_%03d", a.Type, i+1)
		}
		applyAccountDefaults(a)
	}

	applyStrategyDefaults(&config.Strategy)
	for i := range config.Scenarios {
		if s := config.Scenarios[i].Strategy; s != nil {
			applyStrategyDefaults(s)
		}
	}

	sim := &config.Simulation
	if sim.Years == 0 {
		sim.Years = DefaultYears
	}
	if sim.NumSimulations == 0 {
		sim.NumSimulations = DefaultNumSimulations
	}
	if sim.MaxWorkers == 0 {
		sim.MaxWorkers = DefaultMaxWorkers
	}
	if sim.PayMortgage == nil {
		sim.PayMortgage = boolPtr(true)
	}
	if sim.Parallel == nil {
		sim.Parallel = boolPtr(true)
	}
}

func applyAccountDefaults(a *domain.AccountConfig) {
	t, err := account.ParseType(a.Type)
	if err != nil {
		// left for validation to report
		return
	}
	a.Type = string(t)

	var defaults map[string]string
	switch t {
	case account.TypeCash:
		defaults = cashDefaults
	case account.TypeTaxable:
		defaults = taxableDefaults
	case account.TypeIRA:
		defaults = iraDefaults
	case account.TypePrivateStock:
		defaults = privateStockDefaults
	case account.TypeInheritance:
		defaults = inheritanceDefaults
		if a.StepUpBasis == nil {
			a.StepUpBasis = boolPtr(true)
		}
	case account.TypeMortgage:
		defaults = mortgageDefaults
		if a.OriginalBalance == nil {
			b := a.Balance
			a.OriginalBalance = &b
		}
	case account.TypeIncome:
		defaults = incomeDefaults
	}

	fields := map[string]**decimal.Decimal{
		"annual_return":            &a.AnnualReturn,
		"stock_allocation":         &a.StockAllocation,
		"stock_return":             &a.StockReturn,
		"stock_volatility":         &a.StockVolatility,
		"cash_return":              &a.CashReturn,
		"dividend_yield":           &a.DividendYield,
		"capital_gains_tax_rate":   &a.CapitalGainsTaxRate,
		"ordinary_income_tax_rate": &a.OrdinaryIncomeTaxRate,
		"early_withdrawal_penalty": &a.EarlyWithdrawalPenalty,
		"asset_allocation":         &a.AssetAllocation,
		"growth_rate":              &a.GrowthRate,
		"volatility":               &a.Volatility,
		"interest_rate":            &a.InterestRate,
		"annual_adjustment":        &a.AnnualAdjustment,
		"tax_rate":                 &a.TaxRate,
	}
	for key, value := range defaults {
		setDefault(fields[key], value)
	}
}

func applyStrategyDefaults(s *domain.StrategyConfig) {
	kind, err := withdrawal.ParseKind(s.Type)
	if err != nil {
		return
	}
	s.Type = string(kind)

	switch kind {
	case withdrawal.KindDynamic:
		setDefault(&s.MinRate, dynamicDefaults["min_rate"])
		setDefault(&s.MaxRate, dynamicDefaults["max_rate"])
		setDefault(&s.TargetMultiple, dynamicDefaults["target_multiple"])
		setDefault(&s.AdjustmentFactor, dynamicDefaults["adjustment_factor"])
	case withdrawal.KindBucket:
		if s.YearsInCash == 0 {
			s.YearsInCash = DefaultYearsInCash
		}
		if s.YearsInTaxable == 0 {
			s.YearsInTaxable = DefaultYearsInTaxable
		}
	}
}

func setDefault(field **decimal.Decimal, value string) {
	if *field == nil {
		v := decimal.RequireFromString(value)
		*field = &v
	}
}

func boolPtr(b bool) *bool { return &b }
