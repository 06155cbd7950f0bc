// Package domain holds the scenario file schema. Every optional numeric field
// is a pointer so the parser can tell "absent" from "zero" when applying
// defaults.
package domain

import "github.com/shopspring/decimal"

// Configuration is the root of a scenario file.
type Configuration struct {
	Portfolio  PortfolioConfig  `yaml:"portfolio" json:"portfolio"`
	Strategy   StrategyConfig   `yaml:"strategy" json:"strategy"`
	Simulation SimulationConfig `yaml:"simulation" json:"simulation"`
	// Scenarios are named variations run side by side by the compare command.
	Scenarios []Scenario `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
}

// PortfolioConfig describes the owner and their accounts.
type PortfolioConfig struct {
	ID                  string           `yaml:"id,omitempty" json:"id,omitempty"`
	Owner               string           `yaml:"owner,omitempty" json:"owner,omitempty"`
	Age                 int              `yaml:"age" json:"age"`
	Currency            string           `yaml:"currency,omitempty" json:"currency,omitempty"`
	WithdrawalOrder     string           `yaml:"withdrawal_order,omitempty" json:"withdrawal_order,omitempty"`
	InflationRate       *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`
	InflationVolatility *decimal.Decimal `yaml:"inflation_volatility,omitempty" json:"inflation_volatility,omitempty"`
	Accounts            []AccountConfig  `yaml:"accounts" json:"accounts"`
}

// AccountConfig is a flat union of every account variant's parameters. Type
// selects the variant; fields that do not apply to it are ignored.
type AccountConfig struct {
	ID      string          `yaml:"id,omitempty" json:"id,omitempty"`
	Type    string          `yaml:"type" json:"type"`
	Name    string          `yaml:"name,omitempty" json:"name,omitempty"`
	Balance decimal.Decimal `yaml:"balance" json:"balance"`

	// cash
	AnnualReturn *decimal.Decimal `yaml:"annual_return,omitempty" json:"annual_return,omitempty"`

	// taxable, ira, private_stock
	StockAllocation *decimal.Decimal `yaml:"stock_allocation,omitempty" json:"stock_allocation,omitempty"`
	StockReturn     *decimal.Decimal `yaml:"stock_return,omitempty" json:"stock_return,omitempty"`
	StockVolatility *decimal.Decimal `yaml:"stock_volatility,omitempty" json:"stock_volatility,omitempty"`
	CashReturn      *decimal.Decimal `yaml:"cash_return,omitempty" json:"cash_return,omitempty"`

	// taxable
	DividendYield *decimal.Decimal `yaml:"dividend_yield,omitempty" json:"dividend_yield,omitempty"`
	CostBasis     *decimal.Decimal `yaml:"cost_basis,omitempty" json:"cost_basis,omitempty"`

	// taxable, private_stock
	CapitalGainsTaxRate *decimal.Decimal `yaml:"capital_gains_tax_rate,omitempty" json:"capital_gains_tax_rate,omitempty"`

	// ira
	OrdinaryIncomeTaxRate  *decimal.Decimal `yaml:"ordinary_income_tax_rate,omitempty" json:"ordinary_income_tax_rate,omitempty"`
	EarlyWithdrawalPenalty *decimal.Decimal `yaml:"early_withdrawal_penalty,omitempty" json:"early_withdrawal_penalty,omitempty"`

	// private_stock
	ConversionYear int `yaml:"conversion_year,omitempty" json:"conversion_year,omitempty"`

	// inheritance
	AssetAllocation *decimal.Decimal `yaml:"asset_allocation,omitempty" json:"asset_allocation,omitempty"`
	GrowthRate      *decimal.Decimal `yaml:"growth_rate,omitempty" json:"growth_rate,omitempty"`
	Volatility      *decimal.Decimal `yaml:"volatility,omitempty" json:"volatility,omitempty"`
	InheritanceYear int              `yaml:"inheritance_year,omitempty" json:"inheritance_year,omitempty"`
	StepUpBasis     *bool            `yaml:"step_up_basis,omitempty" json:"step_up_basis,omitempty"`

	// mortgage
	OriginalBalance *decimal.Decimal `yaml:"original_balance,omitempty" json:"original_balance,omitempty"`
	InterestRate    *decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	RemainingYears  int              `yaml:"remaining_years,omitempty" json:"remaining_years,omitempty"`

	// income
	AnnualIncome     *decimal.Decimal `yaml:"annual_income,omitempty" json:"annual_income,omitempty"`
	StartYear        int              `yaml:"start_year,omitempty" json:"start_year,omitempty"`
	DurationYears    int              `yaml:"duration_years,omitempty" json:"duration_years,omitempty"`
	AnnualAdjustment *decimal.Decimal `yaml:"annual_adjustment,omitempty" json:"annual_adjustment,omitempty"`

	// income, inheritance
	TaxRate *decimal.Decimal `yaml:"tax_rate,omitempty" json:"tax_rate,omitempty"`
}

// StrategyConfig selects and parameterizes a withdrawal strategy. Rates in
// WithdrawalRate, MinRate and MaxRate are percentages (4 means 4%).
type StrategyConfig struct {
	Type            string `yaml:"type" json:"type"`
	WithdrawalOrder string `yaml:"withdrawal_order,omitempty" json:"withdrawal_order,omitempty"`

	// fixed
	InitialWithdrawal *decimal.Decimal `yaml:"initial_withdrawal,omitempty" json:"initial_withdrawal,omitempty"`
	InflationRate     *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflation_rate,omitempty"`

	// percentage
	WithdrawalRate *decimal.Decimal `yaml:"withdrawal_rate,omitempty" json:"withdrawal_rate,omitempty"`
	MinWithdrawal  *decimal.Decimal `yaml:"min_withdrawal,omitempty" json:"min_withdrawal,omitempty"`
	MaxWithdrawal  *decimal.Decimal `yaml:"max_withdrawal,omitempty" json:"max_withdrawal,omitempty"`

	// dynamic
	BaseWithdrawal   *decimal.Decimal `yaml:"base_withdrawal,omitempty" json:"base_withdrawal,omitempty"`
	MinRate          *decimal.Decimal `yaml:"min_rate,omitempty" json:"min_rate,omitempty"`
	MaxRate          *decimal.Decimal `yaml:"max_rate,omitempty" json:"max_rate,omitempty"`
	TargetMultiple   *decimal.Decimal `yaml:"target_multiple,omitempty" json:"target_multiple,omitempty"`
	AdjustmentFactor *decimal.Decimal `yaml:"adjustment_factor,omitempty" json:"adjustment_factor,omitempty"`

	// bucket
	AnnualExpenses *decimal.Decimal `yaml:"annual_expenses,omitempty" json:"annual_expenses,omitempty"`
	YearsInCash    int              `yaml:"years_in_cash,omitempty" json:"years_in_cash,omitempty"`
	YearsInTaxable int              `yaml:"years_in_taxable,omitempty" json:"years_in_taxable,omitempty"`
}

// SimulationConfig controls the Monte Carlo run.
type SimulationConfig struct {
	Years          int   `yaml:"years" json:"years"`
	NumSimulations int   `yaml:"num_simulations" json:"num_simulations"`
	PayMortgage    *bool `yaml:"pay_mortgage,omitempty" json:"pay_mortgage,omitempty"`
	Parallel       *bool `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	MaxWorkers     int   `yaml:"max_workers,omitempty" json:"max_workers,omitempty"`
	Seed           int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Scenario overrides parts of the base configuration. Nil or empty fields
// inherit from the base.
type Scenario struct {
	Name            string          `yaml:"name" json:"name"`
	Strategy        *StrategyConfig `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	WithdrawalOrder string          `yaml:"withdrawal_order,omitempty" json:"withdrawal_order,omitempty"`
	PayMortgage     *bool           `yaml:"pay_mortgage,omitempty" json:"pay_mortgage,omitempty"`
}
