package config

import (
	"fmt"

	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/rgehrsitz/drawdown/internal/domain"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/portfolio"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/rgehrsitz/drawdown/internal/withdrawal"
	"github.com/shopspring/decimal"
)

// BuildPortfolio constructs a portfolio from a defaulted configuration.
func BuildPortfolio(pc *domain.PortfolioConfig) (*portfolio.Portfolio, error) {
	p := portfolio.New(pc.ID, pc.Owner, pc.Age)
	p.Currency = pc.Currency
	if pc.WithdrawalOrder != "" {
		order, err := sequencing.ParseOrder(pc.WithdrawalOrder)
		if err != nil {
			return nil, err
		}
		p.WithdrawalOrder = order
	}
	p.InflationRate = value(pc.InflationRate)
	p.InflationVolatility = value(pc.InflationVolatility)

	for i := range pc.Accounts {
		a, err := buildAccount(&pc.Accounts[i], pc.Currency)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", pc.Accounts[i].ID, err)
		}
		if err := p.AddAccount(a); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func buildAccount(ac *domain.AccountConfig, currency string) (account.Account, error) {
	t, err := account.ParseType(ac.Type)
	if err != nil {
		return nil, err
	}
	name := ac.Name
	if name == "" {
		name = ac.ID
	}
	balance := money.New(ac.Balance, currency)
	market := account.MarketParams{
		StockAllocation: value(ac.StockAllocation),
		StockReturn:     value(ac.StockReturn),
		StockVolatility: value(ac.StockVolatility),
		CashReturn:      value(ac.CashReturn),
	}

	switch t {
	case account.TypeCash:
		return account.NewCash(ac.ID, name, balance, value(ac.AnnualReturn)), nil
	case account.TypeTaxable:
		tx := account.NewTaxable(ac.ID, name, balance, account.TaxableParams{
			MarketParams:    market,
			DividendYield:   value(ac.DividendYield),
			CapitalGainsTax: value(ac.CapitalGainsTaxRate),
		})
		if ac.CostBasis != nil {
			tx.SetCostBasis(money.New(*ac.CostBasis, currency))
		}
		return tx, nil
	case account.TypeIRA:
		return account.NewIRA(ac.ID, name, balance, account.IRAParams{
			MarketParams:           market,
			OrdinaryIncomeTax:      value(ac.OrdinaryIncomeTaxRate),
			EarlyWithdrawalPenalty: value(ac.EarlyWithdrawalPenalty),
		}), nil
	case account.TypePrivateStock:
		return account.NewPrivateStock(ac.ID, name, balance, account.PrivateStockParams{
			MarketParams:    market,
			CapitalGainsTax: value(ac.CapitalGainsTaxRate),
			ConversionYear:  ac.ConversionYear,
		}), nil
	case account.TypeInheritance:
		return account.NewInheritance(ac.ID, name, balance, account.InheritanceParams{
			AssetAllocation: value(ac.AssetAllocation),
			GrowthRate:      value(ac.GrowthRate),
			Volatility:      value(ac.Volatility),
			CashReturn:      value(ac.CashReturn),
			InheritanceYear: ac.InheritanceYear,
			StepUpBasis:     ac.StepUpBasis == nil || *ac.StepUpBasis,
			TaxRate:         value(ac.TaxRate),
		}), nil
	case account.TypeMortgage:
		original := balance
		if ac.OriginalBalance != nil {
			original = money.New(*ac.OriginalBalance, currency)
		}
		return account.NewMortgage(ac.ID, name, balance, account.MortgageParams{
			OriginalBalance: original,
			InterestRate:    value(ac.InterestRate),
			RemainingYears:  ac.RemainingYears,
		}), nil
	case account.TypeIncome:
		return account.NewIncome(ac.ID, name, account.IncomeParams{
			Amount:           money.New(value(ac.AnnualIncome), currency),
			StartYear:        ac.StartYear,
			DurationYears:    ac.DurationYears,
			AnnualAdjustment: value(ac.AnnualAdjustment),
			TaxRate:          value(ac.TaxRate),
		}), nil
	}
	return nil, fmt.Errorf("unsupported account type %q", ac.Type)
}

// BuildStrategy constructs a withdrawal strategy. An explicit withdrawal_order
// on the strategy wins; otherwise a portfolio-level order (portfolioOrder)
// takes precedence over the strategy's preferred default.
func BuildStrategy(sc *domain.StrategyConfig, currency, portfolioOrder string) (withdrawal.Strategy, error) {
	kind, err := withdrawal.ParseKind(sc.Type)
	if err != nil {
		return nil, err
	}
	amount := func(d *decimal.Decimal) money.Money { return money.New(value(d), currency) }

	var (
		strategy withdrawal.Strategy
		order    *sequencing.Order
	)
	switch kind {
	case withdrawal.KindFixed:
		f := withdrawal.NewFixed(amount(sc.InitialWithdrawal), sc.InflationRate)
		strategy, order = f, &f.Order
	case withdrawal.KindPercentage:
		p := withdrawal.NewPercentage(value(sc.WithdrawalRate))
		if sc.MinWithdrawal != nil {
			m := amount(sc.MinWithdrawal)
			p.Min = &m
		}
		if sc.MaxWithdrawal != nil {
			m := amount(sc.MaxWithdrawal)
			p.Max = &m
		}
		strategy, order = p, &p.Order
	case withdrawal.KindDynamic:
		d := withdrawal.NewDynamic(amount(sc.BaseWithdrawal))
		if sc.MinRate != nil {
			d.MinRate = *sc.MinRate
		}
		if sc.MaxRate != nil {
			d.MaxRate = *sc.MaxRate
		}
		if sc.TargetMultiple != nil {
			d.TargetMultiple = *sc.TargetMultiple
		}
		if sc.AdjustmentFactor != nil {
			d.AdjustmentFactor = *sc.AdjustmentFactor
		}
		strategy, order = d, &d.Order
	case withdrawal.KindBucket:
		b := withdrawal.NewBucket(amount(sc.AnnualExpenses))
		if sc.YearsInCash > 0 {
			b.YearsInCash = sc.YearsInCash
		}
		if sc.YearsInTaxable > 0 {
			b.YearsInTaxable = sc.YearsInTaxable
		}
		strategy, order = b, &b.Order
	}

	switch {
	case sc.WithdrawalOrder != "":
		o, err := sequencing.ParseOrder(sc.WithdrawalOrder)
		if err != nil {
			return nil, err
		}
		*order = o
	case portfolioOrder != "":
		// the simulator keeps the portfolio's order when the strategy has none
		*order = ""
	}
	return strategy, nil
}

// BuildParams constructs simulation parameters from a defaulted configuration.
func BuildParams(config *domain.Configuration) (calculation.Params, error) {
	p, err := BuildPortfolio(&config.Portfolio)
	if err != nil {
		return calculation.Params{}, fmt.Errorf("failed to build portfolio: %w", err)
	}
	s, err := BuildStrategy(&config.Strategy, config.Portfolio.Currency, config.Portfolio.WithdrawalOrder)
	if err != nil {
		return calculation.Params{}, fmt.Errorf("failed to build strategy: %w", err)
	}
	sim := config.Simulation
	return calculation.Params{
		Portfolio:      p,
		Strategy:       s,
		Years:          sim.Years,
		NumSimulations: sim.NumSimulations,
		PayMortgage:    sim.PayMortgage == nil || *sim.PayMortgage,
		Parallel:       sim.Parallel == nil || *sim.Parallel,
		MaxWorkers:     sim.MaxWorkers,
		Seed:           sim.Seed,
	}, nil
}

// ResolveScenario returns a copy of the base configuration with the named
// scenario's overrides applied. A scenario strategy replaces the base strategy
// outright; a scenario withdrawal_order overrides both the portfolio and
// strategy orders.
func ResolveScenario(base *domain.Configuration, s domain.Scenario) *domain.Configuration {
	resolved := *base
	resolved.Scenarios = nil
	resolved.Portfolio.Accounts = append([]domain.AccountConfig(nil), base.Portfolio.Accounts...)

	if s.Strategy != nil {
		resolved.Strategy = *s.Strategy
	}
	if s.WithdrawalOrder != "" {
		resolved.Portfolio.WithdrawalOrder = s.WithdrawalOrder
		resolved.Strategy.WithdrawalOrder = s.WithdrawalOrder
	}
	if s.PayMortgage != nil {
		pay := *s.PayMortgage
		resolved.Simulation.PayMortgage = &pay
	}
	return &resolved
}

func value(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
