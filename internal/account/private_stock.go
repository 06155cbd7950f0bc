package account

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
)

// PrivateStockParams configures an illiquid equity grant.
type PrivateStockParams struct {
	MarketParams
	CapitalGainsTax decimal.Decimal
	// ConversionYear is the simulation year the stock becomes liquid.
	ConversionYear int
}

// PrivateStock holds shares that cannot be sold before ConversionYear. Once
// liquid it is taxed like a brokerage account, with its pre-vesting balance as
// the basis.
type PrivateStock struct {
	base
	PrivateStockParams
	originalBalance money.Money
	converted       bool
	market          ReturnSource
}

// NewPrivateStock returns a locked private stock account.
func NewPrivateStock(id, name string, balance money.Money, p PrivateStockParams) *PrivateStock {
	return &PrivateStock{
		base:               newBase(id, name, TypePrivateStock, balance),
		PrivateStockParams: p,
		originalBalance:    balance,
	}
}

func (p *PrivateStock) Type() Type { return TypePrivateStock }

// IsLiquid reports whether the shares can be sold in year.
func (p *PrivateStock) IsLiquid(year int) bool { return year >= p.ConversionYear }

func (p *PrivateStock) Available(year int) bool { return p.IsLiquid(year) }

// Converted reports whether a return has been applied at or after ConversionYear.
func (p *PrivateStock) Converted() bool { return p.converted }

// OriginalBalance is the pre-vesting value used as the tax basis.
func (p *PrivateStock) OriginalBalance() money.Money { return p.originalBalance }

// Withdraw returns zero before ConversionYear. Afterwards the gain share over
// the original balance is taxed; when no basis is known the whole withdrawal
// is taxed at the capital-gains rate.
func (p *PrivateStock) Withdraw(amount money.Money, _, year int) (money.Money, money.Money) {
	zero := money.Zero(p.balance.Currency())
	if !p.IsLiquid(year) {
		return zero, zero
	}
	before := p.balance
	actual := p.take(amount)

	switch {
	case before.IsPositive() && p.originalBalance.IsPositive():
		return actual, gainTax(actual, before, p.originalBalance, p.CapitalGainsTax)
	case actual.IsPositive():
		return actual, actual.Mul(p.CapitalGainsTax)
	}
	return actual, zero
}

func (p *PrivateStock) Deposit(amount money.Money) {
	p.balance = p.balance.Add(amount)
}

func (p *PrivateStock) ApplyAnnualReturn(year int) money.Money {
	_, growth := blendedGrowth(p.balance, p.StockAllocation, p.StockReturn, p.StockVolatility, p.CashReturn, p.market)
	p.balance = p.balance.Add(growth)
	if !p.converted && p.IsLiquid(year) {
		p.converted = true
	}
	return growth
}

func (p *PrivateStock) Clone(src ReturnSource) Account {
	cp := *p
	cp.market = src
	return &cp
}
