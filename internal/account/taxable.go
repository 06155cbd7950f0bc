package account

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
)

// MarketParams describes a balance split between a stock sleeve with random
// returns and a cash sleeve with a fixed return.
type MarketParams struct {
	StockAllocation decimal.Decimal
	StockReturn     decimal.Decimal
	StockVolatility decimal.Decimal
	CashReturn      decimal.Decimal
}

// CashAllocation is the complement of StockAllocation.
func (p MarketParams) CashAllocation() decimal.Decimal { return one.Sub(p.StockAllocation) }

// TaxableParams configures a brokerage account.
type TaxableParams struct {
	MarketParams
	DividendYield   decimal.Decimal
	CapitalGainsTax decimal.Decimal
}

// Taxable is a brokerage account. It tracks cost basis so that only the gain
// share of a withdrawal is taxed at the capital-gains rate.
type Taxable struct {
	base
	TaxableParams
	costBasis money.Money
	market    ReturnSource
}

// NewTaxable returns a brokerage account whose initial cost basis equals its balance.
func NewTaxable(id, name string, balance money.Money, p TaxableParams) *Taxable {
	return &Taxable{
		base:          newBase(id, name, TypeTaxable, balance),
		TaxableParams: p,
		costBasis:     balance,
	}
}

func (t *Taxable) Type() Type { return TypeTaxable }

// SetCostBasis overrides the basis, for holdings bought below their current value.
func (t *Taxable) SetCostBasis(basis money.Money) { t.costBasis = basis }

// CostBasis returns the tracked basis.
func (t *Taxable) CostBasis() money.Money { return t.costBasis }

// Withdraw sells up to amount. Tax is amount × max(0, (balance−basis)/balance)
// × capital-gains rate, and basis shrinks by the withdrawn fraction.
func (t *Taxable) Withdraw(amount money.Money, _, _ int) (money.Money, money.Money) {
	before := t.balance
	actual := t.take(amount)

	tax := money.Zero(before.Currency())
	if t.costBasis.IsPositive() {
		tax = gainTax(actual, before, t.costBasis, t.CapitalGainsTax)
	}

	if before.IsPositive() {
		if fraction, err := actual.Ratio(before); err == nil {
			t.costBasis = t.costBasis.Mul(one.Sub(fraction))
		}
		if t.costBasis.IsNegative() {
			t.costBasis = money.Zero(before.Currency())
		}
	}
	if !t.balance.IsPositive() {
		t.costBasis = money.Zero(before.Currency())
	}
	return actual, tax
}

// Deposit adds new money at full basis.
func (t *Taxable) Deposit(amount money.Money) {
	t.balance = t.balance.Add(amount)
	t.costBasis = t.costBasis.Add(amount)
}

// ApplyAnnualReturn grows both sleeves and reinvests dividends on the stock sleeve.
func (t *Taxable) ApplyAnnualReturn(int) money.Money {
	stockValue, growth := blendedGrowth(t.balance, t.StockAllocation, t.StockReturn, t.StockVolatility, t.CashReturn, t.market)
	total := growth.Add(stockValue.Mul(t.DividendYield))
	t.balance = t.balance.Add(total)
	return total
}

func (t *Taxable) Clone(src ReturnSource) Account {
	cp := *t
	cp.market = src
	return &cp
}
