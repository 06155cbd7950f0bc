package account

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
)

// RMDStartAge is the first age at which a distribution is required.
const RMDStartAge = 72

type rmdEntry struct {
	age     int
	divisor decimal.Decimal
}

// Simplified uniform-lifetime table; an age uses the first entry at or above it.
var rmdTable = []rmdEntry{
	{72, decimal.RequireFromString("27.4")},
	{73, decimal.RequireFromString("26.5")},
	{74, decimal.RequireFromString("25.5")},
	{75, decimal.RequireFromString("24.6")},
	{80, decimal.RequireFromString("20.2")},
	{85, decimal.RequireFromString("16.0")},
	{90, decimal.RequireFromString("12.2")},
	{95, decimal.RequireFromString("9.5")},
}

var defaultRMDDivisor = decimal.RequireFromString("25.0")

// RMDDivisor returns the life-expectancy divisor for age.
func RMDDivisor(age int) decimal.Decimal {
	for _, e := range rmdTable {
		if age <= e.age {
			return e.divisor
		}
	}
	return defaultRMDDivisor
}

// RequiredDistribution returns the minimum distribution for balance at age.
// It is zero below RMDStartAge.
func RequiredDistribution(age int, balance money.Money) money.Money {
	if age < RMDStartAge || !balance.IsPositive() {
		return money.Zero(balance.Currency())
	}
	rmd, err := balance.Div(RMDDivisor(age))
	if err != nil {
		return money.Zero(balance.Currency())
	}
	return rmd
}

// IRAParams configures a traditional IRA.
type IRAParams struct {
	MarketParams
	OrdinaryIncomeTax      decimal.Decimal
	EarlyWithdrawalPenalty decimal.Decimal
}

// IRA is a tax-deferred account. Growth is untaxed; withdrawals are taxed as
// ordinary income plus a penalty below age 59½.
type IRA struct {
	base
	IRAParams
	market ReturnSource
}

// NewIRA returns a traditional IRA.
func NewIRA(id, name string, balance money.Money, p IRAParams) *IRA {
	return &IRA{base: newBase(id, name, TypeIRA, balance), IRAParams: p}
}

func (a *IRA) Type() Type { return TypeIRA }

// RMD returns the required distribution on the current balance at age.
func (a *IRA) RMD(age int) money.Money { return RequiredDistribution(age, a.balance) }

func (a *IRA) Withdraw(amount money.Money, age, _ int) (money.Money, money.Money) {
	actual := a.take(amount)
	tax := actual.Mul(a.OrdinaryIncomeTax)
	if age < 60 { // under 59½ for whole-year ages
		tax = tax.Add(actual.Mul(a.EarlyWithdrawalPenalty))
	}
	return actual, tax
}

func (a *IRA) Deposit(amount money.Money) {
	a.balance = a.balance.Add(amount)
}

func (a *IRA) ApplyAnnualReturn(int) money.Money {
	_, growth := blendedGrowth(a.balance, a.StockAllocation, a.StockReturn, a.StockVolatility, a.CashReturn, a.market)
	a.balance = a.balance.Add(growth)
	return growth
}

func (a *IRA) Clone(src ReturnSource) Account {
	cp := *a
	cp.market = src
	return &cp
}
