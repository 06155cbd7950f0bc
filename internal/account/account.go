// Package account models the balance-sheet entries of a retiree: cash,
// brokerage, tax-deferred, illiquid and expected assets, a mortgage liability
// and recurring income streams. Each variant owns its balance and applies its
// own withdrawal, taxation and growth rules.
package account

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
)

// Type identifies an account variant.
type Type string

const (
	TypeCash         Type = "cash"
	TypeTaxable      Type = "taxable"
	TypeIRA          Type = "ira"
	TypePrivateStock Type = "private_stock"
	TypeInheritance  Type = "inheritance"
	TypeMortgage     Type = "mortgage"
	TypeIncome       Type = "income"
)

// Types lists every variant in a stable order.
var Types = []Type{TypeCash, TypeTaxable, TypeIRA, TypePrivateStock, TypeInheritance, TypeMortgage, TypeIncome}

// ParseType resolves a configured account type name, ignoring case.
func ParseType(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown account type %q", name)
}

// IsAsset reports whether balances of this type count toward total assets.
func (t Type) IsAsset() bool {
	return t != TypeMortgage && t != TypeIncome
}

// Account is the contract shared by all variants.
//
// Withdraw never removes more than the available balance: a request larger
// than the balance is clamped and the caller sees the smaller actual amount.
// ApplyAnnualReturn mutates the balance by one year of growth or interest and
// returns the change. Clone returns an independent copy whose stochastic
// growth is drawn from src.
type Account interface {
	ID() string
	Type() Type
	Name() string
	Balance() money.Money
	Withdraw(amount money.Money, age, year int) (actual, tax money.Money)
	Deposit(amount money.Money)
	ApplyAnnualReturn(year int) money.Money
	Clone(src ReturnSource) Account
}

// Gated is implemented by accounts whose balance is locked until a given
// simulation year.
type Gated interface {
	Account
	Available(year int) bool
}

// Available reports whether a can be drawn from in year. Accounts without a
// liquidity gate are always available.
func Available(a Account, year int) bool {
	if g, ok := a.(Gated); ok {
		return g.Available(year)
	}
	return true
}

type base struct {
	id      string
	name    string
	balance money.Money
}

func newBase(id, name string, t Type, balance money.Money) base {
	if name == "" {
		name = string(t) + "_account"
	}
	return base{id: id, name: name, balance: balance}
}

func (b *base) ID() string           { return b.id }
func (b *base) Name() string         { return b.name }
func (b *base) Balance() money.Money { return b.balance }

// take removes up to amount from the balance and returns what was removed.
func (b *base) take(amount money.Money) money.Money {
	actual := clamp(amount, b.balance)
	b.balance = b.balance.Sub(actual)
	return actual
}

// clamp bounds a requested amount to [0, available].
func clamp(amount, available money.Money) money.Money {
	zero := money.Zero(available.Currency())
	if !amount.IsPositive() || !available.IsPositive() {
		return zero
	}
	return money.Min(amount, available)
}

// growthPlaces bounds the precision of stochastic growth so balances do not
// accumulate digits year over year.
const growthPlaces = 10

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// blendedGrowth returns one year of growth for a balance split between a
// stochastic stock sleeve and a fixed-return cash sleeve.
func blendedGrowth(balance money.Money, stockAllocation, mean, volatility, cashReturn decimal.Decimal, src ReturnSource) (stockValue, growth money.Money) {
	stockValue = balance.Mul(stockAllocation)
	cashValue := balance.Mul(one.Sub(stockAllocation))
	r := draw(src, mean, volatility)
	growth = stockValue.Mul(r).Add(cashValue.Mul(cashReturn)).Round(growthPlaces)
	return stockValue, growth
}

// gainTax taxes the share of withdrawn that corresponds to unrealized gain
// over basis in the pre-withdrawal balance.
func gainTax(withdrawn, before, basis money.Money, rate decimal.Decimal) money.Money {
	zero := money.Zero(before.Currency())
	if !before.IsPositive() {
		return zero
	}
	unrealized := before.Sub(basis)
	if !unrealized.IsPositive() {
		return zero
	}
	ratio, err := unrealized.Ratio(before)
	if err != nil {
		return zero
	}
	return withdrawn.Mul(ratio).Mul(rate)
}
