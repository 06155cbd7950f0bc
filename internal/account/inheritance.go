package account

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
)

// DefaultInheritanceTax is the flat long-term rate applied to inherited assets.
var DefaultInheritanceTax = decimal.RequireFromString("0.15")

// InheritanceParams configures an expected inheritance.
type InheritanceParams struct {
	// AssetAllocation is the growth share; the rest earns CashReturn.
	AssetAllocation decimal.Decimal
	GrowthRate      decimal.Decimal
	Volatility      decimal.Decimal
	CashReturn      decimal.Decimal
	InheritanceYear int
	StepUpBasis     bool
	TaxRate         decimal.Decimal
}

// Inheritance is wealth expected in InheritanceYear. It grows before receipt
// but cannot be drawn until then.
type Inheritance struct {
	base
	InheritanceParams
	basis    money.Money
	received bool
	market   ReturnSource
}

// NewInheritance returns an unreceived inheritance of the expected amount.
func NewInheritance(id, name string, expected money.Money, p InheritanceParams) *Inheritance {
	return &Inheritance{
		base:              newBase(id, name, TypeInheritance, expected),
		InheritanceParams: p,
		basis:             expected,
	}
}

func (h *Inheritance) Type() Type { return TypeInheritance }

// IsAvailable reports whether year is at or after InheritanceYear.
func (h *Inheritance) IsAvailable(year int) bool { return year >= h.InheritanceYear }

func (h *Inheritance) Available(year int) bool { return h.IsAvailable(year) }

// IsReceived reports whether the receipt transition has happened.
func (h *Inheritance) IsReceived() bool { return h.received }

// Basis returns the tax basis; after a stepped-up receipt it is the balance at receipt.
func (h *Inheritance) Basis() money.Money { return h.basis }

// Withdraw returns zero before InheritanceYear. With step-up basis only gains
// since receipt are taxed; without it the whole withdrawal is taxed at the
// flat rate.
func (h *Inheritance) Withdraw(amount money.Money, _, year int) (money.Money, money.Money) {
	zero := money.Zero(h.balance.Currency())
	if !h.IsAvailable(year) {
		return zero, zero
	}
	before := h.balance
	actual := h.take(amount)

	if h.StepUpBasis {
		return actual, gainTax(actual, before, h.basis, h.TaxRate)
	}
	if before.IsPositive() {
		return actual, actual.Mul(h.TaxRate)
	}
	return actual, zero
}

func (h *Inheritance) Deposit(amount money.Money) {
	h.balance = h.balance.Add(amount)
}

// ApplyAnnualReturn grows the expected assets. The first call at or after
// InheritanceYear marks the inheritance received and, with step-up basis,
// resets the basis to the grown balance.
func (h *Inheritance) ApplyAnnualReturn(year int) money.Money {
	_, growth := blendedGrowth(h.balance, h.AssetAllocation, h.GrowthRate, h.Volatility, h.CashReturn, h.market)
	h.balance = h.balance.Add(growth)
	if !h.received && h.IsAvailable(year) {
		h.received = true
		if h.StepUpBasis {
			h.basis = h.balance
		}
	}
	return growth
}

func (h *Inheritance) Clone(src ReturnSource) Account {
	cp := *h
	cp.market = src
	return &cp
}
