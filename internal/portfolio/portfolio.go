// Package portfolio aggregates a retiree's accounts and applies the yearly
// cash flows of a simulation to them: income deposits, mortgage payments,
// ordered withdrawals and investment growth.
package portfolio

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/shopspring/decimal"
)

// Portfolio owns a set of accounts in insertion order. Iteration order is part
// of the contract: it decides which account of a type is drawn first and the
// order in which random returns are consumed.
type Portfolio struct {
	ID                  string
	OwnerID             string
	Currency            string
	WithdrawalOrder     sequencing.Order
	CurrentAge          int
	InflationRate       decimal.Decimal
	InflationVolatility decimal.Decimal

	accounts []account.Account
	index    map[string]int
}

// Snapshot records every account balance and the portfolio totals at a point
// in time.
type Snapshot struct {
	Balances         map[string]money.Money
	TotalAssets      money.Money
	TotalLiabilities money.Money
	NetWorth         money.Money
}

// New returns an empty portfolio. An empty id is replaced with a random UUID.
func New(id, ownerID string, age int) *Portfolio {
	if id == "" {
		id = uuid.NewString()
	}
	return &Portfolio{
		ID:              id,
		OwnerID:         ownerID,
		Currency:        money.DefaultCurrency,
		WithdrawalOrder: sequencing.OrderTraditional,
		CurrentAge:      age,
		index:           map[string]int{},
	}
}

// AddAccount appends a to the portfolio. Account IDs must be unique.
func (p *Portfolio) AddAccount(a account.Account) error {
	if a == nil {
		return fmt.Errorf("account is nil")
	}
	if a.ID() == "" {
		return fmt.Errorf("account %q has no id", a.Name())
	}
	if _, dup := p.index[a.ID()]; dup {
		return fmt.Errorf("duplicate account id %q", a.ID())
	}
	if cur := a.Balance().Currency(); cur != "" && cur != p.Currency {
		return fmt.Errorf("account %q currency %s does not match portfolio currency %s", a.ID(), cur, p.Currency)
	}
	p.index[a.ID()] = len(p.accounts)
	p.accounts = append(p.accounts, a)
	return nil
}

// Accounts returns the accounts in insertion order. The slice is a copy; the
// accounts are not.
func (p *Portfolio) Accounts() []account.Account {
	out := make([]account.Account, len(p.accounts))
	copy(out, p.accounts)
	return out
}

// Account looks an account up by ID.
func (p *Portfolio) Account(id string) (account.Account, bool) {
	i, ok := p.index[id]
	if !ok {
		return nil, false
	}
	return p.accounts[i], true
}

// AccountsByType returns the accounts of type t in insertion order.
func (p *Portfolio) AccountsByType(t account.Type) []account.Account {
	var out []account.Account
	for _, a := range p.accounts {
		if a.Type() == t {
			out = append(out, a)
		}
	}
	return out
}

func (p *Portfolio) zero() money.Money { return money.Zero(p.Currency) }

// TotalAssets sums every asset balance. An inheritance counts at its expected
// value even before it is received.
func (p *Portfolio) TotalAssets() money.Money {
	total := p.zero()
	for _, a := range p.accounts {
		if a.Type().IsAsset() {
			total = total.Add(a.Balance())
		}
	}
	return total
}

// TotalLiabilities sums the outstanding principal of every mortgage.
func (p *Portfolio) TotalLiabilities() money.Money {
	total := p.zero()
	for _, a := range p.AccountsByType(account.TypeMortgage) {
		total = total.Add(a.Balance().Abs())
	}
	return total
}

func (p *Portfolio) NetWorth() money.Money {
	return p.TotalAssets().Sub(p.TotalLiabilities())
}

// LiquidAssets sums cash and taxable balances.
func (p *Portfolio) LiquidAssets() money.Money {
	total := p.zero()
	for _, a := range p.accounts {
		if t := a.Type(); t == account.TypeCash || t == account.TypeTaxable {
			total = total.Add(a.Balance())
		}
	}
	return total
}

// AnnualIncome sums every income stream active in year.
func (p *Portfolio) AnnualIncome(year int) (gross, afterTax money.Money) {
	gross, afterTax = p.zero(), p.zero()
	for _, a := range p.AccountsByType(account.TypeIncome) {
		inc, ok := a.(*account.Income)
		if !ok {
			continue
		}
		g, n := inc.AnnualIncome(year)
		gross = gross.Add(g)
		afterTax = afterTax.Add(n)
	}
	return gross, afterTax
}

// IsDepleted reports whether every asset account is at or below zero.
func (p *Portfolio) IsDepleted() bool {
	for _, a := range p.accounts {
		if a.Type().IsAsset() && a.Balance().IsPositive() {
			return false
		}
	}
	return true
}

// WithdrawPlan sources target from the accounts using the portfolio's
// withdrawal order and returns the full allocation detail. Under TaxEfficient
// every call forces the required distributions again, based on the IRA
// balances at the time of the call.
func (p *Portfolio) WithdrawPlan(target money.Money, year int) sequencing.Plan {
	strategy := sequencing.CreateStrategy(p.WithdrawalOrder)
	return strategy.Execute(p.accounts, sequencing.Context{Need: target, Age: p.CurrentAge, Year: year})
}

// Withdraw sources target and returns the amount actually withdrawn and the
// tax it triggered. A shortfall is not an error.
func (p *Portfolio) Withdraw(target money.Money, year int) (actual, tax money.Money) {
	plan := p.WithdrawPlan(target, year)
	return plan.TotalSourced, plan.TotalTax
}

// PayMortgage makes the annual payment on every outstanding mortgage, sourcing
// the cash through Withdraw. The final payment is capped at the outstanding
// principal. paid is everything sourced, so a forced distribution larger than
// the payment is reported rather than lost.
func (p *Portfolio) PayMortgage(year int) (paid, tax money.Money) {
	paid, tax = p.zero(), p.zero()
	for _, a := range p.AccountsByType(account.TypeMortgage) {
		m, ok := a.(*account.Mortgage)
		if !ok || m.IsPaidOff() {
			continue
		}
		payment := money.Min(m.AnnualPayment(), m.Outstanding())
		sourced, t := p.Withdraw(payment, year)
		m.Withdraw(sourced, p.CurrentAge, year)
		paid = paid.Add(sourced)
		tax = tax.Add(t)
	}
	return paid, tax
}

// MortgagesPaidOff reports whether the portfolio has at least one mortgage and
// all of them are paid off.
func (p *Portfolio) MortgagesPaidOff() bool {
	mortgages := p.AccountsByType(account.TypeMortgage)
	if len(mortgages) == 0 {
		return false
	}
	for _, a := range mortgages {
		if m, ok := a.(*account.Mortgage); ok && !m.IsPaidOff() {
			return false
		}
	}
	return true
}

// DepositIncome routes amount into the first cash account, or the first
// taxable account when there is no cash account. With neither, the income is
// dropped and the returned id is empty.
func (p *Portfolio) DepositIncome(amount money.Money) string {
	if !amount.IsPositive() {
		return ""
	}
	for _, t := range []account.Type{account.TypeCash, account.TypeTaxable} {
		if sinks := p.AccountsByType(t); len(sinks) > 0 {
			sinks[0].Deposit(amount)
			return sinks[0].ID()
		}
	}
	return ""
}

// ApplyReturns applies one year of growth to every account and returns the
// total change.
func (p *Portfolio) ApplyReturns(year int) money.Money {
	total := p.zero()
	for _, a := range p.accounts {
		total = total.Add(a.ApplyAnnualReturn(year))
	}
	return total
}

func (p *Portfolio) IncrementAge() { p.CurrentAge++ }

// Snapshot captures every account balance and the current totals.
func (p *Portfolio) Snapshot() Snapshot {
	s := Snapshot{
		Balances:         make(map[string]money.Money, len(p.accounts)),
		TotalAssets:      p.TotalAssets(),
		TotalLiabilities: p.TotalLiabilities(),
	}
	for _, a := range p.accounts {
		s.Balances[a.ID()] = a.Balance()
	}
	s.NetWorth = s.TotalAssets.Sub(s.TotalLiabilities)
	return s
}

// Clone returns a deep copy whose stochastic accounts draw their returns from
// src. Nothing mutable is shared with p.
func (p *Portfolio) Clone(src account.ReturnSource) *Portfolio {
	c := *p
	c.accounts = make([]account.Account, len(p.accounts))
	c.index = make(map[string]int, len(p.index))
	for i, a := range p.accounts {
		c.accounts[i] = a.Clone(src)
		c.index[a.ID()] = i
	}
	return &c
}
