// Package sequencing decides which accounts fund a withdrawal and in what
// order. Strategies execute directly against the accounts they are given, so
// balances, cost basis and tax are realized by the accounts themselves.
package sequencing

import (
	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/money"
)

// Allocation records what a single account contributed toward a withdrawal.
// Requested is what the strategy asked for; Gross is what the account actually
// released after clamping and liquidity gates.
type Allocation struct {
	AccountID string
	Type      account.Type
	Requested money.Money
	Gross     money.Money
	Tax       money.Money
	Mandatory bool
}

// Plan aggregates the outcome of one withdrawal request.
// RemainingNeed is the unmet portion of Requested and is never negative, even
// when a mandatory distribution released more than was asked for.
type Plan struct {
	Requested     money.Money
	Allocations   []Allocation
	TotalSourced  money.Money
	TotalTax      money.Money
	RemainingNeed money.Money
	Notes         []string
	StrategyUsed  string
}

// Context carries the per-year inputs a strategy needs.
type Context struct {
	Need money.Money
	Age  int
	Year int
}

// Strategy is implemented by every withdrawal-order algorithm.
type Strategy interface {
	Name() string
	Execute(accounts []account.Account, ctx Context) Plan
}

// distributor is satisfied by accounts subject to required minimum distributions.
type distributor interface {
	RMD(age int) money.Money
}

func newPlan(name string, ctx Context) Plan {
	zero := money.Zero(ctx.Need.Currency())
	return Plan{
		Requested:     ctx.Need,
		Allocations:   []Allocation{},
		TotalSourced:  zero,
		TotalTax:      zero,
		RemainingNeed: zero,
		StrategyUsed:  name,
	}
}

func (p *Plan) record(a account.Account, requested, gross, tax money.Money, mandatory bool) {
	p.Allocations = append(p.Allocations, Allocation{
		AccountID: a.ID(),
		Type:      a.Type(),
		Requested: requested,
		Gross:     gross,
		Tax:       tax,
		Mandatory: mandatory,
	})
	p.TotalSourced = p.TotalSourced.Add(gross)
	p.TotalTax = p.TotalTax.Add(tax)
}

func (p *Plan) finish(remaining money.Money) {
	p.RemainingNeed = money.Max(remaining, money.Zero(remaining.Currency()))
	if p.RemainingNeed.IsPositive() {
		p.Notes = append(p.Notes, "insufficient balances to meet request")
	}
}

// drainInOrder walks account types in order and, within a type, accounts in
// the order given, drawing each down to the lesser of its balance and the
// unmet need. Locked accounts are skipped without being touched.
func drainInOrder(plan *Plan, accounts []account.Account, order []account.Type, ctx Context, remaining money.Money) money.Money {
	for _, t := range order {
		for _, a := range accounts {
			if !remaining.IsPositive() {
				return remaining
			}
			if a.Type() != t || !account.Available(a, ctx.Year) || !a.Balance().IsPositive() {
				continue
			}
			request := money.Min(remaining, a.Balance())
			actual, tax := a.Withdraw(request, ctx.Age, ctx.Year)
			plan.record(a, request, actual, tax, false)
			remaining = remaining.Sub(actual)
		}
	}
	return remaining
}
