package sequencing

import (
	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/money"
)

// ProportionalStrategy draws from every asset account at once, each in
// proportion to its share of total assets. Accounts still behind a liquidity
// gate are asked for their share and release nothing, so the plan comes up
// short by that amount.
type ProportionalStrategy struct{}

func NewProportionalStrategy() *ProportionalStrategy { return &ProportionalStrategy{} }

func (s *ProportionalStrategy) Name() string { return string(OrderProportional) }

func (s *ProportionalStrategy) Execute(accounts []account.Account, ctx Context) Plan {
	plan := newPlan(s.Name(), ctx)

	total := money.Zero(ctx.Need.Currency())
	for _, a := range accounts {
		if a.Type().IsAsset() {
			total = total.Add(a.Balance())
		}
	}
	if !total.IsPositive() || !ctx.Need.IsPositive() {
		plan.finish(ctx.Need)
		return plan
	}

	for _, a := range accounts {
		if !a.Type().IsAsset() || !a.Balance().IsPositive() {
			continue
		}
		share, err := a.Balance().Ratio(total)
		if err != nil {
			continue
		}
		request := ctx.Need.Mul(share)
		actual, tax := a.Withdraw(request, ctx.Age, ctx.Year)
		plan.record(a, request, actual, tax, false)
	}

	plan.finish(ctx.Need.Sub(plan.TotalSourced))
	return plan
}
