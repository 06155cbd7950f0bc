package sequencing

import "github.com/rgehrsitz/drawdown/internal/account"

// TraditionalOrder is the fixed drain sequence used by TraditionalStrategy.
var TraditionalOrder = []account.Type{
	account.TypeCash,
	account.TypeTaxable,
	account.TypeInheritance,
	account.TypePrivateStock,
	account.TypeIRA,
}

// TraditionalStrategy: cash -> taxable -> inheritance -> private stock -> IRA
// Spends the most liquid, least tax-advantaged money first and leaves the
// tax-deferred balance to compound for last.
type TraditionalStrategy struct{}

func NewTraditionalStrategy() *TraditionalStrategy { return &TraditionalStrategy{} }

func (s *TraditionalStrategy) Name() string { return string(OrderTraditional) }

func (s *TraditionalStrategy) Execute(accounts []account.Account, ctx Context) Plan {
	plan := newPlan(s.Name(), ctx)
	remaining := drainInOrder(&plan, accounts, TraditionalOrder, ctx, ctx.Need)
	plan.finish(remaining)
	return plan
}
