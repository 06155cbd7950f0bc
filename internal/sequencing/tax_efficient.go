package sequencing

import "github.com/rgehrsitz/drawdown/internal/account"

// TaxEfficientStrategy satisfies required minimum distributions first, then
// follows the traditional drain order. RMDs leave the IRA even when the need
// is already met or zero; the excess is not an error.
type TaxEfficientStrategy struct{}

func NewTaxEfficientStrategy() *TaxEfficientStrategy { return &TaxEfficientStrategy{} }

func (s *TaxEfficientStrategy) Name() string { return string(OrderTaxEfficient) }

func (s *TaxEfficientStrategy) Execute(accounts []account.Account, ctx Context) Plan {
	plan := newPlan(s.Name(), ctx)
	remaining := ctx.Need

	for _, a := range accounts {
		d, ok := a.(distributor)
		if !ok {
			continue
		}
		rmd := d.RMD(ctx.Age)
		if !rmd.IsPositive() {
			continue
		}
		actual, tax := a.Withdraw(rmd, ctx.Age, ctx.Year)
		plan.record(a, rmd, actual, tax, true)
		remaining = remaining.Sub(actual)
	}
	if len(plan.Allocations) > 0 {
		plan.Notes = append(plan.Notes, "required minimum distributions taken")
	}

	remaining = drainInOrder(&plan, accounts, TraditionalOrder, ctx, remaining)
	plan.finish(remaining)
	return plan
}
