package withdrawal

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/shopspring/decimal"
)

// Percentage withdraws Rate percent (4 means 4%) of current total assets,
// clamped to Min and Max when they are set. Max wins when the bounds cross.
type Percentage struct {
	Rate  decimal.Decimal
	Min   *money.Money
	Max   *money.Money
	Order sequencing.Order
}

func NewPercentage(rate decimal.Decimal) *Percentage {
	return &Percentage{Rate: rate, Order: sequencing.OrderTaxEfficient}
}

func (p *Percentage) Name() string                     { return string(KindPercentage) }
func (p *Percentage) PreferredOrder() sequencing.Order { return p.Order }

func (p *Percentage) Amount(s State) money.Money {
	w := s.TotalAssets.Mul(p.Rate.Div(hundred))
	if p.Min != nil && w.LessThan(*p.Min) {
		w = *p.Min
	}
	if p.Max != nil && w.GreaterThan(*p.Max) {
		w = *p.Max
	}
	return w
}
