package withdrawal

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/shopspring/decimal"
)

// Fixed withdraws an initial amount grown by inflation every year:
// initial × (1+inflation)^year. A nil Inflation uses the portfolio's rate.
type Fixed struct {
	Initial   money.Money
	Inflation *decimal.Decimal
	Order     sequencing.Order
}

func NewFixed(initial money.Money, inflation *decimal.Decimal) *Fixed {
	return &Fixed{Initial: initial, Inflation: inflation, Order: sequencing.OrderTaxEfficient}
}

func (f *Fixed) Name() string                     { return string(KindFixed) }
func (f *Fixed) PreferredOrder() sequencing.Order { return f.Order }

func (f *Fixed) Amount(s State) money.Money {
	rate := s.InflationRate
	if f.Inflation != nil {
		rate = *f.Inflation
	}
	return f.Initial.Mul(compound(rate, s.Year))
}
