package withdrawal

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/shopspring/decimal"
)

var (
	guardrailUpper = decimal.RequireFromString("1.2")
	guardrailLower = decimal.RequireFromString("0.8")
	onTrackBump    = decimal.RequireFromString("1.03")
)

// Dynamic is a guardrail strategy. It starts at Base and then compares total
// assets against TargetMultiple × Base each year:
//
//   - above 120% of target: previous + AdjustmentFactor × Base, capped at MaxRate% of assets
//   - below 80% of target: previous − AdjustmentFactor × Base, floored at MinRate% of assets
//   - otherwise: previous × 1.03
//
// Rates are percentages.
type Dynamic struct {
	Base             money.Money
	MinRate          decimal.Decimal
	MaxRate          decimal.Decimal
	TargetMultiple   decimal.Decimal
	AdjustmentFactor decimal.Decimal
	Order            sequencing.Order
}

// NewDynamic returns a guardrail strategy with the usual defaults: 3%/6% rate
// bounds, a 25× target and 10% adjustment steps.
func NewDynamic(base money.Money) *Dynamic {
	return &Dynamic{
		Base:             base,
		MinRate:          decimal.NewFromInt(3),
		MaxRate:          decimal.NewFromInt(6),
		TargetMultiple:   decimal.NewFromInt(25),
		AdjustmentFactor: decimal.RequireFromString("0.1"),
		Order:            sequencing.OrderTaxEfficient,
	}
}

func (d *Dynamic) Name() string                     { return string(KindDynamic) }
func (d *Dynamic) PreferredOrder() sequencing.Order { return d.Order }

func (d *Dynamic) Amount(s State) money.Money {
	if s.Year == 0 || !s.HasPrevious {
		return d.Base
	}

	target := d.Base.Mul(d.TargetMultiple)
	step := d.Base.Mul(d.AdjustmentFactor)

	switch {
	case s.TotalAssets.GreaterThan(target.Mul(guardrailUpper)):
		ceiling := s.TotalAssets.Mul(d.MaxRate.Div(hundred))
		return money.Min(s.Previous.Add(step), ceiling)
	case s.TotalAssets.LessThan(target.Mul(guardrailLower)):
		floor := s.TotalAssets.Mul(d.MinRate.Div(hundred))
		return money.Max(s.Previous.Sub(step), floor)
	default:
		return s.Previous.Mul(onTrackBump)
	}
}
