// Package withdrawal decides how much a retiree spends each year. Strategies
// only compute the target; the portfolio decides which accounts fund it.
package withdrawal

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/shopspring/decimal"
)

// Kind names a withdrawal strategy.
type Kind string

const (
	KindFixed      Kind = "fixed"
	KindPercentage Kind = "percentage"
	KindDynamic    Kind = "dynamic"
	KindBucket     Kind = "bucket"
)

// Kinds lists the supported strategies.
var Kinds = []Kind{KindFixed, KindPercentage, KindDynamic, KindBucket}

// ParseKind resolves a configured strategy name, ignoring case.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown withdrawal strategy %q (valid: fixed, percentage, dynamic, bucket)", name)
}

// State is everything a strategy may look at when sizing a year's withdrawal.
// Previous is the amount actually withdrawn the year before and is only
// meaningful when HasPrevious is set.
type State struct {
	Year          int
	TotalAssets   money.Money
	InflationRate decimal.Decimal
	Previous      money.Money
	HasPrevious   bool
}

// Strategy computes the living-expense target for a year. Implementations hold
// no per-trial state, so one value can be shared by concurrent trials.
type Strategy interface {
	Name() string
	Amount(s State) money.Money
	// PreferredOrder is the withdrawal order applied to each trial's
	// portfolio. An empty order leaves the portfolio's own order in place.
	PreferredOrder() sequencing.Order
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// compound returns (1+rate)^years.
func compound(rate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return one
	}
	return one.Add(rate).Pow(decimal.NewFromInt(int64(years)))
}
