package withdrawal

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/sequencing"
	"github.com/shopspring/decimal"
)

// BucketInflation is the fixed expense growth assumed by the bucket strategy.
var BucketInflation = decimal.RequireFromString("0.03")

// Bucket spends AnnualExpenses grown at 3% a year. The cash and taxable
// buckets are sized by YearsInCash and YearsInTaxable but money is never moved
// between buckets automatically; refilling them is a manual decision.
type Bucket struct {
	AnnualExpenses money.Money
	YearsInCash    int
	YearsInTaxable int
	Order          sequencing.Order
}

func NewBucket(annualExpenses money.Money) *Bucket {
	return &Bucket{
		AnnualExpenses: annualExpenses,
		YearsInCash:    2,
		YearsInTaxable: 5,
		Order:          sequencing.OrderTraditional,
	}
}

func (b *Bucket) Name() string                     { return string(KindBucket) }
func (b *Bucket) PreferredOrder() sequencing.Order { return b.Order }

func (b *Bucket) Amount(s State) money.Money {
	return b.AnnualExpenses.Mul(compound(BucketInflation, s.Year))
}

// Targets reports how large the cash and taxable buckets should be in year.
func (b *Bucket) Targets(year int) (cash, taxable money.Money) {
	expenses := b.Amount(State{Year: year})
	return expenses.Mul(decimal.NewFromInt(int64(b.YearsInCash))),
		expenses.Mul(decimal.NewFromInt(int64(b.YearsInTaxable)))
}
