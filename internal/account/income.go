package account

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
)

// IncomeParams configures a recurring income stream. Amount is the gross
// income in StartYear.
type IncomeParams struct {
	Amount           money.Money
	StartYear        int
	DurationYears    int
	AnnualAdjustment decimal.Decimal
	TaxRate          decimal.Decimal
}

// Income is a pension, Social Security benefit or salary. It never carries a
// balance; its cash flow is read through AnnualIncome.
type Income struct {
	base
	IncomeParams
}

// NewIncome returns an income stream.
func NewIncome(id, name string, p IncomeParams) *Income {
	return &Income{
		base:         newBase(id, name, TypeIncome, money.Zero(p.Amount.Currency())),
		IncomeParams: p,
	}
}

func (i *Income) Type() Type { return TypeIncome }

// Balance is always zero.
func (i *Income) Balance() money.Money { return money.Zero(i.Amount.Currency()) }

// IsActive reports whether StartYear <= year < StartYear+DurationYears.
func (i *Income) IsActive(year int) bool {
	return year >= i.StartYear && year < i.StartYear+i.DurationYears
}

// AnnualIncome returns gross and after-tax income for year, adjusted by
// AnnualAdjustment compounded since StartYear.
func (i *Income) AnnualIncome(year int) (gross, afterTax money.Money) {
	zero := money.Zero(i.Amount.Currency())
	if !i.IsActive(year) {
		return zero, zero
	}
	factor := one.Add(i.AnnualAdjustment).Pow(decimal.NewFromInt(int64(year - i.StartYear)))
	gross = i.Amount.Mul(factor)
	afterTax = gross.Sub(gross.Mul(i.TaxRate))
	return gross, afterTax
}

// RemainingIncome sums gross income from year to the end of the stream.
func (i *Income) RemainingIncome(year int) money.Money {
	total := money.Zero(i.Amount.Currency())
	for y := max(year, i.StartYear); y < i.StartYear+i.DurationYears; y++ {
		gross, _ := i.AnnualIncome(y)
		total = total.Add(gross)
	}
	return total
}

// Withdraw is a no-op.
func (i *Income) Withdraw(money.Money, int, int) (money.Money, money.Money) {
	zero := money.Zero(i.Amount.Currency())
	return zero, zero
}

// Deposit is a no-op.
func (i *Income) Deposit(money.Money) {}

// ApplyAnnualReturn leaves the zero balance unchanged.
func (i *Income) ApplyAnnualReturn(int) money.Money {
	return money.Zero(i.Amount.Currency())
}

func (i *Income) Clone(ReturnSource) Account {
	cp := *i
	return &cp
}
