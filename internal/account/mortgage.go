package account

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
)

// MortgageParams configures a fixed-rate mortgage.
type MortgageParams struct {
	OriginalBalance money.Money
	InterestRate    decimal.Decimal
	RemainingYears  int
}

// Mortgage is a liability. Its balance is stored as a non-positive amount whose
// magnitude is the outstanding principal. Withdraw means "make a payment".
type Mortgage struct {
	base
	MortgageParams
	monthlyPayment money.Money
}

// NewMortgage returns a mortgage with principal outstanding. A positive
// principal is negated; the level monthly payment is derived once here.
func NewMortgage(id, name string, principal money.Money, p MortgageParams) *Mortgage {
	if principal.IsPositive() {
		principal = principal.Neg()
	}
	m := &Mortgage{base: newBase(id, name, TypeMortgage, principal), MortgageParams: p}
	m.monthlyPayment = LevelPayment(principal.Abs(), p.InterestRate, p.RemainingYears)
	return m
}

// LevelPayment returns the monthly payment that amortizes principal over years
// at annualRate: P·r·(1+r)^n / ((1+r)^n − 1), or P/n when the rate is zero.
func LevelPayment(principal money.Money, annualRate decimal.Decimal, years int) money.Money {
	if years <= 0 || !principal.IsPositive() {
		return money.Zero(principal.Currency())
	}
	n := decimal.NewFromInt(int64(years) * 12)
	r := annualRate.Div(twelve)
	if r.IsZero() {
		payment, _ := principal.Div(n)
		return payment
	}
	growth := one.Add(r).Pow(n)
	payment, err := principal.Mul(r.Mul(growth)).Div(growth.Sub(one))
	if err != nil {
		return money.Zero(principal.Currency())
	}
	return payment
}

func (m *Mortgage) Type() Type { return TypeMortgage }

// MonthlyPayment is the level payment computed at construction.
func (m *Mortgage) MonthlyPayment() money.Money { return m.monthlyPayment }

// AnnualPayment is twelve monthly payments.
func (m *Mortgage) AnnualPayment() money.Money { return m.monthlyPayment.Mul(twelve) }

// Outstanding returns the principal still owed as a positive amount.
func (m *Mortgage) Outstanding() money.Money { return m.balance.Abs() }

func (m *Mortgage) IsPaidOff() bool {
	return !m.balance.IsNegative() || m.RemainingYears <= 0
}

// Withdraw applies a payment of up to the outstanding principal. Paying the
// full amount zeroes both balance and remaining term. Payments are untaxed.
func (m *Mortgage) Withdraw(amount money.Money, _, _ int) (money.Money, money.Money) {
	zero := money.Zero(m.balance.Currency())
	payment := clamp(amount, m.Outstanding())
	m.balance = m.balance.Add(payment)
	if !m.balance.IsNegative() {
		m.balance = zero
		m.RemainingYears = 0
	}
	return payment, zero
}

// Deposit is an extra principal payment.
func (m *Mortgage) Deposit(amount money.Money) {
	m.Withdraw(amount, 0, 0)
}

// ApplyAnnualReturn charges a year of interest on the outstanding principal,
// applies the scheduled annual payment and shortens the term by a year. It
// returns the interest as a negative amount.
func (m *Mortgage) ApplyAnnualReturn(int) money.Money {
	zero := money.Zero(m.balance.Currency())
	if !m.balance.IsNegative() {
		return zero
	}
	outstanding := m.Outstanding()
	interest := outstanding.Mul(m.InterestRate)
	payment := m.AnnualPayment()

	if payment.GreaterThan(outstanding) {
		m.balance = zero
		m.RemainingYears = 0
	} else {
		m.balance = m.balance.Add(payment.Sub(interest))
		if !m.balance.IsNegative() {
			m.balance = zero
		}
		m.RemainingYears = max(0, m.RemainingYears-1)
	}
	return interest.Neg()
}

func (m *Mortgage) Clone(ReturnSource) Account {
	cp := *m
	return &cp
}
