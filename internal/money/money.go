// Package money provides an immutable, currency-tagged monetary value backed by
// arbitrary-precision decimals.
package money

import (
	"encoding/json"
	"errors"
	"fmt"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = gomoney.USD

// ErrDivisionByZero is returned by Div when the divisor is zero.
var ErrDivisionByZero = errors.New("money: division by zero")

// ErrUnknownCurrency is returned by ValidateCurrency for codes go-money does not know.
var ErrUnknownCurrency = errors.New("money: unknown currency")

// MismatchError reports arithmetic between two different currencies.
type MismatchError struct {
	Op          string
	Left, Right string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("money: cannot %s %s and %s", e.Op, e.Left, e.Right)
}

// Money is an amount in a single currency. The zero value is a zero amount with
// no currency; an empty currency adopts the currency of the other operand.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// New returns amount expressed in currency.
func New(amount decimal.Decimal, currency string) Money {
	return Money{amount: amount, currency: currency}
}

// USD is shorthand for New(amount, "USD").
func USD(amount decimal.Decimal) Money { return New(amount, DefaultCurrency) }

// FromInt returns a whole-unit USD amount.
func FromInt(v int64) Money { return USD(decimal.NewFromInt(v)) }

// Zero returns a zero amount in currency.
func Zero(currency string) Money { return New(decimal.Zero, currency) }

// ValidateCurrency checks that code is an ISO currency known to go-money.
func ValidateCurrency(code string) error {
	if gomoney.GetCurrency(code) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return nil
}

func (m Money) Amount() decimal.Decimal { return m.amount }
func (m Money) Currency() string        { return m.currency }
func (m Money) IsZero() bool            { return m.amount.IsZero() }
func (m Money) IsPositive() bool        { return m.amount.IsPositive() }
func (m Money) IsNegative() bool        { return m.amount.IsNegative() }
func (m Money) Neg() Money              { return Money{amount: m.amount.Neg(), currency: m.currency} }
func (m Money) Abs() Money              { return Money{amount: m.amount.Abs(), currency: m.currency} }

// Add returns m+n. It panics with a *MismatchError if the currencies differ.
func (m Money) Add(n Money) Money {
	return Money{amount: m.amount.Add(n.amount), currency: pick("add", m, n)}
}

// Sub returns m-n. It panics with a *MismatchError if the currencies differ.
func (m Money) Sub(n Money) Money {
	return Money{amount: m.amount.Sub(n.amount), currency: pick("subtract", m, n)}
}

// Mul scales m by factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.currency}
}

// Round rounds the amount half away from zero to places decimal places.
func (m Money) Round(places int32) Money {
	return Money{amount: m.amount.Round(places), currency: m.currency}
}

// Div divides m by divisor.
func (m Money) Div(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}
	return Money{amount: m.amount.Div(divisor), currency: m.currency}, nil
}

// Ratio returns m/n as a plain decimal.
func (m Money) Ratio(n Money) (decimal.Decimal, error) {
	pick("divide", m, n)
	if n.amount.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return m.amount.Div(n.amount), nil
}

func (m Money) Cmp(n Money) int {
	pick("compare", m, n)
	return m.amount.Cmp(n.amount)
}

func (m Money) Equal(n Money) bool              { return m.Cmp(n) == 0 }
func (m Money) LessThan(n Money) bool           { return m.Cmp(n) < 0 }
func (m Money) LessThanOrEqual(n Money) bool    { return m.Cmp(n) <= 0 }
func (m Money) GreaterThan(n Money) bool        { return m.Cmp(n) > 0 }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.Cmp(n) >= 0 }

// Min returns the smaller of a and b.
func Min(a, b Money) Money {
	if b.LessThan(a) {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func Max(a, b Money) Money {
	if b.GreaterThan(a) {
		return b
	}
	return a
}

// String formats the amount with the currency's symbol and grouping, rounded to
// the currency's minor unit.
func (m Money) String() string {
	code := m.currency
	if code == "" {
		code = DefaultCurrency
	}
	cur := gomoney.GetCurrency(code)
	if cur == nil {
		return code + " " + m.amount.StringFixed(2)
	}
	minor := m.amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

type jsonMoney struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonMoney{Amount: m.amount, Currency: m.currency})
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var j jsonMoney
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	m.amount, m.currency = j.Amount, j.Currency
	return nil
}

// pick resolves the currency of a binary operation. An empty currency is weak.
func pick(op string, a, b Money) string {
	switch {
	case a.currency == "":
		return b.currency
	case b.currency == "":
		return a.currency
	case a.currency != b.currency:
		panic(&MismatchError{Op: op, Left: a.currency, Right: b.currency})
	}
	return a.currency
}
