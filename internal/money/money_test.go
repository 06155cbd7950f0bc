package money

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_ArithmeticReturnsNewValues(t *testing.T) {
	a := FromInt(100)
	b := FromInt(40)

	sum := a.Add(b)
	diff := a.Sub(b)

	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(140)))
	assert.True(t, diff.Amount().Equal(decimal.NewFromInt(60)))
	assert.True(t, a.Amount().Equal(decimal.NewFromInt(100)), "operands must not change")
	assert.Equal(t, "USD", sum.Currency())
}

func TestMoney_CurrencyMismatchPanics(t *testing.T) {
	usd := FromInt(10)
	eur := New(decimal.NewFromInt(10), "EUR")

	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic on mismatched currencies")
		err, ok := r.(error)
		require.True(t, ok)
		var mismatch *MismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "USD", mismatch.Left)
		assert.Equal(t, "EUR", mismatch.Right)
	}()
	_ = usd.Add(eur)
}

func TestMoney_EmptyCurrencyIsWeak(t *testing.T) {
	var zero Money
	got := zero.Add(New(decimal.NewFromInt(5), "EUR"))
	assert.Equal(t, "EUR", got.Currency())
	assert.True(t, got.Amount().Equal(decimal.NewFromInt(5)))
}

func TestMoney_Div(t *testing.T) {
	m := FromInt(274000)

	got, err := m.Div(decimal.NewFromFloat(27.4))
	require.NoError(t, err)
	assert.True(t, got.Amount().Equal(decimal.NewFromInt(10000)))

	_, err = m.Div(decimal.Zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestMoney_Ratio(t *testing.T) {
	r, err := FromInt(25).Ratio(FromInt(100))
	require.NoError(t, err)
	assert.True(t, r.Equal(decimal.NewFromFloat(0.25)))

	_, err = FromInt(25).Ratio(Zero("USD"))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestMoney_MinMax(t *testing.T) {
	a, b := FromInt(3), FromInt(7)
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Max(a, b).Equal(b))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "$1,234.57", USD(decimal.NewFromFloat(1234.567)).String())
	assert.Equal(t, "$0.00", Money{}.String())
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, ValidateCurrency("USD"))
	assert.NoError(t, ValidateCurrency("EUR"))
	assert.ErrorIs(t, ValidateCurrency("XYZ1"), ErrUnknownCurrency)
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(USD(decimal.NewFromFloat(12.5)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"12.5","currency":"USD"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(USD(decimal.NewFromFloat(12.5))))
}
