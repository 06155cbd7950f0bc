package account

import (
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
)

// Cash is a savings account with a fixed annual return. Withdrawals are untaxed.
type Cash struct {
	base
	AnnualReturn decimal.Decimal
}

// NewCash returns a cash account.
func NewCash(id, name string, balance money.Money, annualReturn decimal.Decimal) *Cash {
	return &Cash{base: newBase(id, name, TypeCash, balance), AnnualReturn: annualReturn}
}

func (c *Cash) Type() Type { return TypeCash }

func (c *Cash) Withdraw(amount money.Money, _, _ int) (money.Money, money.Money) {
	return c.take(amount), money.Zero(c.balance.Currency())
}

func (c *Cash) Deposit(amount money.Money) {
	c.balance = c.balance.Add(amount)
}

func (c *Cash) ApplyAnnualReturn(int) money.Money {
	interest := c.balance.Mul(c.AnnualReturn)
	c.balance = c.balance.Add(interest)
	return interest
}

func (c *Cash) Clone(ReturnSource) Account {
	cp := *c
	return &cp
}
