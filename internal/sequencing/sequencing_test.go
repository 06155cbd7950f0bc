package sequencing

import (
	"testing"

	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(v int64) money.Money { return money.FromInt(v) }

func threeBuckets() []account.Account {
	return []account.Account{
		account.NewIRA("ira", "IRA", usd(10000), account.IRAParams{}),
		account.NewTaxable("brokerage", "Brokerage", usd(10000), account.TaxableParams{}),
		account.NewCash("cash", "Savings", usd(10000), decimal.Zero),
	}
}

func balances(accounts []account.Account) map[string]money.Money {
	out := make(map[string]money.Money, len(accounts))
	for _, a := range accounts {
		out[a.ID()] = a.Balance()
	}
	return out
}

func TestCreateStrategy(t *testing.T) {
	tests := []struct {
		order    Order
		expected string
	}{
		{OrderTraditional, "traditional"},
		{OrderTaxEfficient, "tax_efficient"},
		{OrderProportional, "proportional"},
		{Order("bogus"), "traditional"},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			s := CreateStrategy(tt.order)
			require.NotNil(t, s)
			assert.Equal(t, tt.expected, s.Name())
		})
	}
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("Tax-Efficient")
	require.NoError(t, err)
	assert.Equal(t, OrderTaxEfficient, o)

	o, err = ParseOrder(" proportional ")
	require.NoError(t, err)
	assert.Equal(t, OrderProportional, o)

	_, err = ParseOrder("roth_first")
	assert.Error(t, err)
}

func TestTraditionalStrategy_DrainsInOrder(t *testing.T) {
	accounts := threeBuckets()
	plan := NewTraditionalStrategy().Execute(accounts, Context{Need: usd(15000), Age: 65})

	b := balances(accounts)
	assert.True(t, b["cash"].IsZero(), "cash drained first")
	assert.True(t, b["brokerage"].Equal(usd(5000)), "taxable drawn for the remainder")
	assert.True(t, b["ira"].Equal(usd(10000)), "IRA untouched")

	assert.True(t, plan.TotalSourced.Equal(usd(15000)))
	assert.True(t, plan.RemainingNeed.IsZero())
	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, "cash", plan.Allocations[0].AccountID)
	assert.Equal(t, "brokerage", plan.Allocations[1].AccountID)
}

func TestTraditionalStrategy_Shortfall(t *testing.T) {
	accounts := threeBuckets()
	plan := NewTraditionalStrategy().Execute(accounts, Context{Need: usd(50000), Age: 65})

	assert.True(t, plan.TotalSourced.Equal(usd(30000)))
	assert.True(t, plan.RemainingNeed.Equal(usd(20000)))
	assert.Contains(t, plan.Notes, "insufficient balances to meet request")
	for _, bal := range balances(accounts) {
		assert.True(t, bal.IsZero())
	}
}

func TestTraditionalStrategy_SkipsLockedAccounts(t *testing.T) {
	stock := account.NewPrivateStock("stock", "Startup", usd(50000), account.PrivateStockParams{ConversionYear: 5})
	accounts := []account.Account{
		stock,
		account.NewCash("cash", "Savings", usd(1000), decimal.Zero),
	}

	plan := NewTraditionalStrategy().Execute(accounts, Context{Need: usd(5000), Age: 60, Year: 4})
	assert.True(t, stock.Balance().Equal(usd(50000)))
	assert.True(t, plan.RemainingNeed.Equal(usd(4000)))
	require.Len(t, plan.Allocations, 1)

	plan = NewTraditionalStrategy().Execute(accounts, Context{Need: usd(5000), Age: 60, Year: 5})
	assert.True(t, stock.Balance().Equal(usd(45000)))
	assert.True(t, plan.RemainingNeed.IsZero())
}

func TestTaxEfficientStrategy_RMDFirst(t *testing.T) {
	ira := account.NewIRA("ira", "IRA", usd(274000), account.IRAParams{})
	cash := account.NewCash("cash", "Savings", usd(10000), decimal.Zero)
	accounts := []account.Account{cash, ira}

	plan := NewTaxEfficientStrategy().Execute(accounts, Context{Need: usd(0), Age: 72})

	assert.True(t, ira.Balance().Equal(usd(264000)), "RMD forced out with zero need: %s", ira.Balance())
	assert.True(t, cash.Balance().Equal(usd(10000)), "cash untouched")
	require.Len(t, plan.Allocations, 1)
	assert.True(t, plan.Allocations[0].Mandatory)
	assert.True(t, plan.TotalSourced.Equal(usd(10000)))
	assert.True(t, plan.RemainingNeed.IsZero())
}

func TestTaxEfficientStrategy_RMDCountsTowardNeed(t *testing.T) {
	ira := account.NewIRA("ira", "IRA", usd(274000), account.IRAParams{OrdinaryIncomeTax: decimal.NewFromFloat(0.2)})
	cash := account.NewCash("cash", "Savings", usd(10000), decimal.Zero)
	accounts := []account.Account{ira, cash}

	plan := NewTaxEfficientStrategy().Execute(accounts, Context{Need: usd(15000), Age: 72})

	assert.True(t, cash.Balance().Equal(usd(5000)))
	assert.True(t, ira.Balance().Equal(usd(264000)))
	assert.True(t, plan.TotalTax.Equal(usd(2000)))
	assert.True(t, plan.TotalSourced.Equal(usd(15000)))
}

func TestTaxEfficientStrategy_NoRMDBeforeStartAge(t *testing.T) {
	accounts := threeBuckets()
	plan := NewTaxEfficientStrategy().Execute(accounts, Context{Need: usd(5000), Age: 65})

	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, "cash", plan.Allocations[0].AccountID)
	assert.False(t, plan.Allocations[0].Mandatory)
}

func TestProportionalStrategy(t *testing.T) {
	accounts := []account.Account{
		account.NewCash("cash", "Savings", usd(25000), decimal.Zero),
		account.NewTaxable("brokerage", "Brokerage", usd(75000), account.TaxableParams{}),
		account.NewMortgage("home", "Home", usd(100000), account.MortgageParams{InterestRate: decimal.NewFromFloat(0.05), RemainingYears: 10}),
	}

	plan := NewProportionalStrategy().Execute(accounts, Context{Need: usd(10000), Age: 65})

	b := balances(accounts)
	assert.True(t, b["cash"].Equal(usd(22500)), "cash %s", b["cash"])
	assert.True(t, b["brokerage"].Equal(usd(67500)), "brokerage %s", b["brokerage"])
	assert.True(t, b["home"].Equal(usd(-100000)), "mortgage never drawn")
	assert.True(t, plan.TotalSourced.Equal(usd(10000)))
	assert.Len(t, plan.Allocations, 2)
}

func TestProportionalStrategy_EmptyPortfolio(t *testing.T) {
	accounts := []account.Account{account.NewCash("cash", "Savings", usd(0), decimal.Zero)}
	plan := NewProportionalStrategy().Execute(accounts, Context{Need: usd(1000)})

	assert.Empty(t, plan.Allocations)
	assert.True(t, plan.RemainingNeed.Equal(usd(1000)))
}

func TestStrategies_Conservation(t *testing.T) {
	for _, order := range Orders {
		t.Run(string(order), func(t *testing.T) {
			accounts := threeBuckets()
			before := usd(0)
			for _, a := range accounts {
				before = before.Add(a.Balance())
			}

			plan := CreateStrategy(order).Execute(accounts, Context{Need: usd(12345), Age: 75})

			after := usd(0)
			for _, a := range accounts {
				after = after.Add(a.Balance())
				assert.False(t, a.Balance().IsNegative())
			}
			assert.True(t, before.Sub(after).Equal(plan.TotalSourced))
		})
	}
}
