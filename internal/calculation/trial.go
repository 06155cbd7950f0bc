package calculation

import (
	"fmt"

	"github.com/rgehrsitz/drawdown/internal/account"
	"github.com/rgehrsitz/drawdown/internal/money"
	"github.com/rgehrsitz/drawdown/internal/portfolio"
	"github.com/rgehrsitz/drawdown/internal/withdrawal"
)

// Run is the outcome of one trial. Every per-year series has one entry per
// simulated year; once a trial depletes, the remaining years repeat the
// depletion-year snapshot with zero cash flows and zero net worth.
type Run struct {
	ID               int                  `json:"id"`
	YearlySnapshots  []portfolio.Snapshot `json:"-"`
	Withdrawals      []money.Money        `json:"withdrawals"`
	Taxes            []money.Money        `json:"taxes"`
	MortgagePayments []money.Money        `json:"mortgagePayments"`
	// NetWorth is recorded at the start of each year, before any cash flow.
	NetWorth      []money.Money `json:"netWorth"`
	FinalNetWorth money.Money   `json:"finalNetWorth"`
	Depleted      bool          `json:"depleted"`
	// DepletionYear is the first year whose starting net worth was not
	// positive, or Years when assets only ran out during the final year.
	DepletionYear       int  `json:"depletionYear"`
	MortgagePaidOff     bool `json:"mortgagePaidOff"`
	MortgagePaidOffYear int  `json:"mortgagePaidOffYear,omitempty"`
	// AccountDepletion maps each asset type to the first year any account of
	// that type started with a non-positive balance.
	AccountDepletion map[account.Type]int `json:"accountDepletion,omitempty"`
	Err              error                `json:"-"`
}

// runTrial simulates one independent path. A panic inside the trial, such as
// a currency mismatch, is captured on the returned Run.
func (s *Simulator) runTrial(id int, seed int64) (run Run) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				run = Run{ID: id, Err: fmt.Errorf("trial %d: %w", id, err)}
				return
			}
			run = Run{ID: id, Err: fmt.Errorf("trial %d: %v", id, r)}
		}
	}()

	params := s.params
	p := params.Portfolio.Clone(s.source(id, seed))
	if order := params.Strategy.PreferredOrder(); order != "" {
		p.WithdrawalOrder = order
	}

	types := make(map[string]account.Type)
	for _, a := range p.Accounts() {
		types[a.ID()] = a.Type()
	}

	zero := money.Zero(p.Currency)
	years := params.Years
	run = Run{
		ID:               id,
		YearlySnapshots:  make([]portfolio.Snapshot, 0, years),
		Withdrawals:      make([]money.Money, 0, years),
		Taxes:            make([]money.Money, 0, years),
		MortgagePayments: make([]money.Money, 0, years),
		NetWorth:         make([]money.Money, 0, years),
		AccountDepletion: map[account.Type]int{},
	}

	for year := 0; year < years; year++ {
		snap := p.Snapshot()
		run.YearlySnapshots = append(run.YearlySnapshots, snap)
		run.NetWorth = append(run.NetWorth, snap.NetWorth)
		noteAccountDepletion(run.AccountDepletion, types, snap, year)

		if p.IsDepleted() {
			for y := year; y < years; y++ {
				if y > year {
					run.YearlySnapshots = append(run.YearlySnapshots, snap)
					run.NetWorth = append(run.NetWorth, zero)
				}
				run.Withdrawals = append(run.Withdrawals, zero)
				run.Taxes = append(run.Taxes, zero)
				run.MortgagePayments = append(run.MortgagePayments, zero)
			}
			break
		}

		_, afterTaxIncome := p.AnnualIncome(year)
		if afterTaxIncome.IsPositive() {
			p.DepositIncome(afterTaxIncome)
		}

		mortgagePaid, mortgageTax := zero, zero
		if params.PayMortgage {
			mortgagePaid, mortgageTax = p.PayMortgage(year)
			run.notePayoff(p, year)
		}
		run.MortgagePayments = append(run.MortgagePayments, mortgagePaid)

		state := withdrawal.State{
			Year:          year,
			TotalAssets:   p.TotalAssets(),
			InflationRate: p.InflationRate,
			HasPrevious:   len(run.Withdrawals) > 0,
		}
		if state.HasPrevious {
			state.Previous = run.Withdrawals[len(run.Withdrawals)-1]
		}
		target := params.Strategy.Amount(state)
		target = money.Max(target.Sub(afterTaxIncome), zero)

		withdrawn, withdrawalTax := p.Withdraw(target, year)
		run.Withdrawals = append(run.Withdrawals, withdrawn)
		run.Taxes = append(run.Taxes, withdrawalTax.Add(mortgageTax))

		p.ApplyReturns(year)
		run.notePayoff(p, year)
		p.IncrementAge()
	}

	run.FinalNetWorth = p.NetWorth()
	run.Depleted = !p.TotalAssets().IsPositive()
	if run.Depleted {
		run.DepletionYear = len(run.NetWorth)
		for i, nw := range run.NetWorth {
			if !nw.IsPositive() {
				run.DepletionYear = i
				break
			}
		}
	}
	return run
}

// notePayoff records the first year that ends with every mortgage paid off.
func (r *Run) notePayoff(p *portfolio.Portfolio, year int) {
	if !r.MortgagePaidOff && p.MortgagesPaidOff() {
		r.MortgagePaidOff = true
		r.MortgagePaidOffYear = year
	}
}

func noteAccountDepletion(seen map[account.Type]int, types map[string]account.Type, snap portfolio.Snapshot, year int) {
	for id, bal := range snap.Balances {
		t := types[id]
		if !t.IsAsset() || bal.IsPositive() {
			continue
		}
		if _, ok := seen[t]; !ok {
			seen[t] = year
		}
	}
}
