package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/drawdown/internal/calculation"
)

// ConsoleFormatter prints a short plain-text summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(r *calculation.Result) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "DRAWDOWN SIMULATION SUMMARY")
	fmt.Fprintf(&buf, "Strategy: %s (%s order) | %d years | %d trials | seed %d\n",
		r.Strategy, r.WithdrawalOrder, r.Years, r.NumSimulations, r.Seed)
	fmt.Fprintf(&buf, "Success Rate: %s\n", FormatPercentage(r.SuccessRate))
	fmt.Fprintf(&buf, "Median Final Net Worth: %s\n", FormatCurrency(r.MedianFinalNetWorth))
	fmt.Fprintf(&buf, "Average Annual Taxes: %s\n", FormatCurrency(r.AverageAnnualTaxes))
	if r.MortgagePaidOffRuns > 0 {
		fmt.Fprintf(&buf, "Mortgage paid off in %d of %d trials (median year %d)\n",
			r.MortgagePaidOffRuns, completedTrials(r), r.MedianMortgagePayoffYear)
	}
	if r.FailedRuns > 0 {
		fmt.Fprintf(&buf, "Failed trials: %d\n", r.FailedRuns)
	}
	return buf.Bytes(), nil
}
