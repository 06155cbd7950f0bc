package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/rgehrsitz/drawdown/internal/calculation"
)

// pathStep is the spacing, in years, of the rows in the net worth table.
const pathStep = 5

// ConsoleVerboseFormatter renders the full styled report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(r *calculation.Result) ([]byte, error) {
	var buf bytes.Buffer
	currency := r.MedianFinalNetWorth.Currency()

	fmt.Fprintln(&buf, titleStyle.Render("MONTE CARLO RETIREMENT DRAWDOWN ANALYSIS"))
	buf.WriteString(row("Portfolio:", r.PortfolioID))
	buf.WriteString(row("Strategy:", fmt.Sprintf("%s (%s order)", r.Strategy, r.WithdrawalOrder)))
	buf.WriteString(row("Horizon:", fmt.Sprintf("%d years", r.Years)))
	buf.WriteString(row("Trials:", fmt.Sprintf("%d (seed %d, %s)", r.NumSimulations, r.Seed, r.Duration.Round(time.Millisecond))))

	fmt.Fprintln(&buf, sectionStyle.Render("OUTCOME"))
	buf.WriteString(row("Success Rate:", successStyle(r.SuccessRate).Render(FormatPercentage(r.SuccessRate))))
	buf.WriteString(row("Median Final Net Worth:", valueStyle.Render(FormatCurrency(r.MedianFinalNetWorth))))
	buf.WriteString(row("Average Taxes per Trial:", FormatCurrency(r.AverageTaxesPerTrial)))
	buf.WriteString(row("Average Annual Taxes:", FormatCurrency(r.AverageAnnualTaxes)))
	if r.FailedRuns > 0 {
		buf.WriteString(row("Failed Trials:", fmt.Sprintf("%d excluded from the statistics", r.FailedRuns)))
	}

	fmt.Fprintln(&buf, sectionStyle.Render("FINAL NET WORTH DISTRIBUTION"))
	for _, k := range calculation.PercentileKeys {
		buf.WriteString(row(k+" percentile:", FormatAmount(r.FinalNetWorthPercentiles[k], currency)))
	}

	if len(r.AccountDepletion) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("ACCOUNT DEPLETION"))
		fmt.Fprintln(&buf, headerStyle.Render(fmt.Sprintf("%-15s %12s %8s %8s %8s", "Account Type", "Probability", "Median", "Earliest", "Latest")))
		for _, d := range r.AccountDepletion {
			fmt.Fprintf(&buf, "%-15s %12s %8d %8d %8d\n",
				d.Type, FormatPercentage(d.Probability.Mul(hundred)), d.Median, d.Earliest, d.Latest)
		}
	}

	fmt.Fprintln(&buf, sectionStyle.Render("MORTGAGE"))
	if r.MortgagePaidOffRuns > 0 {
		buf.WriteString(row("Paid Off In:", fmt.Sprintf("%d of %d trials", r.MortgagePaidOffRuns, completedTrials(r))))
		buf.WriteString(row("Median Payoff Year:", fmt.Sprintf("%d", r.MedianMortgagePayoffYear)))
	} else {
		fmt.Fprintln(&buf, mutedStyle.Render("No mortgage was paid off during the horizon"))
	}

	if paths := r.NetWorthPaths(); len(paths) > 0 {
		fmt.Fprintln(&buf, sectionStyle.Render("NET WORTH PATHS (start of year)"))
		fmt.Fprintln(&buf, headerStyle.Render(fmt.Sprintf("%-6s %18s %18s %18s", "Year", "10th", "Median", "90th")))
		for i, p := range paths {
			if i%pathStep != 0 && i != len(paths)-1 {
				continue
			}
			fmt.Fprintf(&buf, "%-6d %18s %18s %18s\n", p.Year,
				FormatAmount(p.Percentiles["10th"], currency),
				FormatAmount(p.Percentiles["50th"], currency),
				FormatAmount(p.Percentiles["90th"], currency))
		}
	}

	fmt.Fprintln(&buf, sectionStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf, mutedStyle.Render(strings.Repeat("─", 60)))
	return buf.Bytes(), nil
}
