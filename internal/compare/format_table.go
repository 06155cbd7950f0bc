package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a ranked table of scenarios.
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("WITHDRAWAL SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 86) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Seed: %d\n\n", compSet.Seed))

	nameWidth := 24
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-4s %-*s %*s %*s %*s %*s\n",
		"#",
		nameWidth, "Scenario",
		numWidth, "Success",
		numWidth, "Median Final",
		numWidth, "P10 Final",
		numWidth, "Annual Taxes"))
	sb.WriteString(strings.Repeat("-", 86) + "\n")

	byName := map[string]*ComparisonResult{}
	for _, r := range compSet.All() {
		byName[r.ScenarioName] = r
	}
	for _, name := range compSet.Ranking {
		r := byName[name]
		sb.WriteString(tf.formatRow(r, nameWidth, numWidth, name == compSet.BaseScenarioName))
	}
	sb.WriteString(strings.Repeat("=", 86) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 86) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s (%s, %s order):\n", alt.ScenarioName, alt.Strategy, alt.WithdrawalOrder))
			sb.WriteString(fmt.Sprintf("  Success Rate:     %s points\n", signed(alt.SuccessDiffFromBase, 1)))
			sb.WriteString(fmt.Sprintf("  Median Net Worth: %s$%s\n",
				tf.deltaSymbol(alt.NetWorthDiffFromBase), tf.formatDecimal(alt.NetWorthDiffFromBase.Abs())))
			if !alt.TaxDiffFromBase.IsZero() {
				// lower taxes read as an improvement
				sb.WriteString(fmt.Sprintf("  Annual Taxes:     %s$%s\n",
					tf.deltaSymbol(alt.TaxDiffFromBase.Neg()), tf.formatDecimal(alt.TaxDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 86) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase && name != BaseName {
		name += " (base)"
	}
	return fmt.Sprintf("%-4d %-*s %*s %*s %*s %*s\n",
		result.Rank,
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, result.SuccessRate.StringFixed(1)+"%",
		numWidth, "$"+tf.formatDecimal(result.MedianFinalNetWorth),
		numWidth, "$"+tf.formatDecimal(result.P10FinalNetWorth),
		numWidth, "$"+tf.formatDecimal(result.AverageAnnualTaxes))
}

// formatDecimal abbreviates to thousands or millions.
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	abs := d.Abs()
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return sign + abs.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return sign + abs.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return sign + abs.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a one-line ranking summary.
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	byName := map[string]*ComparisonResult{}
	for _, r := range compSet.All() {
		byName[r.ScenarioName] = r
	}
	parts := make([]string, 0, len(compSet.Ranking))
	for _, name := range compSet.Ranking {
		parts = append(parts, fmt.Sprintf("%d. %s %s%%", byName[name].Rank, name, byName[name].SuccessRate.StringFixed(1)))
	}
	return strings.Join(parts, " | ")
}
