package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Rank",
		"Strategy",
		"Withdrawal Order",
		"Success Rate",
		"Median Final Net Worth",
		"P10 Final Net Worth",
		"P90 Final Net Worth",
		"Average Annual Taxes",
		"Success Diff from Base",
		"Net Worth Diff from Base",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		fmt.Sprintf("%d", result.Rank),
		result.Strategy,
		result.WithdrawalOrder,
		result.SuccessRate.StringFixed(2),
		result.MedianFinalNetWorth.StringFixed(2),
		result.P10FinalNetWorth.StringFixed(2),
		result.P90FinalNetWorth.StringFixed(2),
		result.AverageAnnualTaxes.StringFixed(2),
		result.SuccessDiffFromBase.StringFixed(2),
		result.NetWorthDiffFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
	}
}
