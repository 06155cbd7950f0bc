package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CSVSummarizer writes one header row and one summary row.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(r *calculation.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Strategy", "WithdrawalOrder", "Years", "Trials", "Seed", "SuccessRate",
		"MedianFinalNetWorth", "P10FinalNetWorth", "P90FinalNetWorth", "AverageAnnualTaxes",
		"MortgagePaidOffRuns", "MedianMortgagePayoffYear", "FailedRuns"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	record := []string{
		r.Strategy,
		r.WithdrawalOrder,
		strconv.Itoa(r.Years),
		strconv.Itoa(r.NumSimulations),
		strconv.FormatInt(r.Seed, 10),
		r.SuccessRate.StringFixed(2),
		r.MedianFinalNetWorth.Amount().StringFixed(2),
		r.FinalNetWorthPercentiles["10th"].StringFixed(2),
		r.FinalNetWorthPercentiles["90th"].StringFixed(2),
		r.AverageAnnualTaxes.Amount().StringFixed(2),
		strconv.Itoa(r.MortgagePaidOffRuns),
		strconv.Itoa(r.MedianMortgagePayoffYear),
		strconv.Itoa(r.FailedRuns),
	}
	if err := w.Write(record); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// DetailedCSVFormatter writes the per-year net worth percentile paths.
type DetailedCSVFormatter struct{}

func (d DetailedCSVFormatter) Name() string { return "detailed-csv" }

func (d DetailedCSVFormatter) Format(r *calculation.Result) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := append([]string{"Year"}, calculation.PercentileKeys...)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, p := range r.NetWorthPaths() {
		record := []string{strconv.Itoa(p.Year)}
		for _, k := range calculation.PercentileKeys {
			record = append(record, p.Percentiles[k].StringFixed(2))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
