package compare

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/shopspring/decimal"
)

// ComparisonResult is one scenario's simulation reduced to the metrics used
// for ranking, plus its deltas against the base scenario.
type ComparisonResult struct {
	ScenarioName    string              `json:"scenarioName"`
	Result          *calculation.Result `json:"-"`
	Strategy        string              `json:"strategy"`
	WithdrawalOrder string              `json:"withdrawalOrder"`
	Rank            int                 `json:"rank"`

	// Key Metrics
	SuccessRate              decimal.Decimal `json:"successRate"`
	MedianFinalNetWorth      decimal.Decimal `json:"medianFinalNetWorth"`
	P10FinalNetWorth         decimal.Decimal `json:"p10FinalNetWorth"`
	P90FinalNetWorth         decimal.Decimal `json:"p90FinalNetWorth"`
	AverageAnnualTaxes       decimal.Decimal `json:"averageAnnualTaxes"`
	MedianMortgagePayoffYear int             `json:"medianMortgagePayoffYear,omitempty"`

	// Comparison to Base
	SuccessDiffFromBase  decimal.Decimal `json:"successDiffFromBase"`
	NetWorthDiffFromBase decimal.Decimal `json:"netWorthDiffFromBase"`
	TaxDiffFromBase      decimal.Decimal `json:"taxDiffFromBase"`
}

// ComparisonSet holds the base scenario, its alternatives and their ranking.
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	// Ranking lists scenario names best first.
	Ranking         []string `json:"ranking"`
	Recommendations []string `json:"recommendations"`
	ConfigPath      string   `json:"configPath"`
	Seed            int64    `json:"seed"`
}

// All returns the base result followed by the alternatives.
func (cs *ComparisonSet) All() []*ComparisonResult {
	out := make([]*ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, cs.BaseResult)
	}
	for i := range cs.AlternativeResults {
		out = append(out, &cs.AlternativeResults[i])
	}
	return out
}

// MetricsCalculator extracts key metrics from simulation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics reduces a simulation result to comparison metrics.
func (mc *MetricsCalculator) CalculateMetrics(name string, result *calculation.Result) ComparisonResult {
	cr := ComparisonResult{
		ScenarioName:        name,
		Result:              result,
		Strategy:            result.Strategy,
		WithdrawalOrder:     result.WithdrawalOrder,
		SuccessRate:         result.SuccessRate,
		MedianFinalNetWorth: result.MedianFinalNetWorth.Amount(),
		P10FinalNetWorth:    result.FinalNetWorthPercentiles["10th"],
		P90FinalNetWorth:    result.FinalNetWorthPercentiles["90th"],
		AverageAnnualTaxes:  result.AverageAnnualTaxes.Amount(),
	}
	if result.MortgagePaidOffRuns > 0 {
		cr.MedianMortgagePayoffYear = result.MedianMortgagePayoffYear
	}
	return cr
}

// CalculateComparison computes deltas between a scenario and the base.
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.SuccessDiffFromBase = scenario.SuccessRate.Sub(base.SuccessRate)
	scenario.NetWorthDiffFromBase = scenario.MedianFinalNetWorth.Sub(base.MedianFinalNetWorth)
	scenario.TaxDiffFromBase = scenario.AverageAnnualTaxes.Sub(base.AverageAnnualTaxes)
	return scenario
}

// better orders by success rate, then median final net worth, then name.
func better(a, b *ComparisonResult) bool {
	if c := a.SuccessRate.Cmp(b.SuccessRate); c != 0 {
		return c > 0
	}
	if c := a.MedianFinalNetWorth.Cmp(b.MedianFinalNetWorth); c != 0 {
		return c > 0
	}
	return a.ScenarioName < b.ScenarioName
}

// Rank assigns ranks to every result in the set and fills Ranking.
func Rank(compSet *ComparisonSet) {
	all := compSet.All()
	sort.SliceStable(all, func(i, j int) bool { return better(all[i], all[j]) })

	compSet.Ranking = compSet.Ranking[:0]
	for i, r := range all {
		r.Rank = i + 1
		compSet.Ranking = append(compSet.Ranking, r.ScenarioName)
	}
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	best := base
	for i := range compSet.AlternativeResults {
		if better(&compSet.AlternativeResults[i], best) {
			best = &compSet.AlternativeResults[i]
		}
	}
	if best != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Most Durable: %s succeeds in %s%% of trials (%s points vs base)",
			best.ScenarioName, best.SuccessRate.StringFixed(1),
			signed(best.SuccessRate.Sub(base.SuccessRate), 1)))
	}

	richest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].MedianFinalNetWorth.GreaterThan(richest.MedianFinalNetWorth) {
			richest = &compSet.AlternativeResults[i]
		}
	}
	if richest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Largest Legacy: %s leaves a median $%s more than base",
			richest.ScenarioName, richest.MedianFinalNetWorth.Sub(base.MedianFinalNetWorth).StringFixed(0)))
	}

	lowestTax := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].AverageAnnualTaxes.LessThan(lowestTax.AverageAnnualTaxes) {
			lowestTax = &compSet.AlternativeResults[i]
		}
	}
	if lowestTax != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Lowest Taxes: %s saves $%s per year on average",
			lowestTax.ScenarioName, base.AverageAnnualTaxes.Sub(lowestTax.AverageAnnualTaxes).StringFixed(0)))
	}

	return recommendations
}

func signed(d decimal.Decimal, places int32) string {
	if d.IsNegative() {
		return d.StringFixed(places)
	}
	return "+" + d.StringFixed(places)
}
