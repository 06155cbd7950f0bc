package calculation

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PercentileKeys are the keys used in percentile maps, lowest first.
var PercentileKeys = []string{"10th", "25th", "50th", "75th", "90th"}

var percentilePoints = map[string]float64{"10th": 0.1, "25th": 0.25, "50th": 0.5, "75th": 0.75, "90th": 0.9}

func sortedCopy(values []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	copy(out, values)
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}

func calculateMedian(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sorted := sortedCopy(values)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return sorted[mid-1].Add(sorted[mid]).Div(decimal.NewFromInt(2))
	}
	return sorted[mid]
}

func calculateMedianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func calculatePercentiles(values []decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(PercentileKeys))
	if len(values) == 0 {
		for _, k := range PercentileKeys {
			out[k] = decimal.Zero
		}
		return out
	}
	sorted := sortedCopy(values)
	for _, k := range PercentileKeys {
		out[k] = getPercentile(sorted, percentilePoints[k])
	}
	return out
}

// getPercentile interpolates linearly between the two closest ranks of a
// sorted slice. The rank is computed in decimal so that exact inputs give
// exact results.
func getPercentile(values []decimal.Decimal, percentile float64) decimal.Decimal {
	index := decimal.NewFromFloat(percentile).Mul(decimal.NewFromInt(int64(len(values) - 1)))
	lowerIndex := index.Floor()
	i := int(lowerIndex.IntPart())
	fraction := index.Sub(lowerIndex)
	if fraction.IsZero() {
		return values[i]
	}

	lower := values[i]
	upper := values[i+1]
	return lower.Add(upper.Sub(lower).Mul(fraction))
}

// NetWorthPath is the spread of starting net worth across trials in one year.
type NetWorthPath struct {
	Year        int                        `json:"year"`
	Percentiles map[string]decimal.Decimal `json:"percentiles"`
}

// NetWorthPaths returns, for every simulated year, the percentiles of net
// worth at the start of that year across the trials that completed.
func (r *Result) NetWorthPaths() []NetWorthPath {
	paths := make([]NetWorthPath, 0, r.Years)
	for year := 0; year < r.Years; year++ {
		var values []decimal.Decimal
		for _, run := range r.Runs {
			if run.Err != nil || year >= len(run.NetWorth) {
				continue
			}
			values = append(values, run.NetWorth[year].Amount())
		}
		paths = append(paths, NetWorthPath{Year: year, Percentiles: calculatePercentiles(values)})
	}
	return paths
}
