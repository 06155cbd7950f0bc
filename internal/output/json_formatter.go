package output

import (
	"encoding/json"

	"github.com/rgehrsitz/drawdown/internal/calculation"
)

// JSONFormatter emits the aggregate result plus the net worth paths.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	*calculation.Result
	NetWorthPaths []calculation.NetWorthPath `json:"netWorthPaths"`
}

func (j JSONFormatter) Format(r *calculation.Result) ([]byte, error) {
	data, err := json.MarshalIndent(jsonReport{Result: r, NetWorthPaths: r.NetWorthPaths()}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
