package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/drawdown/internal/calculation"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"amount": func(d decimal.Decimal, currency string) string {
		return FormatAmount(d, currency)
	},
	"prob": func(d decimal.Decimal) string { return FormatPercentage(d.Mul(hundred)) },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *calculation.Result) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*calculation.Result
		Currency       string
		PercentileKeys []string
		Paths          []calculation.NetWorthPath
		Completed      int
		Assumptions    []string
	}{
		Result:         results,
		Currency:       results.MedianFinalNetWorth.Currency(),
		PercentileKeys: calculation.PercentileKeys,
		Paths:          results.NetWorthPaths(),
		Completed:      completedTrials(results),
		Assumptions:    DefaultAssumptions,
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
