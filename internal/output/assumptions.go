package output

// DefaultAssumptions lists the modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Annual returns are drawn independently from a normal distribution per account",
	"Income is received before withdrawals and reduces the amount drawn from savings",
	"Mortgage payments, when enabled, are funded from assets before living expenses",
	"Taxes are paid out of each withdrawal at flat per-account rates",
	"Required minimum distributions apply to IRAs from age 72",
	"A trial fails when total assets reach zero before the horizon",
}
