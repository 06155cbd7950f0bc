package sequencing

import (
	"fmt"
	"strings"
)

// Order names a withdrawal-order algorithm.
type Order string

const (
	OrderTraditional  Order = "traditional"
	OrderTaxEfficient Order = "tax_efficient"
	OrderProportional Order = "proportional"
)

// Orders lists the supported orders.
var Orders = []Order{OrderTraditional, OrderTaxEfficient, OrderProportional}

// ParseOrder resolves a configured order name. Matching ignores case and
// accepts hyphens in place of underscores.
func ParseOrder(name string) (Order, error) {
	normalized := Order(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_"))
	for _, o := range Orders {
		if o == normalized {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown withdrawal order %q (valid: traditional, tax_efficient, proportional)", name)
}

// CreateStrategy creates the sequencing strategy for order
func CreateStrategy(order Order) Strategy {
	switch order {
	case OrderTraditional:
		return NewTraditionalStrategy()
	case OrderTaxEfficient:
		return NewTaxEfficientStrategy()
	case OrderProportional:
		return NewProportionalStrategy()
	default:
		// Fallback to traditional if unknown order
		return NewTraditionalStrategy()
	}
}
