package orders

import "github.com/shopspring/decimal"

// Report aggregates statistics over a set of canonical orders. Revenue is
// grouped by currency before summing; amounts in distinct currencies are
// never added together.
type Report struct {
	// TotalOrders is the number of orders summarized
	TotalOrders int `json:"total_orders"`
	// OpenOrders is the number of orders still requiring action
	OpenOrders int `json:"open_orders"`
	// TotalItems is the total quantity across all line items
	TotalItems int `json:"total_items"`
	// RevenueByCurrency holds one revenue total per ISO currency code
	RevenueByCurrency map[string]decimal.Decimal `json:"revenue_by_currency"`
	// OrdersByStatus counts orders per normalized status
	OrdersByStatus map[OrderStatus]int `json:"orders_by_status"`
}

// BuildReport summarizes the given orders. It is a total function: the
// empty sequence yields a zero report with empty maps.
func BuildReport(list []*Order) *Report {
	report := &Report{
		RevenueByCurrency: make(map[string]decimal.Decimal),
		OrdersByStatus:    make(map[OrderStatus]int),
	}
	for _, o := range list {
		report.TotalOrders++
		report.TotalItems += o.TotalQuantity()
		report.OrdersByStatus[o.Status]++
		if o.Status.IsOpen() {
			report.OpenOrders++
		}
		if current, ok := report.RevenueByCurrency[o.Currency]; ok {
			report.RevenueByCurrency[o.Currency] = current.Add(o.Total())
		} else {
			report.RevenueByCurrency[o.Currency] = o.Total()
		}
	}
	return report
}
