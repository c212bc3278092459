package domain

import (
	"github.com/shopspring/decimal"
)

// GroupedTotal is a cumulative sum for one dynamically discovered group
// key (an accounting period id, a payment method). Slices of GroupedTotal
// preserve first-appearance order; they are not sorted.
type GroupedTotal struct {
	Key   string          `json:"key"`
	Total decimal.Decimal `json:"total"`
}

// OverdueCustomers reports the customers owning at least one overdue
// invoice, deduplicated by customer id.
type OverdueCustomers struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
}

// KPISummary is the aggregate business snapshot assembled per request from
// fresh source records.
type KPISummary struct {
	TotalClients      int
	InvoiceStatus     map[InvoiceStatus]int
	InvoicingByPeriod []GroupedTotal
	PaymentsByMethod  []GroupedTotal
	Overdue           OverdueCustomers
	TopBalances       []AccountBalance
}
