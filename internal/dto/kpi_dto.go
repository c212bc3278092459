package dto

import (
	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	"github.com/shopspring/decimal"
)

// KPISummaryResponse is the combined KPI payload served to the dashboard.
type KPISummaryResponse struct {
	TotalClients          int                        `json:"total_clients"`
	InvoicesStatusCount   map[string]int             `json:"invoices_status_count"`
	InvoicesByPeriod      map[string]decimal.Decimal `json:"invoices_by_period"`
	PaymentsByMethod      map[string]decimal.Decimal `json:"payments_by_method"`
	OverdueCustomersCount int                        `json:"overdue_customers_count"`
	OverdueCustomersList  []string                   `json:"overdue_customers_list"`
	TopAccountBalances    map[string]decimal.Decimal `json:"top_account_balances"`
}

// OverdueCustomersResponse is the standalone overdue-customers KPI payload.
type OverdueCustomersResponse struct {
	Count int      `json:"count"`
	Names []string `json:"names"`
}

// ToKPISummaryResponse converts a domain KPI summary to a DTO response
func ToKPISummaryResponse(summary *domain.KPISummary) KPISummaryResponse {
	return KPISummaryResponse{
		TotalClients:          summary.TotalClients,
		InvoicesStatusCount:   ToStatusCountResponse(summary.InvoiceStatus),
		InvoicesByPeriod:      ToGroupedTotalsResponse(summary.InvoicingByPeriod),
		PaymentsByMethod:      ToGroupedTotalsResponse(summary.PaymentsByMethod),
		OverdueCustomersCount: summary.Overdue.Count,
		OverdueCustomersList:  summary.Overdue.Names,
		TopAccountBalances:    ToBalancesResponse(summary.TopBalances),
	}
}

// ToStatusCountResponse converts the status histogram to its JSON shape.
func ToStatusCountResponse(histogram map[domain.InvoiceStatus]int) map[string]int {
	out := make(map[string]int, len(histogram))
	for status, count := range histogram {
		out[string(status)] = count
	}
	return out
}

// ToGroupedTotalsResponse flattens ordered group totals into the map shape
// the dashboard consumes. JSON objects carry no ordering, so the domain
// layer's first-appearance order is only observable through the slice form.
func ToGroupedTotalsResponse(totals []domain.GroupedTotal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(totals))
	for _, gt := range totals {
		out[gt.Key] = gt.Total
	}
	return out
}

// ToBalancesResponse flattens ranked balances into an account-name keyed map.
func ToBalancesResponse(balances []domain.AccountBalance) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		out[b.Name] = b.Balance
	}
	return out
}

// ToOverdueCustomersResponse converts the overdue-customers aggregate.
func ToOverdueCustomersResponse(overdue *domain.OverdueCustomers) OverdueCustomersResponse {
	return OverdueCustomersResponse{
		Count: overdue.Count,
		Names: overdue.Names,
	}
}
