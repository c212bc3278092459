package services

import (
	"context"

	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
)

// KPISvcFacade defines the aggregation operations exposed to the KPI
// endpoints. Every operation works on a fresh snapshot of source records;
// nothing is cached between calls.
type KPISvcFacade interface {
	// Summary assembles the full KPI snapshot in one call.
	Summary(ctx context.Context) (*domain.KPISummary, error)

	// TotalClients counts the active customers.
	TotalClients(ctx context.Context) (int, error)

	// InvoiceStatusCount builds the invoice status histogram. All four known
	// statuses are present even when zero; an unrecognized status fails with
	// apperrors.ErrUnknownStatus.
	InvoiceStatusCount(ctx context.Context) (map[domain.InvoiceStatus]int, error)

	// InvoicingByPeriod sums invoice totals grouped by accounting period id.
	InvoicingByPeriod(ctx context.Context) ([]domain.GroupedTotal, error)

	// PaymentsByMethod sums payment amounts grouped by payment method.
	PaymentsByMethod(ctx context.Context) ([]domain.GroupedTotal, error)

	// OverdueCustomers reports the distinct customers with overdue invoices.
	OverdueCustomers(ctx context.Context) (*domain.OverdueCustomers, error)

	// TopAccountBalances fetches balances for the capped account set and
	// ranks them by absolute value, descending.
	TopAccountBalances(ctx context.Context) ([]domain.AccountBalance, error)
}

// BalanceFetcherSvc fetches per-account balances in parallel. A failing
// sub-fetch defaults that account's balance to zero; the batch never
// aborts because of a single account.
type BalanceFetcherSvc interface {
	// FetchBalances returns one entry per given account, in the given order.
	// It returns only once every sub-fetch has completed or defaulted.
	FetchBalances(ctx context.Context, accounts []domain.Account) []domain.AccountBalance
}
