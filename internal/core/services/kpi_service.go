package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	portsrepo "github.com/Carl2170/sw-conta-bi/internal/core/ports/repositories"
	portssvc "github.com/Carl2170/sw-conta-bi/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// kpiService implements the KPISvcFacade interface
type kpiService struct {
	BaseService
	source         portsrepo.RecordSource
	balanceFetcher portssvc.BalanceFetcherSvc
	accountCap     int
	topBalanceN    int
}

// KPIServiceOption is a functional option for configuring the KPI service
type KPIServiceOption func(*kpiService)

// WithAccountCap bounds how many accounts are considered for balance
// fetching (the first N accounts returned by the source).
func WithAccountCap(cap int) KPIServiceOption {
	return func(s *kpiService) {
		s.accountCap = cap
	}
}

// WithTopBalanceN sets how many ranked balances the top-balances KPI keeps.
func WithTopBalanceN(n int) KPIServiceOption {
	return func(s *kpiService) {
		s.topBalanceN = n
	}
}

// NewKPIService creates a new KPI service with the provided options
func NewKPIService(source portsrepo.RecordSource, balanceFetcher portssvc.BalanceFetcherSvc, options ...KPIServiceOption) portssvc.KPISvcFacade {
	svc := &kpiService{
		source:         source,
		balanceFetcher: balanceFetcher,
		accountCap:     5,
		topBalanceN:    5,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.KPISvcFacade = (*kpiService)(nil)

// TotalClients counts the active customers.
func (s *kpiService) TotalClients(ctx context.Context) (int, error) {
	customers, err := s.source.ActiveCustomers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch active customers")
		return 0, fmt.Errorf("count active customers: %w", err)
	}
	return len(customers), nil
}

// InvoiceStatusCount builds the invoice status histogram over all invoices.
func (s *kpiService) InvoiceStatusCount(ctx context.Context) (map[domain.InvoiceStatus]int, error) {
	invoices, err := s.source.CustomerInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch customer invoices")
		return nil, fmt.Errorf("invoice status histogram: %w", err)
	}

	histogram, err := StatusHistogram(invoices)
	if err != nil {
		s.LogError(ctx, err, "Invoice status outside the enumerated set", slog.Int("invoice_count", len(invoices)))
		return nil, err
	}
	return histogram, nil
}

// InvoicingByPeriod sums invoice totals per accounting period.
func (s *kpiService) InvoicingByPeriod(ctx context.Context) ([]domain.GroupedTotal, error) {
	invoices, err := s.source.CustomerInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch customer invoices")
		return nil, fmt.Errorf("invoicing by period: %w", err)
	}

	keys := make([]string, len(invoices))
	amounts := make([]decimal.Decimal, len(invoices))
	for i, inv := range invoices {
		keys[i] = inv.PeriodID
		amounts[i] = inv.TotalAmount
	}
	return SumByGroup(keys, amounts), nil
}

// PaymentsByMethod sums payment amounts per payment method.
func (s *kpiService) PaymentsByMethod(ctx context.Context) ([]domain.GroupedTotal, error) {
	payments, err := s.source.CustomerPayments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch customer payments")
		return nil, fmt.Errorf("payments by method: %w", err)
	}

	keys := make([]string, len(payments))
	amounts := make([]decimal.Decimal, len(payments))
	for i, p := range payments {
		keys[i] = p.Method
		amounts[i] = p.Amount
	}
	return SumByGroup(keys, amounts), nil
}

// OverdueCustomers reports the distinct customers with overdue invoices.
func (s *kpiService) OverdueCustomers(ctx context.Context) (*domain.OverdueCustomers, error) {
	invoices, err := s.source.OverdueInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch overdue invoices")
		return nil, fmt.Errorf("overdue customers: %w", err)
	}

	overdue := DistinctOverdueCustomers(invoices)
	return &overdue, nil
}

// TopAccountBalances fetches balances for the first accountCap accounts in
// parallel and ranks them by absolute value, descending. Individual fetch
// failures have already been folded to zero by the balance fetcher; only
// the account listing itself can fail the operation.
func (s *kpiService) TopAccountBalances(ctx context.Context) ([]domain.AccountBalance, error) {
	accounts, err := s.source.AccountingAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounting accounts")
		return nil, fmt.Errorf("top account balances: %w", err)
	}

	if len(accounts) > s.accountCap {
		accounts = accounts[:s.accountCap]
	}

	balances := s.balanceFetcher.FetchBalances(ctx, accounts)
	return RankBalances(balances, s.topBalanceN), nil
}

// Summary assembles the full KPI snapshot. Aggregation failures abort the
// whole summary; there is no partial KPI response.
func (s *kpiService) Summary(ctx context.Context) (*domain.KPISummary, error) {
	totalClients, err := s.TotalClients(ctx)
	if err != nil {
		return nil, err
	}

	statusCount, err := s.InvoiceStatusCount(ctx)
	if err != nil {
		return nil, err
	}

	byPeriod, err := s.InvoicingByPeriod(ctx)
	if err != nil {
		return nil, err
	}

	byMethod, err := s.PaymentsByMethod(ctx)
	if err != nil {
		return nil, err
	}

	overdue, err := s.OverdueCustomers(ctx)
	if err != nil {
		return nil, err
	}

	topBalances, err := s.TopAccountBalances(ctx)
	if err != nil {
		return nil, err
	}

	summary := &domain.KPISummary{
		TotalClients:      totalClients,
		InvoiceStatus:     statusCount,
		InvoicingByPeriod: byPeriod,
		PaymentsByMethod:  byMethod,
		Overdue:           *overdue,
		TopBalances:       topBalances,
	}

	s.LogInfo(ctx, "KPI summary assembled",
		slog.Int("total_clients", totalClients),
		slog.Int("periods", len(byPeriod)),
		slog.Int("payment_methods", len(byMethod)),
		slog.Int("overdue_customers", overdue.Count),
		slog.Int("ranked_balances", len(topBalances)))
	return summary, nil
}
