package repositories

import (
	"context"

	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordSource defines the query surface of the remote billing data
// service. Implementations surface transport failures as
// apperrors.ErrSourceUnavailable and application-level failures as
// apperrors.ErrSourceData so that callers can tell the two apart.
type RecordSource interface {
	// ActiveCustomers retrieves the identifiers of all active customers.
	ActiveCustomers(ctx context.Context) ([]domain.CustomerRef, error)

	// CustomerInvoices retrieves all customer invoices with their status,
	// total amount and accounting period reference.
	CustomerInvoices(ctx context.Context) ([]domain.InvoiceRecord, error)

	// CustomerPayments retrieves all customer payments with amount and method.
	CustomerPayments(ctx context.Context) ([]domain.PaymentRecord, error)

	// OverdueInvoices retrieves the overdue invoices, projected down to the
	// owning customer.
	OverdueInvoices(ctx context.Context) ([]domain.OverdueInvoice, error)

	// AccountingAccounts retrieves the accounting accounts (id and name only).
	AccountingAccounts(ctx context.Context) ([]domain.Account, error)

	// AccountBalance retrieves the current balance of a single account.
	AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)

	// CustomersWithHistory retrieves every customer joined with their full
	// invoice and payment history, as consumed by risk scoring.
	CustomersWithHistory(ctx context.Context) ([]domain.Customer, error)
}
