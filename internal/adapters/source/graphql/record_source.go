package graphql

import (
	"context"
	"fmt"
	"time"

	"github.com/Carl2170/sw-conta-bi/internal/apperrors"
	"github.com/Carl2170/sw-conta-bi/internal/core/domain"
	portsrepo "github.com/Carl2170/sw-conta-bi/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Query strings mirror the collaborator's schema. Each record shape has a
// dedicated typed parse step below so that nothing downstream touches raw
// maps.
const (
	queryActiveCustomers = `query { activeCustomers { id } }`

	queryCustomerInvoices = `query {
  customerInvoices {
    status
    totalAmount
    accountingPeriod { id }
  }
}`

	queryCustomerPayments = `query { customerPayments { amount paymentMethod } }`

	queryOverdueInvoices = `query {
  overdueInvoices {
    customer { id name }
  }
}`

	queryAccountingAccounts = `query { accountingAccounts { id name } }`

	queryAccountBalance = `query($accountId: ID!) {
  accountBalance(accountId: $accountId) { balance }
}`

	queryCustomersWithHistory = `query {
  customers {
    id
    name
    invoices { totalAmount dueDate status }
    payments { amount paymentDate }
  }
}`
)

// recordSource implements the RecordSource port over the GraphQL client.
type recordSource struct {
	client *Client
}

// NewRecordSource creates a RecordSource backed by the given client.
func NewRecordSource(client *Client) portsrepo.RecordSource {
	return &recordSource{client: client}
}

var _ portsrepo.RecordSource = (*recordSource)(nil)

// --- Wire shapes ---

type periodRef struct {
	ID string `json:"id"`
}

type invoiceWire struct {
	Status           string          `json:"status"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	AccountingPeriod periodRef       `json:"accountingPeriod"`
}

type paymentWire struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
}

type customerWire struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Invoices []struct {
		TotalAmount decimal.Decimal `json:"totalAmount"`
		DueDate     string          `json:"dueDate"`
		Status      string          `json:"status"`
	} `json:"invoices"`
	Payments []struct {
		Amount      decimal.Decimal `json:"amount"`
		PaymentDate string          `json:"paymentDate"`
	} `json:"payments"`
}

func (s *recordSource) ActiveCustomers(ctx context.Context) ([]domain.CustomerRef, error) {
	var data struct {
		ActiveCustomers []domain.CustomerRef `json:"activeCustomers"`
	}
	if err := s.client.Execute(ctx, queryActiveCustomers, nil, &data); err != nil {
		return nil, fmt.Errorf("fetch active customers: %w", err)
	}
	return data.ActiveCustomers, nil
}

func (s *recordSource) CustomerInvoices(ctx context.Context) ([]domain.InvoiceRecord, error) {
	var data struct {
		CustomerInvoices []invoiceWire `json:"customerInvoices"`
	}
	if err := s.client.Execute(ctx, queryCustomerInvoices, nil, &data); err != nil {
		return nil, fmt.Errorf("fetch customer invoices: %w", err)
	}

	records := make([]domain.InvoiceRecord, len(data.CustomerInvoices))
	for i, inv := range data.CustomerInvoices {
		records[i] = domain.InvoiceRecord{
			Status:      domain.InvoiceStatus(inv.Status),
			TotalAmount: inv.TotalAmount,
			PeriodID:    inv.AccountingPeriod.ID,
		}
	}
	return records, nil
}

func (s *recordSource) CustomerPayments(ctx context.Context) ([]domain.PaymentRecord, error) {
	var data struct {
		CustomerPayments []paymentWire `json:"customerPayments"`
	}
	if err := s.client.Execute(ctx, queryCustomerPayments, nil, &data); err != nil {
		return nil, fmt.Errorf("fetch customer payments: %w", err)
	}

	records := make([]domain.PaymentRecord, len(data.CustomerPayments))
	for i, p := range data.CustomerPayments {
		records[i] = domain.PaymentRecord{
			Amount: p.Amount,
			Method: p.PaymentMethod,
		}
	}
	return records, nil
}

func (s *recordSource) OverdueInvoices(ctx context.Context) ([]domain.OverdueInvoice, error) {
	var data struct {
		OverdueInvoices []domain.OverdueInvoice `json:"overdueInvoices"`
	}
	if err := s.client.Execute(ctx, queryOverdueInvoices, nil, &data); err != nil {
		return nil, fmt.Errorf("fetch overdue invoices: %w", err)
	}
	return data.OverdueInvoices, nil
}

func (s *recordSource) AccountingAccounts(ctx context.Context) ([]domain.Account, error) {
	var data struct {
		AccountingAccounts []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"accountingAccounts"`
	}
	if err := s.client.Execute(ctx, queryAccountingAccounts, nil, &data); err != nil {
		return nil, fmt.Errorf("fetch accounting accounts: %w", err)
	}

	accounts := make([]domain.Account, len(data.AccountingAccounts))
	for i, a := range data.AccountingAccounts {
		accounts[i] = domain.Account{AccountID: a.ID, Name: a.Name}
	}
	return accounts, nil
}

func (s *recordSource) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var data struct {
		AccountBalance struct {
			Balance decimal.Decimal `json:"balance"`
		} `json:"accountBalance"`
	}
	vars := map[string]any{"accountId": accountID}
	if err := s.client.Execute(ctx, queryAccountBalance, vars, &data); err != nil {
		return decimal.Zero, fmt.Errorf("fetch balance of account %s: %w", accountID, err)
	}
	return data.AccountBalance.Balance, nil
}

func (s *recordSource) CustomersWithHistory(ctx context.Context) ([]domain.Customer, error) {
	var data struct {
		Customers []customerWire `json:"customers"`
	}
	if err := s.client.Execute(ctx, queryCustomersWithHistory, nil, &data); err != nil {
		return nil, fmt.Errorf("fetch customers with history: %w", err)
	}

	customers := make([]domain.Customer, len(data.Customers))
	for i, c := range data.Customers {
		customer := domain.Customer{
			ID:       c.ID,
			Name:     c.Name,
			Invoices: make([]domain.CustomerInvoice, len(c.Invoices)),
			Payments: make([]domain.CustomerPayment, len(c.Payments)),
		}
		for j, inv := range c.Invoices {
			dueDate, err := parseSourceDate(inv.DueDate)
			if err != nil {
				return nil, fmt.Errorf("customer %s invoice %d: %w", c.ID, j, err)
			}
			customer.Invoices[j] = domain.CustomerInvoice{
				TotalAmount: inv.TotalAmount,
				DueDate:     dueDate,
				Status:      domain.InvoiceStatus(inv.Status),
			}
		}
		for j, p := range c.Payments {
			paymentDate, err := parseSourceDate(p.PaymentDate)
			if err != nil {
				return nil, fmt.Errorf("customer %s payment %d: %w", c.ID, j, err)
			}
			customer.Payments[j] = domain.CustomerPayment{
				Amount:      p.Amount,
				PaymentDate: paymentDate,
			}
		}
		customers[i] = customer
	}
	return customers, nil
}

// parseSourceDate parses the collaborator's calendar dates. An empty value
// means the date is absent, which is legal for due dates.
func parseSourceDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		// Some deployments return full timestamps.
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrSourceData, value)
		}
	}
	return &t, nil
}
