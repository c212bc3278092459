package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus defines the lifecycle status of a customer invoice.
type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "PENDING"
	StatusPaid      InvoiceStatus = "PAID"
	StatusCancelled InvoiceStatus = "CANCELLED"
	StatusOverdue   InvoiceStatus = "OVERDUE"
)

// KnownStatuses lists the enumerated invoice statuses in their reporting
// order. Aggregations seed every one of these to zero before counting.
var KnownStatuses = []InvoiceStatus{StatusPending, StatusPaid, StatusCancelled, StatusOverdue}

// IsKnown reports whether the status is one of the enumerated values.
func (s InvoiceStatus) IsKnown() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// InvoiceRecord is a flat invoice row as returned by the bulk invoice
// queries. The accounting period is referenced by identifier only.
type InvoiceRecord struct {
	Status      InvoiceStatus   `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PeriodID    string          `json:"periodID"`
}

// CustomerInvoice is an invoice nested under a customer's history. DueDate
// is nil when the source provides none.
type CustomerInvoice struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Status      InvoiceStatus   `json:"status"`
}
