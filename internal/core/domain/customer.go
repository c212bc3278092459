package domain

// CustomerRef identifies a customer without any detail, as returned by the
// active-customer count query.
type CustomerRef struct {
	ID string `json:"id"`
}

// CustomerSummary carries the identifier and display name of a customer.
type CustomerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OverdueInvoice is an overdue-invoice row; only the owning customer is
// projected by the source query.
type OverdueInvoice struct {
	Customer CustomerSummary `json:"customer"`
}

// Customer is a full per-customer snapshot with invoice and payment
// history, joined by the source. All fields are read-only; records are
// fetched fresh per request and never written back.
type Customer struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Invoices []CustomerInvoice `json:"invoices"`
	Payments []CustomerPayment `json:"payments"`
}
