package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is a flat payment row as returned by the bulk payment
// query. The payment method is an open string, not an enum; grouping
// discovers methods dynamically.
type PaymentRecord struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"paymentMethod"`
}

// CustomerPayment is a payment nested under a customer's history.
type CustomerPayment struct {
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate *time.Time      `json:"paymentDate,omitempty"`
}
