package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents an accounting account exposed by the record source.
// Its balance is not embedded; it is fetched on demand per account.
type Account struct {
	AccountID string `json:"id"`
	Name      string `json:"name"`
}

// AccountBalance pairs an account with its current balance. Balances are
// signed; a negative balance is legitimate.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}
