package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a ledger entry in the service layer, with its
// category denormalized for the client.
type Transaction struct {
	ID            int64
	Date          time.Time
	Name          string
	Amount        decimal.Decimal
	BalanceAfter  decimal.NullDecimal
	Description   string
	CategoryID    *int64
	CategoryName  string
	CategoryColor string
}

// TransactionFilter narrows a listing to one month. Nil means the owner's
// whole ledger.
type TransactionFilter struct {
	Year  int
	Month time.Month
}
