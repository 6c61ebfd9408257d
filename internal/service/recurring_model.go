package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record represents a service record in the service layer, with the service
// name denormalized for the client.
type Record struct {
	ID          int64
	ServiceID   int64
	ServiceName string
	Year        int
	Month       time.Month
	Amount      decimal.NullDecimal
}
