package entry

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-server/internal/ledger"
)

// row mirrors one transactions record for scanning.
type row struct {
	ID           int64               `db:"id"`
	OwnerID      int64               `db:"owner_id"`
	Date         time.Time           `db:"date"`
	Name         string              `db:"name"`
	Amount       decimal.Decimal     `db:"amount"`
	BalanceAfter decimal.NullDecimal `db:"balance_after"`
	Description  *string             `db:"description"`
	CategoryID   *int64              `db:"category_id"`
}

func rowToEntry(r row) ledger.Entry {
	e := ledger.Entry{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		Date:         r.Date,
		Name:         r.Name,
		Amount:       r.Amount,
		BalanceAfter: r.BalanceAfter,
		CategoryID:   r.CategoryID,
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	return e
}

// EntryCreate is the input for inserting a new ledger entry. BalanceAfter is
// valid only when the owner supplied an explicit balance.
type EntryCreate struct {
	OwnerID      int64
	Date         time.Time
	Name         string
	Amount       decimal.Decimal
	BalanceAfter decimal.NullDecimal
	Description  string
	CategoryID   *int64
}
