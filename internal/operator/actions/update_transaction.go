package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
)

// UpdateTransaction edits an entry. Nil field pointers leave the stored value
// untouched. BalanceSet distinguishes "balance not sent" from "balance sent as
// null": the latter clears an explicit override so the engine recomputes it.
type UpdateTransaction struct {
	OwnerID     int64
	ID          int64
	Date        *time.Time
	Name        *string
	Amount      *decimal.Decimal
	Balance     decimal.NullDecimal
	BalanceSet  bool
	Description *string
	CategoryID  *int64
	CategorySet bool
	Logger      *logrus.Logger
	IAction
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Entries.FindByID(ctx, t.OwnerID, t.ID)
	if err != nil {
		return err
	}
	oldMonth := ledger.MonthOf(existing.Date)

	if t.Date != nil {
		existing.Date = *t.Date
	}
	if t.Name != nil {
		existing.Name = *t.Name
	}
	if t.Amount != nil {
		existing.Amount = *t.Amount
	}
	if t.BalanceSet {
		existing.BalanceAfter = t.Balance
	}
	if t.Description != nil {
		existing.Description = *t.Description
	}
	if t.CategorySet {
		if t.CategoryID != nil {
			if _, err := writer.Categories.FindByID(ctx, t.OwnerID, *t.CategoryID); err != nil {
				return err
			}
		}
		existing.CategoryID = t.CategoryID
	}

	if err := writer.Entries.Update(ctx, existing); err != nil {
		return err
	}

	var explicit decimal.NullDecimal
	if t.BalanceSet {
		explicit = t.Balance
	}

	recalc := recalculator(writer, t.Logger)
	newMonth := ledger.MonthOf(existing.Date)
	if newMonth != oldMonth {
		// The entry left oldMonth, so its removal cascade runs there first.
		if err := recalc.RecalculateMonth(ctx, t.OwnerID, oldMonth); err != nil {
			return err
		}
	}
	return recalc.Recalculate(ctx, t.OwnerID, t.ID, newMonth, explicit)
}
