package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
	"github.com/gastos-app/gastos-server/internal/storage/entry"
)

type CreateTransaction struct {
	OwnerID     int64
	Date        time.Time
	Name        string
	Amount      decimal.Decimal
	Balance     decimal.NullDecimal
	Description string
	CategoryID  *int64
	Logger      *logrus.Logger
	IAction

	// ID is set after a successful Perform.
	ID int64
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if t.CategoryID != nil {
		if _, err := writer.Categories.FindByID(ctx, t.OwnerID, *t.CategoryID); err != nil {
			return err
		}
	}

	id, err := writer.Entries.Insert(ctx, &entry.EntryCreate{
		OwnerID:      t.OwnerID,
		Date:         t.Date,
		Name:         t.Name,
		Amount:       t.Amount,
		BalanceAfter: t.Balance,
		Description:  t.Description,
		CategoryID:   t.CategoryID,
	})
	if err != nil {
		return err
	}
	t.ID = id

	recalc := recalculator(writer, t.Logger)
	return recalc.Recalculate(ctx, t.OwnerID, id, ledger.MonthOf(t.Date), t.Balance)
}
