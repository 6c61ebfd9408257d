package actions

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
)

type DeleteTransaction struct {
	OwnerID int64
	ID      int64
	Logger  *logrus.Logger
	IAction
}

func (t *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Entries.FindByID(ctx, t.OwnerID, t.ID)
	if err != nil {
		return err
	}
	m := ledger.MonthOf(existing.Date)

	if err := writer.Entries.Delete(ctx, t.ID); err != nil {
		return err
	}

	recalc := recalculator(writer, t.Logger)
	return recalc.RecalculateMonth(ctx, t.OwnerID, m)
}
