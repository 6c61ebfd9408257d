package actions

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/importer"
	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
	"github.com/gastos-app/gastos-server/internal/storage/entry"
)

// defaultImportColor is assigned to categories created on the fly during an
// import; the owner can recolor them afterwards.
const defaultImportColor = "Primario"

// ImportTransactions inserts a parsed batch of entries, creating missing
// categories as it goes, then recomputes every month the batch touched. The
// whole batch shares one transaction; per-row failures are reported, not
// fatal.
type ImportTransactions struct {
	OwnerID int64
	Rows    []importer.Row
	Logger  *logrus.Logger
	IAction

	Imported int
	Failed   []importer.RowError
}

func (t *ImportTransactions) Perform(ctx context.Context, writer *storage.Writer) error {
	categoryIDs := map[string]int64{}
	months := map[ledger.Month]bool{}

	for _, row := range t.Rows {
		categoryID, err := t.categoryID(ctx, writer, categoryIDs, row.Category)
		if err != nil {
			t.Failed = append(t.Failed, importer.RowError{Line: row.Line, Error: err.Error()})
			continue
		}

		_, err = writer.Entries.Insert(ctx, &entry.EntryCreate{
			OwnerID:      t.OwnerID,
			Date:         row.Date,
			Name:         row.Name,
			Amount:       row.Amount,
			BalanceAfter: row.Balance,
			Description:  row.Description,
			CategoryID:   &categoryID,
		})
		if err != nil {
			t.Failed = append(t.Failed, importer.RowError{Line: row.Line, Error: err.Error()})
			continue
		}

		t.Imported++
		months[ledger.MonthOf(row.Date)] = true
	}

	recalc := recalculator(writer, t.Logger)
	for m := range months {
		if err := recalc.RecalculateMonth(ctx, t.OwnerID, m); err != nil {
			return err
		}
	}

	t.Logger.WithFields(logrus.Fields{
		"ownerID":  t.OwnerID,
		"imported": t.Imported,
		"failed":   len(t.Failed),
		"months":   len(months),
	}).Info("ImportTransactions.Perform.complete")
	return nil
}

func (t *ImportTransactions) categoryID(ctx context.Context, writer *storage.Writer, cache map[string]int64, name string) (int64, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}

	existing, err := writer.Categories.FindByName(ctx, t.OwnerID, name)
	if err == nil {
		cache[name] = existing.ID
		return existing.ID, nil
	}
	if !errors.Is(err, ledger.ErrNotFound) {
		return 0, err
	}

	id, err := writer.Categories.Insert(ctx, t.OwnerID, name, defaultImportColor)
	if err != nil {
		return 0, err
	}
	cache[name] = id
	return id, nil
}
