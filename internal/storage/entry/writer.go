package entry

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/gastos-app/gastos-server/internal/ledger"
)

var _ ledger.EntryStore = (*Writer)(nil)

type Writer struct {
	tx bob.Tx
	Reader
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx: tx,
		Reader: Reader{
			exec: tx,
		},
	}
}

// Insert creates a new entry and returns its generated id. Ids are assigned
// monotonically by the sequence, which keeps same-date entries in creation
// order for the cascade.
func (w *Writer) Insert(ctx context.Context, create *EntryCreate) (int64, error) {
	q := psql.Insert(
		im.Into("transactions", "owner_id", "date", "name", "amount", "balance_after", "description", "category_id"),
		im.Values(psql.Arg(
			create.OwnerID,
			create.Date,
			create.Name,
			create.Amount,
			create.BalanceAfter,
			nullString(create.Description),
			create.CategoryID,
		)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return id, nil
}

// Update persists all mutable fields of an entry.
func (w *Writer) Update(ctx context.Context, e *ledger.Entry) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("date").ToArg(e.Date),
		um.SetCol("name").ToArg(e.Name),
		um.SetCol("amount").ToArg(e.Amount),
		um.SetCol("balance_after").ToArg(e.BalanceAfter),
		um.SetCol("description").ToArg(nullString(e.Description)),
		um.SetCol("category_id").ToArg(e.CategoryID),
		um.Where(psql.Quote("id").EQ(psql.Arg(e.ID))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

// UpdateBalance writes a recomputed running balance.
func (w *Writer) UpdateBalance(ctx context.Context, entryID int64, balance decimal.Decimal) error {
	q := psql.Update(
		um.Table("transactions"),
		um.SetCol("balance_after").ToArg(balance),
		um.Where(psql.Quote("id").EQ(psql.Arg(entryID))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("UpdateBalance: %w", err)
	}
	return nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From("transactions"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
