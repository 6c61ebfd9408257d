// Package adjustment stores opening adjustments: one row per (owner, year,
// month) carrying the service-record total of the source month. Keeping them
// out of the transactions table means a genuine entry dated the 1st of a
// month can never be mistaken for the aggregate.
package adjustment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/gastos-app/gastos-server/internal/ledger"
)

var adjustmentColumns = []any{"id", "owner_id", "year", "month", "amount", "source_year", "source_month"}

type row struct {
	ID          int64           `db:"id"`
	OwnerID     int64           `db:"owner_id"`
	Year        int             `db:"year"`
	Month       int             `db:"month"`
	Amount      decimal.Decimal `db:"amount"`
	SourceYear  int             `db:"source_year"`
	SourceMonth int             `db:"source_month"`
}

func rowToAdjustment(r row) ledger.Adjustment {
	return ledger.Adjustment{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Year:        r.Year,
		Month:       time.Month(r.Month),
		Amount:      r.Amount,
		SourceYear:  r.SourceYear,
		SourceMonth: time.Month(r.SourceMonth),
	}
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// Find returns the owner's adjustment for the given target month, or nil.
func (r *Reader) Find(ctx context.Context, ownerID int64, m ledger.Month) (*ledger.Adjustment, error) {
	q := psql.Select(
		sm.Columns(adjustmentColumns...),
		sm.From("opening_adjustments"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("year").EQ(psql.Arg(m.Year))),
		sm.Where(psql.Quote("month").EQ(psql.Arg(int(m.Month)))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("Find: %w", err)
	}
	adj := rowToAdjustment(row)
	return &adj, nil
}

var _ ledger.AdjustmentStore = (*Writer)(nil)

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

// Upsert writes the adjustment for (owner, year, month), replacing the amount
// and source of an existing row. The unique index on the key makes the
// select-then-write safe inside the surrounding transaction.
func (w *Writer) Upsert(ctx context.Context, adj *ledger.Adjustment) error {
	existing, err := w.Find(ctx, adj.OwnerID, ledger.Month{Year: adj.Year, Month: adj.Month})
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}

	if existing == nil {
		q := psql.Insert(
			im.Into("opening_adjustments", "owner_id", "year", "month", "amount", "source_year", "source_month"),
			im.Values(psql.Arg(adj.OwnerID, adj.Year, int(adj.Month), adj.Amount, adj.SourceYear, int(adj.SourceMonth))),
			im.Returning("id"),
		)
		id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
		if err != nil {
			return fmt.Errorf("Upsert: insert: %w", err)
		}
		adj.ID = id
		return nil
	}

	q := psql.Update(
		um.Table("opening_adjustments"),
		um.SetCol("amount").ToArg(adj.Amount),
		um.SetCol("source_year").ToArg(adj.SourceYear),
		um.SetCol("source_month").ToArg(int(adj.SourceMonth)),
		um.Where(psql.Quote("id").EQ(psql.Arg(existing.ID))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("Upsert: update: %w", err)
	}
	adj.ID = existing.ID
	return nil
}
