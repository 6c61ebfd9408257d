// Package servicerecord stores per-month amounts of recurring services.
// Nothing enforces one row per (service, year, month); the opening-balance
// sync tolerates duplicates by summing them.
package servicerecord

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/gastos-app/gastos-server/internal/ledger"
)

var recordColumns = []any{"id", "owner_id", "service_id", "year", "month", "amount"}

type row struct {
	ID        int64               `db:"id"`
	OwnerID   int64               `db:"owner_id"`
	ServiceID int64               `db:"service_id"`
	Year      int                 `db:"year"`
	Month     int                 `db:"month"`
	Amount    decimal.NullDecimal `db:"amount"`
}

func rowToRecord(r row) ledger.ServiceRecord {
	return ledger.ServiceRecord{
		ID:        r.ID,
		OwnerID:   r.OwnerID,
		ServiceID: r.ServiceID,
		Year:      r.Year,
		Month:     time.Month(r.Month),
		Amount:    r.Amount,
	}
}

// RecordCreate is the input for inserting a service record.
type RecordCreate struct {
	OwnerID   int64
	ServiceID int64
	Year      int
	Month     time.Month
	Amount    decimal.Decimal
}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, ownerID, id int64) (*ledger.ServiceRecord, error) {
	q := psql.Select(
		sm.Columns(recordColumns...),
		sm.From("service_records"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	rec := rowToRecord(row)
	return &rec, nil
}

// List returns the owner's records, optionally filtered by year and month,
// ordered by (year, month).
func (r *Reader) List(ctx context.Context, ownerID int64, year, month *int) ([]ledger.ServiceRecord, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(recordColumns...),
		sm.From("service_records"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	}
	if year != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("year").EQ(psql.Arg(*year))))
	}
	if month != nil {
		queryMods = append(queryMods, sm.Where(psql.Quote("month").EQ(psql.Arg(*month))))
	}
	queryMods = append(queryMods,
		sm.OrderBy("year").Asc(),
		sm.OrderBy("month").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	records := make([]ledger.ServiceRecord, len(rows))
	for i, rw := range rows {
		records[i] = rowToRecord(rw)
	}
	return records, nil
}

// ListMonth returns the owner's records for one source month, duplicates
// included, for the sync aggregation.
func (r *Reader) ListMonth(ctx context.Context, ownerID int64, m ledger.Month) ([]ledger.ServiceRecord, error) {
	year, month := m.Year, int(m.Month)
	return r.List(ctx, ownerID, &year, &month)
}

var _ ledger.RecordStore = (*Writer)(nil)

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

func (w *Writer) Insert(ctx context.Context, create *RecordCreate) (int64, error) {
	q := psql.Insert(
		im.Into("service_records", "owner_id", "service_id", "year", "month", "amount"),
		im.Values(psql.Arg(create.OwnerID, create.ServiceID, create.Year, int(create.Month), create.Amount)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return id, nil
}

func (w *Writer) Update(ctx context.Context, rec *ledger.ServiceRecord) error {
	q := psql.Update(
		um.Table("service_records"),
		um.SetCol("service_id").ToArg(rec.ServiceID),
		um.SetCol("year").ToArg(rec.Year),
		um.SetCol("month").ToArg(int(rec.Month)),
		um.SetCol("amount").ToArg(rec.Amount),
		um.Where(psql.Quote("id").EQ(psql.Arg(rec.ID))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From("service_records"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
