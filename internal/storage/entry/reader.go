package entry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/gastos-app/gastos-server/internal/ledger"
)

var entryColumns = []any{"id", "owner_id", "date", "name", "amount", "balance_after", "description", "category_id"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByID retrieves one entry. Entries of other owners report
// ledger.ErrNotFound, same as missing rows.
func (r *Reader) FindByID(ctx context.Context, ownerID, id int64) (*ledger.Entry, error) {
	q := psql.Select(
		sm.Columns(entryColumns...),
		sm.From("transactions"),
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
	e := rowToEntry(row)
	return &e, nil
}

// ListForOwner returns all of an owner's entries ordered by (date, id),
// optionally restricted to one month.
func (r *Reader) ListForOwner(ctx context.Context, ownerID int64, m *ledger.Month) ([]ledger.Entry, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(entryColumns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	}
	if m != nil {
		start, end := m.Bounds()
		queryMods = append(queryMods,
			sm.Where(psql.Quote("date").GTE(psql.Arg(start))),
			sm.Where(psql.Quote("date").LT(psql.Arg(end))),
		)
	}
	queryMods = append(queryMods,
		sm.OrderBy("date").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, fmt.Errorf("ListForOwner: %w", err)
	}
	entries := make([]ledger.Entry, len(rows))
	for i, rw := range rows {
		entries[i] = rowToEntry(rw)
	}
	return entries, nil
}

// ListMonth returns one month's entries in (date asc, id asc) order, the
// order the balance cascade walks.
func (r *Reader) ListMonth(ctx context.Context, ownerID int64, m ledger.Month) ([]ledger.Entry, error) {
	return r.ListForOwner(ctx, ownerID, &m)
}

// LastOfMonth returns the month's final entry by (date desc, id desc), or nil
// when the month is empty.
func (r *Reader) LastOfMonth(ctx context.Context, ownerID int64, m ledger.Month) (*ledger.Entry, error) {
	start, end := m.Bounds()
	q := psql.Select(
		sm.Columns(entryColumns...),
		sm.From("transactions"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("date").GTE(psql.Arg(start))),
		sm.Where(psql.Quote("date").LT(psql.Arg(end))),
		sm.OrderBy("date").Desc(),
		sm.OrderBy("id").Desc(),
		sm.Limit(1),
	)
	row, err := bob.One(ctx, r.exec, q, scan.StructMapper[row]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("LastOfMonth: %w", err)
	}
	e := rowToEntry(row)
	return &e, nil
}
