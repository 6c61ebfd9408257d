package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/gastos-app/gastos-server/internal/ledger"
)

// Service is a recurring bill or income source whose monthly amounts live in
// service_records.
type Service struct {
	ID      int64  `db:"id"`
	OwnerID int64  `db:"owner_id"`
	Name    string `db:"name"`
}

var serviceColumns = []any{"id", "owner_id", "name"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, ownerID, id int64) (*Service, error) {
	q := psql.Select(
		sm.Columns(serviceColumns...),
		sm.From("services"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	s, err := bob.One(ctx, r.exec, q, scan.StructMapper[Service]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return &s, nil
}

func (r *Reader) ListForOwner(ctx context.Context, ownerID int64) ([]Service, error) {
	q := psql.Select(
		sm.Columns(serviceColumns...),
		sm.From("services"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("name").Asc(),
	)
	services, err := bob.All(ctx, r.exec, q, scan.StructMapper[Service]())
	if err != nil {
		return nil, fmt.Errorf("ListForOwner: %w", err)
	}
	return services, nil
}

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

func (w *Writer) Insert(ctx context.Context, ownerID int64, name string) (int64, error) {
	q := psql.Insert(
		im.Into("services", "owner_id", "name"),
		im.Values(psql.Arg(ownerID, name)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return id, nil
}

func (w *Writer) UpdateName(ctx context.Context, id int64, name string) error {
	q := psql.Update(
		um.Table("services"),
		um.SetCol("name").ToArg(name),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("UpdateName: %w", err)
	}
	return nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From("services"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
