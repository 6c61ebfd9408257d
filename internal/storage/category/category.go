package category

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

// Category labels an owner's ledger entries. Names are unique per owner.
type Category struct {
	ID      int64  `db:"id"`
	OwnerID int64  `db:"owner_id"`
	Name    string `db:"name"`
	Color   string `db:"color"`
}

var categoryColumns = []any{"id", "owner_id", "name", "color"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, ownerID, id int64) (*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
	)
	c, err := bob.One(ctx, r.exec, q, scan.StructMapper[Category]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return &c, nil
}

func (r *Reader) FindByName(ctx context.Context, ownerID int64, name string) (*Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.Where(psql.Quote("name").EQ(psql.Arg(name))),
	)
	c, err := bob.One(ctx, r.exec, q, scan.StructMapper[Category]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("FindByName: %w", err)
	}
	return &c, nil
}

// ListForOwner returns the owner's categories ordered by name.
func (r *Reader) ListForOwner(ctx context.Context, ownerID int64) ([]Category, error) {
	q := psql.Select(
		sm.Columns(categoryColumns...),
		sm.From("categories"),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy("name").Asc(),
	)
	categories, err := bob.All(ctx, r.exec, q, scan.StructMapper[Category]())
	if err != nil {
		return nil, fmt.Errorf("ListForOwner: %w", err)
	}
	return categories, nil
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

func (w *Writer) Insert(ctx context.Context, ownerID int64, name, color string) (int64, error) {
	q := psql.Insert(
		im.Into("categories", "owner_id", "name", "color"),
		im.Values(psql.Arg(ownerID, name, color)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return id, nil
}

func (w *Writer) Update(ctx context.Context, c *Category) error {
	q := psql.Update(
		um.Table("categories"),
		um.SetCol("name").ToArg(c.Name),
		um.SetCol("color").ToArg(c.Color),
		um.Where(psql.Quote("id").EQ(psql.Arg(c.ID))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (w *Writer) Delete(ctx context.Context, id int64) error {
	q := psql.Delete(
		dm.From("categories"),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
