package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/gastos-app/gastos-server/internal/ledger"
)

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Theme        string    `db:"theme"`
	CreatedAt    time.Time `db:"created_at"`
}

var userColumns = []any{"id", "username", "email", "password_hash", "theme", "created_at"}

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findBy(ctx, "id", id)
}

func (r *Reader) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findBy(ctx, "username", username)
}

func (r *Reader) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *Reader) findBy(ctx context.Context, column string, value any) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From("users"),
		sm.Where(psql.Quote(column).EQ(psql.Arg(value))),
	)
	u, err := bob.One(ctx, r.exec, q, scan.StructMapper[User]())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("findBy %s: %w", column, err)
	}
	return &u, nil
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

func (w *Writer) Insert(ctx context.Context, username, email, passwordHash, theme string) (int64, error) {
	q := psql.Insert(
		im.Into("users", "username", "email", "password_hash", "theme"),
		im.Values(psql.Arg(username, email, passwordHash, theme)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, w.tx, q, scan.SingleColumnMapper[int64])
	if err != nil {
		return 0, fmt.Errorf("Insert: %w", err)
	}
	return id, nil
}

func (w *Writer) UpdateTheme(ctx context.Context, id int64, theme string) error {
	q := psql.Update(
		um.Table("users"),
		um.SetCol("theme").ToArg(theme),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	if _, err := bob.Exec(ctx, w.tx, q); err != nil {
		return fmt.Errorf("UpdateTheme: %w", err)
	}
	return nil
}
