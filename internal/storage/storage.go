package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/gastos-app/gastos-server/internal/config"
)

// Storage owns the database handle. Reads go through Reader on the shared
// pool; mutations get a transactional Writer from Write so a mutation and its
// balance cascade commit or roll back as one unit.
type Storage struct {
	DB     *sql.DB
	bdb    bob.DB
	Reader *Reader
}

func Open(env *config.Config) (*Storage, error) {
	connStr := "postgres://" + env.PostgresUsername + ":" +
		env.PostgresPassword + "@" + env.PostgresAddress + ":" +
		env.PostgresPort + "/" + env.PostgresDB + "?sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("Open: %w", err)
	}

	bdb := bob.NewDB(db)
	return &Storage{
		DB:     db,
		bdb:    bdb,
		Reader: NewReader(bdb),
	}, nil
}

func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.bdb.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Write: begin tx: %w", err)
	}
	w := NewWriter(tx)
	return &w, nil
}
