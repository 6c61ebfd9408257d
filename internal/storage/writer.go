package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/gastos-app/gastos-server/internal/storage/adjustment"
	"github.com/gastos-app/gastos-server/internal/storage/category"
	"github.com/gastos-app/gastos-server/internal/storage/entry"
	"github.com/gastos-app/gastos-server/internal/storage/service"
	"github.com/gastos-app/gastos-server/internal/storage/servicerecord"
	"github.com/gastos-app/gastos-server/internal/storage/user"
)

type Writer struct {
	tx          bob.Tx
	Users       *user.Writer
	Categories  *category.Writer
	Entries     *entry.Writer
	Services    *service.Writer
	Records     *servicerecord.Writer
	Adjustments *adjustment.Writer
}

func NewWriter(tx bob.Tx) Writer {
	return Writer{
		tx:          tx,
		Users:       user.NewWriter(tx),
		Categories:  category.NewWriter(tx),
		Entries:     entry.NewWriter(tx),
		Services:    service.NewWriter(tx),
		Records:     servicerecord.NewWriter(tx),
		Adjustments: adjustment.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
