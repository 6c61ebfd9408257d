package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/gastos-app/gastos-server/internal/storage/adjustment"
	"github.com/gastos-app/gastos-server/internal/storage/category"
	"github.com/gastos-app/gastos-server/internal/storage/entry"
	"github.com/gastos-app/gastos-server/internal/storage/service"
	"github.com/gastos-app/gastos-server/internal/storage/servicerecord"
	"github.com/gastos-app/gastos-server/internal/storage/user"
)

type Reader struct {
	Users       *user.Reader
	Categories  *category.Reader
	Entries     *entry.Reader
	Services    *service.Reader
	Records     *servicerecord.Reader
	Adjustments *adjustment.Reader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Users:       user.NewReader(exec),
		Categories:  category.NewReader(exec),
		Entries:     entry.NewReader(exec),
		Services:    service.NewReader(exec),
		Records:     servicerecord.NewReader(exec),
		Adjustments: adjustment.NewReader(exec),
	}
}
