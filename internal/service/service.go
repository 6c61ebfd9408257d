// Package service holds the read side: queries composed from storage readers
// and converted into API-facing models. Mutations go through operator actions
// instead.
package service

import (
	"github.com/gastos-app/gastos-server/internal/storage"
)

// Service holds all read-side services.
type Service struct {
	Transaction *TransactionService
	Category    *CategoryService
	Recurring   *RecurringService
	User        *UserService
}

// NewService creates a new Service over the given storage.
func NewService(store *storage.Storage) *Service {
	return &Service{
		Transaction: NewTransactionService(store.Reader.Entries, store.Reader.Categories),
		Category:    NewCategoryService(store.Reader.Categories),
		Recurring:   NewRecurringService(store.Reader.Services, store.Reader.Records),
		User:        NewUserService(store.Reader.Users),
	}
}
