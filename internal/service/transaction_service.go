package service

import (
	"context"
	"errors"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage/category"
)

type entryReader interface {
	FindByID(ctx context.Context, ownerID, id int64) (*ledger.Entry, error)
	ListForOwner(ctx context.Context, ownerID int64, m *ledger.Month) ([]ledger.Entry, error)
}

type categoryReader interface {
	FindByID(ctx context.Context, ownerID, id int64) (*category.Category, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]category.Category, error)
}

// TransactionService handles transaction read logic.
type TransactionService struct {
	entries    entryReader
	categories categoryReader
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(entries entryReader, categories categoryReader) *TransactionService {
	return &TransactionService{entries: entries, categories: categories}
}

// ListTransactions returns the owner's entries ordered by (date, id),
// optionally restricted to one month, with category name and color attached.
func (s *TransactionService) ListTransactions(ctx context.Context, ownerID int64, filter *TransactionFilter) ([]Transaction, error) {
	var m *ledger.Month
	if filter != nil {
		m = &ledger.Month{Year: filter.Year, Month: filter.Month}
	}

	entries, err := s.entries.ListForOwner(ctx, ownerID, m)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	categories, err := s.categories.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]category.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	converted := make([]Transaction, len(entries))
	for i, e := range entries {
		converted[i] = convertEntry(e)
		if e.CategoryID != nil {
			if c, ok := byID[*e.CategoryID]; ok {
				converted[i].CategoryName = c.Name
				converted[i].CategoryColor = c.Color
			}
		}
	}
	return converted, nil
}

// GetTransaction returns one entry of the owner.
func (s *TransactionService) GetTransaction(ctx context.Context, ownerID, id int64) (*Transaction, error) {
	e, err := s.entries.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	converted := convertEntry(*e)
	if e.CategoryID != nil {
		c, err := s.categories.FindByID(ctx, ownerID, *e.CategoryID)
		if err == nil {
			converted.CategoryName = c.Name
			converted.CategoryColor = c.Color
		} else if !errors.Is(err, ledger.ErrNotFound) {
			return nil, err
		}
	}
	return &converted, nil
}

func convertEntry(e ledger.Entry) Transaction {
	return Transaction{
		ID:           e.ID,
		Date:         e.Date,
		Name:         e.Name,
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Description:  e.Description,
		CategoryID:   e.CategoryID,
	}
}
