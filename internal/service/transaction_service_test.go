package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage/category"
)

type fakeEntryReader struct {
	entries []ledger.Entry
	err     error

	// filter captured by the last ListForOwner call.
	lastMonth *ledger.Month
}

func (f *fakeEntryReader) FindByID(_ context.Context, ownerID, id int64) (*ledger.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.entries {
		if e.ID == id && e.OwnerID == ownerID {
			return &e, nil
		}
	}
	return nil, ledger.ErrNotFound
}

func (f *fakeEntryReader) ListForOwner(_ context.Context, ownerID int64, m *ledger.Month) ([]ledger.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastMonth = m
	var out []ledger.Entry
	for _, e := range f.entries {
		if e.OwnerID != ownerID {
			continue
		}
		if m != nil && !m.Contains(e.Date) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeCategoryReader struct {
	categories []category.Category
	err        error
}

func (f *fakeCategoryReader) FindByID(_ context.Context, ownerID, id int64) (*category.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.categories {
		if c.ID == id && c.OwnerID == ownerID {
			return &c, nil
		}
	}
	return nil, ledger.ErrNotFound
}

func (f *fakeCategoryReader) ListForOwner(_ context.Context, ownerID int64) ([]category.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []category.Category
	for _, c := range f.categories {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

const testOwner int64 = 3

func catID(id int64) *int64 { return &id }

func testEntries() *fakeEntryReader {
	return &fakeEntryReader{entries: []ledger.Entry{
		{
			ID: 1, OwnerID: testOwner,
			Date:       time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			Name:       "Salary",
			Amount:     decimal.RequireFromString("1500.00"),
			CategoryID: catID(10),
		},
		{
			ID: 2, OwnerID: testOwner,
			Date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			Name:        "Rent",
			Amount:      decimal.RequireFromString("-800.00"),
			Description: "april",
		},
	}}
}

func testCategories() *fakeCategoryReader {
	return &fakeCategoryReader{categories: []category.Category{
		{ID: 10, OwnerID: testOwner, Name: "Income", Color: "Exito"},
	}}
}

func TestListTransactions_JoinsCategory(t *testing.T) {
	svc := NewTransactionService(testEntries(), testCategories())

	txs, err := svc.ListTransactions(context.Background(), testOwner, nil)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "Income", txs[0].CategoryName)
	assert.Equal(t, "Exito", txs[0].CategoryColor)
	assert.Empty(t, txs[1].CategoryName, "uncategorized entry stays bare")
	assert.Equal(t, "april", txs[1].Description)
}

func TestListTransactions_MonthFilter(t *testing.T) {
	entries := testEntries()
	svc := NewTransactionService(entries, testCategories())

	txs, err := svc.ListTransactions(context.Background(), testOwner, &TransactionFilter{Year: 2025, Month: time.March})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, int64(1), txs[0].ID)
	require.NotNil(t, entries.lastMonth)
	assert.Equal(t, "2025-03", entries.lastMonth.String())
}

func TestListTransactions_NoResults(t *testing.T) {
	svc := NewTransactionService(&fakeEntryReader{}, testCategories())

	txs, err := svc.ListTransactions(context.Background(), testOwner, nil)
	require.NoError(t, err)
	assert.Nil(t, txs)
}

func TestListTransactions_StorageError(t *testing.T) {
	svc := NewTransactionService(&fakeEntryReader{err: errors.New("database unavailable")}, testCategories())

	_, err := svc.ListTransactions(context.Background(), testOwner, nil)
	assert.EqualError(t, err, "database unavailable")
}

func TestGetTransaction(t *testing.T) {
	svc := NewTransactionService(testEntries(), testCategories())

	tx, err := svc.GetTransaction(context.Background(), testOwner, 1)
	require.NoError(t, err)
	assert.Equal(t, "Salary", tx.Name)
	assert.Equal(t, "Income", tx.CategoryName)
}

func TestGetTransaction_MissingCategoryTolerated(t *testing.T) {
	svc := NewTransactionService(testEntries(), &fakeCategoryReader{})

	tx, err := svc.GetTransaction(context.Background(), testOwner, 1)
	require.NoError(t, err)
	assert.Empty(t, tx.CategoryName)
}

func TestGetTransaction_NotFound(t *testing.T) {
	svc := NewTransactionService(testEntries(), testCategories())

	_, err := svc.GetTransaction(context.Background(), testOwner, 99)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestGetTransaction_OtherOwner(t *testing.T) {
	svc := NewTransactionService(testEntries(), testCategories())

	_, err := svc.GetTransaction(context.Background(), testOwner+1, 1)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
