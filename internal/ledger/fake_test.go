package ledger

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// fakeStore is an in-memory EntryStore/AdjustmentStore/RecordStore. It keeps
// a write log so tests can assert which balances were persisted, and can be
// told to fail after a number of balance writes.
type fakeStore struct {
	entries     []Entry
	adjustments []Adjustment
	records     []ServiceRecord

	writes     []int64
	failWrites int  // fail UpdateBalance once this many writes happened; 0 = never
	failAll    bool // fail every UpdateBalance
}

var errStoreDown = errors.New("store down")

func (f *fakeStore) ListMonth(_ context.Context, ownerID int64, m Month) ([]Entry, error) {
	var out []Entry
	for _, e := range f.entries {
		if e.OwnerID == ownerID && m.Contains(e.Date) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) LastOfMonth(ctx context.Context, ownerID int64, m Month) (*Entry, error) {
	entries, _ := f.ListMonth(ctx, ownerID, m)
	if len(entries) == 0 {
		return nil, nil
	}
	last := entries[len(entries)-1]
	return &last, nil
}

func (f *fakeStore) UpdateBalance(_ context.Context, entryID int64, balance decimal.Decimal) error {
	if f.failAll {
		return errStoreDown
	}
	if f.failWrites > 0 && len(f.writes) >= f.failWrites {
		return errStoreDown
	}
	for i := range f.entries {
		if f.entries[i].ID == entryID {
			f.entries[i].BalanceAfter = decimal.NewNullDecimal(balance)
			f.writes = append(f.writes, entryID)
			return nil
		}
	}
	return errStoreDown
}

func (f *fakeStore) Find(_ context.Context, ownerID int64, m Month) (*Adjustment, error) {
	for _, a := range f.adjustments {
		if a.OwnerID == ownerID && a.Year == m.Year && a.Month == m.Month {
			adj := a
			return &adj, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Upsert(_ context.Context, adj *Adjustment) error {
	for i := range f.adjustments {
		a := &f.adjustments[i]
		if a.OwnerID == adj.OwnerID && a.Year == adj.Year && a.Month == adj.Month {
			a.Amount = adj.Amount
			a.SourceYear = adj.SourceYear
			a.SourceMonth = adj.SourceMonth
			return nil
		}
	}
	adj.ID = int64(len(f.adjustments) + 1)
	f.adjustments = append(f.adjustments, *adj)
	return nil
}

func (f *fakeStore) ListMonth2(_ context.Context, ownerID int64, m Month) ([]ServiceRecord, error) {
	var out []ServiceRecord
	for _, r := range f.records {
		if r.OwnerID == ownerID && r.Year == m.Year && r.Month == m.Month {
			out = append(out, r)
		}
	}
	return out, nil
}

// recordSource adapts fakeStore's service records to RecordStore without
// clashing with the entry ListMonth method.
type recordSource struct{ f *fakeStore }

func (r recordSource) ListMonth(ctx context.Context, ownerID int64, m Month) ([]ServiceRecord, error) {
	return r.f.ListMonth2(ctx, ownerID, m)
}

func (f *fakeStore) balances(ctx context.Context, ownerID int64, m Month) []string {
	entries, _ := f.ListMonth(ctx, ownerID, m)
	out := make([]string, len(entries))
	for i, e := range entries {
		if !e.BalanceAfter.Valid {
			out[i] = "null"
			continue
		}
		out[i] = e.BalanceAfter.Decimal.StringFixed(2)
	}
	return out
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = io.Discard
	return logger
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullDec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func noExplicit() decimal.NullDecimal {
	return decimal.NullDecimal{}
}
