// Package ledger maintains the running-balance invariant of an owner's
// transaction ledger: within a month, entries ordered by (date, id) carry a
// balance_after equal to the previous balance plus their own amount. It holds
// the recalculation engine that re-derives balances after a mutation and the
// opening-balance sync that folds a month's service-record total into the
// following month.
package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound marks a missing or foreign-owned entity. Cross-owner
	// lookups report it instead of revealing that the row exists.
	ErrNotFound = errors.New("ledger: not found")

	// ErrDuplicate marks a uniqueness violation (category name, username).
	ErrDuplicate = errors.New("ledger: duplicate")

	// ErrInvalidNumeric marks a non-numeric amount or balance on the direct
	// mutation path. The sync aggregation never returns it; there invalid
	// amounts count as zero.
	ErrInvalidNumeric = errors.New("ledger: invalid numeric value")
)

// Entry is one dated transaction of one owner. BalanceAfter is null until the
// engine has computed it or the owner has set it explicitly.
type Entry struct {
	ID           int64
	OwnerID      int64
	Date         time.Time
	Name         string
	Amount       decimal.Decimal
	BalanceAfter decimal.NullDecimal
	Description  string
	CategoryID   *int64
}

// Adjustment is the opening adjustment of one (owner, year, month): the
// aggregated service-record total of the source month, applied to the target
// month's opening balance. At most one exists per owner and target month.
type Adjustment struct {
	ID          int64
	OwnerID     int64
	Year        int
	Month       time.Month
	Amount      decimal.Decimal
	SourceYear  int
	SourceMonth time.Month
}

// ServiceRecord is one recurring-bill amount for a (service, year, month).
// Amount is null when the stored value was missing or unparsable; the sync
// treats such records as zero.
type ServiceRecord struct {
	ID        int64
	OwnerID   int64
	ServiceID int64
	Year      int
	Month     time.Month
	Amount    decimal.NullDecimal
}

// Target returns the month whose opening balance the record influences: the
// month after the one it is recorded for.
func (r ServiceRecord) Target() Month {
	return Month{Year: r.Year, Month: r.Month}.Next()
}

// EntryStore is the slice of entry persistence the engine needs. ListMonth
// must return entries ordered by (date asc, id asc).
type EntryStore interface {
	ListMonth(ctx context.Context, ownerID int64, m Month) ([]Entry, error)
	LastOfMonth(ctx context.Context, ownerID int64, m Month) (*Entry, error)
	UpdateBalance(ctx context.Context, entryID int64, balance decimal.Decimal) error
}

// AdjustmentStore reads and upserts opening adjustments keyed by the target
// month.
type AdjustmentStore interface {
	Find(ctx context.Context, ownerID int64, m Month) (*Adjustment, error)
	Upsert(ctx context.Context, adj *Adjustment) error
}

// RecordStore lists an owner's service records for one source month,
// duplicates included.
type RecordStore interface {
	ListMonth(ctx context.Context, ownerID int64, m Month) ([]ServiceRecord, error)
}
