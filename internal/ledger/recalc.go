package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Recalculator re-derives running balances for one month of one owner's
// ledger after an entry was created, edited, or removed. Balances round half
// away from zero to two decimals at every persisted step.
type Recalculator struct {
	entries     EntryStore
	adjustments AdjustmentStore
	logger      *logrus.Logger
}

func NewRecalculator(entries EntryStore, adjustments AdjustmentStore, logger *logrus.Logger) *Recalculator {
	return &Recalculator{
		entries:     entries,
		adjustments: adjustments,
		logger:      logger,
	}
}

// Recalculate restores the running-balance invariant of month m from the
// entry with the given id forward. Entries before it are trusted as already
// consistent and left untouched; entries in other months are never written.
//
// When explicit is valid it is taken verbatim as the entry's balance_after
// and the cascade continues from it; otherwise the balance is computed from
// the baseline preceding the entry. If the entry is no longer part of the
// month (it was deleted or its date moved elsewhere) the whole month is
// recomputed from its opening balance instead.
func (r *Recalculator) Recalculate(ctx context.Context, ownerID, entryID int64, m Month, explicit decimal.NullDecimal) error {
	entries, err := r.entries.ListMonth(ctx, ownerID, m)
	if err != nil {
		return fmt.Errorf("Recalculate: list month %v: %w", m, err)
	}

	idx := -1
	for i, e := range entries {
		if e.ID == entryID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return r.RecalculateMonth(ctx, ownerID, m)
	}

	var baseline decimal.Decimal
	if idx > 0 {
		baseline = balanceOrZero(entries[idx-1])
	} else {
		baseline, err = r.openingBalance(ctx, ownerID, m)
		if err != nil {
			return fmt.Errorf("Recalculate: %w", err)
		}
	}

	current := entries[idx]
	var running decimal.Decimal
	if explicit.Valid {
		running = explicit.Decimal
	} else {
		running = baseline.Add(current.Amount).Round(2)
	}
	if err := r.writeBalance(ctx, current, running); err != nil {
		return fmt.Errorf("Recalculate: %w", err)
	}

	updated, err := r.cascade(ctx, entries[idx+1:], running)
	if err != nil {
		return fmt.Errorf("Recalculate: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"ownerID": ownerID,
		"entryID": entryID,
		"month":   m.String(),
		"updated": updated,
	}).Info("Recalculator.Recalculate.complete")
	return nil
}

// RecalculateMonth recomputes every balance of month m from its opening
// balance. Used after a deletion, after an opening adjustment changed, and
// for the old month when a date edit moved an entry across months.
func (r *Recalculator) RecalculateMonth(ctx context.Context, ownerID int64, m Month) error {
	entries, err := r.entries.ListMonth(ctx, ownerID, m)
	if err != nil {
		return fmt.Errorf("RecalculateMonth: list month %v: %w", m, err)
	}

	opening, err := r.openingBalance(ctx, ownerID, m)
	if err != nil {
		return fmt.Errorf("RecalculateMonth: %w", err)
	}

	updated, err := r.cascade(ctx, entries, opening)
	if err != nil {
		return fmt.Errorf("RecalculateMonth: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"ownerID": ownerID,
		"month":   m.String(),
		"updated": updated,
	}).Info("Recalculator.RecalculateMonth.complete")
	return nil
}

// openingBalance is the balance immediately before the first entry of month
// m: the final balance of the preceding month plus m's opening adjustment.
// A month with no predecessor entries starts from the adjustment alone, or
// from zero.
func (r *Recalculator) openingBalance(ctx context.Context, ownerID int64, m Month) (decimal.Decimal, error) {
	opening := decimal.Zero

	last, err := r.entries.LastOfMonth(ctx, ownerID, m.Prev())
	if err != nil {
		return decimal.Zero, fmt.Errorf("last of month %v: %w", m.Prev(), err)
	}
	if last != nil {
		opening = balanceOrZero(*last)
	}

	adj, err := r.adjustments.Find(ctx, ownerID, m)
	if err != nil {
		return decimal.Zero, fmt.Errorf("adjustment for %v: %w", m, err)
	}
	if adj != nil {
		opening = opening.Add(adj.Amount)
	}

	return opening.Round(2), nil
}

// cascade walks the given entries in order, advancing the running balance by
// each amount and persisting any value that differs from the stored one.
// Unchanged balances are skipped, so a pass over an already-consistent
// sequence writes nothing.
func (r *Recalculator) cascade(ctx context.Context, entries []Entry, running decimal.Decimal) (int, error) {
	updated := 0
	for _, e := range entries {
		running = running.Add(e.Amount).Round(2)
		if e.BalanceAfter.Valid && e.BalanceAfter.Decimal.Equal(running) {
			continue
		}
		if err := r.entries.UpdateBalance(ctx, e.ID, running); err != nil {
			return updated, fmt.Errorf("cascade: entry %d: %w", e.ID, err)
		}
		updated++
	}
	return updated, nil
}

func (r *Recalculator) writeBalance(ctx context.Context, e Entry, balance decimal.Decimal) error {
	if e.BalanceAfter.Valid && e.BalanceAfter.Decimal.Equal(balance) {
		return nil
	}
	if err := r.entries.UpdateBalance(ctx, e.ID, balance); err != nil {
		return fmt.Errorf("entry %d: %w", e.ID, err)
	}
	return nil
}

// balanceOrZero reads a stored balance, treating a still-null one as zero the
// same way the rest of the cascade does.
func balanceOrZero(e Entry) decimal.Decimal {
	if !e.BalanceAfter.Valid {
		return decimal.Zero
	}
	return e.BalanceAfter.Decimal
}
