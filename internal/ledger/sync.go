package ledger

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// SyncHealth counts opening-balance syncs that failed. Sync errors never fail
// the service-record mutation that triggered them, so the counter is the only
// place they stay visible; the status endpoint reports it.
type SyncHealth struct {
	failures atomic.Int64
}

func (h *SyncHealth) RecordFailure() {
	h.failures.Add(1)
}

func (h *SyncHealth) Failures() int64 {
	return h.failures.Load()
}

// OpeningSync keeps the opening adjustment of a month in agreement with the
// service-record total of the month before it. Every service-record create,
// update, or delete triggers a sync for the record's (owner, year, month);
// deletes use the values captured before the row went away.
type OpeningSync struct {
	records     RecordStore
	adjustments AdjustmentStore
	recalc      *Recalculator
	health      *SyncHealth
	logger      *logrus.Logger
}

func NewOpeningSync(records RecordStore, adjustments AdjustmentStore, recalc *Recalculator, health *SyncHealth, logger *logrus.Logger) *OpeningSync {
	return &OpeningSync{
		records:     records,
		adjustments: adjustments,
		recalc:      recalc,
		health:      health,
		logger:      logger,
	}
}

// Sync aggregates the owner's service records for the source month and
// upserts the total as the following month's opening adjustment, then
// recomputes that month's balances. Records with a missing or unparsable
// amount count as zero; duplicate rows for the same service are all summed.
//
// Errors are recorded on the health counter before being returned; callers
// on the mutation path log and swallow them.
func (s *OpeningSync) Sync(ctx context.Context, ownerID int64, source Month) error {
	err := s.sync(ctx, ownerID, source)
	if err != nil {
		s.health.RecordFailure()
	}
	return err
}

func (s *OpeningSync) sync(ctx context.Context, ownerID int64, source Month) error {
	records, err := s.records.ListMonth(ctx, ownerID, source)
	if err != nil {
		return fmt.Errorf("Sync: list records %v: %w", source, err)
	}

	total := decimal.Zero
	for _, rec := range records {
		if !rec.Amount.Valid {
			continue
		}
		total = total.Add(rec.Amount.Decimal)
	}
	total = total.Round(2)

	target := source.Next()
	adj := &Adjustment{
		OwnerID:     ownerID,
		Year:        target.Year,
		Month:       target.Month,
		Amount:      total,
		SourceYear:  source.Year,
		SourceMonth: source.Month,
	}
	if err := s.adjustments.Upsert(ctx, adj); err != nil {
		return fmt.Errorf("Sync: upsert adjustment %v: %w", target, err)
	}

	if err := s.recalc.RecalculateMonth(ctx, ownerID, target); err != nil {
		return fmt.Errorf("Sync: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"ownerID": ownerID,
		"source":  source.String(),
		"target":  target.String(),
		"records": len(records),
		"total":   total.String(),
	}).Info("OpeningSync.Sync.complete")
	return nil
}
