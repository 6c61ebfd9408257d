package actions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
	"github.com/gastos-app/gastos-server/internal/storage/servicerecord"
)

// Record mutations report the source months they touched through Sources;
// the handler schedules one opening sync per month once the mutation has
// committed, so a failed sync can never undo the record change.

type CreateServiceRecord struct {
	OwnerID   int64
	ServiceID int64
	Year      int
	Month     time.Month
	Amount    decimal.Decimal
	IAction

	ID      int64
	Sources []ledger.Month
}

func (r *CreateServiceRecord) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Services.FindByID(ctx, r.OwnerID, r.ServiceID); err != nil {
		return err
	}

	id, err := writer.Records.Insert(ctx, &servicerecord.RecordCreate{
		OwnerID:   r.OwnerID,
		ServiceID: r.ServiceID,
		Year:      r.Year,
		Month:     r.Month,
		Amount:    r.Amount,
	})
	if err != nil {
		return err
	}
	r.ID = id
	r.Sources = []ledger.Month{{Year: r.Year, Month: r.Month}}
	return nil
}

type UpdateServiceRecord struct {
	OwnerID int64
	ID      int64
	Year    *int
	Month   *time.Month
	Amount  *decimal.Decimal
	IAction

	Sources []ledger.Month
}

func (r *UpdateServiceRecord) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Records.FindByID(ctx, r.OwnerID, r.ID)
	if err != nil {
		return err
	}
	oldSource := ledger.Month{Year: existing.Year, Month: existing.Month}

	if r.Year != nil {
		existing.Year = *r.Year
	}
	if r.Month != nil {
		existing.Month = *r.Month
	}
	if r.Amount != nil {
		existing.Amount = decimal.NewNullDecimal(*r.Amount)
	}

	if err := writer.Records.Update(ctx, existing); err != nil {
		return err
	}

	newSource := ledger.Month{Year: existing.Year, Month: existing.Month}
	r.Sources = []ledger.Month{oldSource}
	if newSource != oldSource {
		r.Sources = append(r.Sources, newSource)
	}
	return nil
}

type DeleteServiceRecord struct {
	OwnerID int64
	ID      int64
	IAction

	Sources []ledger.Month
}

func (r *DeleteServiceRecord) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Records.FindByID(ctx, r.OwnerID, r.ID)
	if err != nil {
		return err
	}

	if err := writer.Records.Delete(ctx, r.ID); err != nil {
		return err
	}

	// The record is gone; the sync re-aggregates what is left of its month.
	r.Sources = []ledger.Month{{Year: existing.Year, Month: existing.Month}}
	return nil
}
