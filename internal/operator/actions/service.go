package actions

import (
	"context"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
)

type CreateService struct {
	OwnerID int64
	Name    string
	IAction

	ID int64
}

func (s *CreateService) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Services.Insert(ctx, s.OwnerID, s.Name)
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

type UpdateService struct {
	OwnerID int64
	ID      int64
	Name    string
	IAction
}

func (s *UpdateService) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Services.FindByID(ctx, s.OwnerID, s.ID); err != nil {
		return err
	}
	return writer.Services.UpdateName(ctx, s.ID, s.Name)
}

type DeleteService struct {
	OwnerID int64
	ID      int64
	IAction

	// Months the deletion touched via cascading record removal. The caller
	// schedules an opening sync for each one after the delete commits.
	Sources []ledger.Month
}

func (s *DeleteService) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := writer.Services.FindByID(ctx, s.OwnerID, s.ID); err != nil {
		return err
	}

	// Records go away with the service; capture their months first so their
	// target adjustments can be re-aggregated afterwards.
	records, err := writer.Records.List(ctx, s.OwnerID, nil, nil)
	if err != nil {
		return err
	}
	seen := map[ledger.Month]bool{}
	for _, rec := range records {
		if rec.ServiceID != s.ID {
			continue
		}
		m := ledger.Month{Year: rec.Year, Month: rec.Month}
		if !seen[m] {
			seen[m] = true
			s.Sources = append(s.Sources, m)
		}
	}

	return writer.Services.Delete(ctx, s.ID)
}
