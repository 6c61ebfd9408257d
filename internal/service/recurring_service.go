package service

import (
	"context"

	"github.com/gastos-app/gastos-server/internal/ledger"
	storageservice "github.com/gastos-app/gastos-server/internal/storage/service"
)

type serviceReader interface {
	FindByID(ctx context.Context, ownerID, id int64) (*storageservice.Service, error)
	ListForOwner(ctx context.Context, ownerID int64) ([]storageservice.Service, error)
}

type recordReader interface {
	FindByID(ctx context.Context, ownerID, id int64) (*ledger.ServiceRecord, error)
	List(ctx context.Context, ownerID int64, year, month *int) ([]ledger.ServiceRecord, error)
}

// RecurringService handles read logic for recurring services and their
// monthly records.
type RecurringService struct {
	services serviceReader
	records  recordReader
}

func NewRecurringService(services serviceReader, records recordReader) *RecurringService {
	return &RecurringService{services: services, records: records}
}

func (s *RecurringService) ListServices(ctx context.Context, ownerID int64) ([]storageservice.Service, error) {
	return s.services.ListForOwner(ctx, ownerID)
}

func (s *RecurringService) GetService(ctx context.Context, ownerID, id int64) (*storageservice.Service, error) {
	return s.services.FindByID(ctx, ownerID, id)
}

// ListRecords returns the owner's service records, optionally narrowed by
// year and month, with the service name attached.
func (s *RecurringService) ListRecords(ctx context.Context, ownerID int64, year, month *int) ([]Record, error) {
	records, err := s.records.List(ctx, ownerID, year, month)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	services, err := s.services.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(services))
	for _, svc := range services {
		names[svc.ID] = svc.Name
	}

	converted := make([]Record, len(records))
	for i, rec := range records {
		converted[i] = Record{
			ID:          rec.ID,
			ServiceID:   rec.ServiceID,
			ServiceName: names[rec.ServiceID],
			Year:        rec.Year,
			Month:       rec.Month,
			Amount:      rec.Amount,
		}
	}
	return converted, nil
}

func (s *RecurringService) GetRecord(ctx context.Context, ownerID, id int64) (*ledger.ServiceRecord, error) {
	return s.records.FindByID(ctx, ownerID, id)
}
