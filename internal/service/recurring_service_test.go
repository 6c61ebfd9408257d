package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastos-app/gastos-server/internal/ledger"
	storageservice "github.com/gastos-app/gastos-server/internal/storage/service"
)

type fakeServiceReader struct {
	services []storageservice.Service
}

func (f *fakeServiceReader) FindByID(_ context.Context, ownerID, id int64) (*storageservice.Service, error) {
	for _, s := range f.services {
		if s.ID == id && s.OwnerID == ownerID {
			return &s, nil
		}
	}
	return nil, ledger.ErrNotFound
}

func (f *fakeServiceReader) ListForOwner(_ context.Context, ownerID int64) ([]storageservice.Service, error) {
	var out []storageservice.Service
	for _, s := range f.services {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeRecordReader struct {
	records []ledger.ServiceRecord
}

func (f *fakeRecordReader) FindByID(_ context.Context, ownerID, id int64) (*ledger.ServiceRecord, error) {
	for _, r := range f.records {
		if r.ID == id && r.OwnerID == ownerID {
			return &r, nil
		}
	}
	return nil, ledger.ErrNotFound
}

func (f *fakeRecordReader) List(_ context.Context, ownerID int64, year, month *int) ([]ledger.ServiceRecord, error) {
	var out []ledger.ServiceRecord
	for _, r := range f.records {
		if r.OwnerID != ownerID {
			continue
		}
		if year != nil && r.Year != *year {
			continue
		}
		if month != nil && int(r.Month) != *month {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func newRecurring() *RecurringService {
	services := &fakeServiceReader{services: []storageservice.Service{
		{ID: 5, OwnerID: testOwner, Name: "Electricity"},
	}}
	records := &fakeRecordReader{records: []ledger.ServiceRecord{
		{ID: 1, OwnerID: testOwner, ServiceID: 5, Year: 2025, Month: time.March,
			Amount: decimal.NewNullDecimal(decimal.RequireFromString("60.00"))},
		{ID: 2, OwnerID: testOwner, ServiceID: 5, Year: 2025, Month: time.April,
			Amount: decimal.NewNullDecimal(decimal.RequireFromString("58.00"))},
	}}
	return NewRecurringService(services, records)
}

func TestListRecords_AttachesServiceName(t *testing.T) {
	svc := newRecurring()

	records, err := svc.ListRecords(context.Background(), testOwner, nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Electricity", records[0].ServiceName)
}

func TestListRecords_MonthFilter(t *testing.T) {
	svc := newRecurring()

	year, month := 2025, 4
	records, err := svc.ListRecords(context.Background(), testOwner, &year, &month)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.EqualValues(t, 2, records[0].ID)
}

func TestListRecords_NoResults(t *testing.T) {
	svc := newRecurring()

	records, err := svc.ListRecords(context.Background(), testOwner+1, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestGetService_OtherOwnerHidden(t *testing.T) {
	svc := newRecurring()

	_, err := svc.GetService(context.Background(), testOwner+1, 5)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}
