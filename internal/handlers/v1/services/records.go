package services

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
	"github.com/gastos-app/gastos-server/internal/service"
)

// Record is the API response model for a service record.
type Record struct {
	ID          int64   `json:"id"`
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName,omitempty"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	Amount      *string `json:"amount"`
}

func convertRecord(r service.Record) Record {
	out := Record{
		ID:          r.ID,
		ServiceID:   r.ServiceID,
		ServiceName: r.ServiceName,
		Year:        r.Year,
		Month:       int(r.Month),
	}
	if r.Amount.Valid {
		s := r.Amount.Decimal.StringFixed(2)
		out.Amount = &s
	}
	return out
}

// ListRecords handles GET /api/services/records with optional year and month
// query parameters.
func (h *Handler) ListRecords(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	var year, month *int
	if v := req.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return respond.Error(w, respond.ErrInvalidRequest, "invalid year")
		}
		year = &parsed
	}
	if v := req.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			return respond.Error(w, respond.ErrInvalidRequest, "invalid month")
		}
		month = &parsed
	}

	records, err := h.Service.ListRecords(req.Context(), claims.UserID, year, month)
	if err != nil {
		return respond.DomainError(w, err)
	}

	converted := make([]Record, len(records))
	for i, r := range records {
		converted[i] = convertRecord(r)
	}
	logData.AddData("count", len(converted))
	return respond.Success(w, http.StatusOK, converted)
}

type createRecordBody struct {
	ServiceID int64       `json:"serviceId"`
	Year      int         `json:"year"`
	Month     int         `json:"month"`
	Amount    json.Number `json:"amount"`
}

// CreateRecord handles POST /api/services/records. The record's month gets
// its total re-synced into the following month's opening balance.
func (h *Handler) CreateRecord(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	var body createRecordBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.ServiceID <= 0 || body.Year <= 0 || body.Month < 1 || body.Month > 12 {
		return respond.Error(w, respond.ErrInvalidRequest, "serviceId, year and month are required")
	}
	amount, err := decimal.NewFromString(body.Amount.String())
	if err != nil {
		return respond.Error(w, respond.ErrInvalidAmount, nil)
	}

	action := &actions.CreateServiceRecord{
		OwnerID:   claims.UserID,
		ServiceID: body.ServiceID,
		Year:      body.Year,
		Month:     time.Month(body.Month),
		Amount:    amount,
	}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	h.scheduleSyncs(req.Context(), claims.UserID, action.Sources)

	logData.AddData("recordID", action.ID)
	amountStr := amount.StringFixed(2)
	return respond.Success(w, http.StatusCreated, Record{
		ID:        action.ID,
		ServiceID: body.ServiceID,
		Year:      body.Year,
		Month:     body.Month,
		Amount:    &amountStr,
	})
}

type updateRecordBody struct {
	Year   *int         `json:"year"`
	Month  *int         `json:"month"`
	Amount *json.Number `json:"amount"`
}

// UpdateRecord handles PUT /api/services/records/{id}. Moving a record to
// another month re-syncs both the old and the new month.
func (h *Handler) UpdateRecord(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid record id")
	}

	var body updateRecordBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.Month != nil && (*body.Month < 1 || *body.Month > 12) {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid month")
	}

	var amount *decimal.Decimal
	if body.Amount != nil {
		parsed, err := decimal.NewFromString(body.Amount.String())
		if err != nil {
			return respond.Error(w, respond.ErrInvalidAmount, nil)
		}
		amount = &parsed
	}

	var month *time.Month
	if body.Month != nil {
		m := time.Month(*body.Month)
		month = &m
	}

	action := &actions.UpdateServiceRecord{
		OwnerID: claims.UserID,
		ID:      id,
		Year:    body.Year,
		Month:   month,
		Amount:  amount,
	}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	h.scheduleSyncs(req.Context(), claims.UserID, action.Sources)

	logData.AddData("recordID", id)
	return respond.Success(w, http.StatusOK, map[string]string{"message": "record updated"})
}

// DeleteRecord handles DELETE /api/services/records/{id}. The sync uses the
// record's month captured before the row went away.
func (h *Handler) DeleteRecord(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid record id")
	}

	action := &actions.DeleteServiceRecord{OwnerID: claims.UserID, ID: id}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	h.scheduleSyncs(req.Context(), claims.UserID, action.Sources)

	logData.AddData("recordID", id)
	return respond.Success(w, http.StatusOK, map[string]string{"message": "record deleted"})
}
