package transaction

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/service"
)

// List handles GET /api/transactions. Optional year and month query
// parameters narrow the listing to one month.
func (h *Handler) List(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	var filter *service.TransactionFilter
	yearParam := req.URL.Query().Get("year")
	monthParam := req.URL.Query().Get("month")
	if yearParam != "" || monthParam != "" {
		year, err := strconv.Atoi(yearParam)
		if err != nil {
			return respond.Error(w, respond.ErrInvalidRequest, "invalid year")
		}
		month, err := strconv.Atoi(monthParam)
		if err != nil || month < 1 || month > 12 {
			return respond.Error(w, respond.ErrInvalidRequest, "invalid month")
		}
		filter = &service.TransactionFilter{Year: year, Month: time.Month(month)}
	}

	transactions, err := h.Service.ListTransactions(req.Context(), claims.UserID, filter)
	if err != nil {
		return respond.DomainError(w, err)
	}

	converted := make([]Transaction, len(transactions))
	for i, t := range transactions {
		converted[i] = convert(t)
	}
	logData.AddData("count", len(converted))
	return respond.Success(w, http.StatusOK, converted)
}

// Get handles GET /api/transactions/{id}.
func (h *Handler) Get(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid transaction id")
	}

	t, err := h.Service.GetTransaction(req.Context(), claims.UserID, id)
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusOK, convert(*t))
}
