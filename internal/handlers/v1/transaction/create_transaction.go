package transaction

import (
	"encoding/json"
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
)

type createTransactionBody struct {
	Date         string          `json:"date"`
	Name         string          `json:"name"`
	Amount       jsonDecimal     `json:"amount"`
	BalanceAfter optionalDecimal `json:"balanceAfter"`
	Description  string          `json:"description"`
	CategoryID   *int64          `json:"categoryId"`
}

// Create handles POST /api/transactions. A valid balanceAfter is stored
// verbatim as an explicit override; otherwise the engine computes it.
func (h *Handler) Create(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	var body createTransactionBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.Date == "" || body.Name == "" {
		return respond.Error(w, respond.ErrInvalidRequest, "date and name are required")
	}
	if body.Amount.Invalid || !body.Amount.Valid {
		return respond.Error(w, respond.ErrInvalidAmount, nil)
	}
	if body.BalanceAfter.Invalid {
		return respond.Error(w, respond.ErrInvalidAmount, "invalid balanceAfter")
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return respond.Error(w, respond.ErrInvalidDate, nil)
	}

	action := &actions.CreateTransaction{
		OwnerID:     claims.UserID,
		Date:        date,
		Name:        body.Name,
		Amount:      body.Amount.Value,
		Balance:     body.BalanceAfter.Value,
		Description: body.Description,
		CategoryID:  body.CategoryID,
		Logger:      h.Logger,
	}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	logData.AddData("transactionID", action.ID)

	t, err := h.Service.GetTransaction(req.Context(), claims.UserID, action.ID)
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusCreated, convert(*t))
}
