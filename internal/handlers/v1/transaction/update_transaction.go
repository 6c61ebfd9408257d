package transaction

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
)

type updateTransactionBody struct {
	Date         *string         `json:"date"`
	Name         *string         `json:"name"`
	Amount       *jsonDecimal    `json:"amount"`
	BalanceAfter optionalDecimal `json:"balanceAfter"`
	Description  *string         `json:"description"`
	CategoryID   optionalID      `json:"categoryId"`
}

// Update handles PUT /api/transactions/{id}. Omitted fields keep their
// stored values; a null balanceAfter clears the explicit override and a null
// categoryId uncategorizes the entry.
func (h *Handler) Update(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid transaction id")
	}

	var body updateTransactionBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.Amount != nil && (body.Amount.Invalid || !body.Amount.Valid) {
		return respond.Error(w, respond.ErrInvalidAmount, nil)
	}
	if body.BalanceAfter.Invalid {
		return respond.Error(w, respond.ErrInvalidAmount, "invalid balanceAfter")
	}
	if body.Name != nil && *body.Name == "" {
		return respond.Error(w, respond.ErrInvalidRequest, "name cannot be empty")
	}

	var date *time.Time
	if body.Date != nil {
		parsed, err := parseDate(*body.Date)
		if err != nil {
			return respond.Error(w, respond.ErrInvalidDate, nil)
		}
		date = &parsed
	}

	var amount *decimal.Decimal
	if body.Amount != nil {
		amount = &body.Amount.Value
	}

	action := &actions.UpdateTransaction{
		OwnerID:     claims.UserID,
		ID:          id,
		Date:        date,
		Name:        body.Name,
		Amount:      amount,
		Balance:     body.BalanceAfter.Value,
		BalanceSet:  body.BalanceAfter.Set,
		Description: body.Description,
		CategoryID:  body.CategoryID.Value,
		CategorySet: body.CategoryID.Set,
		Logger:      h.Logger,
	}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	logData.AddData("transactionID", id)

	t, err := h.Service.GetTransaction(req.Context(), claims.UserID, id)
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusOK, convert(*t))
}
