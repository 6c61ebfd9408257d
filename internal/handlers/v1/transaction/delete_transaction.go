package transaction

import (
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
)

// Delete handles DELETE /api/transactions/{id}. The remaining entries of the
// month are recomputed in the same transaction.
func (h *Handler) Delete(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid transaction id")
	}

	action := &actions.DeleteTransaction{
		OwnerID: claims.UserID,
		ID:      id,
		Logger:  h.Logger,
	}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	logData.AddData("transactionID", id)
	return respond.Success(w, http.StatusOK, map[string]string{"message": "transaction deleted"})
}
