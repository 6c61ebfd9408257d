package category

import (
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
)

// Delete handles DELETE /api/categories/{id}. Entries referencing the
// category are kept and uncategorized.
func (h *Handler) Delete(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid category id")
	}

	action := &actions.DeleteCategory{OwnerID: claims.UserID, ID: id}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	logData.AddData("categoryID", id)
	return respond.Success(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
