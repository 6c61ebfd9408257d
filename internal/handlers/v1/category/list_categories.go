package category

import (
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
)

// List handles GET /api/categories.
func (h *Handler) List(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	categories, err := h.Service.ListCategories(req.Context(), claims.UserID)
	if err != nil {
		return respond.DomainError(w, err)
	}

	converted := make([]Category, len(categories))
	for i, c := range categories {
		converted[i] = convert(c)
	}
	logData.AddData("count", len(converted))
	return respond.Success(w, http.StatusOK, converted)
}

// Get handles GET /api/categories/{id}.
func (h *Handler) Get(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid category id")
	}

	c, err := h.Service.GetCategory(req.Context(), claims.UserID, id)
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusOK, convert(*c))
}
