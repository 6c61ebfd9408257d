package category

import (
	"encoding/json"
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
)

type updateCategoryBody struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// Update handles PUT /api/categories/{id}.
func (h *Handler) Update(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid category id")
	}

	var body updateCategoryBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.Name == nil && body.Color == nil {
		return respond.Error(w, respond.ErrInvalidRequest, "nothing to update")
	}
	if body.Name != nil && *body.Name == "" {
		return respond.Error(w, respond.ErrInvalidRequest, "name cannot be empty")
	}
	if body.Color != nil && !colorAllowed(*body.Color) {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid color")
	}

	action := &actions.UpdateCategory{
		OwnerID: claims.UserID,
		ID:      id,
		Name:    body.Name,
		Color:   body.Color,
	}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}

	c, err := h.Service.GetCategory(req.Context(), claims.UserID, id)
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusOK, convert(*c))
}
