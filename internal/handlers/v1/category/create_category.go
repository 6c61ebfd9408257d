package category

import (
	"encoding/json"
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
)

type createCategoryBody struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Create handles POST /api/categories. An omitted color falls back to the
// first palette label.
func (h *Handler) Create(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	var body createCategoryBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.Name == "" {
		return respond.Error(w, respond.ErrInvalidRequest, "name is required")
	}
	if body.Color == "" {
		body.Color = allowedColors[0]
	}
	if !colorAllowed(body.Color) {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid color")
	}

	action := &actions.CreateCategory{
		OwnerID: claims.UserID,
		Name:    body.Name,
		Color:   body.Color,
	}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	logData.AddData("categoryID", action.ID)

	return respond.Success(w, http.StatusCreated, Category{
		ID:    action.ID,
		Name:  body.Name,
		Color: body.Color,
	})
}
