package authn

import (
	"encoding/json"
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
)

type themeBody struct {
	Theme string `json:"theme"`
}

// UpdateTheme handles PUT /api/auth/theme. A fresh token is issued so the
// client's claims carry the new theme.
func (h *Handler) UpdateTheme(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	var body themeBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if !allowedThemes[body.Theme] {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid theme")
	}

	action := &actions.UpdateTheme{UserID: claims.UserID, Theme: body.Theme}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}

	u, err := h.Users.GetUser(req.Context(), claims.UserID)
	if err != nil {
		return respond.DomainError(w, err)
	}
	u.Theme = body.Theme

	response, err := h.tokenFor(u)
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusOK, response)
}
