package authn

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
	"github.com/gastos-app/gastos-server/internal/storage/user"
)

type registerBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Theme    string `json:"theme"`
}

// Register handles POST /api/auth/register.
func (h *Handler) Register(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	var body registerBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.Username == "" || body.Email == "" || body.Password == "" {
		return respond.Error(w, respond.ErrInvalidRequest, "username, email and password are required")
	}
	if !emailPattern.MatchString(body.Email) {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid email format")
	}
	if body.Theme == "" {
		body.Theme = "light"
	}
	if !allowedThemes[body.Theme] {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid theme")
	}

	hash, err := auth.HashPassword(body.Password, h.Env.BcryptCost)
	if err != nil {
		return respond.DomainError(w, err)
	}

	action := &actions.RegisterUser{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: hash,
		Theme:        body.Theme,
	}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		if errors.Is(err, ledger.ErrDuplicate) {
			return respond.Error(w, respond.ErrDuplicate, "username or email already registered")
		}
		return respond.DomainError(w, err)
	}
	logData.AddData("ownerID", action.ID)

	response, err := h.tokenFor(&user.User{
		ID:       action.ID,
		Username: body.Username,
		Email:    body.Email,
		Theme:    body.Theme,
	})
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusCreated, response)
}
