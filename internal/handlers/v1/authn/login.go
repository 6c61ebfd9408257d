package authn

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/logging"
)

type loginBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Either email or username identifies
// the account.
func (h *Handler) Login(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	var body loginBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}

	identifier := body.Email
	if identifier == "" {
		identifier = body.Username
	}
	if identifier == "" || body.Password == "" {
		return respond.Error(w, respond.ErrInvalidRequest, "email/username and password are required")
	}

	u, err := h.Users.FindForLogin(req.Context(), identifier)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return respond.Error(w, respond.ErrInvalidCredentials, nil)
		}
		return respond.DomainError(w, err)
	}
	if !auth.CheckPassword(u.PasswordHash, body.Password) {
		return respond.Error(w, respond.ErrInvalidCredentials, nil)
	}
	logData.AddData("ownerID", u.ID)

	response, err := h.tokenFor(u)
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusOK, response)
}
