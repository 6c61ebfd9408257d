// Package authn holds the register, login, and theme endpoints.
package authn

import (
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/config"
	"github.com/gastos-app/gastos-server/internal/operator"
	"github.com/gastos-app/gastos-server/internal/service"
	"github.com/gastos-app/gastos-server/internal/storage/user"
)

// allowedThemes is the DaisyUI theme list the client renders.
var allowedThemes = map[string]bool{
	"light": true, "cupcake": true, "bumblebee": true, "emerald": true,
	"corporate": true, "retro": true, "cyberpunk": true, "valentine": true,
	"garden": true, "lofi": true, "pastel": true, "fantasy": true,
	"wireframe": true, "cmyk": true, "autumn": true, "acid": true,
	"lemonade": true, "winter": true, "nord": true, "caramellatte": true,
	"silk": true, "dark": true, "synthwave": true, "forest": true,
	"halloween": true, "aqua": true, "black": true, "luxury": true,
	"dracula": true, "business": true, "night": true, "coffee": true,
	"dim": true, "sunset": true, "abyss": true,
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Handler struct {
	Users    *service.UserService
	Operator *operator.OperatorDelegator
	Env      *config.Config
	Logger   *logrus.Logger
}

func NewHandler(users *service.UserService, op *operator.OperatorDelegator, env *config.Config, logger *logrus.Logger) *Handler {
	return &Handler{Users: users, Operator: op, Env: env, Logger: logger}
}

func (h *Handler) tokenExpiry() time.Duration {
	return time.Duration(h.Env.JWTExpireHours) * time.Hour
}

// userBody is the user payload returned alongside tokens.
type userBody struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Theme    string `json:"theme"`
}

type tokenResponse struct {
	Token string   `json:"token"`
	User  userBody `json:"user"`
}

func (h *Handler) tokenFor(u *user.User) (tokenResponse, error) {
	token, err := auth.GenerateToken(u.ID, u.Username, u.Theme, h.Env.JWTSecret, h.tokenExpiry())
	if err != nil {
		return tokenResponse{}, err
	}
	return tokenResponse{
		Token: token,
		User: userBody{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			Theme:    u.Theme,
		},
	}, nil
}
