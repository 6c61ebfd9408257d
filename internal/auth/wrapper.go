package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gastos-app/gastos-server/internal/logging"
)

var errNoToken = errors.New("auth: missing or invalid bearer token")

// Handler is an authenticated request handler: the wrapper resolved the
// caller's identity before it runs.
type Handler func(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *Claims) error

// Wrap turns an authenticated Handler into the shape LoggingWrapper expects,
// rejecting requests without a valid bearer token.
func Wrap(secret string, handler Handler) func(http.ResponseWriter, *http.Request, *logging.LogData) error {
	return func(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
		header := req.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing bearer token"}`))
			return errNoToken
		}

		claims, err := ValidateToken(token, secret)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid or expired token"}`))
			return err
		}

		logData.AddData("ownerID", claims.UserID)
		return handler(w, req, logData, claims)
	}
}
