// Package respond writes the API's JSON envelopes and maps domain errors to
// HTTP statuses.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gastos-app/gastos-server/internal/ledger"
)

type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data"`
	Error   *APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrInvalidAmount      = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be a decimal number"}
	ErrInvalidDate        = &AppError{http.StatusBadRequest, "INVALID_DATE", "Date must be YYYY-MM-DD"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrDuplicate          = &AppError{http.StatusConflict, "DUPLICATE", "Resource already exists"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}
)

func JSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, status int, data any) error {
	return JSON(w, status, APIResponse{
		Success: true,
		Data:    data,
	})
}

func Error(w http.ResponseWriter, appErr *AppError, details any) error {
	return JSON(w, appErr.Status, APIResponse{
		Error: &APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		},
	})
}

// DomainError maps a storage or engine error onto the API taxonomy and
// writes it. It returns the original error so the handler can hand it to the
// logging wrapper.
func DomainError(w http.ResponseWriter, err error) error {
	var appErr *AppError
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		appErr = ErrResourceNotFound
	case errors.Is(err, ledger.ErrDuplicate):
		appErr = ErrDuplicate
	case errors.Is(err, ledger.ErrInvalidNumeric):
		appErr = ErrInvalidAmount
	default:
		appErr = ErrInternalError
	}

	_ = Error(w, appErr, nil)
	return err
}
