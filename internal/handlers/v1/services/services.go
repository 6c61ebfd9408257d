package services

import (
	"encoding/json"
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
	storageservice "github.com/gastos-app/gastos-server/internal/storage/service"
)

// Service is the API response model for a recurring service.
type Service struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func convertService(s storageservice.Service) Service {
	return Service{ID: s.ID, Name: s.Name}
}

type serviceBody struct {
	Name string `json:"name"`
}

// List handles GET /api/services.
func (h *Handler) List(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	services, err := h.Service.ListServices(req.Context(), claims.UserID)
	if err != nil {
		return respond.DomainError(w, err)
	}

	converted := make([]Service, len(services))
	for i, s := range services {
		converted[i] = convertService(s)
	}
	logData.AddData("count", len(converted))
	return respond.Success(w, http.StatusOK, converted)
}

// Get handles GET /api/services/{id}.
func (h *Handler) Get(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid service id")
	}

	s, err := h.Service.GetService(req.Context(), claims.UserID, id)
	if err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusOK, convertService(*s))
}

// Create handles POST /api/services.
func (h *Handler) Create(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	var body serviceBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.Name == "" {
		return respond.Error(w, respond.ErrInvalidRequest, "name is required")
	}

	action := &actions.CreateService{OwnerID: claims.UserID, Name: body.Name}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	logData.AddData("serviceID", action.ID)
	return respond.Success(w, http.StatusCreated, Service{ID: action.ID, Name: body.Name})
}

// Update handles PUT /api/services/{id}.
func (h *Handler) Update(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid service id")
	}

	var body serviceBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, nil)
	}
	if body.Name == "" {
		return respond.Error(w, respond.ErrInvalidRequest, "name is required")
	}

	action := &actions.UpdateService{OwnerID: claims.UserID, ID: id, Name: body.Name}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	return respond.Success(w, http.StatusOK, Service{ID: id, Name: body.Name})
}

// Delete handles DELETE /api/services/{id}. Removing a service drops its
// records, so every month they fed gets its adjustment re-aggregated.
func (h *Handler) Delete(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	id, ok := pathID(req)
	if !ok {
		return respond.Error(w, respond.ErrInvalidRequest, "invalid service id")
	}

	action := &actions.DeleteService{OwnerID: claims.UserID, ID: id}
	if err := h.Operator.Process(req.Context(), action); err != nil {
		return respond.DomainError(w, err)
	}
	h.scheduleSyncs(req.Context(), claims.UserID, action.Sources)

	logData.AddData("serviceID", id)
	return respond.Success(w, http.StatusOK, map[string]string{"message": "service deleted"})
}
