package status

import (
	"net/http"

	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/logging"
)

type Handler struct {
	Health *ledger.SyncHealth
}

func NewHandler(health *ledger.SyncHealth) Handler {
	return Handler{Health: health}
}

type statusBody struct {
	Status      string `json:"status"`
	FailedSyncs int64  `json:"failedSyncs"`
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	logData.AddData("failedSyncs", h.Health.Failures())
	return respond.JSON(w, http.StatusOK, statusBody{
		Status:      "ok",
		FailedSyncs: h.Health.Failures(),
	})
}
