// Package services holds the recurring-service and service-record endpoints.
package services

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/operator"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
	"github.com/gastos-app/gastos-server/internal/service"
)

type Handler struct {
	Service  *service.RecurringService
	Operator *operator.OperatorDelegator
	Health   *ledger.SyncHealth
	Logger   *logrus.Logger
}

func NewHandler(svc *service.RecurringService, op *operator.OperatorDelegator, health *ledger.SyncHealth, logger *logrus.Logger) *Handler {
	return &Handler{Service: svc, Operator: op, Health: health, Logger: logger}
}

func pathID(req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(req.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// scheduleSyncs runs an opening sync per touched source month once the
// record mutation has committed. Sync failures are logged and counted; the
// client's mutation already succeeded.
func (h *Handler) scheduleSyncs(ctx context.Context, ownerID int64, sources []ledger.Month) {
	for _, source := range sources {
		action := &actions.SyncOpening{
			OwnerID: ownerID,
			Source:  source,
			Health:  h.Health,
			Logger:  h.Logger,
		}
		if err := h.Operator.Process(ctx, action); err != nil {
			h.Logger.WithError(err).WithFields(logrus.Fields{
				"ownerID": ownerID,
				"source":  source.String(),
			}).Error("Handler.scheduleSyncs.failed")
		}
	}
}
