package actions

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
)

// SyncOpening re-aggregates one source month's service records into the next
// month's opening adjustment and recomputes that month's balances. Scheduled
// after a record mutation commits; its error is counted and swallowed by the
// caller, never surfaced to the client.
type SyncOpening struct {
	OwnerID int64
	Source  ledger.Month
	Health  *ledger.SyncHealth
	Logger  *logrus.Logger
	IAction
}

func (s *SyncOpening) Perform(ctx context.Context, writer *storage.Writer) error {
	sync := ledger.NewOpeningSync(
		writer.Records,
		writer.Adjustments,
		recalculator(writer, s.Logger),
		s.Health,
		s.Logger,
	)
	return sync.Sync(ctx, s.OwnerID, s.Source)
}
