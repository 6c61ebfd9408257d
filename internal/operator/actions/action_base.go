package actions

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// recalculator builds the balance engine over the transactional writer, so
// every balance it touches lands in the same unit of work as the mutation
// that triggered it.
func recalculator(writer *storage.Writer, logger *logrus.Logger) *ledger.Recalculator {
	return ledger.NewRecalculator(writer.Entries, writer.Adjustments, logger)
}
