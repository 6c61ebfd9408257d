package transaction

import (
	"net/http"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/handlers/v1/respond"
	"github.com/gastos-app/gastos-server/internal/importer"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/operator/actions"
)

// maxImportSize caps the uploaded workbook at 10 MiB.
const maxImportSize = 10 << 20

type importResponse struct {
	Imported int                 `json:"imported"`
	Failed   int                 `json:"failed"`
	Errors   []importer.RowError `json:"errors,omitempty"`
}

// Import handles POST /api/transactions/import: a multipart form with one
// xlsx under "file". Rows that fail to parse or insert are reported
// individually; the rest import in a single transaction.
func (h *Handler) Import(w http.ResponseWriter, req *http.Request, logData *logging.LogData, claims *auth.Claims) error {
	if err := req.ParseMultipartForm(maxImportSize); err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, "expected multipart form with a file")
	}
	file, _, err := req.FormFile("file")
	if err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, "missing file")
	}
	defer file.Close()

	rows, rowErrs, err := importer.Parse(file)
	if err != nil {
		return respond.Error(w, respond.ErrInvalidRequest, "unreadable workbook")
	}

	action := &actions.ImportTransactions{
		OwnerID: claims.UserID,
		Rows:    rows,
		Logger:  h.Logger,
	}
	if len(rows) > 0 {
		if err := h.Operator.Process(req.Context(), action); err != nil {
			return respond.DomainError(w, err)
		}
	}

	allErrs := append(rowErrs, action.Failed...)
	logData.AddData("imported", action.Imported)
	logData.AddData("failed", len(allErrs))
	return respond.Success(w, http.StatusOK, importResponse{
		Imported: action.Imported,
		Failed:   len(allErrs),
		Errors:   allErrs,
	})
}
