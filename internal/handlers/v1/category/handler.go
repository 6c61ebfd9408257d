// Package category holds the category CRUD endpoints.
package category

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/operator"
	"github.com/gastos-app/gastos-server/internal/service"
	storagecategory "github.com/gastos-app/gastos-server/internal/storage/category"
)

// allowedColors are the palette labels the client maps onto its theme.
var allowedColors = []string{
	"Primario", "Secundario", "Acento", "Informacion", "Exito", "Advertencia", "Error",
}

func colorAllowed(color string) bool {
	for _, c := range allowedColors {
		if c == color {
			return true
		}
	}
	return false
}

type Handler struct {
	Service  *service.CategoryService
	Operator *operator.OperatorDelegator
	Logger   *logrus.Logger
}

func NewHandler(svc *service.CategoryService, op *operator.OperatorDelegator, logger *logrus.Logger) *Handler {
	return &Handler{Service: svc, Operator: op, Logger: logger}
}

// Category is the API response model for a category.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func convert(c storagecategory.Category) Category {
	return Category{ID: c.ID, Name: c.Name, Color: c.Color}
}

func pathID(req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(req.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}
