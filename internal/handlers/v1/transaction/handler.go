// Package transaction holds the ledger entry endpoints, including the xlsx
// import.
package transaction

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/gastos-app/gastos-server/internal/operator"
	"github.com/gastos-app/gastos-server/internal/service"
)

const dateLayout = "2006-01-02"

type Handler struct {
	Service  *service.TransactionService
	Operator *operator.OperatorDelegator
	Logger   *logrus.Logger
}

func NewHandler(svc *service.TransactionService, op *operator.OperatorDelegator, logger *logrus.Logger) *Handler {
	return &Handler{Service: svc, Operator: op, Logger: logger}
}

// Transaction is the API response model for a ledger entry.
type Transaction struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	Name          string  `json:"name"`
	Amount        string  `json:"amount"`
	BalanceAfter  *string `json:"balanceAfter"`
	Description   string  `json:"description,omitempty"`
	CategoryID    *int64  `json:"categoryId"`
	CategoryName  string  `json:"categoryName,omitempty"`
	CategoryColor string  `json:"categoryColor,omitempty"`
}

func convert(t service.Transaction) Transaction {
	out := Transaction{
		ID:            t.ID,
		Date:          t.Date.Format(dateLayout),
		Name:          t.Name,
		Amount:        t.Amount.StringFixed(2),
		Description:   t.Description,
		CategoryID:    t.CategoryID,
		CategoryName:  t.CategoryName,
		CategoryColor: t.CategoryColor,
	}
	if t.BalanceAfter.Valid {
		s := t.BalanceAfter.Decimal.StringFixed(2)
		out.BalanceAfter = &s
	}
	return out
}

func pathID(req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(req.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// jsonDecimal accepts a decimal sent either as a JSON number or a string.
// A value that parses as neither sets Invalid instead of failing the whole
// body, so the handler can report which field was bad.
type jsonDecimal struct {
	Valid   bool
	Invalid bool
	Value   decimal.Decimal
}

func (j *jsonDecimal) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) > 1 && s[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			j.Invalid = true
			return nil
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		j.Invalid = true
		return nil
	}
	j.Valid = true
	j.Value = d
	return nil
}

// optionalDecimal distinguishes an absent field from an explicit null, so a
// client can clear a balance override by sending null.
type optionalDecimal struct {
	Set     bool
	Invalid bool
	Value   decimal.NullDecimal
}

func (o *optionalDecimal) UnmarshalJSON(b []byte) error {
	o.Set = true
	var d jsonDecimal
	_ = d.UnmarshalJSON(b)
	o.Invalid = d.Invalid
	if d.Valid {
		o.Value = decimal.NewNullDecimal(d.Value)
	}
	return nil
}

// optionalID does the same for nullable id fields.
type optionalID struct {
	Set   bool
	Value *int64
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}
