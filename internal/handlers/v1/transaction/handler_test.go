package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastos-app/gastos-server/internal/auth"
	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/logging"
	"github.com/gastos-app/gastos-server/internal/service"
	storagecategory "github.com/gastos-app/gastos-server/internal/storage/category"
)

const testOwner int64 = 9

type fakeEntries struct {
	entries []ledger.Entry
}

func (f *fakeEntries) FindByID(_ context.Context, ownerID, id int64) (*ledger.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id && e.OwnerID == ownerID {
			return &e, nil
		}
	}
	return nil, ledger.ErrNotFound
}

func (f *fakeEntries) ListForOwner(_ context.Context, ownerID int64, m *ledger.Month) ([]ledger.Entry, error) {
	var out []ledger.Entry
	for _, e := range f.entries {
		if e.OwnerID != ownerID {
			continue
		}
		if m != nil && !m.Contains(e.Date) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fakeCategories struct {
	categories []storagecategory.Category
}

func (f *fakeCategories) FindByID(_ context.Context, ownerID, id int64) (*storagecategory.Category, error) {
	for _, c := range f.categories {
		if c.ID == id && c.OwnerID == ownerID {
			return &c, nil
		}
	}
	return nil, ledger.ErrNotFound
}

func (f *fakeCategories) ListForOwner(_ context.Context, ownerID int64) ([]storagecategory.Category, error) {
	var out []storagecategory.Category
	for _, c := range f.categories {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newTestHandler() *Handler {
	catID := int64(4)
	entries := &fakeEntries{entries: []ledger.Entry{
		{
			ID: 1, OwnerID: testOwner,
			Date:         time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			Name:         "Salary",
			Amount:       decimal.RequireFromString("1500"),
			BalanceAfter: decimal.NewNullDecimal(decimal.RequireFromString("1500")),
			CategoryID:   &catID,
		},
	}}
	categories := &fakeCategories{categories: []storagecategory.Category{
		{ID: 4, OwnerID: testOwner, Name: "Income", Color: "Exito"},
	}}
	logger := logging.SetupLogging()
	return NewHandler(service.NewTransactionService(entries, categories), nil, logger)
}

func createTestLogData() *logging.LogData {
	return logging.NewLogData(logging.SetupLogging())
}

func testClaims() *auth.Claims {
	return &auth.Claims{UserID: testOwner}
}

func TestList_ConvertsModels(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	w := httptest.NewRecorder()

	err := h.List(w, req, createTestLogData(), testClaims())
	require.NoError(t, err)
	assert.Equal(t, 200, w.Result().StatusCode)

	var envelope struct {
		Success bool          `json:"success"`
		Data    []Transaction `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	require.Len(t, envelope.Data, 1)

	tx := envelope.Data[0]
	assert.Equal(t, "2025-03-05", tx.Date)
	assert.Equal(t, "1500.00", tx.Amount)
	require.NotNil(t, tx.BalanceAfter)
	assert.Equal(t, "1500.00", *tx.BalanceAfter)
	assert.Equal(t, "Income", tx.CategoryName)
	assert.Equal(t, "Exito", tx.CategoryColor)
}

func TestList_BadMonthFilter(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/transactions?year=2025&month=13", nil)
	w := httptest.NewRecorder()

	err := h.List(w, req, createTestLogData(), testClaims())
	assert.NoError(t, err)
	assert.Equal(t, 400, w.Result().StatusCode)
}

func TestGet_NotFound(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/transactions/99", nil)
	req.SetPathValue("id", "99")
	w := httptest.NewRecorder()

	err := h.Get(w, req, createTestLogData(), testClaims())
	assert.ErrorIs(t, err, ledger.ErrNotFound)
	assert.Equal(t, 404, w.Result().StatusCode)
}

func TestGet_BadID(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/transactions/abc", nil)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	err := h.Get(w, req, createTestLogData(), testClaims())
	assert.NoError(t, err)
	assert.Equal(t, 400, w.Result().StatusCode)
}

func TestCreate_RejectsBadAmount(t *testing.T) {
	h := newTestHandler()
	body := `{"date":"2025-03-05","name":"Groceries","amount":"not-a-number"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	w := httptest.NewRecorder()

	err := h.Create(w, req, createTestLogData(), testClaims())
	assert.NoError(t, err)
	assert.Equal(t, 400, w.Result().StatusCode)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&envelope))
	assert.Equal(t, "INVALID_AMOUNT", envelope.Error.Code)
}

func TestCreate_RejectsBadDate(t *testing.T) {
	h := newTestHandler()
	body := `{"date":"05/03/2025","name":"Groceries","amount":"10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	w := httptest.NewRecorder()

	err := h.Create(w, req, createTestLogData(), testClaims())
	assert.NoError(t, err)
	assert.Equal(t, 400, w.Result().StatusCode)
}

func TestCreate_RequiresNameAndDate(t *testing.T) {
	h := newTestHandler()
	body := `{"amount":"10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	w := httptest.NewRecorder()

	err := h.Create(w, req, createTestLogData(), testClaims())
	assert.NoError(t, err)
	assert.Equal(t, 400, w.Result().StatusCode)
}

func TestUpdate_RejectsBadBalance(t *testing.T) {
	h := newTestHandler()
	body := `{"balanceAfter":"abc"}`
	req := httptest.NewRequest(http.MethodPut, "/api/transactions/1", strings.NewReader(body))
	req.SetPathValue("id", "1")
	w := httptest.NewRecorder()

	err := h.Update(w, req, createTestLogData(), testClaims())
	assert.NoError(t, err)
	assert.Equal(t, 400, w.Result().StatusCode)
}

func TestOptionalDecimal_NullVersusAbsent(t *testing.T) {
	var body updateTransactionBody
	require.NoError(t, json.Unmarshal([]byte(`{"balanceAfter":null}`), &body))
	assert.True(t, body.BalanceAfter.Set)
	assert.False(t, body.BalanceAfter.Value.Valid)

	var absent updateTransactionBody
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.BalanceAfter.Set)
}

func TestJSONDecimal_AcceptsNumberAndString(t *testing.T) {
	var fromNumber jsonDecimal
	require.NoError(t, json.Unmarshal([]byte(`10.5`), &fromNumber))
	assert.True(t, fromNumber.Valid)
	assert.Equal(t, "10.5", fromNumber.Value.String())

	var fromString jsonDecimal
	require.NoError(t, json.Unmarshal([]byte(`"-42.50"`), &fromString))
	assert.True(t, fromString.Valid)
	assert.Equal(t, "-42.5", fromString.Value.String())
}
