package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gastos-app/gastos-server/internal/ledger"
	"github.com/gastos-app/gastos-server/internal/logging"
)

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging()
	return logging.NewLogData(logger)
}

func TestHandler_ReportsFailedSyncs(t *testing.T) {
	health := &ledger.SyncHealth{}
	health.RecordFailure()
	health.RecordFailure()

	statusHandler := NewHandler(health)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)

	var body statusBody
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.EqualValues(t, 2, body.FailedSyncs)
}

func TestHandler_CleanCounter(t *testing.T) {
	statusHandler := NewHandler(&ledger.SyncHealth{})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	var body statusBody
	require.NoError(t, json.NewDecoder(w.Result().Body).Decode(&body))
	assert.EqualValues(t, 0, body.FailedSyncs)
}
