package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irafid364-byte/Botie/appctx"
)

var statusStartedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func setupStatusRouter(t *testing.T, appCtx *appctx.AppContext, now time.Time) *mux.Router {
	t.Helper()
	router := mux.NewRouter()
	NewStatusHandler(appCtx, func() time.Time { return now }).SetupEndpoints(router)
	return router
}

func doGet(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleRoot(t *testing.T) {
	now := statusStartedAt.Add(time.Minute)

	t.Run("before the gateway is ready", func(t *testing.T) {
		router := setupStatusRouter(t, appctx.NewAppContext(statusStartedAt), now)

		rec, body := doGet(t, router, "/")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "Discord Bot is Running", body["status"])
		assert.Equal(t, "Starting...", body["bot"])
		assert.Equal(t, "2025-06-01T12:01:00Z", body["timestamp"])
		assert.Equal(t, "Vouch bot is online and ready!", body["message"])
	})

	t.Run("after login", func(t *testing.T) {
		appCtx := appctx.NewAppContext(statusStartedAt)
		appCtx.SetBotIdentity("1", "vouchbot#0420")
		router := setupStatusRouter(t, appCtx, now)

		_, body := doGet(t, router, "/")

		assert.Equal(t, "vouchbot#0420", body["bot"])
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("reports offline before login", func(t *testing.T) {
		router := setupStatusRouter(t, appctx.NewAppContext(statusStartedAt), statusStartedAt.Add(90*time.Second))

		rec, body := doGet(t, router, "/health")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", body["status"])
		assert.Equal(t, "Offline", body["bot"])
		uptime, ok := body["uptime"].(float64)
		require.True(t, ok, "uptime must be numeric")
		assert.Equal(t, 90.0, uptime)
	})

	t.Run("uptime is never negative", func(t *testing.T) {
		router := setupStatusRouter(t, appctx.NewAppContext(statusStartedAt), statusStartedAt.Add(-time.Hour))

		_, body := doGet(t, router, "/health")

		uptime, ok := body["uptime"].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, uptime, 0.0)
	})

	t.Run("reports bot tag after login", func(t *testing.T) {
		appCtx := appctx.NewAppContext(statusStartedAt)
		appCtx.SetBotIdentity("1", "vouchbot")
		router := setupStatusRouter(t, appCtx, statusStartedAt)

		_, body := doGet(t, router, "/health")

		assert.Equal(t, "vouchbot", body["bot"])
	})
}

func TestStatusEndpoints_RejectOtherMethods(t *testing.T) {
	router := setupStatusRouter(t, appctx.NewAppContext(statusStartedAt), statusStartedAt)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestNewStatusHandler_DefaultClock(t *testing.T) {
	handler := NewStatusHandler(appctx.NewAppContext(time.Now()), nil)

	rec := httptest.NewRecorder()
	handler.HandleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, body.Uptime, 0.0)
}
