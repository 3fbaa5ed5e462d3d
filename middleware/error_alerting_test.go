package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookRecorder struct {
	mu       sync.Mutex
	payloads []map[string]any
}

func (r *webhookRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		assert.NoError(t, err)

		var payload map[string]any
		assert.NoError(t, json.Unmarshal(body, &payload))

		r.mu.Lock()
		r.payloads = append(r.payloads, payload)
		r.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}
}

func (r *webhookRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

func setupAlerting(t *testing.T) (*ErrorAlertMiddleware, *webhookRecorder) {
	recorder := &webhookRecorder{}
	server := httptest.NewServer(recorder.handler(t))
	t.Cleanup(server.Close)

	alerts := NewErrorAlertMiddleware(SlackAlertConfig{
		WebhookURL:  server.URL,
		Environment: "dev",
		AppName:     "botie",
		LogsURL:     "https://logs.example/botie",
	}, server.Client())
	return alerts, recorder
}

func TestAlertOnError_SendsBlocks(t *testing.T) {
	alerts, recorder := setupAlerting(t)

	alerts.AlertOnError(errors.New("HTTP 401 Unauthorized"), "Command registration")
	alerts.Wait()

	require.Equal(t, 1, recorder.count())
	payload := recorder.payloads[0]
	assert.Equal(t, "Command registration: HTTP 401 Unauthorized", payload["text"])

	blocks, ok := payload["blocks"].([]any)
	require.True(t, ok)
	require.Len(t, blocks, 4)
	header := blocks[0].(map[string]any)
	assert.Equal(t, "header", header["type"])
	assert.Equal(t, "🚨 [dev] [botie] Error Alert", header["text"].(map[string]any)["text"])
}

func TestAlertOnError_Deduplicates(t *testing.T) {
	alerts, recorder := setupAlerting(t)

	alerts.AlertOnError(errors.New("boom"), "Task: vouch")
	alerts.AlertOnError(errors.New("boom"), "Task: vouch")
	alerts.AlertOnError(errors.New("different"), "Task: vouch")
	alerts.Wait()

	assert.Equal(t, 2, recorder.count())
}

func TestAlertOnError_DisabledWithoutWebhook(t *testing.T) {
	alerts := NewErrorAlertMiddleware(SlackAlertConfig{AppName: "botie"}, nil)

	assert.NotPanics(t, func() {
		alerts.AlertOnError(errors.New("boom"), "Task: vouch")
		alerts.Wait()
	})
}

func TestWrapTask(t *testing.T) {
	t.Run("alerts returned errors", func(t *testing.T) {
		alerts, recorder := setupAlerting(t)

		alerts.WrapTask("vouch", func() error { return errors.New("edit failed") })()
		alerts.Wait()

		require.Equal(t, 1, recorder.count())
		assert.Equal(t, "Task: vouch: edit failed", recorder.payloads[0]["text"])
	})

	t.Run("recovers panics", func(t *testing.T) {
		alerts, recorder := setupAlerting(t)

		assert.NotPanics(t, func() {
			alerts.WrapTask("vouch", func() error { panic("nil user") })()
		})
		alerts.Wait()

		require.Equal(t, 1, recorder.count())
		assert.Equal(t, "Task: vouch: PANIC - nil user", recorder.payloads[0]["text"])
	})

	t.Run("stays quiet on success", func(t *testing.T) {
		alerts, recorder := setupAlerting(t)

		alerts.WrapTask("vouch", func() error { return nil })()
		alerts.Wait()

		assert.Equal(t, 0, recorder.count())
	})
}

func TestHTTPMiddleware_RecoversPanics(t *testing.T) {
	alerts, recorder := setupAlerting(t)
	handler := alerts.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	alerts.Wait()

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, recorder.count())
	assert.Equal(t, "HTTP GET /health: PANIC - handler exploded", recorder.payloads[0]["text"])
}
