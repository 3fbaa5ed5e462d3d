package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/irafid364-byte/Botie/appctx"
)

type StatusHandler struct {
	appCtx *appctx.AppContext
	now    func() time.Time
}

func NewStatusHandler(appCtx *appctx.AppContext, now func() time.Time) *StatusHandler {
	if now == nil {
		now = time.Now
	}
	return &StatusHandler{
		appCtx: appCtx,
		now:    now,
	}
}

type RootStatusResponse struct {
	Status    string    `json:"status"`
	Bot       string    `json:"bot"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

type HealthResponse struct {
	Status string  `json:"status"`
	Bot    string  `json:"bot"`
	Uptime float64 `json:"uptime"` // seconds
}

func (h *StatusHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, RootStatusResponse{
		Status:    "Discord Bot is Running",
		Bot:       h.appCtx.BotTag().OrElse("Starting..."),
		Timestamp: h.now().UTC(),
		Message:   "Vouch bot is online and ready!",
	})
}

func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status: "OK",
		Bot:    h.appCtx.BotTag().OrElse("Offline"),
		Uptime: h.appCtx.Uptime(h.now()).Seconds(),
	})
}

func (h *StatusHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/", h.HandleRoot).Methods("GET")
	log.Printf("✅ GET / endpoint registered")

	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	log.Printf("✅ GET /health endpoint registered")
}

func (h *StatusHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}
