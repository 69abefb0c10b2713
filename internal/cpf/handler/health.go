package handler

import (
	"net/http"
	"sync/atomic"

	"github.com/julienschmidt/httprouter"

	httputil "validacpf/pkg/http"
	"validacpf/pkg/logger"
)

type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler reports liveness always and readiness until MarkShuttingDown
// is called.
type HealthHandler struct {
	shuttingDown atomic.Bool
	log          *logger.Logger
}

func NewHealthHandler(log *logger.Logger) *HealthHandler {
	return &HealthHandler{log: log}
}

func (h *HealthHandler) MarkShuttingDown() {
	h.shuttingDown.Store(true)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, body := http.StatusOK, HealthResponse{Status: "ready"}
	if h.shuttingDown.Load() {
		status, body = http.StatusServiceUnavailable, HealthResponse{Status: "shutting_down"}
	}

	if err := httputil.WriteJSON(w, status, body); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
