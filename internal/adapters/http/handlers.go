package http

import (
	"net/http"

	"github.com/orderdesk/orderdesk/internal/application"
)

// Handler carries the dependencies shared by every HTTP handler.
type Handler struct {
	service *application.Service
	ready   ReadinessChecker
}

func NewHandler(service *application.Service, ready ReadinessChecker) *Handler {
	return &Handler{service: service, ready: ready}
}

// Response envelopes mirror what the web client expects: single
// resources under "item", collections under "items".
type itemResponse struct {
	Item any `json:"item"`
}

type itemsResponse struct {
	Items any `json:"items"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz answers 503 while any downstream dependency is unusable.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
