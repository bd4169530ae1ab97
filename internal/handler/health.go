package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/cartline-ai/shop-assistant/internal/catalog"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	catalog catalog.Store
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store catalog.Store) *HealthHandler {
	return &HealthHandler{catalog: store}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.catalog.FetchAll(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "catalog unavailable",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}
