package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cartline-ai/shop-assistant/internal/middleware"
	"github.com/cartline-ai/shop-assistant/internal/service"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
)

// AdminHandler handles the authenticated operational endpoints.
type AdminHandler struct {
	chatService *service.ChatService
	logger      *logger.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(svc *service.ChatService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		chatService: svc,
		logger:      log,
	}
}

// Sessions handles GET /api/v1/admin/sessions.
func (h *AdminHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"active_sessions": h.chatService.SessionCount(),
	})
}

// EvictSession handles DELETE /api/v1/admin/sessions/{id}. Requires the
// sessions:write scope on top of a valid token.
func (h *AdminHandler) EvictSession(w http.ResponseWriter, r *http.Request) {
	if !middleware.HasScope(r.Context(), "sessions:write") {
		writeError(w, http.StatusForbidden, "missing sessions:write scope")
		return
	}

	id := chi.URLParam(r, "id")
	h.logger.Info("admin session eviction",
		zap.String("session_id", id),
		zap.String("subject", middleware.GetSubject(r.Context())))
	if err := h.chatService.EvictSession(id); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"evicted": true})
}
