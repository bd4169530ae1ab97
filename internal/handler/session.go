package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/service"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	chatService *service.ChatService
	logger      *logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(svc *service.ChatService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		chatService: svc,
		logger:      log,
	}
}

// Refresh handles POST /api/v1/session/refresh. Resets the session's
// inactivity timer; unknown ids are a 400, not a 500.
func (h *SessionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	resp := h.chatService.RefreshSession(req.SessionID)
	if !resp.Success {
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
