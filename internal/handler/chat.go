// Package handler provides the HTTP endpoints of the shopping assistant.
package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cartline-ai/shop-assistant/internal/middleware"
	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/service"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
)

// ChatHandler handles the chat turn endpoint.
type ChatHandler struct {
	chatService *service.ChatService
	logger      *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *service.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: svc,
		logger:      log,
	}
}

// Chat handles POST /api/v1/chat. Validation failures are structured
// 400s; everything past validation returns a normal turn response, even
// when content generation partially failed.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateQuery(req.Query); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateHistory(req.History); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateSessionID(req.SessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := h.chatService.ResolveTurn(r.Context(), &req)

	h.logger.WithTurn(middleware.GetCorrelationID(r.Context()), resp.SessionID).Debug("turn resolved",
		zap.String("phase", string(resp.Phase)),
		zap.Bool("redirect", resp.Redirect != ""))

	status := http.StatusOK
	if resp.Error == "internal_error" {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}
