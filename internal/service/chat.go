// Package service provides the turn orchestration on top of the dialogue
// resolver: session handling, history bookkeeping, presentation, and the
// outer failure boundary.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cartline-ai/shop-assistant/internal/dialogue"
	"github.com/cartline-ai/shop-assistant/internal/events"
	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/render"
	"github.com/cartline-ai/shop-assistant/internal/session"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
	"github.com/cartline-ai/shop-assistant/pkg/metrics"
)

// ChatService handles one turn end to end.
type ChatService struct {
	resolver *dialogue.Resolver
	sessions *session.Store
	events   *events.Publisher
	log      *logger.Logger
}

// NewChatService creates a chat service. publisher may be nil.
func NewChatService(resolver *dialogue.Resolver, sessions *session.Store, publisher *events.Publisher, log *logger.Logger) *ChatService {
	return &ChatService{
		resolver: resolver,
		sessions: sessions,
		events:   publisher,
		log:      log,
	}
}

// ResolveTurn resolves one validated request. It never fails: internal
// errors surface as a fallback reply with the error field populated, and
// the session id is always echoed back.
func (s *ChatService) ResolveTurn(ctx context.Context, req *model.ChatRequest) *model.ChatResponse {
	start := time.Now()

	sess := s.ensureSession(req.SessionID)

	// Explicitly supplied history wins over server memory, so a client
	// can re-derive pending context independent of the store.
	history := req.History
	if history == nil {
		history = sess.History
	}

	result := s.safeResolve(ctx, req.Query, history, req.LastShownProducts)

	reply := result.Reply
	if result.ShowProducts && len(result.Products) > 0 {
		if result.Action != "" {
			reply += "\n" + render.ActionCards(result.Products, result.Action)
		} else {
			reply += "\n" + render.ProductCards(result.Products)
		}
	}

	newHistory := model.AppendCapped(history,
		model.ChatMessage{Role: model.RoleUser, Content: req.Query},
		model.ChatMessage{Role: model.RoleAssistant, Content: reply},
	)
	if err := s.sessions.SetHistory(sess.ID, newHistory); err != nil {
		s.log.Warn("failed to persist session history", zap.String("session_id", sess.ID), zap.Error(err))
	}

	resp := &model.ChatResponse{
		Reply:     reply,
		Redirect:  result.Redirect,
		History:   newHistory,
		Phase:     wirePhase(result.Phase),
		SessionID: sess.ID,
		Error:     result.ErrorKind,
	}
	if result.ShowProducts {
		resp.LastShownProducts = result.Products
	} else {
		resp.LastShownProducts = req.LastShownProducts
	}

	status := "ok"
	switch {
	case result.ErrorKind != "":
		status = "error"
	case result.FallbackUsed:
		status = "fallback"
	}
	metrics.RecordTurn(string(result.Phase), status, time.Since(start).Seconds())

	s.events.PublishTurn(ctx, &model.TurnEvent{
		ID:           uuid.New().String(),
		SessionID:    sess.ID,
		Type:         model.EventTypeTurnCompleted,
		Phase:        result.Phase,
		MatchedCount: len(result.Products),
		FallbackUsed: result.FallbackUsed,
		CreatedAt:    time.Now(),
	})

	return resp
}

// RefreshSession resets a session's inactivity timer.
func (s *ChatService) RefreshSession(id string) *model.RefreshSessionResponse {
	if err := s.sessions.Touch(id); err != nil {
		return &model.RefreshSessionResponse{Success: false, Error: "unknown session"}
	}
	return &model.RefreshSessionResponse{Success: true, NewSessionID: id}
}

// EvictSession removes a session immediately.
func (s *ChatService) EvictSession(id string) error {
	return s.sessions.Delete(id)
}

// SessionCount reports the number of live sessions.
func (s *ChatService) SessionCount() int {
	return s.sessions.Len()
}

func (s *ChatService) ensureSession(id string) *session.Session {
	if id != "" {
		if sess, err := s.sessions.Get(id); err == nil {
			if err := s.sessions.Touch(id); err == nil {
				return sess
			}
		}
	}
	return s.sessions.Create()
}

// safeResolve is the outermost boundary: a panic inside the resolver
// becomes a fallback result, never an unhandled crash.
func (s *ChatService) safeResolve(ctx context.Context, query string, history []model.ChatMessage, lastShown []model.Product) (result *model.TurnResult) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("turn resolution panicked", zap.Any("panic", rec))
			result = &model.TurnResult{
				Reply:        dialogue.RandomFallback(),
				Phase:        model.PhaseGeneral,
				FallbackUsed: true,
				ErrorKind:    "internal_error",
			}
		}
	}()
	return s.resolver.Resolve(ctx, query, history, lastShown)
}

// wirePhase maps the internal phase onto the response vocabulary, which
// only distinguishes general from recommendation.
func wirePhase(p model.Phase) model.Phase {
	if p == model.PhaseComparison {
		return model.PhaseGeneral
	}
	return p
}
