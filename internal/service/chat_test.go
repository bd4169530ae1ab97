package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartline-ai/shop-assistant/internal/dialogue"
	"github.com/cartline-ai/shop-assistant/internal/llm"
	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/session"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
)

type stubStore struct {
	products []model.Product
	err      error
}

func (s *stubStore) FetchAll(ctx context.Context) ([]model.Product, error) {
	return s.products, s.err
}

func (s *stubStore) Close() error { return nil }

type stubLLM struct {
	content string
	err     error
}

func (s *stubLLM) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.content}, nil
}

func (s *stubLLM) Name() string     { return "stub" }
func (s *stubLLM) Models() []string { return nil }

func serviceCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Title: "Oak Dining Chair", Price: 89.99, Description: "Solid oak dining chair", Category: "Furniture", Inventory: 12},
		{ID: "p4", Title: "Brass Desk Lamp", Price: 59.50, Description: "Adjustable brass lamp", Category: "Lighting", Inventory: 20},
	}
}

func newTestService(t *testing.T, client llm.Client) *ChatService {
	t.Helper()
	log := logger.NewNop()
	resolver := dialogue.NewResolver(
		&stubStore{products: serviceCatalog()},
		client,
		dialogue.Config{StoreBaseURL: "https://shop.example.com"},
		log,
	)
	sessions := session.NewStore(5*time.Minute, time.Hour, log)
	return NewChatService(resolver, sessions, nil, log)
}

func TestResolveTurnAssignsSession(t *testing.T) {
	svc := newTestService(t, nil)

	resp := svc.ResolveTurn(context.Background(), &model.ChatRequest{Query: "hello"})
	require.NotEmpty(t, resp.SessionID)
	assert.Equal(t, 1, svc.SessionCount())
	require.Len(t, resp.History, 2)
	assert.Equal(t, model.RoleUser, resp.History[0].Role)
	assert.Equal(t, "hello", resp.History[0].Content)
	assert.Equal(t, model.RoleAssistant, resp.History[1].Role)
	assert.Empty(t, resp.Error)
}

func TestResolveTurnContinuesSession(t *testing.T) {
	svc := newTestService(t, nil)

	first := svc.ResolveTurn(context.Background(), &model.ChatRequest{Query: "hello"})
	second := svc.ResolveTurn(context.Background(), &model.ChatRequest{
		Query:     "show me chairs",
		SessionID: first.SessionID,
	})

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, 1, svc.SessionCount())
	// Server-side history accumulated across both turns.
	require.Len(t, second.History, 4)
	assert.Equal(t, "hello", second.History[0].Content)
	assert.Equal(t, "show me chairs", second.History[2].Content)
}

func TestResolveTurnUnknownSessionGetsFreshID(t *testing.T) {
	svc := newTestService(t, nil)

	resp := svc.ResolveTurn(context.Background(), &model.ChatRequest{
		Query:     "hello",
		SessionID: "expired-or-bogus",
	})
	assert.NotEqual(t, "expired-or-bogus", resp.SessionID)
	assert.NotEmpty(t, resp.SessionID)
}

func TestResolveTurnShownProductsTracked(t *testing.T) {
	svc := newTestService(t, nil)

	resp := svc.ResolveTurn(context.Background(), &model.ChatRequest{Query: "show me chairs"})
	require.Len(t, resp.LastShownProducts, 1)
	assert.Equal(t, "p1", resp.LastShownProducts[0].ID)
	// Product cards are appended to the reply.
	assert.Contains(t, resp.Reply, "Oak Dining Chair")

	// A turn that shows nothing echoes the client's last-shown set back.
	shown := resp.LastShownProducts
	resp = svc.ResolveTurn(context.Background(), &model.ChatRequest{
		Query:             "hello",
		SessionID:         resp.SessionID,
		LastShownProducts: shown,
	})
	assert.Equal(t, shown, resp.LastShownProducts)
}

func TestResolveTurnExplicitHistoryWins(t *testing.T) {
	svc := newTestService(t, nil)

	// Seed a server-side session with unrelated history.
	seed := svc.ResolveTurn(context.Background(), &model.ChatRequest{Query: "hello"})

	shown := []model.Product{{ID: "p1", Title: "Oak Dining Chair", Price: 89.99}}
	history := []model.ChatMessage{
		{Role: model.RoleUser, Content: "buy the chair"},
		{Role: model.RoleAssistant, Content: dialogue.PurchasePrompt("Oak Dining Chair", 89.99)},
	}

	resp := svc.ResolveTurn(context.Background(), &model.ChatRequest{
		Query:             "yes",
		SessionID:         seed.SessionID,
		History:           history,
		LastShownProducts: shown,
	})
	assert.Equal(t, "https://shop.example.com/checkout/p1", resp.Redirect)
}

func TestResolveTurnHistoryCapped(t *testing.T) {
	svc := newTestService(t, nil)

	history := make([]model.ChatMessage, 0, model.MaxHistoryLength)
	for i := 0; i < model.MaxHistoryLength; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		history = append(history, model.ChatMessage{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}

	resp := svc.ResolveTurn(context.Background(), &model.ChatRequest{
		Query:   "hello",
		History: history,
	})
	require.Len(t, resp.History, model.MaxHistoryLength)
	// Oldest two messages were dropped to make room for the new turn.
	assert.Equal(t, "msg-2", resp.History[0].Content)
	assert.Equal(t, "hello", resp.History[model.MaxHistoryLength-2].Content)
}

func TestResolveTurnComparisonPhaseMapsToGeneral(t *testing.T) {
	svc := newTestService(t, &stubLLM{err: errors.New("down")})

	resp := svc.ResolveTurn(context.Background(), &model.ChatRequest{
		Query: "compare the Oak Dining Chair and the Brass Desk Lamp",
	})
	// The wire format only distinguishes general from recommendation.
	assert.Equal(t, model.PhaseGeneral, resp.Phase)
	assert.Contains(t, resp.Reply, "Oak Dining Chair")
}

func TestRefreshSession(t *testing.T) {
	svc := newTestService(t, nil)

	resp := svc.ResolveTurn(context.Background(), &model.ChatRequest{Query: "hello"})

	refreshed := svc.RefreshSession(resp.SessionID)
	assert.True(t, refreshed.Success)
	assert.Equal(t, resp.SessionID, refreshed.NewSessionID)

	refreshed = svc.RefreshSession("bogus")
	assert.False(t, refreshed.Success)
	assert.NotEmpty(t, refreshed.Error)
}

func TestEvictSession(t *testing.T) {
	svc := newTestService(t, nil)

	resp := svc.ResolveTurn(context.Background(), &model.ChatRequest{Query: "hello"})
	require.NoError(t, svc.EvictSession(resp.SessionID))
	assert.Zero(t, svc.SessionCount())
	assert.Error(t, svc.EvictSession(resp.SessionID))
}
