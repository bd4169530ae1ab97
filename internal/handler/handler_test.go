package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartline-ai/shop-assistant/internal/dialogue"
	"github.com/cartline-ai/shop-assistant/internal/middleware"
	"github.com/cartline-ai/shop-assistant/internal/model"
	"github.com/cartline-ai/shop-assistant/internal/service"
	"github.com/cartline-ai/shop-assistant/internal/session"
	"github.com/cartline-ai/shop-assistant/pkg/logger"
)

const testJWTSecret = "test-secret"

type stubStore struct {
	products []model.Product
	err      error
}

func (s *stubStore) FetchAll(ctx context.Context) ([]model.Product, error) {
	return s.products, s.err
}

func (s *stubStore) Close() error { return nil }

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	log := logger.NewNop()
	store := &stubStore{products: []model.Product{
		{ID: "p1", Title: "Oak Dining Chair", Price: 89.99, Description: "Solid oak dining chair", Category: "Furniture", Inventory: 12},
	}}
	resolver := dialogue.NewResolver(store, nil, dialogue.Config{StoreBaseURL: "https://shop.example.com"}, log)
	sessions := session.NewStore(5*time.Minute, time.Hour, log)
	svc := service.NewChatService(resolver, sessions, nil, log)

	chatHandler := NewChatHandler(svc, log)
	sessionHandler := NewSessionHandler(svc, log)
	adminHandler := NewAdminHandler(svc, log)

	r := chi.NewRouter()
	r.Post("/api/v1/chat", chatHandler.Chat)
	r.Post("/api/v1/session/refresh", sessionHandler.Refresh)
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.Auth(testJWTSecret))
		r.Get("/sessions", adminHandler.Sessions)
		r.Delete("/sessions/{id}", adminHandler.EvictSession)
	})
	return r
}

func adminToken(t *testing.T, scopes ...string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &middleware.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ops"},
		Scopes:           scopes,
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChatEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/chat", model.ChatRequest{Query: "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Reply)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, model.PhaseGeneral, resp.Phase)
	require.Len(t, resp.History, 2)
}

func TestChatEndpointSessionRoundTrip(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/chat", model.ChatRequest{Query: "hello"})
	require.Equal(t, http.StatusOK, rec.Code)
	var first model.ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&first))

	rec = postJSON(t, router, "/api/v1/chat", model.ChatRequest{
		Query:     "show me chairs",
		SessionID: first.SessionID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var second model.ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Len(t, second.History, 4)
	assert.Contains(t, second.Reply, "Oak Dining Chair")
}

func TestChatEndpointValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body model.ChatRequest
		want string
	}{
		{"empty query", model.ChatRequest{}, "query cannot be empty"},
		{"query too long", model.ChatRequest{Query: strings.Repeat("a", 501)}, "query exceeds maximum length"},
		{"bad session id", model.ChatRequest{Query: "hi", SessionID: "not-a-uuid"}, "invalid session ID format"},
		{
			"bad history role",
			model.ChatRequest{Query: "hi", History: []model.ChatMessage{{Role: "system", Content: "x"}}},
			"history roles must be user or assistant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/v1/chat", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestChatEndpointMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionRefreshEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/chat", model.ChatRequest{Query: "hello"})
	var chat model.ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&chat))

	rec = postJSON(t, router, "/api/v1/session/refresh", model.RefreshSessionRequest{SessionID: chat.SessionID})
	require.Equal(t, http.StatusOK, rec.Code)
	var refresh model.RefreshSessionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&refresh))
	assert.True(t, refresh.Success)
	assert.Equal(t, chat.SessionID, refresh.NewSessionID)

	rec = postJSON(t, router, "/api/v1/session/refresh", model.RefreshSessionRequest{SessionID: "unknown"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&refresh))
	assert.False(t, refresh.Success)

	rec = postJSON(t, router, "/api/v1/session/refresh", model.RefreshSessionRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminSessionEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t, "sessions:write")

	rec := postJSON(t, router, "/api/v1/chat", model.ChatRequest{Query: "hello"})
	var chat model.ChatResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&chat))

	// No token at all.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/sessions", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var count map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&count))
	assert.Equal(t, 1, count["active_sessions"])

	// A valid token without the write scope cannot evict.
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/sessions/"+chat.SessionID, nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/sessions/"+chat.SessionID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/sessions/"+chat.SessionID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	healthy := NewHealthHandler(&stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	healthy.Health(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec = httptest.NewRecorder()
	healthy.Ready(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	broken := NewHealthHandler(&stubStore{err: errors.New("db down")})
	rec = httptest.NewRecorder()
	broken.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
