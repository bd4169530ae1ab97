package model

// Phase is the classifier's coarse routing decision for a turn.
type Phase string

const (
	PhaseGeneral        Phase = "general"
	PhaseRecommendation Phase = "recommendation"
	PhaseComparison     Phase = "comparison"
)

// Action is a direct shopping action requested by the user.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionView Action = "view"
	ActionCart Action = "cart"
)

// ChatRequest is the inbound body for a single turn.
type ChatRequest struct {
	Query             string        `json:"query"`
	History           []ChatMessage `json:"history,omitempty"`
	LastShownProducts []Product     `json:"lastShownProducts,omitempty"`
	SessionID         string        `json:"sessionId,omitempty"`
}

// ChatResponse is the outbound body for a single turn. On internal
// failure Reply carries a fallback sentence and Error is populated;
// History and SessionID are still returned.
type ChatResponse struct {
	Reply             string        `json:"reply"`
	Redirect          string        `json:"redirect,omitempty"`
	History           []ChatMessage `json:"history"`
	Phase             Phase         `json:"phase"`
	LastShownProducts []Product     `json:"lastShownProducts,omitempty"`
	SessionID         string        `json:"sessionId"`
	Error             string        `json:"error,omitempty"`
}

// RefreshSessionRequest asks for a session's inactivity timer to be reset.
type RefreshSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// RefreshSessionResponse reports the outcome of a session refresh.
type RefreshSessionResponse struct {
	Success      bool   `json:"success"`
	NewSessionID string `json:"newSessionId,omitempty"`
	Error        string `json:"error,omitempty"`
}
