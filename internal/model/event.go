package model

import (
	"time"
)

// EventType represents the type of an analytics event.
type EventType string

const (
	EventTypeTurnCompleted  EventType = "turn_completed"
	EventTypeSessionEvicted EventType = "session_evicted"
)

// TurnEvent is published after each completed turn for analytics consumers.
type TurnEvent struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	Type         EventType `json:"type"`
	Phase        Phase     `json:"phase,omitempty"`
	MatchedCount int       `json:"matched_count,omitempty"`
	FallbackUsed bool      `json:"fallback_used,omitempty"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
