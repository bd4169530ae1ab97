package middleware

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cartline-ai/shop-assistant/internal/model"
)

// MaxQueryLength bounds a single utterance.
const MaxQueryLength = 500

// ValidateQuery validates a chat utterance.
func ValidateQuery(query string) error {
	if len(query) == 0 {
		return errors.New("query cannot be empty")
	}
	if len(query) > MaxQueryLength {
		return errors.New("query exceeds maximum length")
	}
	if !utf8.ValidString(query) {
		return errors.New("query must be valid UTF-8")
	}
	return nil
}

// ValidateHistory validates supplied conversation history. Roles must be
// user or assistant; alternation is not enforced, the resolver tolerates
// malformed sequences.
func ValidateHistory(history []model.ChatMessage) error {
	for _, msg := range history {
		if msg.Role != model.RoleUser && msg.Role != model.RoleAssistant {
			return errors.New("history roles must be user or assistant")
		}
		if !utf8.ValidString(msg.Content) {
			return errors.New("history content must be valid UTF-8")
		}
	}
	return nil
}

// ValidateSessionID validates a session ID when one is supplied.
func ValidateSessionID(id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("invalid session ID format")
	}
	return nil
}
