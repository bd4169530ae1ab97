package model

// Role represents the sender of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn entry in a conversation history.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MaxHistoryLength caps stored conversation history at six exchanges.
const MaxHistoryLength = 12

// AppendCapped appends messages to history and drops the oldest entries
// from the front when the cap is exceeded. FIFO on insertion order.
func AppendCapped(history []ChatMessage, msgs ...ChatMessage) []ChatMessage {
	history = append(history, msgs...)
	if len(history) > MaxHistoryLength {
		history = history[len(history)-MaxHistoryLength:]
	}
	return history
}
