package model

// PendingPurchase is a purchase awaiting a yes/no from the user. ID and
// Slug may be empty when the prompted title could not be resolved against
// the last shown products; that state is degraded but recoverable.
type PendingPurchase struct {
	ProductID string
	Title     string
	Price     float64
	Slug      string
}

// ConversationContext is an ephemeral projection of history, recomputed
// every turn and never persisted.
type ConversationContext struct {
	PendingPurchase   *PendingPurchase
	PendingAction     Action
	LastShownProducts []Product
}

// HasPending reports whether any confirmation is outstanding.
func (c *ConversationContext) HasPending() bool {
	return c.PendingPurchase != nil || c.PendingAction != ""
}

// TurnResult is the resolver's structured decision for one turn. The
// presentation layer turns Products into markup; the core never emits HTML.
type TurnResult struct {
	Reply        string
	Redirect     string
	Phase        Phase
	Products     []Product
	ShowProducts bool
	Action       Action
	FallbackUsed bool
	ErrorKind    string
}
