package dialogue

import "math/rand"

// RandomFallback returns one user-safe fallback sentence. Used by the
// outer boundary when a turn fails before or outside the resolver.
func RandomFallback() string {
	return fallbackReplies[rand.Intn(len(fallbackReplies))]
}

// Canned reply pools. One entry is picked at random per turn so repeated
// failures don't read as a broken record.

var fallbackReplies = []string{
	"Sorry, I'm having a little trouble right now. Could you try that again?",
	"Hmm, something went wrong on my end. Mind rephrasing that?",
	"I couldn't process that just now. Please give it another try.",
	"Apologies — I hit a snag. Ask me again in a moment?",
}

var clarifyingQuestions = []string{
	"Sure! What kind of product are you looking for?",
	"Happy to help — could you tell me what you're shopping for?",
	"What sort of item do you have in mind? A category or a price range helps.",
	"I can find something for you. What are you looking for, and any budget?",
}

var continueReplies = []string{
	"No problem. Is there anything else I can help you find?",
	"Okay, we can skip that. What else can I show you?",
	"Sure thing. Let me know if something else catches your eye.",
}
