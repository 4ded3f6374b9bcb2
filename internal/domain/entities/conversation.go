package entities

// Conversation roles. History is always caller-owned: it arrives with
// the request, is threaded into the prompt, and the updated sequence is
// returned for the next round-trip. The server keeps nothing between
// calls.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultConversationWindow bounds how many turns are threaded into the
// FAQ prompt to control token growth.
const DefaultConversationWindow = 10

// ConversationTurn is one message in a multi-turn FAQ exchange.
type ConversationTurn struct {
	Role string `json:"role"`
	Text string `json:"content"`
}

// WindowTurns returns the most recent max turns, preserving order. The
// input slice is never modified.
func WindowTurns(history []ConversationTurn, max int) []ConversationTurn {
	if max <= 0 || len(history) <= max {
		return history
	}
	return history[len(history)-max:]
}

// AppendExchange returns history extended with the new user question and
// assistant answer, truncated to the default window. A fresh slice is
// returned so the caller's original history stays intact.
func AppendExchange(history []ConversationTurn, question, answer string) []ConversationTurn {
	updated := make([]ConversationTurn, 0, len(history)+2)
	updated = append(updated, history...)
	updated = append(updated,
		ConversationTurn{Role: RoleUser, Text: question},
		ConversationTurn{Role: RoleAssistant, Text: answer},
	)
	return WindowTurns(updated, DefaultConversationWindow)
}
