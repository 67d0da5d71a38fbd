package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TurnEntry is one line of conversation history, used only as bounded
// context for future extractor calls.
type TurnEntry struct {
	Role Role
	Text string
}

// ConversationState is the per-session extraction state: the slots
// accumulated so far and the turn history, insertion order significant.
type ConversationState struct {
	Key     SessionKey
	Slots   TripSlots
	History []TurnEntry
}
