package domain

// Conversation roles accepted from callers.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ConversationTurn is one caller-supplied message in a chat history.
// The orchestrator validates and trims histories; they are never persisted.
type ConversationTurn struct {
	Role string `json:"role"`
	Text string `json:"content"`
}

// Valid reports whether the turn has a known role and non-empty text.
func (t ConversationTurn) Valid() bool {
	switch t.Role {
	case RoleUser, RoleAssistant, RoleSystem:
		return t.Text != ""
	}
	return false
}

// ProviderClass identifies which class of provider ultimately produced an
// assistance answer, so callers can surface a "powered by" indicator.
type ProviderClass string

const (
	ProviderPrimary      ProviderClass = "primary"
	ProviderSecondary    ProviderClass = "secondary"
	ProviderLocationOnly ProviderClass = "location-only"
	ProviderFallback     ProviderClass = "fallback"
)

// AssistAnswer is the orchestrator's result: the answer text plus the class
// of the provider that produced it.
type AssistAnswer struct {
	Text     string        `json:"response"`
	Provider ProviderClass `json:"provider"`
}
