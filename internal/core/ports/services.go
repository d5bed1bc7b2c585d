package ports

import (
	"context"

	"github.com/smartstay/navigator/internal/core/domain"
)

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishEventCreated(ctx context.Context, event *domain.Event) error
	PublishInterestMarked(ctx context.Context, eventID string, count int) error
	PublishReminder(ctx context.Context, eventID string, data []byte) error
}

// AssistRequest is the per-call payload handed to a capability provider.
// History arrives already validated and trimmed by the orchestrator.
type AssistRequest struct {
	Prompt         string
	History        []domain.ConversationTurn
	APIKeyOverride string
}

// AssistProvider is one external capability source in the orchestration chain.
// Answer returns the provider's text, or "" when it had nothing useful; any
// error is absorbed by the orchestrator and advances the chain.
type AssistProvider interface {
	Name() string
	Class() domain.ProviderClass
	Configured() bool
	Answer(ctx context.Context, req AssistRequest) (string, error)
}

// LocationLookup resolves a coordinate to human-readable nearby-place text.
type LocationLookup interface {
	Name() string
	Configured() bool
	Describe(ctx context.Context, loc domain.GeoPoint) (string, error)
}

// Translator converts text between languages. A nil-error empty result means
// the provider had no usable translation.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// LanguageDetector identifies the language of a text. Translators that can
// detect implement this alongside Translator.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (lang string, confidence float64, err error)
}
