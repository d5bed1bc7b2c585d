package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/ports"
	"github.com/smartstay/navigator/internal/pkg/metrics"
)

// Per-class outbound timeouts. Every provider call is bounded; a timeout is
// just another failure that advances the chain.
const (
	primaryTimeout   = 20 * time.Second
	secondaryTimeout = 15 * time.Second
	locationTimeout  = 8 * time.Second
)

// maxHistoryTurns caps how much caller-supplied conversation history is
// forwarded to a chat provider.
const maxHistoryTurns = 10

const systemPrompt = "You are a helpful AI travel assistant for SmartStay Navigator. " +
	"Provide friendly, informative, and concise travel advice."

// locationIntentKeywords trigger location augmentation of the prompt and an
// independent location lookup.
var locationIntentKeywords = []string{
	"near me", "nearby", "around here", "local", "this area", "here",
}

// nearbyLabel heads the supplementary location subsection appended to a chat
// answer; it is never substituted for the answer itself.
const nearbyLabel = "Nearby places:"

// ChatRequest is one assistance call from a traveler.
type ChatRequest struct {
	Message  string
	APIKey   string // optional per-request credential override
	History  []domain.ConversationTurn
	Location *domain.GeoPoint
}

// AssistService orchestrates the provider chain: ordered external providers,
// each independently fallible, backed by a deterministic offline responder.
// Provider order and credentials are fixed at construction; no provider
// failure ever propagates to the caller.
type AssistService struct {
	providers []ports.AssistProvider
	lookup    ports.LocationLookup
}

// NewAssistService builds the chain from the providers that have credentials
// configured, preserving the given priority order.
func NewAssistService(providers []ports.AssistProvider, lookup ports.LocationLookup) *AssistService {
	configured := make([]ports.AssistProvider, 0, len(providers))
	for _, p := range providers {
		if p != nil && p.Configured() {
			configured = append(configured, p)
		}
	}
	if lookup != nil && !lookup.Configured() {
		lookup = nil
	}
	return &AssistService{providers: configured, lookup: lookup}
}

// Chat answers a traveler utterance. The worst outcome of total provider
// failure is the canned offline response, never an error.
func (s *AssistService) Chat(ctx context.Context, req ChatRequest) domain.AssistAnswer {
	history := trimHistory(req.History)
	prompt := req.Message

	wantLocation := hasLocationIntent(req.Message) && req.Location != nil
	if wantLocation {
		prompt = fmt.Sprintf("%s\n(Traveler's current location: %.4f, %.4f)",
			req.Message, req.Location.Lat, req.Location.Lon)
	}

	// Location lookup runs independently of the chat chain so neither blocks
	// the other. The goroutine always sends within its own timeout.
	var lookupCh chan string
	if wantLocation && s.lookup != nil {
		lookupCh = make(chan string, 1)
		loc := *req.Location
		go func() {
			lookupCh <- s.describeLocation(ctx, loc)
		}()
	}

	answer, class := s.tryChain(ctx, ports.AssistRequest{
		Prompt:         prompt,
		History:        history,
		APIKeyOverride: req.APIKey,
	})

	nearby := ""
	if lookupCh != nil {
		nearby = <-lookupCh
	}

	switch {
	case answer != "" && nearby != "":
		answer = answer + "\n\n" + nearbyLabel + "\n" + nearby
	case answer == "" && nearby != "":
		metrics.AssistAnswers.WithLabelValues(string(domain.ProviderLocationOnly)).Inc()
		return domain.AssistAnswer{
			Text:     nearbyLabel + "\n" + nearby,
			Provider: domain.ProviderLocationOnly,
		}
	case answer == "":
		metrics.AssistAnswers.WithLabelValues(string(domain.ProviderFallback)).Inc()
		return domain.AssistAnswer{Text: cannedResponse(req.Message), Provider: domain.ProviderFallback}
	}

	metrics.AssistAnswers.WithLabelValues(string(class)).Inc()
	return domain.AssistAnswer{Text: answer, Provider: class}
}

// Itinerary generates a travel itinerary through the same provider chain,
// with a structured prompt. The offline template reports the requested
// budget, location, and duration verbatim.
func (s *AssistService) Itinerary(ctx context.Context, budget float64, location, duration string) domain.AssistAnswer {
	prompt := fmt.Sprintf(
		"Create a %s travel itinerary for %s with a total budget of ₹%.0f. "+
			"List morning, afternoon, evening and night activities with estimated costs.",
		duration, location, budget)

	answer, class := s.tryChain(ctx, ports.AssistRequest{Prompt: prompt})
	if answer == "" {
		metrics.AssistAnswers.WithLabelValues(string(domain.ProviderFallback)).Inc()
		return domain.AssistAnswer{
			Text:     fallbackItinerary(budget, location, duration),
			Provider: domain.ProviderFallback,
		}
	}
	metrics.AssistAnswers.WithLabelValues(string(class)).Inc()
	return domain.AssistAnswer{Text: answer, Provider: class}
}

// Story generates a short travel story about a place.
func (s *AssistService) Story(ctx context.Context, place string) domain.AssistAnswer {
	prompt := fmt.Sprintf("Tell a short, engaging travel story about %s. Two or three sentences.", place)

	answer, class := s.tryChain(ctx, ports.AssistRequest{Prompt: prompt})
	if answer == "" {
		metrics.AssistAnswers.WithLabelValues(string(domain.ProviderFallback)).Inc()
		return domain.AssistAnswer{Text: fallbackStory(place), Provider: domain.ProviderFallback}
	}
	metrics.AssistAnswers.WithLabelValues(string(class)).Inc()
	return domain.AssistAnswer{Text: answer, Provider: class}
}

// tryChain walks the configured providers in priority order and returns the
// first non-empty answer. Errors and timeouts advance the chain.
func (s *AssistService) tryChain(ctx context.Context, req ports.AssistRequest) (string, domain.ProviderClass) {
	for _, p := range s.providers {
		metrics.AssistAttempts.WithLabelValues(p.Name()).Inc()

		callCtx, cancel := context.WithTimeout(ctx, timeoutFor(p.Class()))
		start := time.Now()
		answer, err := p.Answer(callCtx, req)
		cancel()
		metrics.AssistProviderDuration.WithLabelValues(p.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			slog.Debug("assist provider failed, advancing chain",
				"provider", p.Name(), "error", err)
			continue
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, p.Class()
		}
	}
	return "", domain.ProviderFallback
}

func (s *AssistService) describeLocation(ctx context.Context, loc domain.GeoPoint) string {
	callCtx, cancel := context.WithTimeout(ctx, locationTimeout)
	defer cancel()

	text, err := s.lookup.Describe(callCtx, loc)
	if err != nil {
		slog.Debug("location lookup failed", "provider", s.lookup.Name(), "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}

func timeoutFor(class domain.ProviderClass) time.Duration {
	if class == domain.ProviderSecondary {
		return secondaryTimeout
	}
	return primaryTimeout
}

// trimHistory drops invalid turns silently and keeps the most recent
// maxHistoryTurns, oldest-first.
func trimHistory(history []domain.ConversationTurn) []domain.ConversationTurn {
	valid := make([]domain.ConversationTurn, 0, len(history))
	for _, t := range history {
		if t.Valid() {
			valid = append(valid, t)
		}
	}
	if len(valid) > maxHistoryTurns {
		valid = valid[len(valid)-maxHistoryTurns:]
	}
	return valid
}

// hasLocationIntent checks the fixed keyword set, case-insensitively.
func hasLocationIntent(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range locationIntentKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SystemPrompt is the instruction prepended to every chat provider call.
func SystemPrompt() string { return systemPrompt }
