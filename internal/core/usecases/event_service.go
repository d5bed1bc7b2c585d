package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/ports"
	"github.com/smartstay/navigator/internal/pkg/geospatial"
	"github.com/smartstay/navigator/internal/pkg/metrics"
)

// EventService handles community events: visibility-gated listing, creation
// behind the moderation gate, interest marking and comments.
type EventService struct {
	events    ports.EventRepository
	publisher ports.EventPublisher
}

// NewEventService creates a new EventService.
func NewEventService(events ports.EventRepository, publisher ports.EventPublisher) *EventService {
	return &EventService{events: events, publisher: publisher}
}

// List returns upcoming events visible from the viewer's location, soonest
// first. Events are community content tied to a place, so listing them
// without a viewer coordinate is refused rather than degraded.
func (s *EventService) List(ctx context.Context, viewer *domain.GeoPoint, tag string) ([]domain.Event, error) {
	if viewer == nil {
		return nil, domain.ErrLocationRequired
	}

	// The repo prefilters with ST_DWithin over the spatial index; the exact
	// per-event radii are re-checked here.
	candidates, err := s.events.ListUpcomingNear(ctx, viewer.Lat, viewer.Lon, 0)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	visible, err := FilterVisibleEvents(candidates, viewer)
	if err != nil {
		return nil, err
	}

	if tag != "" {
		needle := strings.ToLower(tag)
		filtered := visible[:0]
		for _, ev := range visible {
			if strings.Contains(strings.ToLower(ev.Tags), needle) {
				filtered = append(filtered, ev)
			}
		}
		visible = filtered
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Date.Before(visible[j].Date)
	})
	return visible, nil
}

// GetByID returns a single event with its comments attached.
func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ev, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.events.GetComments(ctx, id)
	if err != nil {
		return nil, err
	}
	ev.Comments = comments
	return ev, nil
}

// Create moderates and persists a community event. The title and description
// pass through the moderation gate together; a rejection reports the reason.
func (s *EventService) Create(ctx context.Context, ev *domain.Event) error {
	if ok, reason := Moderate(ev.Title + " " + ev.Description); !ok {
		metrics.ModerationRejections.Inc()
		return fmt.Errorf("%w: %s", domain.ErrModerationRejected, reason)
	}

	if ev.Location != nil && !geospatial.ValidCoordinate(ev.Location.Lat, ev.Location.Lon) {
		return domain.ErrInvalidCoordinate
	}
	if ev.VisibilityRadiusKm <= 0 {
		ev.VisibilityRadiusKm = domain.DefaultVisibilityRadiusKm
	}
	if ev.Date.IsZero() {
		ev.Date = time.Now()
	}
	if ev.Organizer == "" {
		ev.Organizer = ev.CreatedBy
	}

	if err := s.events.Create(ctx, ev); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishEventCreated(ctx, ev); err != nil {
			slogPublishWarn("event created", ev.ID, err)
		}
	}
	return nil
}

// MarkInterest increments the interest counter and returns the new count.
func (s *EventService) MarkInterest(ctx context.Context, id string) (int, error) {
	count, err := s.events.IncrementInterest(ctx, id)
	if err != nil {
		return 0, err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishInterestMarked(ctx, id, count); err != nil {
			slogPublishWarn("interest marked", id, err)
		}
	}
	return count, nil
}

// AddComment moderates and stores a comment on an event.
func (s *EventService) AddComment(ctx context.Context, comment *domain.EventComment) error {
	if ok, reason := Moderate(comment.Comment); !ok {
		metrics.ModerationRejections.Inc()
		return fmt.Errorf("%w: %s", domain.ErrModerationRejected, reason)
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	return s.events.AddComment(ctx, comment)
}

// Suggest produces a deterministic event suggestion for an interest, plus any
// stored upcoming events whose tags match it.
func (s *EventService) Suggest(ctx context.Context, interest, location string) (string, []domain.Event, error) {
	text := EventSuggestion(interest, location)

	matches, err := s.events.ListByTag(ctx, interest, 10)
	if err != nil {
		return text, nil, nil
	}
	return text, matches, nil
}

// slogPublishWarn logs a failed bus publish. Persisted state is the source of
// truth; the bus is best effort.
func slogPublishWarn(what, id string, err error) {
	slog.Warn("publish failed", "event", what, "id", id, "error", err)
}
