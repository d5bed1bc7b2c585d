package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/smartstay/navigator/internal/core/ports"
)

// ReminderActivities holds the activity implementations for the reminder workflow.
type ReminderActivities struct {
	Events    ports.EventRepository
	Publisher ports.EventPublisher
}

// CheckEventUpcoming reports whether the event still exists and has not started.
func (a *ReminderActivities) CheckEventUpcoming(ctx context.Context, eventID string) (bool, error) {
	ev, err := a.Events.GetByID(ctx, eventID)
	if err != nil {
		// A missing event is a normal outcome, not a retryable failure.
		return false, nil
	}
	return ev.Date.After(time.Now()), nil
}

// PublishReminder sends the reminder payload to the bus.
func (a *ReminderActivities) PublishReminder(ctx context.Context, eventID string) error {
	ev, err := a.Events.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event %s: %w", eventID, err)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event_id":         ev.ID,
		"title":            ev.Title,
		"location":         ev.LocationText,
		"date":             ev.Date.Format(time.RFC3339),
		"interested_count": ev.InterestedCount,
	})
	if err != nil {
		return fmt.Errorf("marshal reminder for %s: %w", eventID, err)
	}

	if a.Publisher == nil {
		log.Printf("REMINDER (no publisher) → event=%s title=%q", ev.ID, ev.Title)
		return nil
	}
	return a.Publisher.PublishReminder(ctx, ev.ID, payload)
}
