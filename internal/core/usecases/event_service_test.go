package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/usecases"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn            func(ctx context.Context, event *domain.Event) error
	listUpcomingFn      func(ctx context.Context, limit int) ([]domain.Event, error)
	listUpcomingNearFn  func(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error)
	incrementInterestFn func(ctx context.Context, id string) (int, error)
	addCommentFn        func(ctx context.Context, comment *domain.EventComment) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	if m.createFn != nil {
		return m.createFn(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return nil, nil
}

func (m *mockEventRepo) List(ctx context.Context) ([]domain.Event, error) { return nil, nil }

func (m *mockEventRepo) ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	if m.listUpcomingFn != nil {
		return m.listUpcomingFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockEventRepo) ListUpcomingNear(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error) {
	if m.listUpcomingNearFn != nil {
		return m.listUpcomingNearFn(ctx, lat, lon, limit)
	}
	return nil, nil
}

func (m *mockEventRepo) ListByTag(ctx context.Context, tag string, limit int) ([]domain.Event, error) {
	return nil, nil
}

func (m *mockEventRepo) IncrementInterest(ctx context.Context, id string) (int, error) {
	if m.incrementInterestFn != nil {
		return m.incrementInterestFn(ctx, id)
	}
	return 0, nil
}

func (m *mockEventRepo) AddComment(ctx context.Context, comment *domain.EventComment) error {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, comment)
	}
	return nil
}

func (m *mockEventRepo) GetComments(ctx context.Context, eventID string) ([]domain.EventComment, error) {
	return nil, nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	created  []string
	interest []string
}

func (m *mockPublisher) PublishEventCreated(ctx context.Context, event *domain.Event) error {
	m.created = append(m.created, event.ID)
	return nil
}

func (m *mockPublisher) PublishInterestMarked(ctx context.Context, eventID string, count int) error {
	m.interest = append(m.interest, eventID)
	return nil
}

func (m *mockPublisher) PublishReminder(ctx context.Context, eventID string, data []byte) error {
	return nil
}

func TestEventService_ListRequiresViewer(t *testing.T) {
	svc := usecases.NewEventService(&mockEventRepo{}, nil)
	_, err := svc.List(context.Background(), nil, "")
	if !errors.Is(err, domain.ErrLocationRequired) {
		t.Fatalf("expected ErrLocationRequired, got %v", err)
	}
}

func TestEventService_ListVisibilityAndOrder(t *testing.T) {
	now := time.Now()
	repo := &mockEventRepo{
		listUpcomingNearFn: func(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error) {
			return []domain.Event{
				{ID: "far", Title: "Hill Trek", Location: gp(14.5, 75.9),
					VisibilityRadiusKm: 5, Date: now.Add(24 * time.Hour)},
				{ID: "later", Title: "Food Walk", Location: gp(13.35, 74.75),
					VisibilityRadiusKm: 10, Date: now.Add(72 * time.Hour)},
				{ID: "sooner", Title: "Beach Yoga", Location: gp(13.34, 74.74),
					VisibilityRadiusKm: 10, Date: now.Add(12 * time.Hour)},
			}, nil
		},
	}

	svc := usecases.NewEventService(repo, nil)
	events, err := svc.List(context.Background(), gp(13.34, 74.74), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 visible events, got %d", len(events))
	}
	if events[0].ID != "sooner" || events[1].ID != "later" {
		t.Errorf("expected soonest-first order, got %s then %s", events[0].ID, events[1].ID)
	}
}

func TestEventService_ListTagFilter(t *testing.T) {
	repo := &mockEventRepo{
		listUpcomingNearFn: func(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error) {
			return []domain.Event{
				{ID: "m1", Title: "Open Mic", Tags: "music,community",
					Location: gp(13.34, 74.74), VisibilityRadiusKm: 10, Date: time.Now()},
				{ID: "s1", Title: "Beach Run", Tags: "sports",
					Location: gp(13.34, 74.74), VisibilityRadiusKm: 10, Date: time.Now()},
			}, nil
		},
	}

	svc := usecases.NewEventService(repo, nil)
	events, err := svc.List(context.Background(), gp(13.34, 74.74), "music")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].ID != "m1" {
		t.Fatalf("expected only the music event, got %+v", events)
	}
}

func TestEventService_CreateModerationGate(t *testing.T) {
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *domain.Event) error {
			t.Error("rejected event must not reach the repository")
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := usecases.NewEventService(repo, pub)
	err := svc.Create(context.Background(), &domain.Event{
		Title:       "Totally legit",
		Description: "this is spam for my shop",
	})
	if !errors.Is(err, domain.ErrModerationRejected) {
		t.Fatalf("expected ErrModerationRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "inappropriate") {
		t.Errorf("rejection should carry the reason, got %q", err.Error())
	}
	if len(pub.created) != 0 {
		t.Error("rejected event must not be published")
	}
}

func TestEventService_CreateDefaults(t *testing.T) {
	var stored *domain.Event
	repo := &mockEventRepo{
		createFn: func(ctx context.Context, event *domain.Event) error {
			event.ID = "e1"
			stored = event
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := usecases.NewEventService(repo, pub)
	err := svc.Create(context.Background(), &domain.Event{
		Title:     "Sunset Kayaking",
		CreatedBy: "asha",
		Location:  gp(13.34, 74.74),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.VisibilityRadiusKm != domain.DefaultVisibilityRadiusKm {
		t.Errorf("expected default visibility radius, got %v", stored.VisibilityRadiusKm)
	}
	if stored.Organizer != "asha" {
		t.Errorf("organizer should default to the creator, got %q", stored.Organizer)
	}
	if stored.Date.IsZero() {
		t.Error("date should default to now")
	}
	if len(pub.created) != 1 || pub.created[0] != "e1" {
		t.Errorf("expected a created publish for e1, got %v", pub.created)
	}
}

func TestEventService_CreateInvalidCoordinate(t *testing.T) {
	svc := usecases.NewEventService(&mockEventRepo{}, nil)
	err := svc.Create(context.Background(), &domain.Event{
		Title:    "Bad place",
		Location: gp(95, 74.74),
	})
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestEventService_MarkInterest(t *testing.T) {
	repo := &mockEventRepo{
		incrementInterestFn: func(ctx context.Context, id string) (int, error) {
			return 4, nil
		},
	}
	pub := &mockPublisher{}

	svc := usecases.NewEventService(repo, pub)
	count, err := svc.MarkInterest(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected count 4, got %d", count)
	}
	if len(pub.interest) != 1 {
		t.Errorf("expected one interest publish, got %d", len(pub.interest))
	}
}

func TestEventService_AddCommentModerated(t *testing.T) {
	repo := &mockEventRepo{
		addCommentFn: func(ctx context.Context, comment *domain.EventComment) error {
			t.Error("rejected comment must not reach the repository")
			return nil
		},
	}

	svc := usecases.NewEventService(repo, nil)
	err := svc.AddComment(context.Background(), &domain.EventComment{
		EventID: "e1",
		Comment: "check out this advertisement",
	})
	if !errors.Is(err, domain.ErrModerationRejected) {
		t.Fatalf("expected ErrModerationRejected, got %v", err)
	}
}
