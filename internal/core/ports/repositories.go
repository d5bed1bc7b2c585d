package ports

import (
	"context"

	"github.com/smartstay/navigator/internal/core/domain"
)

// StayRepository persists stays.
type StayRepository interface {
	Create(ctx context.Context, stay *domain.Stay) error
	GetByID(ctx context.Context, id string) (*domain.Stay, error)
	List(ctx context.Context) ([]domain.Stay, error)
}

// SpotRepository persists tourist spots.
type SpotRepository interface {
	Create(ctx context.Context, spot *domain.TouristSpot) error
	GetByID(ctx context.Context, id string) (*domain.TouristSpot, error)
	List(ctx context.Context, category string) ([]domain.TouristSpot, error)
}

// EventRepository persists events and their comment threads.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error)
	ListUpcomingNear(ctx context.Context, lat, lon float64, limit int) ([]domain.Event, error)
	ListByTag(ctx context.Context, tag string, limit int) ([]domain.Event, error)
	IncrementInterest(ctx context.Context, id string) (int, error)
	AddComment(ctx context.Context, comment *domain.EventComment) error
	GetComments(ctx context.Context, eventID string) ([]domain.EventComment, error)
}
