package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/ports"
	"github.com/smartstay/navigator/internal/pkg/metrics"
)

// StayFilter narrows a stay listing. Zero values mean "no filter".
type StayFilter struct {
	Viewer        *domain.GeoPoint
	MaxDistanceKm float64
	MaxPrice      float64
	MinRating     float64
}

// StayService handles lodging listings.
type StayService struct {
	stays ports.StayRepository
	cache ports.CacheService
}

// NewStayService creates a new StayService.
func NewStayService(stays ports.StayRepository, cache ports.CacheService) *StayService {
	return &StayService{stays: stays, cache: cache}
}

// List returns stays matching the filter, nearest-first when a viewer
// location is given.
func (s *StayService) List(ctx context.Context, filter StayFilter) ([]domain.Stay, error) {
	stays, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	metrics.RankingRequests.WithLabelValues("stay", string(PreferClosest)).Inc()
	stays = FilterStays(stays, filter.Viewer, filter.MaxDistanceKm)

	if filter.MaxPrice > 0 || filter.MinRating > 0 {
		filtered := stays[:0]
		for _, st := range stays {
			if filter.MaxPrice > 0 && st.PricePerNight > filter.MaxPrice {
				continue
			}
			if filter.MinRating > 0 && st.Rating < filter.MinRating {
				continue
			}
			filtered = append(filtered, st)
		}
		stays = filtered
	}

	return stays, nil
}

// GetByID returns a single stay.
func (s *StayService) GetByID(ctx context.Context, id string) (*domain.Stay, error) {
	return s.stays.GetByID(ctx, id)
}

// Create persists a new stay and invalidates the listing cache.
func (s *StayService) Create(ctx context.Context, stay *domain.Stay) error {
	if err := s.stays.Create(ctx, stay); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, stayListCacheKey)
	}
	return nil
}

const stayListCacheKey = "stays:all"

// loadAll reads the full stay set through the cache. Stays change rarely;
// five minutes of staleness is fine.
func (s *StayService) loadAll(ctx context.Context) ([]domain.Stay, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, stayListCacheKey); err == nil {
			var stays []domain.Stay
			if err := json.Unmarshal(data, &stays); err == nil {
				metrics.CacheHits.WithLabelValues("stays").Inc()
				return stays, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("stays").Inc()
	}

	stays, err := s.stays.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stays: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(stays); err == nil {
			_ = s.cache.Set(ctx, stayListCacheKey, data, 300)
		}
	}
	return stays, nil
}
