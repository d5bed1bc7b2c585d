package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/ports"
	"github.com/smartstay/navigator/internal/pkg/metrics"
)

// SpotService handles tourist-spot listings and recommendations.
type SpotService struct {
	spots ports.SpotRepository
	cache ports.CacheService
}

// NewSpotService creates a new SpotService.
func NewSpotService(spots ports.SpotRepository, cache ports.CacheService) *SpotService {
	return &SpotService{spots: spots, cache: cache}
}

// List returns spots for a category, nearest-first when a viewer location is
// given. Spots have no distance cutoff unless the caller asks for one.
func (s *SpotService) List(ctx context.Context, viewer *domain.GeoPoint, category string, maxDistanceKm float64) ([]domain.TouristSpot, error) {
	spots, err := s.load(ctx, category)
	if err != nil {
		return nil, err
	}

	metrics.RankingRequests.WithLabelValues("spot", string(PreferClosest)).Inc()
	if viewer == nil {
		return spots, nil
	}
	return RankSpots(spots, PreferClosest, viewer, maxDistanceKm), nil
}

// Recommend returns the top spots under the requested ordering preference.
func (s *SpotService) Recommend(ctx context.Context, viewer *domain.GeoPoint, pref Preference, limit int) ([]domain.TouristSpot, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	spots, err := s.load(ctx, "")
	if err != nil {
		return nil, err
	}

	metrics.RankingRequests.WithLabelValues("spot", string(pref)).Inc()
	ranked := RankSpots(spots, pref, viewer, 0)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// SurprisePick returns one random spot from the viewer's distance-sorted
// visible set. It requires a viewer location so that "surprise me" stays
// local, and fails explicitly when nothing is visible.
func (s *SpotService) SurprisePick(ctx context.Context, viewer *domain.GeoPoint, category string) (*domain.TouristSpot, error) {
	if viewer == nil {
		return nil, domain.ErrLocationRequired
	}

	spots, err := s.load(ctx, category)
	if err != nil {
		return nil, err
	}

	visible := RankSpots(spots, PreferClosest, viewer, 0)
	return Surprise(visible)
}

// GetByID returns a single spot.
func (s *SpotService) GetByID(ctx context.Context, id string) (*domain.TouristSpot, error) {
	return s.spots.GetByID(ctx, id)
}

// Create persists a new spot and invalidates the listing cache.
func (s *SpotService) Create(ctx context.Context, spot *domain.TouristSpot) error {
	if err := s.spots.Create(ctx, spot); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, spotCacheKey(""))
	}
	return nil
}

func spotCacheKey(category string) string {
	return "spots:list:" + category
}

func (s *SpotService) load(ctx context.Context, category string) ([]domain.TouristSpot, error) {
	key := spotCacheKey(category)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil {
			var spots []domain.TouristSpot
			if err := json.Unmarshal(data, &spots); err == nil {
				metrics.CacheHits.WithLabelValues("spots").Inc()
				return spots, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("spots").Inc()
	}

	spots, err := s.spots.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list spots: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(spots); err == nil {
			_ = s.cache.Set(ctx, key, data, 300)
		}
	}
	return spots, nil
}
