package usecases

import (
	"math"
	"math/rand"
	"sort"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/pkg/geospatial"
)

// Preference selects the ordering policy for ranked listings.
type Preference string

const (
	PreferClosest  Preference = "closest"
	PreferRating   Preference = "rating"
	PreferBalanced Preference = "balanced"
)

// Blended-score tuning values. These came out of product experimentation and
// have no hard rationale; adjust here, not inline.
const (
	BalancedRatingWeight     = 0.65
	BalancedProximityWeight  = 0.35
	ProximityWindowKm        = 20.0
	UnlocatedProximityCredit = 0.15
)

// DefaultStayCutoffKm is the query-level distance cutoff applied to stays
// when the caller supplies a location but no explicit max distance.
const DefaultStayCutoffKm = 10.0

// ParsePreference maps a query string onto a Preference, defaulting to balanced.
func ParsePreference(s string) Preference {
	switch Preference(s) {
	case PreferClosest, PreferRating:
		return Preference(s)
	default:
		return PreferBalanced
	}
}

// Viewer validates caller-supplied coordinates. Both nil means no viewer
// location; a half-supplied or out-of-range pair is an input error.
func Viewer(lat, lon *float64) (*domain.GeoPoint, error) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, domain.ErrInvalidCoordinate
	}
	if !geospatial.ValidCoordinate(*lat, *lon) {
		return nil, domain.ErrInvalidCoordinate
	}
	return &domain.GeoPoint{Lat: *lat, Lon: *lon}, nil
}

// distanceTo returns the viewer-to-record distance in km, or nil when either
// side lacks a coordinate.
func distanceTo(viewer *domain.GeoPoint, loc *domain.GeoPoint) *float64 {
	if viewer == nil || loc == nil {
		return nil
	}
	d := geospatial.Haversine(viewer.Lat, viewer.Lon, loc.Lat, loc.Lon)
	return &d
}

// FilterStays annotates stays with viewer distance and drops those beyond
// maxDistanceKm, sorted nearest-first. With no viewer the list is returned
// unfiltered and unannotated; records without coordinates are never visible
// under the distance gate.
func FilterStays(stays []domain.Stay, viewer *domain.GeoPoint, maxDistanceKm float64) []domain.Stay {
	if viewer == nil {
		return stays
	}
	if maxDistanceKm <= 0 {
		maxDistanceKm = DefaultStayCutoffKm
	}

	out := make([]domain.Stay, 0, len(stays))
	for _, s := range stays {
		d := distanceTo(viewer, s.Location)
		if d == nil || *d > maxDistanceKm {
			continue
		}
		rounded := round2(*d)
		s.Distance = &rounded
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].Distance < *out[j].Distance
	})
	return out
}

// FilterVisibleEvents applies each event's own visibility radius against the
// viewer's coordinate. Event listings are always location-gated: a missing
// viewer coordinate is ErrLocationRequired, never an unfiltered or empty
// list. The radius is checked against the query-time coordinate only; there
// is no movement or staleness model.
func FilterVisibleEvents(events []domain.Event, viewer *domain.GeoPoint) ([]domain.Event, error) {
	if viewer == nil {
		return nil, domain.ErrLocationRequired
	}

	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		d := distanceTo(viewer, e.Location)
		if d == nil {
			continue
		}
		radius := e.VisibilityRadiusKm
		if radius <= 0 {
			radius = domain.DefaultVisibilityRadiusKm
		}
		if *d > radius {
			continue
		}
		rounded := round2(*d)
		e.Distance = &rounded
		out = append(out, e)
	}
	return out, nil
}

// RankSpots orders tourist spots by the requested preference. Every spot gets
// a blended score; distance is attached when a viewer location is known.
// An optional maxDistanceKm cutoff applies only when a viewer is supplied
// (<= 0 means unlimited, the spot default).
func RankSpots(spots []domain.TouristSpot, pref Preference, viewer *domain.GeoPoint, maxDistanceKm float64) []domain.TouristSpot {
	out := make([]domain.TouristSpot, 0, len(spots))
	for _, s := range spots {
		d := distanceTo(viewer, s.Location)
		if viewer != nil && maxDistanceKm > 0 {
			if d == nil || *d > maxDistanceKm {
				continue
			}
		}
		if d != nil {
			rounded := round2(*d)
			s.Distance = &rounded
		}
		score := round3(balancedScore(s.Rating, d))
		s.Score = &score
		out = append(out, s)
	}

	switch pref {
	case PreferClosest:
		sort.SliceStable(out, func(i, j int) bool {
			return distOrInf(out[i].Distance) < distOrInf(out[j].Distance)
		})
	case PreferRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return *out[i].Score > *out[j].Score
		})
	}
	return out
}

// balancedScore blends normalized rating with inverse-distance proximity.
// Unlocated records get a small flat credit so they are not buried outright.
func balancedScore(rating float64, distanceKm *float64) float64 {
	if rating < 0 {
		rating = 0
	}
	score := BalancedRatingWeight * (rating / 5)
	if distanceKm != nil {
		score += BalancedProximityWeight * math.Max(0, 1-*distanceKm/ProximityWindowKm)
	} else {
		score += UnlocatedProximityCredit
	}
	return score
}

// Surprise picks one spot uniformly at random from an already-filtered
// visible set. Selection over an empty set fails explicitly.
func Surprise(spots []domain.TouristSpot) (*domain.TouristSpot, error) {
	if len(spots) == 0 {
		return nil, domain.ErrNoVisibleRecords
	}
	pick := spots[rand.Intn(len(spots))]
	return &pick, nil
}

func distOrInf(d *float64) float64 {
	if d == nil {
		return math.Inf(1)
	}
	return *d
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
