package usecases_test

import (
	"errors"
	"testing"

	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/usecases"
)

func gp(lat, lon float64) *domain.GeoPoint {
	return &domain.GeoPoint{Lat: lat, Lon: lon}
}

func f64(v float64) *float64 { return &v }

func TestViewer(t *testing.T) {
	v, err := usecases.Viewer(nil, nil)
	if v != nil || err != nil {
		t.Errorf("expected nil viewer, got %v %v", v, err)
	}

	if _, err := usecases.Viewer(f64(13.3), nil); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Errorf("half-supplied pair should be invalid, got %v", err)
	}

	if _, err := usecases.Viewer(f64(91), f64(0)); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Errorf("lat 91 should be invalid, got %v", err)
	}
	if _, err := usecases.Viewer(f64(0), f64(-181)); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Errorf("lon -181 should be invalid, got %v", err)
	}

	v, err = usecases.Viewer(f64(13.3444), f64(74.7286))
	if err != nil || v == nil || v.Lat != 13.3444 {
		t.Fatalf("valid pair rejected: %v %v", v, err)
	}
}

func TestFilterVisibleEvents_RequiresViewer(t *testing.T) {
	events := []domain.Event{
		{ID: "1", Location: gp(13.3444, 74.7286), VisibilityRadiusKm: 5},
	}
	if _, err := usecases.FilterVisibleEvents(events, nil); !errors.Is(err, domain.ErrLocationRequired) {
		t.Errorf("expected ErrLocationRequired, got %v", err)
	}
	// Same with no events at all
	if _, err := usecases.FilterVisibleEvents(nil, nil); !errors.Is(err, domain.ErrLocationRequired) {
		t.Errorf("expected ErrLocationRequired for empty set, got %v", err)
	}
}

func TestFilterVisibleEvents_RadiusGate(t *testing.T) {
	events := []domain.Event{
		{ID: "beach-meetup", Location: gp(13.3444, 74.7286), VisibilityRadiusKm: 5},
	}

	// Viewer ~1.4 km away: visible
	visible, err := usecases.FilterVisibleEvents(events, gp(13.3452, 74.7389))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("expected event visible at ~1.4 km, got %d results", len(visible))
	}
	if visible[0].Distance == nil || *visible[0].Distance > 5 {
		t.Errorf("expected annotated distance under 5 km, got %v", visible[0].Distance)
	}

	// Viewer ~25+ km away: invisible
	visible, err = usecases.FilterVisibleEvents(events, gp(13.1333, 75.2500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("expected event hidden at ~25 km, got %d results", len(visible))
	}
}

func TestFilterVisibleEvents_MissingCoordinateNeverVisible(t *testing.T) {
	events := []domain.Event{
		{ID: "no-coords", VisibilityRadiusKm: 100},
	}
	visible, err := usecases.FilterVisibleEvents(events, gp(13.3444, 74.7286))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("record without coordinates must not pass a location gate")
	}
}

func TestFilterVisibleEvents_DefaultRadius(t *testing.T) {
	// Radius 0 falls back to the 10 km default.
	events := []domain.Event{
		{ID: "default-radius", Location: gp(13.3444, 74.7286)},
	}
	visible, err := usecases.FilterVisibleEvents(events, gp(13.3452, 74.7389))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(visible) != 1 {
		t.Errorf("expected default 10 km radius to admit a ~1.4 km viewer")
	}
}

func TestFilterStays_CutoffAndSort(t *testing.T) {
	stays := []domain.Stay{
		{ID: "far", Name: "Hilltop Lodge", Location: gp(13.1333, 75.2500)},
		{ID: "near", Name: "Beach Hut", Location: gp(13.3452, 74.7389)},
		{ID: "unlocated", Name: "Mystery Inn"},
	}

	out := usecases.FilterStays(stays, gp(13.3444, 74.7286), 10)
	if len(out) != 1 {
		t.Fatalf("expected 1 stay within 10 km, got %d", len(out))
	}
	if out[0].ID != "near" {
		t.Errorf("expected near stay, got %s", out[0].ID)
	}

	// No viewer: unfiltered, unlocated records included
	out = usecases.FilterStays(stays, nil, 10)
	if len(out) != 3 {
		t.Errorf("expected unfiltered listing without viewer, got %d", len(out))
	}
}

func TestRankSpots_Rating(t *testing.T) {
	spots := []domain.TouristSpot{
		{ID: "a", Rating: 4.9},
		{ID: "b", Rating: 4.6},
		{ID: "c", Rating: 4.8},
	}
	out := usecases.RankSpots(spots, usecases.PreferRating, nil, 0)
	got := []float64{out[0].Rating, out[1].Rating, out[2].Rating}
	want := []float64{4.9, 4.8, 4.6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rating order wrong: got %v, want %v", got, want)
		}
	}
}

func TestRankSpots_Closest_UnlocatedLast(t *testing.T) {
	spots := []domain.TouristSpot{
		{ID: "unlocated", Rating: 5},
		{ID: "near", Location: gp(13.3452, 74.7389), Rating: 1},
		{ID: "far", Location: gp(13.1333, 75.2500), Rating: 1},
	}
	out := usecases.RankSpots(spots, usecases.PreferClosest, gp(13.3444, 74.7286), 0)
	if out[0].ID != "near" || out[1].ID != "far" || out[2].ID != "unlocated" {
		t.Errorf("closest order wrong: %s %s %s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestRankSpots_BalancedMonotonic(t *testing.T) {
	viewer := gp(13.3444, 74.7286)

	// Same distance, higher rating must not score lower.
	same := []domain.TouristSpot{
		{ID: "hi", Location: gp(13.3452, 74.7389), Rating: 4.8},
		{ID: "lo", Location: gp(13.3452, 74.7389), Rating: 3.1},
	}
	out := usecases.RankSpots(same, usecases.PreferBalanced, viewer, 0)
	if out[0].ID != "hi" {
		t.Errorf("higher rating should rank first at equal distance")
	}
	if *out[0].Score < *out[1].Score {
		t.Errorf("score decreased with rating: %v < %v", *out[0].Score, *out[1].Score)
	}

	// Same rating, nearer must not score lower.
	dist := []domain.TouristSpot{
		{ID: "far", Location: gp(13.1333, 75.2500), Rating: 4.5},
		{ID: "near", Location: gp(13.3452, 74.7389), Rating: 4.5},
	}
	out = usecases.RankSpots(dist, usecases.PreferBalanced, viewer, 0)
	if out[0].ID != "near" {
		t.Errorf("nearer spot should rank first at equal rating")
	}
}

func TestRankSpots_UnlocatedCredit(t *testing.T) {
	spots := []domain.TouristSpot{
		{ID: "unlocated", Rating: 5},
	}
	out := usecases.RankSpots(spots, usecases.PreferBalanced, gp(13.3444, 74.7286), 0)
	want := usecases.BalancedRatingWeight + usecases.UnlocatedProximityCredit
	if *out[0].Score != want {
		t.Errorf("unlocated spot score = %v, want %v", *out[0].Score, want)
	}
}

func TestRankSpots_StableTies(t *testing.T) {
	spots := []domain.TouristSpot{
		{ID: "first", Rating: 4.0},
		{ID: "second", Rating: 4.0},
		{ID: "third", Rating: 4.0},
	}
	out := usecases.RankSpots(spots, usecases.PreferBalanced, nil, 0)
	if out[0].ID != "first" || out[1].ID != "second" || out[2].ID != "third" {
		t.Errorf("ties must keep input order: %s %s %s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestSurprise(t *testing.T) {
	if _, err := usecases.Surprise(nil); !errors.Is(err, domain.ErrNoVisibleRecords) {
		t.Errorf("expected explicit failure over empty set, got %v", err)
	}

	only := []domain.TouristSpot{{ID: "solo"}}
	for i := 0; i < 10; i++ {
		pick, err := usecases.Surprise(only)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pick.ID != "solo" {
			t.Fatalf("size-1 set must always return its element, got %s", pick.ID)
		}
	}
}
