package geospatial

import (
	"math"
	"testing"
)

func TestHaversine_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{13.3444, 74.7286, 13.3452, 74.7389},
		{43.263, -2.935, 40.4168, -3.7038},
		{0, 0, -45, 120},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %f vs %f", ab, ba)
		}
	}
}

func TestHaversine_Identity(t *testing.T) {
	if d := Haversine(13.3444, 74.7286, 13.3444, 74.7286); d != 0 {
		t.Errorf("expected zero distance to self, got %f", d)
	}
}

func TestHaversine_KnownDistances(t *testing.T) {
	// Malpe area: ~1.1-1.5 km apart
	d := Haversine(13.3444, 74.7286, 13.3452, 74.7389)
	if d < 1.0 || d > 1.6 {
		t.Errorf("expected ~1.1 km, got %f", d)
	}

	// ~25 km away
	d = Haversine(13.3444, 74.7286, 13.1333, 75.2500)
	if d < 20 || d > 70 {
		t.Errorf("expected tens of km, got %f", d)
	}

	// Bilbao <-> Madrid, roughly 320 km
	d = Haversine(43.263, -2.935, 40.4168, -3.7038)
	if d < 300 || d > 340 {
		t.Errorf("expected ~320 km, got %f", d)
	}
}

func TestValidCoordinate(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{13.3444, 74.7286, true},
		{90, 180, true},
		{-90, -180, true},
		{91, 0, false},
		{-91, 0, false},
		{0, 181, false},
		{0, -181, false},
	}
	for _, c := range cases {
		if got := ValidCoordinate(c.lat, c.lon); got != c.want {
			t.Errorf("ValidCoordinate(%f, %f) = %v, want %v", c.lat, c.lon, got, c.want)
		}
	}
}

func TestBoundingBox_ContainsCenter(t *testing.T) {
	minLat, minLon, maxLat, maxLon := BoundingBox(13.3444, 74.7286, 5)
	if minLat >= 13.3444 || maxLat <= 13.3444 || minLon >= 74.7286 || maxLon <= 74.7286 {
		t.Errorf("bounding box does not contain center: %f %f %f %f", minLat, minLon, maxLat, maxLon)
	}
}
