package domain

// GeoPoint is a WGS 84 coordinate pair. Entities hold it as a pointer;
// nil means the record has no known location.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
