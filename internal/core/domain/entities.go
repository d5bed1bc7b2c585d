package domain

import (
	"time"
)

// Stay represents a lodging option (homestay, hotel, hostel).
type Stay struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address,omitempty"`
	Location      *GeoPoint `json:"location,omitempty"`
	PricePerNight float64   `json:"price_per_night"`
	Rating        float64   `json:"rating"`
	Description   string    `json:"description,omitempty"`
	Amenities     string    `json:"amenities,omitempty"`
	Contact       string    `json:"contact,omitempty"`
	Distance      *float64  `json:"distance,omitempty"` // computed field, km
	CreatedAt     time.Time `json:"created_at"`
}

// TouristSpot represents a point of interest.
type TouristSpot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    *GeoPoint `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Rating      float64   `json:"rating"`
	Distance    *float64  `json:"distance,omitempty"` // computed field, km
	Score       *float64  `json:"score,omitempty"`    // computed blended score
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultVisibilityRadiusKm is applied to events created without an explicit
// visibility radius.
const DefaultVisibilityRadiusKm = 10.0

// Event represents a traveler-organized happening. Each event carries its own
// visibility radius, set once at creation by the owner; a viewer sees the
// event only when their own coordinate falls within that radius.
type Event struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Description        string         `json:"description,omitempty"`
	LocationText       string         `json:"location,omitempty"`
	Location           *GeoPoint      `json:"coordinate,omitempty"`
	Date               time.Time      `json:"date"`
	Contact            string         `json:"contact,omitempty"`
	Tags               string         `json:"tags,omitempty"`
	Organizer          string         `json:"organizer,omitempty"`
	CreatedBy          string         `json:"created_by,omitempty"`
	VisibilityRadiusKm float64        `json:"visibility_radius_km"`
	InterestedCount    int            `json:"interested_count"`
	Comments           []EventComment `json:"comments,omitempty"`
	Distance           *float64       `json:"distance,omitempty"` // computed field, km
	CreatedAt          time.Time      `json:"created_at"`
}

// EventComment is a comment left on an event's thread.
type EventComment struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Author    string    `json:"author,omitempty"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// CultureFact is a fixed local-culture card served to travelers.
type CultureFact struct {
	Title    string `json:"title"`
	Fact     string `json:"fact"`
	Category string `json:"category"`
}
