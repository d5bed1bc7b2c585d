package usecases

import (
	"math/rand"
	"strings"

	"github.com/smartstay/navigator/internal/core/domain"
)

// cultureFacts holds the fixed culture cards keyed by lowercase location.
// Unknown locations fall back to the default set.
var cultureFacts = map[string][]domain.CultureFact{
	"default": {
		{
			Title:    "Local Cuisine",
			Fact:     "The region is famous for its spicy seafood dishes, especially the traditional fish curry served with steamed rice.",
			Category: "food",
		},
		{
			Title:    "Traditional Festivals",
			Fact:     "The area celebrates unique festivals during monsoon season with colorful processions and traditional music.",
			Category: "festival",
		},
		{
			Title:    "Local Language",
			Fact:     "The local dialect has influences from multiple languages, creating a unique linguistic blend.",
			Category: "language",
		},
		{
			Title:    "Historical Significance",
			Fact:     "This region has been a trading hub for centuries, connecting ancient civilizations.",
			Category: "history",
		},
		{
			Title:    "Art & Craft",
			Fact:     "Local artisans are known for their intricate handwoven textiles and pottery.",
			Category: "art",
		},
	},
}

// BuzzItem is one entry of the local buzz feed.
type BuzzItem struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

var buzzFeed = []BuzzItem{
	{Type: "weather", Title: "Today's Weather", Content: "Sunny, 28°C. Perfect for outdoor activities!"},
	{Type: "activity", Title: "Happening Today", Content: "Beach cleanup drive at 5 PM. Join local volunteers!"},
	{Type: "news", Title: "Local Update", Content: "New cultural center opens this week with free entry."},
	{Type: "tip", Title: "Travel Tip", Content: "Best time to visit temples is early morning or late evening."},
}

// emergencyContacts maps lowercase country names to their service numbers.
var emergencyContacts = map[string]map[string]string{
	"default": {
		"police":              "100",
		"fire":                "101",
		"ambulance":           "102",
		"women_helpline":      "1091",
		"disaster_management": "108",
	},
	"india": {
		"police":              "100",
		"fire":                "101",
		"ambulance":           "102",
		"women_helpline":      "1091",
		"disaster_management": "108",
		"tourist_helpline":    "1800-111-363",
	},
	"usa": {
		"police":         "911",
		"fire":           "911",
		"ambulance":      "911",
		"women_helpline": "911",
	},
	"uk": {
		"police":         "999",
		"fire":           "999",
		"ambulance":      "999",
		"women_helpline": "999",
	},
}

// CultureService serves fixed local-knowledge content: culture cards, the
// buzz feed and emergency contacts.
type CultureService struct{}

// NewCultureService creates a new CultureService.
func NewCultureService() *CultureService { return &CultureService{} }

// Card returns a random culture card for a location.
func (s *CultureService) Card(location string) domain.CultureFact {
	facts, ok := cultureFacts[strings.ToLower(location)]
	if !ok {
		facts = cultureFacts["default"]
	}
	return facts[rand.Intn(len(facts))]
}

// BuzzFeed returns the local buzz entries for a location.
func (s *CultureService) BuzzFeed(location string) []BuzzItem {
	return buzzFeed
}

// EmergencyContacts returns the service numbers for a country, falling back
// to the default set when the country is unknown.
func (s *CultureService) EmergencyContacts(country string) map[string]string {
	contacts, ok := emergencyContacts[strings.ToLower(country)]
	if !ok {
		return emergencyContacts["default"]
	}
	return contacts
}

// AllEmergencyContacts returns the full country table.
func (s *CultureService) AllEmergencyContacts() map[string]map[string]string {
	return emergencyContacts
}
