package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/usecases"
)

type chatRequest struct {
	Message string                    `json:"message"`
	APIKey  string                    `json:"api_key"`
	History []domain.ConversationTurn `json:"history"`
	Lat     *float64                  `json:"lat"`
	Lon     *float64                  `json:"lon"`
}

// ChatHandler answers a traveler utterance through the assistance chain.
func ChatHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Message == "" {
			return errBadRequest(c, "message is required")
		}

		viewer, err := usecases.Viewer(req.Lat, req.Lon)
		if err != nil {
			return errDomain(c, err)
		}

		answer := deps.Assist.Chat(c.Context(), usecases.ChatRequest{
			Message:  req.Message,
			APIKey:   req.APIKey,
			History:  req.History,
			Location: viewer,
		})
		return c.JSON(fiber.Map{
			"response": answer.Text,
			"provider": answer.Provider,
			"prompt":   req.Message,
		})
	}
}

// ItineraryHandler generates a travel itinerary.
func ItineraryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Budget   float64 `json:"budget"`
			Location string  `json:"location"`
			Duration string  `json:"duration"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Budget <= 0 {
			req.Budget = 1000
		}
		if req.Location == "" {
			req.Location = "Unknown"
		}
		if req.Duration == "" {
			req.Duration = "1 day"
		}

		answer := deps.Assist.Itinerary(c.Context(), req.Budget, req.Location, req.Duration)
		return c.JSON(fiber.Map{
			"itinerary": answer.Text,
			"provider":  answer.Provider,
			"budget":    req.Budget,
			"location":  req.Location,
			"duration":  req.Duration,
		})
	}
}

// StoryHandler tells a short travel story about a place.
func StoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		place := c.Params("place")
		if place == "" {
			return errBadRequest(c, "place is required")
		}

		answer := deps.Assist.Story(c.Context(), place)
		return c.JSON(fiber.Map{
			"place":    place,
			"story":    answer.Text,
			"provider": answer.Provider,
			"type":     "travel_story",
		})
	}
}

// TranslateHandler converts text between languages through the translation chain.
func TranslateHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Text       string `json:"text"`
			SourceLang string `json:"source_lang"`
			TargetLang string `json:"target_lang"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Text == "" {
			return errBadRequest(c, "text is required")
		}
		if req.SourceLang == "" {
			req.SourceLang = "en"
		}
		if req.TargetLang == "" {
			req.TargetLang = "es"
		}

		result, err := deps.Translate.Translate(c.Context(), req.Text, req.SourceLang, req.TargetLang)
		if err != nil {
			return errDomain(c, err)
		}
		return c.JSON(result)
	}
}

// DetectLanguageHandler identifies the language of a text.
func DetectLanguageHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Text string `json:"text"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Text == "" {
			return errBadRequest(c, "text is required")
		}

		return c.JSON(deps.Translate.Detect(c.Context(), req.Text))
	}
}

// CultureCardHandler returns a random culture card for a location.
func CultureCardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		location := c.Query("location", "default")
		return c.JSON(fiber.Map{
			"location": location,
			"card":     deps.Culture.Card(location),
			"message":  "Discover local culture!",
		})
	}
}

// BuzzFeedHandler returns the local buzz feed.
func BuzzFeedHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		location := c.Query("location", "default")
		return c.JSON(fiber.Map{
			"location": location,
			"feed":     deps.Culture.BuzzFeed(location),
		})
	}
}

// EmergencyContactsHandler returns emergency numbers for a country.
func EmergencyContactsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		country := c.Query("country", "default")
		return c.JSON(fiber.Map{
			"contacts": deps.Culture.EmergencyContacts(country),
			"location": country,
			"message":  "Call these numbers in case of emergency",
		})
	}
}

// AllEmergencyContactsHandler returns the full emergency contact table.
func AllEmergencyContactsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Culture.AllEmergencyContacts())
	}
}
