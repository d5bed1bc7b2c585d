package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/smartstay/navigator/internal/core/domain"
	"github.com/smartstay/navigator/internal/core/usecases"
)

// viewerFromQuery parses optional lat/lon query parameters into a viewer
// location. Absent parameters mean no viewer; a half pair or out-of-range
// values are rejected by the usecase layer.
func viewerFromQuery(c *fiber.Ctx) (*domain.GeoPoint, error) {
	var lat, lon *float64
	if c.Query("lat") != "" {
		v := c.QueryFloat("lat")
		lat = &v
	}
	if c.Query("lon") != "" {
		v := c.QueryFloat("lon")
		lon = &v
	}
	return usecases.Viewer(lat, lon)
}

// ListStaysHandler lists stays with optional location, price and rating filters.
func ListStaysHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer, err := viewerFromQuery(c)
		if err != nil {
			return errDomain(c, err)
		}

		filter := usecases.StayFilter{
			Viewer:        viewer,
			MaxDistanceKm: c.QueryFloat("max_distance", 0),
			MaxPrice:      c.QueryFloat("max_price", 0),
			MinRating:     c.QueryFloat("min_rating", 0),
		}

		stays, err := deps.Stays.List(c.Context(), filter)
		if err != nil {
			return errDomain(c, err)
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 50)
		start, end, pg := Window(len(stays), offset, limit, 200)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: stays[start:end], Pagination: pg})
	}
}

// GetStayHandler returns a single stay by ID.
func GetStayHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stay, err := deps.Stays.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "stay not found")
		}
		return c.JSON(stay)
	}
}

// CreateStayHandler registers a new stay listing.
func CreateStayHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var stay domain.Stay
		if err := c.BodyParser(&stay); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if stay.Name == "" {
			return errBadRequest(c, "name is required")
		}

		if err := deps.Stays.Create(c.Context(), &stay); err != nil {
			return errDomain(c, err)
		}
		return c.Status(201).JSON(stay)
	}
}

// ListSpotsHandler lists tourist spots, nearest-first when a viewer location
// is given.
func ListSpotsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer, err := viewerFromQuery(c)
		if err != nil {
			return errDomain(c, err)
		}

		spots, err := deps.Spots.List(c.Context(), viewer,
			c.Query("category"), c.QueryFloat("max_distance", 0))
		if err != nil {
			return errDomain(c, err)
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 50)
		start, end, pg := Window(len(spots), offset, limit, 200)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: spots[start:end], Pagination: pg})
	}
}

// GetSpotHandler returns a single spot by ID.
func GetSpotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		spot, err := deps.Spots.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "tourist spot not found")
		}
		return c.JSON(spot)
	}
}

// CreateSpotHandler registers a new tourist spot.
func CreateSpotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var spot domain.TouristSpot
		if err := c.BodyParser(&spot); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if spot.Name == "" {
			return errBadRequest(c, "name is required")
		}

		if err := deps.Spots.Create(c.Context(), &spot); err != nil {
			return errDomain(c, err)
		}
		return c.Status(201).JSON(spot)
	}
}

// RecommendSpotsHandler returns ranked spot recommendations. The preference
// parameter selects closest, rating, or balanced ordering.
func RecommendSpotsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer, err := viewerFromQuery(c)
		if err != nil {
			return errDomain(c, err)
		}

		pref := usecases.ParsePreference(c.Query("preference"))
		spots, err := deps.Spots.Recommend(c.Context(), viewer, pref, c.QueryInt("limit", 5))
		if err != nil {
			return errDomain(c, err)
		}

		return c.JSON(fiber.Map{
			"preference":      pref,
			"recommendations": spots,
		})
	}
}

// SurpriseSpotHandler returns one random nearby spot.
func SurpriseSpotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer, err := viewerFromQuery(c)
		if err != nil {
			return errDomain(c, err)
		}

		spot, err := deps.Spots.SurprisePick(c.Context(), viewer, c.Query("category"))
		if err != nil {
			return errDomain(c, err)
		}
		return c.JSON(fiber.Map{
			"surprise": spot,
			"message":  "Here's somewhere you might not have thought of!",
		})
	}
}

// ListEventsHandler lists events visible from the viewer's location.
func ListEventsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer, err := viewerFromQuery(c)
		if err != nil {
			return errDomain(c, err)
		}

		events, err := deps.Events.List(c.Context(), viewer, c.Query("tag"))
		if err != nil {
			return errDomain(c, err)
		}
		return c.JSON(fiber.Map{"events": events, "count": len(events)})
	}
}

// GetEventHandler returns one event with its comment thread.
func GetEventHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		event, err := deps.Events.GetByID(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "event not found")
		}
		return c.JSON(event)
	}
}

// createEventRequest is the event creation payload. The coordinate and
// visibility radius are fixed at creation time.
type createEventRequest struct {
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	LocationText       string           `json:"location"`
	Coordinate         *domain.GeoPoint `json:"coordinate"`
	Date               time.Time        `json:"date"`
	Contact            string           `json:"contact"`
	Tags               string           `json:"tags"`
	Organizer          string           `json:"organizer"`
	CreatedBy          string           `json:"created_by"`
	VisibilityRadiusKm float64          `json:"visibility_radius_km"`
}

// CreateEventHandler creates a community event behind the moderation gate.
func CreateEventHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createEventRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Title == "" {
			return errBadRequest(c, "title is required")
		}

		event := domain.Event{
			Title:              req.Title,
			Description:        req.Description,
			LocationText:       req.LocationText,
			Location:           req.Coordinate,
			Date:               req.Date,
			Contact:            req.Contact,
			Tags:               req.Tags,
			Organizer:          req.Organizer,
			CreatedBy:          req.CreatedBy,
			VisibilityRadiusKm: req.VisibilityRadiusKm,
		}
		if err := deps.Events.Create(c.Context(), &event); err != nil {
			return errDomain(c, err)
		}
		return c.Status(201).JSON(event)
	}
}

// MarkInterestHandler increments an event's interest counter.
func MarkInterestHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := deps.Events.MarkInterest(c.Context(), c.Params("id"))
		if err != nil {
			return errNotFound(c, "event not found")
		}
		return c.JSON(fiber.Map{
			"event_id":         c.Params("id"),
			"interested_count": count,
		})
	}
}

// AddCommentHandler appends a comment to an event's thread.
func AddCommentHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var comment domain.EventComment
		if err := c.BodyParser(&comment); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if comment.Comment == "" {
			return errBadRequest(c, "comment is required")
		}
		comment.EventID = c.Params("id")

		if err := deps.Events.AddComment(c.Context(), &comment); err != nil {
			return errDomain(c, err)
		}
		return c.Status(201).JSON(comment)
	}
}

// SuggestEventHandler produces an event suggestion for an interest plus any
// matching upcoming events.
func SuggestEventHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Interest string `json:"interest"`
			Location string `json:"location"`
		}
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Interest == "" {
			return errBadRequest(c, "interest is required")
		}

		suggestion, matches, err := deps.Events.Suggest(c.Context(), req.Interest, req.Location)
		if err != nil {
			return errDomain(c, err)
		}
		return c.JSON(fiber.Map{
			"suggestion":      suggestion,
			"matching_events": matches,
		})
	}
}
