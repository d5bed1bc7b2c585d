package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"
	"github.com/smartstay/navigator/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate limit exceeded",
				"message": "too many requests, please try again later",
			})
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout — fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// REST API v1 — 15s per-request timeout for listings
	v1 := app.Group("/v1")
	v1.Get("/stays", timeout.NewWithContext(ListStaysHandler(deps), 15*time.Second))
	v1.Post("/stays", timeout.NewWithContext(CreateStayHandler(deps), 15*time.Second))
	v1.Get("/stays/:id", timeout.NewWithContext(GetStayHandler(deps), 15*time.Second))

	v1.Get("/tourist-spots", timeout.NewWithContext(ListSpotsHandler(deps), 15*time.Second))
	v1.Post("/tourist-spots", timeout.NewWithContext(CreateSpotHandler(deps), 15*time.Second))
	v1.Get("/tourist-spots/recommendations", timeout.NewWithContext(RecommendSpotsHandler(deps), 15*time.Second))
	v1.Get("/tourist-spots/surprise", timeout.NewWithContext(SurpriseSpotHandler(deps), 15*time.Second))
	v1.Get("/tourist-spots/:id", timeout.NewWithContext(GetSpotHandler(deps), 15*time.Second))

	v1.Get("/events", timeout.NewWithContext(ListEventsHandler(deps), 15*time.Second))
	v1.Post("/events", timeout.NewWithContext(CreateEventHandler(deps), 15*time.Second))
	v1.Post("/events/suggest", timeout.NewWithContext(SuggestEventHandler(deps), 15*time.Second))
	v1.Get("/events/:id", timeout.NewWithContext(GetEventHandler(deps), 15*time.Second))
	v1.Post("/events/:id/interest", timeout.NewWithContext(MarkInterestHandler(deps), 15*time.Second))
	v1.Post("/events/:id/comments", timeout.NewWithContext(AddCommentHandler(deps), 15*time.Second))

	// Assistance chain endpoints run their own per-provider timeouts, so the
	// outer budget is wider.
	v1.Post("/assist/chat", timeout.NewWithContext(ChatHandler(deps), 60*time.Second))
	v1.Post("/assist/itinerary", timeout.NewWithContext(ItineraryHandler(deps), 60*time.Second))
	v1.Get("/assist/story/:place", timeout.NewWithContext(StoryHandler(deps), 60*time.Second))

	v1.Post("/translate", timeout.NewWithContext(TranslateHandler(deps), 30*time.Second))
	v1.Post("/translate/detect", timeout.NewWithContext(DetectLanguageHandler(deps), 30*time.Second))

	v1.Get("/culture", CultureCardHandler(deps))
	v1.Get("/culture/buzz", BuzzFeedHandler(deps))
	v1.Get("/emergency", EmergencyContactsHandler(deps))
	v1.Get("/emergency/all", AllEmergencyContactsHandler(deps))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
