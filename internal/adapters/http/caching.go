package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on endpoint.
// Adds sensible defaults if not already set by the handler.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		// Only set on GET requests
		if c.Method() != "GET" {
			return err
		}

		// Don't override if already set
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10" // Very short for system checks

		case path == "/metrics":
			ttl = "no-cache" // Metrics are real-time

		case path == "/graphql":
			ttl = "private, max-age=0" // GraphQL varies wildly

		case strings.HasPrefix(path, "/v1/culture") || strings.HasPrefix(path, "/v1/emergency"):
			ttl = "public, max-age=3600" // Fixed content, changes with deploys

		case strings.HasPrefix(path, "/v1/events"):
			ttl = "private, max-age=0" // Visibility depends on the viewer's location

		case strings.HasPrefix(path, "/v1/tourist-spots/surprise"):
			ttl = "no-store" // Random every time

		case strings.HasPrefix(path, "/v1/stays") || strings.HasPrefix(path, "/v1/tourist-spots"):
			ttl = "public, max-age=300" // 5 min for listings

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=60"
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
