package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/smartstay/navigator/internal/core/domain"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errDomain maps domain sentinel errors onto HTTP responses. A missing viewer
// location is 401: the viewer's own coordinate acts as the access credential
// for location-gated content.
func errDomain(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrLocationRequired):
		return newError(c, 401, "location_required", "a viewer location (lat, lon) is required for this request")
	case errors.Is(err, domain.ErrInvalidCoordinate):
		return errBadRequest(c, "invalid coordinates: lat must be -90..90 and lon -180..180, both present")
	case errors.Is(err, domain.ErrModerationRejected):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrNoVisibleRecords):
		return errNotFound(c, "nothing visible from your location")
	case errors.Is(err, domain.ErrTranslationUnavailable):
		return newError(c, 503, "translation_unavailable", "all translation services are currently unavailable")
	default:
		return errInternal(c, err.Error())
	}
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}
