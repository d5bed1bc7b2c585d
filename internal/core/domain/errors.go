package domain

import "errors"

var (
	// ErrInvalidCoordinate is returned when a caller supplies an out-of-range
	// latitude or longitude.
	ErrInvalidCoordinate = errors.New("invalid coordinate: latitude must be in [-90,90] and longitude in [-180,180]")

	// ErrLocationRequired is returned when a radius-gated listing (events) is
	// requested without a viewer coordinate.
	ErrLocationRequired = errors.New("location required to view nearby events")

	// ErrModerationRejected is returned when user-authored content fails the
	// moderation denylist.
	ErrModerationRejected = errors.New("content rejected by moderation")

	// ErrNoVisibleRecords is returned by surprise selection over an empty
	// visible set.
	ErrNoVisibleRecords = errors.New("no visible records to choose from")

	// ErrTranslationUnavailable is returned when every translation provider
	// in the chain failed.
	ErrTranslationUnavailable = errors.New("translation service unavailable")
)
