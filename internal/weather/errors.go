package weather

import (
	"errors"
	"net/http"
)

// Domain errors for weather operations.
var (
	ErrNotFound      = errors.New("observation not found")
	ErrDuplicate     = errors.New("observation already recorded")
	ErrInvalidInches = errors.New("inches must be non-negative")
	ErrMissingSite   = errors.New("site_id is required")
	ErrMissingTime   = errors.New("observed_at is required")
)

// MapHTTPStatus maps weather domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidInches) || errors.Is(err, ErrMissingSite) || errors.Is(err, ErrMissingTime) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
