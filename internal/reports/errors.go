package reports

import (
	"errors"
	"net/http"
)

// Domain errors for report operations.
var (
	ErrNoAnalyses = errors.New("no analyses recorded for site")
)

// MapHTTPStatus maps report domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoAnalyses) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
