package inspections

import (
	"errors"
	"net/http"
)

// Domain errors for inspection operations.
var (
	ErrNotFound      = errors.New("inspection not found")
	ErrDuplicate     = errors.New("inspection already exists")
	ErrFileTooLarge  = errors.New("photo exceeds maximum upload size")
	ErrInvalidFile   = errors.New("invalid photo upload")
	ErrInvalidStatus = errors.New("status must be pending, review, or filed")
)

// MapHTTPStatus maps inspection domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) || errors.Is(err, ErrInvalidStatus) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
