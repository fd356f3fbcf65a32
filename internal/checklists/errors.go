package checklists

import (
	"errors"
	"net/http"
)

// Domain errors for checklist operations.
var (
	ErrNotFound      = errors.New("checklist not found")
	ErrDuplicate     = errors.New("checklist already exists for inspection")
	ErrInvalidStatus = errors.New("status must be draft, in_progress, or complete")
	ErrEmptyItems    = errors.New("checklist requires at least one item")
	ErrOpenItems     = errors.New("all items must be completed before closing the checklist")
)

// MapHTTPStatus maps checklist domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrEmptyItems) || errors.Is(err, ErrOpenItems) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
