package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrInspectionNotFound = errors.New("inspection not found")
	ErrPhotoFetchFailed   = errors.New("failed to fetch inspection photo")
	ErrAnalyzeFailed      = errors.New("analysis failed")
	ErrFinalizeFailed     = errors.New("finalization failed")
)
