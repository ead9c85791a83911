package audits

import (
	"errors"
	"net/http"
)

// Domain errors for audit operations.
var (
	ErrNotFound        = errors.New("audit not found")
	ErrDuplicate       = errors.New("audit already exists")
	ErrAlreadyReviewed = errors.New("audit has already been reviewed")
)

// MapHTTPStatus maps audit domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrAlreadyReviewed) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
