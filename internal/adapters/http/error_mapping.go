package httpadapter

import (
	"errors"
	"net/http"

	"github.com/secureai/docshield/internal/core/domain"
)

// mapErrorToHTTPStatus translates domain sentinel errors into HTTP codes.
// Anything not recognized is an internal error.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTemporary):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
