package util

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/FigStudio/pkg/figstudio"
)

// StatusFromError maps domain errors to an HTTP status, anything unknown is a 500.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, figstudio.ErrUnknownTemplate):
		return http.StatusNotFound
	case errors.Is(err, figstudio.ErrInvalidInput),
		errors.Is(err, figstudio.ErrUnsupportedDPI):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
