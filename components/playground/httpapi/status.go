package httpapi

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// StatusFor maps error categories onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case goerrors.HasCategory(err, goerrors.CategoryBadInput):
		return http.StatusBadRequest
	case goerrors.HasCategory(err, goerrors.CategoryNotFound):
		return http.StatusNotFound
	case goerrors.HasCategory(err, goerrors.CategoryValidation):
		return http.StatusUnprocessableEntity
	case goerrors.HasCategory(err, goerrors.CategoryAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON error envelope.
func ErrorBody(err error) map[string]any {
	body := map[string]any{"error": err.Error()}
	if fields, ok := goerrors.GetValidationErrors(err); ok && len(fields) > 0 {
		body["fields"] = fields
	}
	return body
}
