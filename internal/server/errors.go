// Package server provides the HTTP REST API for the offer analyzer.
package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/offer-analyzer/internal/contribution"
	"github.com/jonathan/offer-analyzer/internal/db"
	"github.com/jonathan/offer-analyzer/internal/parse"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Service errors arrive wrapped, so matching goes through errors.Is/As.
func HTTPStatus(err error) int {
	var validationErrs validator.ValidationErrors
	var parseErr *parse.ParseError
	var apiErr *parse.APICallError

	switch {
	case errors.Is(err, contribution.ErrDuplicateSubmission):
		return http.StatusConflict
	case errors.Is(err, db.ErrRegionExists):
		return http.StatusConflict
	case errors.Is(err, db.ErrRegionNotFound):
		return http.StatusNotFound
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
