package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/certwatch/certwatch/internal/api/response"
)

// serverError logs the underlying error and collapses it to a generic
// message. Store error details never reach CRUD callers.
func serverError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).
		Str("path", r.URL.Path).
		Msg("request failed")
	response.WriteError(w, http.StatusInternalServerError, "server error")
}

// MissingID rejects collection-level PUT and DELETE requests, which require
// an id path segment.
func MissingID(w http.ResponseWriter, _ *http.Request) {
	response.WriteError(w, http.StatusBadRequest, "missing id")
}
