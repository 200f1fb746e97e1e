package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"job-board-backend/internal/apperror"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// requestError is a transport-level failure with its own status code
type requestError struct {
	status  int
	message string
	err     error
}

func (e *requestError) Error() string {
	if e.err != nil {
		return e.message + ": " + e.err.Error()
	}
	return e.message
}

func (e *requestError) Unwrap() error {
	return e.err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}

// respondFailure maps err to its status code. Unexpected errors are logged
// and reported with a generic message.
func respondFailure(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		respondError(w, reqErr.message, reqErr.status)
		return
	}

	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Error().
			Err(err).
			Str("request_id", chiMiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	respondError(w, apperror.MessageOf(err), apperror.HTTPStatus(kind))
}

// unknownEndpoint answers requests that match no route
func unknownEndpoint(w http.ResponseWriter, r *http.Request) {
	respondError(w, "unknown endpoint", http.StatusNotFound)
}

// methodNotAllowed answers requests whose path exists under another method
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, "method not allowed", http.StatusMethodNotAllowed)
}
