package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeJSON serialises v with the given status. Encoding failures are
// logged only; headers have already been written by then.
func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response body")
	}
}

// writeError maps a domain error to its HTTP outcome. Refresh failures
// surface as 401 so the client can force re-authentication instead of
// retrying with a stale token.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrTokenRefreshFailed):
		writeJSON(w, log, http.StatusUnauthorized, errorResponse{Error: "Authentication required"})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrAuthExchange),
		errors.Is(err, domain.ErrUnsupportedMedia),
		errors.Is(err, domain.ErrPayloadTooLarge):
		writeJSON(w, log, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, log, http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Details: err.Error(),
		})
	}
}
