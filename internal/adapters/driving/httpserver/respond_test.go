package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"auth required", domain.ErrAuthRequired, http.StatusUnauthorized},
		{"refresh failed", domain.ErrTokenRefreshFailed, http.StatusUnauthorized},
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"auth exchange", domain.ErrAuthExchange, http.StatusBadRequest},
		{"unsupported media", domain.ErrUnsupportedMedia, http.StatusBadRequest},
		{"payload too large", domain.ErrPayloadTooLarge, http.StatusBadRequest},
		{"pool saturated", domain.ErrPoolSaturated, http.StatusInternalServerError},
		{"llm unavailable", domain.ErrLLMUnavailable, http.StatusInternalServerError},
		{"upstream failure", errors.New("backend exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, zerolog.Nop(), tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestWriteError_InternalBodyCarriesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, zerolog.Nop(), errors.New("backend exploded"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error","details":"backend exploded"}`, rec.Body.String())
}
