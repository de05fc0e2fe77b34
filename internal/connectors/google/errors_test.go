package google

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name string
		code int
		want error
	}{
		{"unauthorised", http.StatusUnauthorized, domain.ErrAuthRequired},
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, domain.ErrRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(&googleapi.Error{Code: tt.code, Message: "nope"})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWrapError_PassThrough(t *testing.T) {
	assert.NoError(t, WrapError(nil))

	plain := errors.New("dial tcp: connection refused")
	assert.Same(t, plain, WrapError(plain))

	// Unmapped API codes keep the original error.
	server := &googleapi.Error{Code: http.StatusInternalServerError}
	wrapped := fmt.Errorf("listing: %w", server)
	assert.Equal(t, wrapped, WrapError(wrapped))
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, IsRateLimited(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.True(t, IsRateLimited(WrapError(&googleapi.Error{Code: http.StatusTooManyRequests})))
	assert.False(t, IsRateLimited(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, IsRateLimited(nil))
}
