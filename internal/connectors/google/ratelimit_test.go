package google

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

func (r *RateLimiter) retryAtSnapshot() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}

func TestRateLimiter_WrapErrorRecordsBackoffFromRetryAfter(t *testing.T) {
	limiter := NewRateLimiter(ServiceGmail)

	apiErr := &googleapi.Error{
		Code:   http.StatusTooManyRequests,
		Header: http.Header{"Retry-After": []string{"30"}},
	}
	err := limiter.WrapError(apiErr)

	require.ErrorIs(t, err, domain.ErrRateLimited)
	wait := time.Until(limiter.retryAtSnapshot())
	assert.Greater(t, wait, 25*time.Second)
	assert.LessOrEqual(t, wait, 30*time.Second)
}

func TestRateLimiter_WrapErrorDefaultBackoffWithoutRetryAfter(t *testing.T) {
	limiter := NewRateLimiter(ServiceDrive)

	err := limiter.WrapError(&googleapi.Error{Code: http.StatusTooManyRequests})

	require.ErrorIs(t, err, domain.ErrRateLimited)
	wait := time.Until(limiter.retryAtSnapshot())
	assert.Greater(t, wait, 55*time.Second)
	assert.LessOrEqual(t, wait, 60*time.Second)
}

func TestRateLimiter_WrapErrorIgnoresOtherCodes(t *testing.T) {
	limiter := NewRateLimiter(ServiceCalendar)

	err := limiter.WrapError(&googleapi.Error{Code: http.StatusNotFound, Message: "gone"})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, limiter.retryAtSnapshot().IsZero(), "non-429 must not set a backoff")

	assert.NoError(t, limiter.WrapError(nil))
	assert.True(t, limiter.retryAtSnapshot().IsZero())
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 30, retryAfterSeconds(http.Header{"Retry-After": []string{"30"}}))
	assert.Equal(t, 0, retryAfterSeconds(http.Header{}))
	// HTTP dates fall back to the default backoff.
	assert.Equal(t, 0, retryAfterSeconds(http.Header{"Retry-After": []string{"Mon, 31 Aug 2026 10:00:00 GMT"}}))
}
