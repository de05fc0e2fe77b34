// Package driving provides interfaces exposed by the core to inbound
// adapters (primary ports). The HTTP server and CLI depend on these.
package driving

import (
	"context"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// AuthService owns the OAuth token lifecycle for the linked account.
type AuthService interface {
	// AuthURL builds the authorization-request URL with offline access
	// and the configured scope set. No side effects beyond state capture.
	AuthURL() string

	// CompleteAuthorization exchanges an authorization code for a token,
	// persists it, and installs it as the active credential.
	// Returns domain.ErrAuthExchange (wrapped) when the exchange fails.
	CompleteAuthorization(ctx context.Context, code string) (*domain.Credentials, error)

	// IsAuthenticated reports whether a usable credential exists,
	// loading from storage and refreshing as needed.
	IsAuthenticated(ctx context.Context) bool

	// EnsureFresh refreshes the active credential if its expiry has
	// passed. Concurrent callers share a single in-flight refresh.
	// Returns domain.ErrTokenRefreshFailed (wrapped) when the refresh
	// fails; the stale credential stays in place.
	EnsureFresh(ctx context.Context) error
}
