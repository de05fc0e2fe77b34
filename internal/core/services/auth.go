package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/deskhub/internal/core/domain"
	"github.com/custodia-labs/deskhub/internal/core/ports/driven"
	"github.com/custodia-labs/deskhub/internal/core/ports/driving"
)

// Ensure AuthManager implements the interface.
var _ driving.AuthService = (*AuthManager)(nil)

// refreshFunc obtains a fresh credential record from a stale one.
type refreshFunc func(ctx context.Context, stale *domain.Credentials) (*domain.Credentials, error)

// AuthManager owns the OAuth token lifecycle: authorization URL
// construction, code exchange, lazy load from storage, expiry detection
// and collapsed refresh. The active credential is a guarded cell swapped
// wholesale; no caller ever observes a half-updated record.
type AuthManager struct {
	cfg   *oauth2.Config
	store driven.CredentialsStore
	log   zerolog.Logger

	mu     sync.RWMutex
	creds  *domain.Credentials
	loaded bool

	flight  singleflight.Group
	refresh refreshFunc
}

// NewAuthManager creates the token lifecycle manager. The oauth2.Config
// carries client identity, endpoint, redirect URL and scope set.
func NewAuthManager(cfg *oauth2.Config, store driven.CredentialsStore, log zerolog.Logger) *AuthManager {
	m := &AuthManager{
		cfg:   cfg,
		store: store,
		log:   log.With().Str("component", "auth").Logger(),
	}
	m.refresh = m.refreshViaEndpoint
	return m
}

// AuthURL builds the authorization-request URL. Offline access is
// requested so the provider issues a refresh token.
func (m *AuthManager) AuthURL() string {
	return m.cfg.AuthCodeURL(randomState(), oauth2.AccessTypeOffline)
}

// CompleteAuthorization exchanges an authorization code for a token,
// persists the record and installs it as the active credential.
func (m *AuthManager) CompleteAuthorization(ctx context.Context, code string) (*domain.Credentials, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: no authorization code supplied", domain.ErrAuthExchange)
	}

	tok, err := m.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthExchange, err)
	}

	creds := &domain.Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       append([]string(nil), m.cfg.Scopes...),
	}
	if err := m.install(ctx, creds); err != nil {
		return nil, err
	}

	m.log.Info().Time("expiry", creds.Expiry).Msg("authorization complete")
	return creds.Clone(), nil
}

// IsAuthenticated reports whether a usable credential exists. It loads
// from storage on first use and refreshes as part of the check.
func (m *AuthManager) IsAuthenticated(ctx context.Context) bool {
	if m.current(ctx) == nil {
		return false
	}
	return m.EnsureFresh(ctx) == nil
}

// EnsureFresh refreshes the active credential when its expiry timestamp
// is at or before now. Tokens without an expiry never trigger a refresh.
// Concurrent callers observing staleness collapse into one in-flight
// refresh; all waiters share its outcome.
func (m *AuthManager) EnsureFresh(ctx context.Context) error {
	creds := m.current(ctx)
	if creds == nil {
		return domain.ErrAuthRequired
	}
	if !creds.IsExpired() {
		return nil
	}

	_, err, _ := m.flight.Do("refresh", func() (any, error) {
		// Re-check: a refresh completed while this caller waited.
		m.mu.RLock()
		cur := m.creds
		m.mu.RUnlock()
		if cur == nil {
			return nil, domain.ErrAuthRequired
		}
		if !cur.IsExpired() {
			return nil, nil
		}
		if !cur.HasRefreshToken() {
			return nil, fmt.Errorf("%w: no refresh token", domain.ErrTokenRefreshFailed)
		}

		fresh, err := m.refresh(ctx, cur)
		if err != nil {
			m.log.Warn().Err(err).Msg("token refresh failed, keeping stale credential")
			return nil, fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
		}
		if err := m.install(ctx, fresh); err != nil {
			return nil, err
		}
		m.log.Debug().Time("expiry", fresh.Expiry).Msg("token refreshed")
		return nil, nil
	})
	return err
}

// AccessToken returns a fresh access token for outbound API calls.
func (m *AuthManager) AccessToken(ctx context.Context) (string, error) {
	if err := m.EnsureFresh(ctx); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return "", domain.ErrAuthRequired
	}
	return m.creds.AccessToken, nil
}

// Replace installs an externally loaded credential record without
// persisting it again. Used by the credential file watcher.
func (m *AuthManager) Replace(creds *domain.Credentials) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds.Clone()
	m.loaded = true
}

// current returns the active credential, lazily loading from storage on
// first use. Returns nil when unauthenticated.
func (m *AuthManager) current(ctx context.Context) *domain.Credentials {
	m.mu.RLock()
	if m.loaded {
		creds := m.creds
		m.mu.RUnlock()
		return creds
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded {
		return m.creds
	}
	m.loaded = true

	creds, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			m.log.Warn().Err(err).Msg("loading stored credentials failed")
		}
		return nil
	}
	m.creds = creds
	return m.creds
}

// install persists a new record synchronously, then swaps it in.
func (m *AuthManager) install(ctx context.Context, creds *domain.Credentials) error {
	if err := m.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	m.mu.Lock()
	m.creds = creds.Clone()
	m.loaded = true
	m.mu.Unlock()
	return nil
}

// refreshViaEndpoint performs the OAuth2 refresh grant through the
// configured endpoint. The provider may omit the refresh token in its
// response; the previous one is carried forward in that case.
func (m *AuthManager) refreshViaEndpoint(ctx context.Context, stale *domain.Credentials) (*domain.Credentials, error) {
	src := m.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: stale.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, err
	}

	fresh := &domain.Credentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
		Scopes:       append([]string(nil), stale.Scopes...),
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = stale.RefreshToken
	}
	return fresh, nil
}

// randomState creates a random state parameter for CSRF protection.
func randomState() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "state"
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
