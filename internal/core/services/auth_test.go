package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// fakeCredentialsStore is an in-memory test double for driven.CredentialsStore.
type fakeCredentialsStore struct {
	mu    sync.Mutex
	creds *domain.Credentials
	saves int
}

func (s *fakeCredentialsStore) Load(context.Context) (*domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, domain.ErrNotFound
	}
	return s.creds.Clone(), nil
}

func (s *fakeCredentialsStore) Save(_ context.Context, creds *domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds.Clone()
	s.saves++
	return nil
}

func testOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:3000/auth/google/callback",
		Scopes:       []string{"scope.a", "scope.b"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example.com/auth",
			TokenURL: "https://accounts.example.com/token",
		},
	}
}

func newTestManager(t *testing.T, store *fakeCredentialsStore) *AuthManager {
	t.Helper()
	return NewAuthManager(testOAuthConfig(), store, zerolog.Nop())
}

func TestAuthURL(t *testing.T) {
	m := newTestManager(t, &fakeCredentialsStore{})

	raw := m.AuthURL()
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "scope.a scope.b", q.Get("scope"))
	assert.NotEmpty(t, q.Get("state"))
}

func TestCompleteAuthorization_EmptyCode(t *testing.T) {
	m := newTestManager(t, &fakeCredentialsStore{})

	_, err := m.CompleteAuthorization(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrAuthExchange)
}

func TestCompleteAuthorization_ExchangesAndPersists(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.FormValue("grant_type"))
		assert.Equal(t, "good-code", r.FormValue("code"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"refresh_token": "refresh-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	}))
	defer ts.Close()

	store := &fakeCredentialsStore{}
	cfg := testOAuthConfig()
	cfg.Endpoint.TokenURL = ts.URL
	m := NewAuthManager(cfg, store, zerolog.Nop())

	creds, err := m.CompleteAuthorization(context.Background(), "good-code")
	require.NoError(t, err)

	assert.Equal(t, "access-1", creds.AccessToken)
	assert.Equal(t, "refresh-1", creds.RefreshToken)
	assert.Equal(t, []string{"scope.a", "scope.b"}, creds.Scopes)
	assert.False(t, creds.IsExpired())
	assert.Equal(t, 1, store.saves, "record must be persisted synchronously")
	assert.True(t, m.IsAuthenticated(context.Background()))
}

func TestCompleteAuthorization_UpstreamRejectsCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer ts.Close()

	cfg := testOAuthConfig()
	cfg.Endpoint.TokenURL = ts.URL
	m := NewAuthManager(cfg, &fakeCredentialsStore{}, zerolog.Nop())

	_, err := m.CompleteAuthorization(context.Background(), "used-code")
	require.ErrorIs(t, err, domain.ErrAuthExchange)
}

func TestEnsureFresh_NoRefreshWhenValid(t *testing.T) {
	store := &fakeCredentialsStore{creds: &domain.Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}}
	m := newTestManager(t, store)

	var refreshes atomic.Int32
	m.refresh = func(_ context.Context, stale *domain.Credentials) (*domain.Credentials, error) {
		refreshes.Add(1)
		return stale, nil
	}

	require.NoError(t, m.EnsureFresh(context.Background()))
	assert.Zero(t, refreshes.Load())
}

func TestEnsureFresh_NoRefreshWithoutExpiry(t *testing.T) {
	store := &fakeCredentialsStore{creds: &domain.Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
	}}
	m := newTestManager(t, store)

	var refreshes atomic.Int32
	m.refresh = func(_ context.Context, stale *domain.Credentials) (*domain.Credentials, error) {
		refreshes.Add(1)
		return stale, nil
	}

	require.NoError(t, m.EnsureFresh(context.Background()))
	assert.Zero(t, refreshes.Load(), "absent expiry means never-expiring")
}

func TestEnsureFresh_CollapsesConcurrentRefreshes(t *testing.T) {
	store := &fakeCredentialsStore{creds: &domain.Credentials{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(-time.Minute),
	}}
	m := newTestManager(t, store)

	var refreshes atomic.Int32
	m.refresh = func(context.Context, *domain.Credentials) (*domain.Credentials, error) {
		refreshes.Add(1)
		time.Sleep(50 * time.Millisecond)
		return &domain.Credentials{
			AccessToken:  "fresh",
			RefreshToken: "refresh",
			Expiry:       time.Now().Add(time.Hour),
		}, nil
	}

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = m.EnsureFresh(context.Background())
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), refreshes.Load(), "concurrent callers must share one refresh")

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", token)
	assert.Equal(t, 1, store.saves, "refreshed record must be persisted")
}

func TestEnsureFresh_FailureKeepsStaleCredential(t *testing.T) {
	store := &fakeCredentialsStore{creds: &domain.Credentials{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(-time.Minute),
	}}
	m := newTestManager(t, store)

	m.refresh = func(context.Context, *domain.Credentials) (*domain.Credentials, error) {
		return nil, assert.AnError
	}

	err := m.EnsureFresh(context.Background())
	require.ErrorIs(t, err, domain.ErrTokenRefreshFailed)

	// Stale record remains the active credential.
	m.mu.RLock()
	defer m.mu.RUnlock()
	require.NotNil(t, m.creds)
	assert.Equal(t, "stale", m.creds.AccessToken)
}

func TestEnsureFresh_Unauthenticated(t *testing.T) {
	m := newTestManager(t, &fakeCredentialsStore{})
	require.ErrorIs(t, m.EnsureFresh(context.Background()), domain.ErrAuthRequired)
}

func TestIsAuthenticated_LazyLoadsFromStore(t *testing.T) {
	store := &fakeCredentialsStore{creds: &domain.Credentials{
		AccessToken: "access",
		Expiry:      time.Now().Add(time.Hour),
	}}
	m := newTestManager(t, store)

	assert.True(t, m.IsAuthenticated(context.Background()))
}

func TestIsAuthenticated_EmptyStore(t *testing.T) {
	m := newTestManager(t, &fakeCredentialsStore{})
	assert.False(t, m.IsAuthenticated(context.Background()))
}

func TestReplace_InstallsWithoutPersisting(t *testing.T) {
	store := &fakeCredentialsStore{}
	m := newTestManager(t, store)

	m.Replace(&domain.Credentials{AccessToken: "external", Expiry: time.Now().Add(time.Hour)})

	token, err := m.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "external", token)
	assert.Zero(t, store.saves)
}
