package file

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

func newTestStore(t *testing.T) *CredentialsStore {
	t.Helper()
	store, err := NewCredentialsStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestCredentialsStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := &domain.Credentials{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second).UTC(),
		Scopes:       []string{"gmail.readonly", "calendar"},
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got, "reload must yield field-for-field equality")
}

func TestCredentialsStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCredentialsStore_SaveNil(t *testing.T) {
	store := newTestStore(t)
	require.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
}

func TestCredentialsStore_SaveReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Credentials{
		AccessToken:  "old",
		RefreshToken: "keep-me",
	}))
	require.NoError(t, store.Save(ctx, &domain.Credentials{AccessToken: "new"}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", got.AccessToken)
	assert.Empty(t, got.RefreshToken, "save replaces the record, no field merging")
}

func TestCredentialsStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not meaningful on windows")
	}
	store := newTestStore(t)

	require.NoError(t, store.Save(context.Background(), &domain.Credentials{AccessToken: "a"}))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestCredentialsStore_WatchPicksUpExternalWrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCredentialsStore(dir, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan *domain.Credentials, 1)
	go func() {
		_ = store.Watch(ctx, func(creds *domain.Credentials) {
			select {
			case changed <- creds:
			default:
			}
		})
	}()

	// Give the watcher a moment to attach before writing.
	time.Sleep(100 * time.Millisecond)

	data := []byte(`{"access_token":"external","token_type":"Bearer"}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token.json"), data, 0600))

	select {
	case creds := <-changed:
		assert.Equal(t, "external", creds.AccessToken)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not report the external write")
	}
}
