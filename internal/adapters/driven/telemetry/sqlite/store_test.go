package sqlite

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() { assert.NoError(t, store.Close()) })
	return store
}

func TestRecord(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	event := domain.TelemetryEvent{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now().UTC(),
		Body:       json.RawMessage(`{"page":"dashboard","loadMs":412}`),
	}
	require.NoError(t, store.Record(ctx, event))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecord_RequiresID(t *testing.T) {
	store := setupTestStore(t)

	err := store.Record(context.Background(), domain.TelemetryEvent{
		ReceivedAt: time.Now(),
		Body:       json.RawMessage(`{}`),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecord_DuplicateID(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	event := domain.TelemetryEvent{
		ID:         "fixed-id",
		ReceivedAt: time.Now().UTC(),
		Body:       json.RawMessage(`{}`),
	}
	require.NoError(t, store.Record(ctx, event))
	require.Error(t, store.Record(ctx, event))
}

func TestRecord_ManyEvents(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		err := store.Record(ctx, domain.TelemetryEvent{
			ID:         uuid.NewString(),
			ReceivedAt: time.Now().UTC(),
			Body:       json.RawMessage(`{"n":1}`),
		})
		require.NoError(t, err)
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}
