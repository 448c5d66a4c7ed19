package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autorent/internal/app/middleware"
)

func newStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, time.Hour), mr
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	rec := middleware.IdempotencyRecord{
		Key:        "submit-42",
		Payload:    []byte(`{"id":"r1"}`),
		OccurredAt: time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, rec))

	got, ok, err := store.Get(ctx, "submit-42")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.Key, got.Key)
	assert.Equal(t, rec.Payload, got.Payload)
	assert.True(t, rec.OccurredAt.Equal(got.OccurredAt))
}

func TestGetMissingKey(t *testing.T) {
	store, _ := newStore(t)

	_, ok, err := store.Get(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordExpiresWithTTL(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	rec := middleware.IdempotencyRecord{Key: "short-lived", Error: "dates unavailable"}
	require.NoError(t, store.Save(ctx, rec))

	mr.FastForward(2 * time.Hour)

	_, ok, err := store.Get(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestErrorOutcomeStored(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, middleware.IdempotencyRecord{
		Key:   "failed-submit",
		Error: "booking: requested dates are no longer available",
	}))

	got, ok, err := store.Get(ctx, "failed-submit")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "booking: requested dates are no longer available", got.Error)
	assert.Empty(t, got.Payload)
}
