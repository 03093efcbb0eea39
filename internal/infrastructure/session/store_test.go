package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/testutil"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	rc := testutil.NewRedis(t)
	store := NewStore(rc)
	userID := uuid.New()

	id, err := store.Create(ctx, userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := store.Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	require.NoError(t, store.Revoke(ctx, id))

	_, err = store.Lookup(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreSessionExpires(t *testing.T) {
	ctx := context.Background()
	rc := testutil.NewRedis(t)
	store := NewStore(rc)

	id, err := store.Create(ctx, uuid.New(), time.Minute)
	require.NoError(t, err)

	rc.Server.FastForward(time.Minute)
	_, err = store.Lookup(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreUnknownSession(t *testing.T) {
	store := NewStore(testutil.NewRedis(t))

	_, err := store.Lookup(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
