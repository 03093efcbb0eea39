package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmbedded(t *testing.T) *EmbeddedRedis {
	t.Helper()
	rc, err := NewEmbeddedRedis()
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	rc := newEmbedded(t)

	require.NoError(t, rc.Set(ctx, "session:1", map[string]string{"user_id": "42"}, time.Minute))

	var got map[string]string
	found, err := rc.Get(ctx, "session:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "42", got["user_id"])

	require.NoError(t, rc.Delete(ctx, "session:1"))
	exists, err := rc.Exists(ctx, "session:1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCacheMissLeavesDestUntouched(t *testing.T) {
	rc := newEmbedded(t)
	dest := "unchanged"

	found, err := rc.Get(context.Background(), "missing", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "unchanged", dest)
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	rc := newEmbedded(t)

	require.NoError(t, rc.Set(ctx, "k", "v", time.Second))
	exists, err := rc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	rc.Server.FastForward(time.Second)
	exists, err = rc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCachePing(t *testing.T) {
	rc := newEmbedded(t)
	require.NoError(t, rc.Ping(context.Background()))
}
