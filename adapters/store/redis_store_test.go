package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dictgate/dictgate/core"
)

func newRedisTestStore(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedisStore(client, ttl).(*RedisStore)
}

func TestRedisStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	_, s := newRedisTestStore(t, 0)

	_, ok, err := s.Get(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok)

	session := core.Session{
		ID:                 "sess-1",
		ConsecutiveCorrect: 3,
		LastActivity:       time.Now().UTC().Truncate(time.Millisecond),
		ExpectedAnswer:     true,
	}
	require.NoError(t, s.Insert(ctx, "client-a", session))

	got, ok, err := s.Get(ctx, "client-a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, session, got)

	require.NoError(t, s.Update(ctx, "client-a", func(sess *core.Session) {
		sess.ConsecutiveCorrect++
	}))
	got, _, err = s.Get(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), got.ConsecutiveCorrect)

	require.NoError(t, s.Remove(ctx, "client-a"))
	_, ok, err = s.Get(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreUpdateMissing(t *testing.T) {
	_, s := newRedisTestStore(t, 0)

	err := s.Update(context.Background(), "ghost", func(*core.Session) {})
	require.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestRedisStoreSessionTTL(t *testing.T) {
	ctx := context.Background()
	mr, s := newRedisTestStore(t, 2*time.Second)

	require.NoError(t, s.Insert(ctx, "client-a", core.Session{ID: "sess-1"}))

	_, ok, err := s.Get(ctx, "client-a")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(3 * time.Second)

	_, ok, err = s.Get(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, ok, "session should expire after the TTL")
}

func TestRedisStoreCorruptSession(t *testing.T) {
	ctx := context.Background()
	mr, s := newRedisTestStore(t, 0)

	require.NoError(t, mr.Set("dictgate:session:client-a", "not json"))

	_, _, err := s.Get(ctx, "client-a")
	require.ErrorIs(t, err, core.ErrStoreOperation)
}
