package eventpublisher

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_SingleHolder(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	a := NewRedisLocker(client)
	b := NewRedisLocker(client)

	release, err := a.Obtain(ctx, "job", time.Minute)
	require.NoError(t, err)

	_, err = b.Obtain(ctx, "job", time.Minute)
	assert.ErrorIs(t, err, ErrLockHeld)

	require.NoError(t, release(ctx))

	again, err := b.Obtain(ctx, "job", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestRedisLocker_ExpiredLeaseReleasesQuietly(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	l := NewRedisLocker(client)
	release, err := l.Obtain(ctx, "job", time.Second)
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	assert.NoError(t, release(ctx))
}
