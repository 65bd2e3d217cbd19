package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a test Redis client using miniredis
func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := &Client{
		Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()))

	_, err = NewClient("not a url")
	assert.Error(t, err)
}

func TestClient_SetExists(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "jwt:blacklist:abc", "revoked", time.Hour))

	val, err := mr.Get("jwt:blacklist:abc")
	require.NoError(t, err)
	assert.Equal(t, "revoked", val)
	assert.Equal(t, time.Hour, mr.TTL("jwt:blacklist:abc"))

	exists, err := client.Exists(ctx, "jwt:blacklist:abc")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.Exists(ctx, "jwt:blacklist:other")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestClient_JSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	type payload struct {
		Total int      `json:"total"`
		IDs   []string `json:"ids"`
	}
	in := payload{Total: 2, IDs: []string{"a", "b"}}
	require.NoError(t, client.SetJSON(ctx, "leads:list:x", in, time.Minute))

	var out payload
	require.NoError(t, client.GetJSON(ctx, "leads:list:x", &out))
	assert.Equal(t, in, out)

	assert.Equal(t, time.Minute, mr.TTL("leads:list:x"))

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, client.GetJSON(ctx, "leads:list:x", &out), ErrMiss)
}

func TestClient_DeletePattern(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	for _, k := range []string{"leads:list:1", "leads:list:2", "leads:stats:1", "jwt:blacklist:1"} {
		require.NoError(t, client.Set(ctx, k, "v", time.Hour))
	}

	require.NoError(t, client.DeletePattern(ctx, "leads:*"))

	assert.False(t, mr.Exists("leads:list:1"))
	assert.False(t, mr.Exists("leads:stats:1"))
	assert.True(t, mr.Exists("jwt:blacklist:1"))
}
