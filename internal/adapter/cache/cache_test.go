package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisCache(client, zaptest.NewLogger(t))

	err := c.Set(context.Background(), "user:ACC-1", []byte(`{"id":1}`))
	require.NoError(t, err)

	data, err := c.Get(context.Background(), "user:ACC-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"id":1}`), data)
}

func TestRedisCache_Get_Miss(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisCache(client, zaptest.NewLogger(t))

	data, err := c.Get(context.Background(), "user:nope")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRedisCache_Set_NoExpiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCache(client, zaptest.NewLogger(t))

	err := c.Set(context.Background(), "user:ACC-1", []byte("v"))
	require.NoError(t, err)

	// Point-cache entries persist until explicit invalidation
	mr.FastForward(24 * time.Hour)

	data, err := c.Get(context.Background(), "user:ACC-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), data)
}

func TestRedisCache_SetWithTTL_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	c := NewRedisCache(client, zaptest.NewLogger(t))

	err := c.SetWithTTL(context.Background(), ListAllKey, []byte("snapshot"), 300*time.Second)
	require.NoError(t, err)

	mr.FastForward(301 * time.Second)

	data, err := c.Get(context.Background(), ListAllKey)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRedisCache_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisCache(client, zaptest.NewLogger(t))

	require.NoError(t, c.Set(context.Background(), "user:ACC-1", []byte("a")))
	require.NoError(t, c.Set(context.Background(), "user:identity:ID-1", []byte("b")))

	err := c.Delete(context.Background(), "user:ACC-1", "user:identity:ID-1")
	require.NoError(t, err)

	for _, key := range []string{"user:ACC-1", "user:identity:ID-1"} {
		data, err := c.Get(context.Background(), key)
		require.NoError(t, err)
		assert.Nil(t, data)
	}
}

func TestRedisCache_Delete_NoKeys(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisCache(client, zaptest.NewLogger(t))

	require.NoError(t, c.Delete(context.Background()))
}

func TestRedisCache_DeleteByPrefix(t *testing.T) {
	client, _ := setupTestRedis(t)
	c := NewRedisCache(client, zaptest.NewLogger(t))

	require.NoError(t, c.Set(context.Background(), ListAllKey, []byte("all")))
	require.NoError(t, c.Set(context.Background(), ListPageKey(1, 10), []byte("p1")))
	require.NoError(t, c.Set(context.Background(), ListPageKey(2, 10), []byte("p2")))
	require.NoError(t, c.Set(context.Background(), "user:ACC-1", []byte("keep")))

	err := c.DeleteByPrefix(context.Background(), ListKeyPrefix)
	require.NoError(t, err)

	for _, key := range []string{ListAllKey, ListPageKey(1, 10), ListPageKey(2, 10)} {
		data, err := c.Get(context.Background(), key)
		require.NoError(t, err)
		assert.Nil(t, data, "expected %s to be deleted", key)
	}

	// Unrelated keys survive the prefix scan
	data, err := c.Get(context.Background(), "user:ACC-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("keep"), data)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "users:list:all", ListAllKey)
	assert.Equal(t, "users:list:2:25", ListPageKey(2, 25))
	assert.Equal(t, "user:ACC-42", AccountKey("ACC-42"))
	assert.Equal(t, "user:identity:ID-42", IdentityKey("ID-42"))
}
