package cache

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closedAddr returns a local address nothing listens on
func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestGenerateKey(t *testing.T) {
	c := NewRedisCache("localhost:6379", "order-desk")
	assert.Equal(t, "order-desk:customer:c1", c.GenerateKey("customer", "c1"))
}

func TestRedisCache_Unreachable(t *testing.T) {
	c := NewRedisCache(closedAddr(t), "order-desk")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Error(t, Ping(ctx, c))

	val, err := c.Get(ctx, "order-desk:customer:c1")
	assert.Error(t, err)
	assert.Empty(t, val)

	assert.Error(t, c.Set(ctx, "order-desk:customer:c1", "{}", time.Minute))
}

type staticCache struct{}

func (staticCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (staticCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (staticCache) GenerateKey(operation, key string) string { return operation + ":" + key }

func TestPing_OtherCaches(t *testing.T) {
	assert.NoError(t, Ping(context.Background(), staticCache{}))
}

func TestRedisCache_Redis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	c := NewRedisCache(addr, "order-desk-test")
	ctx := context.Background()
	require.NoError(t, Ping(ctx, c))

	key := c.GenerateKey("customer", uuid.NewString())

	val, err := c.Get(ctx, key)
	require.NoError(t, err, "a miss is not an error")
	assert.Empty(t, val)

	require.NoError(t, c.Set(ctx, key, `{"_id":"c1"}`, time.Minute))
	val, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"_id":"c1"}`, val)
}
