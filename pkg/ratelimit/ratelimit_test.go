package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryStore_BurstThenDeny(t *testing.T) {
	store := NewMemoryStore(0.001, 2)

	for i := 0; i < 2; i++ {
		ok, err := store.Allow("1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d within burst", i)
	}

	ok, err := store.Allow("1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Allow("5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok, "other identifiers have their own bucket")
}

func TestNewStore_WithoutRedisUsesMemory(t *testing.T) {
	store, closeFn, err := NewStore("", 1, 1, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, closeFn())

	_, isRedis := store.(*RedisStore)
	assert.False(t, isRedis)
}

func TestNewStore_RejectsBadRedisURL(t *testing.T) {
	_, _, err := NewStore("not a url", 1, 1, zap.NewNop())
	assert.Error(t, err)
}
