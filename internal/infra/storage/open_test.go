package storage

import (
	"context"
	"testing"

	"storefront/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_Memory(t *testing.T) {
	kv, closeFn, err := Open(context.Background(), config.StorageConfig{Driver: config.StorageMemory}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	_, ok := kv.(*MemoryStore)
	assert.True(t, ok)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	kv, closeFn, err := Open(context.Background(), config.StorageConfig{
		Driver:    config.StorageRedis,
		RedisAddr: mr.Addr(),
	}, zap.NewNop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, kv.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists("storefront:k"))
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := Open(context.Background(), config.StorageConfig{
		Driver:    config.StorageRedis,
		RedisAddr: addr,
	}, zap.NewNop())
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(context.Background(), config.StorageConfig{Driver: "etcd"}, zap.NewNop())
	assert.Error(t, err)
}
