package storage

import (
	"context"
	"fmt"

	"storefront/internal/config"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open は設定に応じたKVストアを返す。closeは終了時に呼ぶ。
func Open(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (repo.KVStore, func() error, error) {
	switch cfg.Driver {
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping failed: %w", err)
		}
		logger.Info("cart storage: redis", zap.String("addr", cfg.RedisAddr))
		return NewRedisStore(client, "storefront", 0), client.Close, nil

	case config.StoragePostgres:
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect failed: %w", err)
		}
		kv := infraRepo.NewKVGormRepository(gormDB)
		if err := kv.Migrate(ctx); err != nil {
			return nil, nil, fmt.Errorf("kv migrate failed: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, err
		}
		logger.Info("cart storage: postgres")
		return kv, sqlDB.Close, nil

	case config.StorageMemory, "":
		logger.Info("cart storage: memory")
		return NewMemoryStore(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
