package redis

import (
	"context"
	"fmt"

	"github.com/djgraphics28/bvms-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient создает клиент Redis для кэша транспорта, сессий и очереди уведомлений
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
		PoolSize: 10,
	})

	// Проверяем соединение с Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}
