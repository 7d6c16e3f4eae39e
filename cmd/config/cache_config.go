package config

import (
	"context"
	"strconv"
	"time"

	"Food-Rescue-Backend/internal/utils"
	"Food-Rescue-Backend/internal/utils/cache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const memoryCleanupInterval = 5 * time.Minute

// ConnectCache returns a Redis backed cache when REDIS_ADDR is set and an
// in-process cache otherwise. The returned func releases the connection.
func ConnectCache(ctx context.Context, logger *zap.Logger) (cache.Cache, func()) {
	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		logger.Info("REDIS_ADDR not set, using in-process cache")
		return cache.NewMemoryCache(memoryCleanupInterval), func() {}
	}

	db, err := strconv.Atoi(utils.GetConfig("REDIS_DB"))
	if err != nil {
		logger.Warn("invalid REDIS_DB, using 0", zap.Error(err))
		db = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.GetConfig("REDIS_PASSWORD"),
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable, reads will fall through to the database", zap.String("addr", addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", addr))
	}

	return cache.NewRedisCache(client), func() { _ = client.Close() }
}

// StatsLocation resolves STATS_TIMEZONE, falling back to UTC.
func StatsLocation(logger *zap.Logger) *time.Location {
	name := utils.GetConfig("STATS_TIMEZONE")
	location, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown STATS_TIMEZONE, using UTC", zap.String("timezone", name), zap.Error(err))
		return time.UTC
	}
	return location
}
