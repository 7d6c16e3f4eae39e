// Package cache memoizes read-heavy responses in a key/value store with a
// fixed time-to-live per key. The cache is best effort: a failing backend
// degrades to recomputation and never fails the caller.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"Food-Rescue-Backend/internal/metrics"

	"go.uber.org/zap"
)

var ErrMiss = errors.New("cache: miss")

// Cache is the backend capability consumed by Store. Get returns ErrMiss
// when the key is absent or expired. Delete accepts an exact key or a glob
// pattern such as "myClaims:*".
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, pattern string) error
}

type Store struct {
	backend Cache
	logger  *zap.Logger
}

func NewStore(backend Cache, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Invalidate removes every key matching pattern. Failures are logged only.
func (s *Store) Invalidate(ctx context.Context, pattern string) {
	if s == nil || s.backend == nil {
		return
	}
	if err := s.backend.Delete(ctx, pattern); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("delete").Inc()
		s.logger.Warn("cache delete failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// Remember returns the cached value for key when present and decodable.
// Otherwise it runs compute, stores the result for ttl and returns it.
// Errors from compute are returned as is and never cached.
func Remember[T any](ctx context.Context, s *Store, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if s == nil || s.backend == nil {
		return compute(ctx)
	}

	prefix := keyPrefix(key)

	raw, err := s.backend.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		decodeErr := json.Unmarshal(raw, &cached)
		if decodeErr == nil {
			metrics.CacheHitsTotal.WithLabelValues(prefix).Inc()
			return cached, nil
		}
		metrics.CacheErrorsTotal.WithLabelValues("decode").Inc()
		s.logger.Warn("cache decode failed", zap.String("key", key), zap.Error(decodeErr))
	case !errors.Is(err, ErrMiss):
		metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheMissesTotal.WithLabelValues(prefix).Inc()

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}

	raw, err = json.Marshal(value)
	if err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("encode").Inc()
		s.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	if err := s.backend.Set(ctx, key, raw, ttl); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("set").Inc()
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}

	return value, nil
}

func keyPrefix(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
