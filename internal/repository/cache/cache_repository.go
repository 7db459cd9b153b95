package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	apperrors "github.com/together-as-one/internal/pkg/errors"
)

// WaterPointsKey holds the serialized source listing
const WaterPointsKey = "waterpoints:all"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, cacheError("get", key, err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return cacheError("set", key, err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return cacheError("delete", key, err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetWaterPoints получает список точек из кеша
func (r *cacheRepository) GetWaterPoints(ctx context.Context) ([]domain.WaterPoint, error) {
	data, err := r.Get(ctx, WaterPointsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var points []domain.WaterPoint
	if err := json.Unmarshal(data, &points); err != nil {
		// a corrupt entry is treated as a miss and dropped
		r.logger.Warn("Failed to unmarshal water points from cache", zap.Error(err))
		_ = r.Delete(ctx, WaterPointsKey)
		return nil, nil
	}

	return points, nil
}

// SetWaterPoints сохраняет список точек в кеше
func (r *cacheRepository) SetWaterPoints(ctx context.Context, points []domain.WaterPoint, ttl time.Duration) error {
	data, err := json.Marshal(points)
	if err != nil {
		r.logger.Error("Failed to marshal water points", zap.Error(err))
		return fmt.Errorf("marshal water points: %w", err)
	}

	return r.Set(ctx, WaterPointsKey, data, ttl)
}

func (r *cacheRepository) InvalidateWaterPoints(ctx context.Context) error {
	return r.Delete(ctx, WaterPointsKey)
}

// cacheError maps a Redis failure to CACHE_ERROR; callers degrade to the source.
func cacheError(op, key string, err error) error {
	return apperrors.ErrCacheError.WithDetails(map[string]interface{}{
		"op":    op,
		"key":   key,
		"cause": err.Error(),
	})
}
