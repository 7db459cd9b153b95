package repository

import (
	"context"
	"time"

	"github.com/together-as-one/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetWaterPoints returns the cached source records, nil on a miss
	GetWaterPoints(ctx context.Context) ([]domain.WaterPoint, error)

	// SetWaterPoints caches the source records
	SetWaterPoints(ctx context.Context, points []domain.WaterPoint, ttl time.Duration) error

	// InvalidateWaterPoints drops the cached source records
	InvalidateWaterPoints(ctx context.Context) error
}
