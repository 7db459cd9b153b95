package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	"github.com/together-as-one/internal/pkg/errors"
)

// SourceRecorder receives source load outcomes (metrics).
type SourceRecorder interface {
	RecordSourceLoad(origin string, err error)
}

// SourceLoader reads the water point listing through the Redis cache.
// Cache failures degrade to reading the repository directly.
type SourceLoader struct {
	repo     repository.WaterPointRepository
	cache    repository.CacheRepository
	ttl      time.Duration
	recorder SourceRecorder
	logger   *zap.Logger
}

// NewSourceLoader создает загрузчик; cache и recorder могут быть nil
func NewSourceLoader(
	repo repository.WaterPointRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	recorder SourceRecorder,
	logger *zap.Logger,
) *SourceLoader {
	return &SourceLoader{
		repo:     repo,
		cache:    cache,
		ttl:      ttl,
		recorder: recorder,
		logger:   logger,
	}
}

// Load returns every record in source order.
func (l *SourceLoader) Load(ctx context.Context) ([]domain.WaterPoint, error) {
	// 1. Проверяем кеш
	if l.cache != nil {
		cached, err := l.cache.GetWaterPoints(ctx)
		l.record("cache", err)
		if err == nil && cached != nil {
			l.logger.Debug("Water points fetched from cache", zap.Int("count", len(cached)))
			return cached, nil
		}
		if err != nil {
			l.logger.Warn("Failed to get water points from cache", zap.Error(err))
		}
	}

	// 2. Читаем источник
	points, err := l.repo.List(ctx)
	l.record("source", err)
	if err != nil {
		l.logger.Error("Failed to load water points", zap.Error(err))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.ErrSourceUnavailable
	}

	// 3. Кешируем
	if l.cache != nil && l.ttl > 0 {
		if err := l.cache.SetWaterPoints(ctx, points, l.ttl); err != nil {
			l.logger.Warn("Failed to cache water points", zap.Error(err))
			// Не возвращаем ошибку, т.к. данные уже получены
		}
	}

	return points, nil
}

// Invalidate drops the cached listing so the next Load reads the source.
func (l *SourceLoader) Invalidate(ctx context.Context) error {
	if l.cache == nil {
		return nil
	}
	return l.cache.InvalidateWaterPoints(ctx)
}

func (l *SourceLoader) record(origin string, err error) {
	if l.recorder != nil {
		l.recorder.RecordSourceLoad(origin, err)
	}
}
