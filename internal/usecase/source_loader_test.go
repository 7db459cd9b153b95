package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/usecase"
)

func TestSourceLoader_Load(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("cache hit skips the source", func(t *testing.T) {
		repo := &MockWaterPointRepository{}
		cache := &MockCacheRepository{}
		rec := &recorder{}
		cache.On("GetWaterPoints", ctx).Return(samplePoints(), nil)

		loader := usecase.NewSourceLoader(repo, cache, time.Minute, rec, logger)
		points, err := loader.Load(ctx)

		require.NoError(t, err)
		assert.Len(t, points, 3)
		assert.Equal(t, []string{"cache:ok"}, rec.loads)
		repo.AssertNotCalled(t, "List", mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("cache miss reads source and caches it", func(t *testing.T) {
		repo := &MockWaterPointRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetWaterPoints", ctx).Return(nil, nil)
		repo.On("List", ctx).Return(samplePoints(), nil)
		cache.On("SetWaterPoints", ctx, samplePoints(), time.Minute).Return(nil)

		loader := usecase.NewSourceLoader(repo, cache, time.Minute, nil, logger)
		points, err := loader.Load(ctx)

		require.NoError(t, err)
		assert.Len(t, points, 3)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors degrade to source", func(t *testing.T) {
		repo := &MockWaterPointRepository{}
		cache := &MockCacheRepository{}
		cache.On("GetWaterPoints", ctx).Return(nil, errors.New("redis down"))
		repo.On("List", ctx).Return(samplePoints(), nil)
		cache.On("SetWaterPoints", ctx, mock.Anything, time.Minute).Return(errors.New("redis down"))

		loader := usecase.NewSourceLoader(repo, cache, time.Minute, nil, logger)
		points, err := loader.Load(ctx)

		require.NoError(t, err)
		assert.Len(t, points, 3)
	})

	t.Run("no cache configured", func(t *testing.T) {
		repo := &MockWaterPointRepository{}
		repo.On("List", ctx).Return(samplePoints(), nil)

		loader := usecase.NewSourceLoader(repo, nil, time.Minute, nil, logger)
		_, err := loader.Load(ctx)

		require.NoError(t, err)
		assert.NoError(t, loader.Invalidate(ctx))
	})

	t.Run("source failure", func(t *testing.T) {
		repo := &MockWaterPointRepository{}
		rec := &recorder{}
		repo.On("List", ctx).Return(nil, errors.New("db down"))

		loader := usecase.NewSourceLoader(repo, nil, 0, rec, logger)
		_, err := loader.Load(ctx)

		assert.ErrorIs(t, err, apperrors.ErrSourceUnavailable)
		assert.Equal(t, []string{"source:error"}, rec.loads)
	})
}
