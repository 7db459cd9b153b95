package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	apperrors "github.com/together-as-one/internal/pkg/errors"
)

// unreachableCache points at a port nothing listens on, so every command fails fast.
func unreachableCache(t *testing.T) *cacheRepository {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewCacheRepository(NewRedisFromClient(client, zap.NewNop()))
	return repo.(*cacheRepository)
}

func TestCacheRepository_RedisDownReturnsCacheError(t *testing.T) {
	repo := unreachableCache(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, "some-key")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "get", appErr.Details["op"])
	assert.Equal(t, "some-key", appErr.Details["key"])

	points, err := repo.GetWaterPoints(ctx)
	assert.Nil(t, points)
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	err = repo.SetWaterPoints(ctx, []domain.WaterPoint{{ID: "1", Name: "Pascal Street Borehole"}}, time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrCacheError)

	assert.ErrorIs(t, repo.InvalidateWaterPoints(ctx), apperrors.ErrCacheError)
}

func TestCacheError_DoesNotMutateSentinel(t *testing.T) {
	err := cacheError("set", WaterPointsKey, assert.AnError)

	assert.ErrorIs(t, err, apperrors.ErrCacheError)
	assert.Empty(t, apperrors.ErrCacheError.Details)
}
