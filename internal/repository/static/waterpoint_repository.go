// Package static serves the water point listing bundled with the binary.
package static

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	apperrors "github.com/together-as-one/internal/pkg/errors"
)

//go:embed data/waterpoints.json
var dataset []byte

type waterPointRepository struct {
	points []domain.WaterPoint
	byID   map[string]int
	logger *zap.Logger
}

// NewWaterPointRepository decodes the embedded dataset.
func NewWaterPointRepository(logger *zap.Logger) (repository.WaterPointRepository, error) {
	return NewWaterPointRepositoryFromJSON(dataset, logger)
}

// NewWaterPointRepositoryFromJSON builds a read-only source over raw records.
func NewWaterPointRepositoryFromJSON(data []byte, logger *zap.Logger) (repository.WaterPointRepository, error) {
	var points []domain.WaterPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("decode water points: %w", err)
	}

	byID := make(map[string]int, len(points))
	for i := range points {
		if len(points[i].AvailableTimes) == 0 {
			points[i].AvailableTimes = domain.DescribeAvailability(points[i].Availability)
		}
		if _, dup := byID[points[i].ID]; !dup {
			byID[points[i].ID] = i
		}
	}

	logger.Info("Static water point source loaded", zap.Int("count", len(points)))

	return &waterPointRepository{
		points: points,
		byID:   byID,
		logger: logger,
	}, nil
}

func (r *waterPointRepository) List(ctx context.Context) ([]domain.WaterPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.WaterPoint, len(r.points))
	copy(out, r.points)
	return out, nil
}

func (r *waterPointRepository) GetByID(ctx context.Context, id string) (*domain.WaterPoint, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrWaterPointNotFound
	}
	wp := r.points[i]
	return &wp, nil
}

// Create is not supported; the bundled listing is read-only.
func (r *waterPointRepository) Create(ctx context.Context, point *domain.WaterPoint) error {
	r.logger.Warn("Rejecting write to static water point source", zap.String("id", point.ID))
	return apperrors.ErrRegistrationRejected.WithDetails(map[string]interface{}{
		"reason": "static source is read-only",
	})
}
