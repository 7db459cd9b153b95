package repository

import (
	"context"

	"github.com/together-as-one/internal/domain"
)

// WaterPointRepository определяет источник точек водоснабжения
type WaterPointRepository interface {
	// List возвращает все точки в порядке источника
	List(ctx context.Context) ([]domain.WaterPoint, error)

	// GetByID возвращает точку по ID
	GetByID(ctx context.Context, id string) (*domain.WaterPoint, error)

	// Create сохраняет новую точку
	Create(ctx context.Context, point *domain.WaterPoint) error
}
