package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	apperrors "github.com/together-as-one/internal/pkg/errors"
)

const waterPointColumns = `
	id, name, type, area, sub_area, address, description,
	lat, lon, availability, available_times`

type waterPointRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewWaterPointRepository(db *DB) repository.WaterPointRepository {
	return &waterPointRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// waterPointRow - строка таблицы water_points
type waterPointRow struct {
	ID             string          `db:"id"`
	Name           string          `db:"name"`
	Type           string          `db:"type"`
	Area           string          `db:"area"`
	SubArea        string          `db:"sub_area"`
	Address        string          `db:"address"`
	Description    string          `db:"description"`
	Lat            sql.NullFloat64 `db:"lat"`
	Lon            sql.NullFloat64 `db:"lon"`
	Availability   []byte          `db:"availability"`
	AvailableTimes pq.StringArray  `db:"available_times"`
}

func (row *waterPointRow) toDomain() domain.WaterPoint {
	wp := domain.WaterPoint{
		ID:             row.ID,
		Name:           row.Name,
		Type:           domain.WaterPointType(row.Type),
		Area:           row.Area,
		SubArea:        row.SubArea,
		Address:        row.Address,
		Description:    row.Description,
		AvailableTimes: []string(row.AvailableTimes),
	}

	if row.Lat.Valid && row.Lon.Valid {
		loc := domain.Coordinates{Latitude: row.Lat.Float64, Longitude: row.Lon.Float64}
		if loc.Valid() {
			wp.Location = &loc
		}
	}

	if len(row.Availability) > 0 {
		var windows []domain.AvailabilityWindow
		if err := json.Unmarshal(row.Availability, &windows); err == nil {
			for _, w := range windows {
				if w.Valid() {
					wp.Availability = append(wp.Availability, w)
				}
			}
		}
	}

	return wp
}

func (r *waterPointRepository) List(ctx context.Context) ([]domain.WaterPoint, error) {
	query := `SELECT` + waterPointColumns + `
		FROM water_points
		ORDER BY created_at, id`

	var rows []waterPointRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to list water points", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	points := make([]domain.WaterPoint, 0, len(rows))
	for i := range rows {
		points = append(points, rows[i].toDomain())
	}

	r.logger.Debug("Water points listed", zap.Int("count", len(points)))
	return points, nil
}

func (r *waterPointRepository) GetByID(ctx context.Context, id string) (*domain.WaterPoint, error) {
	query := `SELECT` + waterPointColumns + `
		FROM water_points
		WHERE id = $1`

	var row waterPointRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrWaterPointNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get water point by ID", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	wp := row.toDomain()
	return &wp, nil
}

func (r *waterPointRepository) Create(ctx context.Context, point *domain.WaterPoint) error {
	availability := point.Availability
	if availability == nil {
		availability = []domain.AvailabilityWindow{}
	}
	availabilityJSON, err := json.Marshal(availability)
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}

	var lat, lon sql.NullFloat64
	if point.HasLocation() {
		lat = sql.NullFloat64{Float64: point.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: point.Location.Longitude, Valid: true}
	}

	times := point.AvailableTimes
	if times == nil {
		times = []string{}
	}

	// Повторная доставка того же события не создаёт дубликат
	query := `
		INSERT INTO water_points (` + waterPointColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`

	_, err = r.db.ExecContext(ctx, query,
		point.ID, point.Name, string(point.Type), point.Area, point.SubArea,
		point.Address, point.Description, lat, lon, availabilityJSON, pq.Array(times),
	)
	if err != nil {
		r.logger.Error("Failed to create water point", zap.String("id", point.ID), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	r.logger.Info("Water point stored", zap.String("id", point.ID), zap.String("area", point.Area))
	return nil
}
