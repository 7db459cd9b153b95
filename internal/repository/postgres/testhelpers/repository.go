package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain/repository"
	"github.com/together-as-one/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewWaterPointRepositoryForTest creates a water point repository with test database and logger
func NewWaterPointRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.WaterPointRepository {
	return postgres.NewWaterPointRepository(NewDBForTest(db, logger))
}

// NewSubscriptionRepositoryForTest creates a subscription repository with test database and logger
func NewSubscriptionRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.SubscriptionRepository {
	return postgres.NewSubscriptionRepository(NewDBForTest(db, logger))
}
