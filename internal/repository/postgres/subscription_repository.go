package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	apperrors "github.com/together-as-one/internal/pkg/errors"
)

type subscriptionRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewSubscriptionRepository(db *DB) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, email, name, area, created_at)
		VALUES (:id, :email, :name, :area, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateSubscription
		}
		r.logger.Error("Failed to create subscription", zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	r.logger.Info("Subscription created", zap.String("id", sub.ID.String()))
	return nil
}
