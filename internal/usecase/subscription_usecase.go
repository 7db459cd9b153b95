package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/domain"
	"github.com/together-as-one/internal/domain/repository"
	"github.com/together-as-one/internal/usecase/dto"
)

// SubscriptionUseCase records sign-ups for outage updates
type SubscriptionUseCase struct {
	repo   repository.SubscriptionRepository
	logger *zap.Logger
}

func NewSubscriptionUseCase(repo repository.SubscriptionRepository, logger *zap.Logger) *SubscriptionUseCase {
	return &SubscriptionUseCase{repo: repo, logger: logger}
}

func (uc *SubscriptionUseCase) Subscribe(ctx context.Context, req dto.SubscriptionRequest) (*dto.SubscriptionResponse, error) {
	sub := &domain.Subscription{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Name:      optional(req.Name),
		Area:      optional(req.Area),
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.repo.Create(ctx, sub); err != nil {
		uc.logger.Warn("Subscription not stored", zap.Error(err))
		return nil, err
	}

	return &dto.SubscriptionResponse{
		ID:    sub.ID.String(),
		Email: sub.Email,
	}, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
