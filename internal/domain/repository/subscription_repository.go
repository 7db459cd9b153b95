package repository

import (
	"context"

	"github.com/together-as-one/internal/domain"
)

// SubscriptionRepository persists outage-update subscriptions
type SubscriptionRepository interface {
	// Create stores the subscription, returning errors.ErrDuplicateSubscription
	// when the email is already registered
	Create(ctx context.Context, sub *domain.Subscription) error
}
