package contract

import (
	"context"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	// Plans
	CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error
	UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error
	DeletePlan(ctx context.Context, id uuid.UUID) error
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)
	FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error)

	// Subscriptions
	CreateSubscription(ctx context.Context, subscription *entity.Subscription) error
	UpdateSubscription(ctx context.Context, subscription *entity.Subscription) error
	FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)

	// FindActiveByUser resolves the single active subscription the billing
	// flows assume. The partial unique index keeps this at most one row.
	FindActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
	FindActiveByEmail(ctx context.Context, email string) (*entity.Subscription, error)

	// Dashboard
	CountActiveSubscribers(ctx context.Context) (int64, error)
}
