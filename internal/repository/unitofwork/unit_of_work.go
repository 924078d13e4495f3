package unitofwork

import (
	"context"

	"vistratv-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubscriptionRepository() contract.SubscriptionRepository
	PaymentRepository() contract.PaymentRepository
	WebhookLogRepository() contract.WebhookLogRepository
	PromoRepository() contract.PromoRepository
	AffiliateRepository() contract.AffiliateRepository
}
