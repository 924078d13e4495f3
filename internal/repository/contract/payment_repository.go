package contract

import (
	"context"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/repository/specification"
)

type PaymentRepository interface {
	CreateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error
	UpdateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error
	FindOneTransaction(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error)
	FindAllTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error)
	CountTransactions(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SumCompletedAmount totals the amount of completed transactions for the
	// admin dashboard revenue figure.
	SumCompletedAmount(ctx context.Context) (float64, error)
}

type WebhookLogRepository interface {
	// CreateIfAbsent inserts the audit row unless one already exists for the
	// same (provider, transaction_id, event_status). On conflict it returns
	// created=false together with the existing row. This single call is the
	// duplicate-delivery gate; no separate existence check precedes it.
	CreateIfAbsent(ctx context.Context, log *entity.WebhookLog) (bool, *entity.WebhookLog, error)
	Update(ctx context.Context, log *entity.WebhookLog) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WebhookLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
