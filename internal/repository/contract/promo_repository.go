package contract

import (
	"context"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PromoRepository interface {
	Create(ctx context.Context, promo *entity.PromoCode) error
	Update(ctx context.Context, promo *entity.PromoCode) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PromoCode, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromoCode, error)

	// IncrementUsage bumps current_uses atomically in the database; callers
	// never read-modify-write the counter.
	IncrementUsage(ctx context.Context, id uuid.UUID) error

	CreateRedemption(ctx context.Context, redemption *entity.PromoRedemption) error
	CountRedemptions(ctx context.Context, promoId uuid.UUID, userId *uuid.UUID, email string) (int64, error)
}
