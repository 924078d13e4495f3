package contract

import (
	"context"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AffiliateRepository interface {
	Create(ctx context.Context, affiliate *entity.Affiliate) error
	Update(ctx context.Context, affiliate *entity.Affiliate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Affiliate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Affiliate, error)

	CreateReferral(ctx context.Context, referral *entity.AffiliateReferral) error
	FindReferrals(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateReferral, error)

	// AccrueCommission applies `total_referrals + 1`, `total_earnings + c`
	// and `pending_earnings + c` as a single atomic UPDATE expression.
	AccrueCommission(ctx context.Context, affiliateId uuid.UUID, commission float64) error
}
