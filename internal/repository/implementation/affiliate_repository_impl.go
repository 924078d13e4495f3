package implementation

import (
	"context"
	"errors"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/mapper"
	"vistratv-be/internal/model"
	"vistratv-be/internal/repository/contract"
	"vistratv-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AffiliateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AffiliateMapper
}

func NewAffiliateRepository(db *gorm.DB) contract.AffiliateRepository {
	return &AffiliateRepositoryImpl{
		db:     db,
		mapper: mapper.NewAffiliateMapper(),
	}
}

func (r *AffiliateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *AffiliateRepositoryImpl) Create(ctx context.Context, affiliate *entity.Affiliate) error {
	m := r.mapper.ToModel(affiliate)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*affiliate = *r.mapper.ToEntity(m)
	return nil
}

func (r *AffiliateRepositoryImpl) Update(ctx context.Context, affiliate *entity.Affiliate) error {
	m := r.mapper.ToModel(affiliate)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*affiliate = *r.mapper.ToEntity(m)
	return nil
}

func (r *AffiliateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Affiliate, error) {
	var m model.Affiliate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AffiliateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Affiliate, error) {
	var models []*model.Affiliate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Affiliate, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *AffiliateRepositoryImpl) CreateReferral(ctx context.Context, referral *entity.AffiliateReferral) error {
	m := r.mapper.ReferralToModel(referral)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*referral = *r.mapper.ReferralToEntity(m)
	return nil
}

func (r *AffiliateRepositoryImpl) FindReferrals(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateReferral, error) {
	var models []*model.AffiliateReferral
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.AffiliateReferral, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ReferralToEntity(m)
	}
	return entities, nil
}

func (r *AffiliateRepositoryImpl) AccrueCommission(ctx context.Context, affiliateId uuid.UUID, commission float64) error {
	return r.db.WithContext(ctx).Model(&model.Affiliate{}).
		Where("id = ?", affiliateId).
		UpdateColumns(map[string]interface{}{
			"total_referrals":  gorm.Expr("total_referrals + 1"),
			"total_earnings":   gorm.Expr("total_earnings + ?", commission),
			"pending_earnings": gorm.Expr("pending_earnings + ?", commission),
		}).Error
}
