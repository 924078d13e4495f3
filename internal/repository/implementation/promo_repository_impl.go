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

type PromoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromoMapper
}

func NewPromoRepository(db *gorm.DB) contract.PromoRepository {
	return &PromoRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromoMapper(),
	}
}

func (r *PromoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PromoRepositoryImpl) Create(ctx context.Context, promo *entity.PromoCode) error {
	m := r.mapper.ToModel(promo)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*promo = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromoRepositoryImpl) Update(ctx context.Context, promo *entity.PromoCode) error {
	m := r.mapper.ToModel(promo)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*promo = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromoRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PromoCode{}, id).Error
}

func (r *PromoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PromoCode, error) {
	var m model.PromoCode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PromoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromoCode, error) {
	var models []*model.PromoCode
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PromoCode, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *PromoRepositoryImpl) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PromoCode{}).
		Where("id = ?", id).
		UpdateColumn("current_uses", gorm.Expr("current_uses + 1")).Error
}

func (r *PromoRepositoryImpl) CreateRedemption(ctx context.Context, redemption *entity.PromoRedemption) error {
	m := r.mapper.RedemptionToModel(redemption)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*redemption = *r.mapper.RedemptionToEntity(m)
	return nil
}

func (r *PromoRepositoryImpl) CountRedemptions(ctx context.Context, promoId uuid.UUID, userId *uuid.UUID, email string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.PromoRedemption{}).
		Where("promo_code_id = ?", promoId)

	// Match by account when known, fall back to the checkout email.
	if userId != nil {
		query = query.Where("user_id = ? OR email = ?", *userId, email)
	} else {
		query = query.Where("email = ?", email)
	}

	err := query.Count(&count).Error
	return count, err
}
