package mapper

import (
	"encoding/json"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PromoMapper struct{}

func NewPromoMapper() *PromoMapper {
	return &PromoMapper{}
}

func (m *PromoMapper) ToEntity(p *model.PromoCode) *entity.PromoCode {
	if p == nil {
		return nil
	}

	var planIds []uuid.UUID
	if len(p.PlanIds) > 0 {
		_ = json.Unmarshal(p.PlanIds, &planIds)
	}

	return &entity.PromoCode{
		Id:            p.Id,
		Code:          p.Code,
		Description:   p.Description,
		DiscountType:  entity.DiscountType(p.DiscountType),
		DiscountValue: p.DiscountValue,
		MaxUses:       p.MaxUses,
		CurrentUses:   p.CurrentUses,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		SingleUse:     p.SingleUse,
		PlanIds:       planIds,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *PromoMapper) ToModel(p *entity.PromoCode) *model.PromoCode {
	if p == nil {
		return nil
	}

	planIds, _ := json.Marshal(p.PlanIds)

	return &model.PromoCode{
		Id:            p.Id,
		Code:          p.Code,
		Description:   p.Description,
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue,
		MaxUses:       p.MaxUses,
		CurrentUses:   p.CurrentUses,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		SingleUse:     p.SingleUse,
		PlanIds:       datatypes.JSON(planIds),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (m *PromoMapper) RedemptionToEntity(r *model.PromoRedemption) *entity.PromoRedemption {
	if r == nil {
		return nil
	}
	return &entity.PromoRedemption{
		Id:            r.Id,
		PromoCodeId:   r.PromoCodeId,
		UserId:        r.UserId,
		Email:         r.Email,
		TransactionId: r.TransactionId,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *PromoMapper) RedemptionToModel(r *entity.PromoRedemption) *model.PromoRedemption {
	if r == nil {
		return nil
	}
	return &model.PromoRedemption{
		Id:            r.Id,
		PromoCodeId:   r.PromoCodeId,
		UserId:        r.UserId,
		Email:         r.Email,
		TransactionId: r.TransactionId,
		CreatedAt:     r.CreatedAt,
	}
}
