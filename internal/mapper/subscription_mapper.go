package mapper

import (
	"encoding/json"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/model"

	"gorm.io/datatypes"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.SubscriptionPlan) *entity.SubscriptionPlan {
	if p == nil {
		return nil
	}

	var features []string
	if len(p.Features) > 0 {
		// Malformed rows degrade to an empty feature list rather than failing the read.
		_ = json.Unmarshal(p.Features, &features)
	}

	return &entity.SubscriptionPlan{
		Id:             p.Id,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		Currency:       p.Currency,
		DurationMonths: p.DurationMonths,
		Features:       features,
		MaxConnections: p.MaxConnections,
		IsMostPopular:  p.IsMostPopular,
		IsActive:       p.IsActive,
		SortOrder:      p.SortOrder,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.SubscriptionPlan) *model.SubscriptionPlan {
	if p == nil {
		return nil
	}

	features, _ := json.Marshal(p.Features)

	return &model.SubscriptionPlan{
		Id:             p.Id,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		Currency:       p.Currency,
		DurationMonths: p.DurationMonths,
		Features:       datatypes.JSON(features),
		MaxConnections: p.MaxConnections,
		IsMostPopular:  p.IsMostPopular,
		IsActive:       p.IsActive,
		SortOrder:      p.SortOrder,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:        s.Id,
		UserId:    s.UserId,
		Email:     s.Email,
		PlanId:    s.PlanId,
		Status:    entity.SubscriptionStatus(s.Status),
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Price:     s.Price,
		Currency:  s.Currency,
		AutoRenew: s.AutoRenew,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:        s.Id,
		UserId:    s.UserId,
		Email:     s.Email,
		PlanId:    s.PlanId,
		Status:    string(s.Status),
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Price:     s.Price,
		Currency:  s.Currency,
		AutoRenew: s.AutoRenew,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
