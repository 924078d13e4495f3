package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"
	"vistratv-be/internal/repository/specification"
	"vistratv-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IPromoService interface {
	Validate(ctx context.Context, req *dto.ValidatePromoRequest, userId *uuid.UUID) (*dto.ValidatePromoResponse, error)
	Create(ctx context.Context, req *dto.CreatePromoRequest) (*dto.PromoResponse, error)
	List(ctx context.Context) ([]*dto.PromoResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type promoService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPromoService(uowFactory unitofwork.RepositoryFactory) IPromoService {
	return &promoService{uowFactory: uowFactory}
}

// Validate runs the full eligibility chain for a code against a plan and
// identity. Checks run in a fixed order and the first failure wins, so
// the caller always sees the most fundamental reason.
func (s *promoService) Validate(ctx context.Context, req *dto.ValidatePromoRequest, userId *uuid.UUID) (*dto.ValidatePromoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	promo, err := uow.PromoRepository().FindOne(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return reject(code, "promo code not found"), nil
	}

	if !promo.IsActive {
		return reject(code, "promo code is not active"), nil
	}

	now := time.Now()
	if promo.StartDate != nil && now.Before(*promo.StartDate) {
		return reject(code, "promo code is not yet valid"), nil
	}
	if promo.EndDate != nil && now.After(*promo.EndDate) {
		return reject(code, "promo code has expired"), nil
	}

	if promo.Exhausted() {
		return reject(code, "promo code usage limit reached"), nil
	}

	if !promo.AppliesTo(req.PlanId) {
		return reject(code, "promo code does not apply to this plan"), nil
	}

	if promo.SingleUse {
		count, err := uow.PromoRepository().CountRedemptions(ctx, promo.Id, userId, req.Email)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return reject(code, "promo code already used"), nil
		}
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return reject(code, "plan not found"), nil
	}

	discounted := ApplyDiscount(plan.Price, promo)

	return &dto.ValidatePromoResponse{
		Valid:           true,
		Code:            code,
		DiscountType:    string(promo.DiscountType),
		DiscountValue:   promo.DiscountValue,
		DiscountedPrice: discounted,
	}, nil
}

// ApplyDiscount returns the plan price after the promo, floored at zero.
func ApplyDiscount(price float64, promo *entity.PromoCode) float64 {
	p := decimal.NewFromFloat(price)
	v := decimal.NewFromFloat(promo.DiscountValue)

	var discounted decimal.Decimal
	switch promo.DiscountType {
	case entity.DiscountTypePercentage:
		discounted = p.Sub(p.Mul(v).Div(decimal.NewFromInt(100)))
	case entity.DiscountTypeFixed:
		discounted = p.Sub(v)
	default:
		discounted = p
	}

	if discounted.IsNegative() {
		return 0
	}
	result, _ := discounted.Round(2).Float64()
	return result
}

func reject(code, reason string) *dto.ValidatePromoResponse {
	return &dto.ValidatePromoResponse{Valid: false, Code: code, Reason: reason}
}

func (s *promoService) Create(ctx context.Context, req *dto.CreatePromoRequest) (*dto.PromoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	code := strings.ToUpper(strings.TrimSpace(req.Code))

	existing, err := uow.PromoRepository().FindOne(ctx, specification.ByCode{Code: code})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("promo code already exists")
	}

	promo := &entity.PromoCode{
		Id:            uuid.New(),
		Code:          code,
		DiscountType:  entity.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MaxUses:       req.MaxUses,
		SingleUse:     req.SingleUse,
		PlanIds:       req.PlanIds,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if req.StartDate != "" {
		if t, err := time.Parse(time.RFC3339, req.StartDate); err == nil {
			promo.StartDate = &t
		}
	}
	if req.EndDate != "" {
		if t, err := time.Parse(time.RFC3339, req.EndDate); err == nil {
			promo.EndDate = &t
		}
	}

	if err := uow.PromoRepository().Create(ctx, promo); err != nil {
		return nil, err
	}

	return toPromoResponse(promo), nil
}

func (s *promoService) List(ctx context.Context) ([]*dto.PromoResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	promos, err := uow.PromoRepository().FindAll(ctx, specification.OrderBy{Field: "created_at", Desc: true})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PromoResponse, len(promos))
	for i, p := range promos {
		res[i] = toPromoResponse(p)
	}
	return res, nil
}

func (s *promoService) Deactivate(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	promo, err := uow.PromoRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if promo == nil {
		return errors.New("promo code not found")
	}

	promo.IsActive = false
	promo.UpdatedAt = time.Now()
	return uow.PromoRepository().Update(ctx, promo)
}

func toPromoResponse(p *entity.PromoCode) *dto.PromoResponse {
	return &dto.PromoResponse{
		Id:            p.Id,
		Code:          p.Code,
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue,
		MaxUses:       p.MaxUses,
		CurrentUses:   p.CurrentUses,
		SingleUse:     p.SingleUse,
		IsActive:      p.IsActive,
		PlanIds:       p.PlanIds,
	}
}
