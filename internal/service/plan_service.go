// Service for the public plan catalog and admin plan management.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/repository/specification"
	"vistratv-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	planCacheKey = "plans:active"
	planCacheTTL = 5 * time.Minute
)

type IPlanService interface {
	// Public
	GetActivePlans(ctx context.Context) ([]*dto.PlanResponse, error)
	GetPlanBySlug(ctx context.Context, slug string) (*dto.PlanResponse, error)

	// Admin
	CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error)
	UpdatePlan(ctx context.Context, id uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error)
	DeactivatePlan(ctx context.Context, id uuid.UUID) error
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	redis      *redis.Client
	logger     logger.ILogger
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client, log logger.ILogger) IPlanService {
	return &planService{
		uowFactory: uowFactory,
		redis:      rdb,
		logger:     log,
	}
}

// GetActivePlans returns the public catalog, served from Redis when warm.
func (s *planService) GetActivePlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, planCacheKey).Result(); err == nil {
			var plans []*dto.PlanResponse
			if json.Unmarshal([]byte(cached), &plans) == nil {
				return plans, nil
			}
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PlanResponse, len(plans))
	for i, plan := range plans {
		result[i] = toPlanResponse(plan)
	}

	if s.redis != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.redis.Set(ctx, planCacheKey, data, planCacheTTL).Err(); err != nil {
				s.logger.Warn("PlanService", "Failed to cache plan catalog", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return result, nil
}

func (s *planService) GetPlanBySlug(ctx context.Context, slug string) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.BySlug{Slug: slug}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}
	return toPlanResponse(plan), nil
}

func (s *planService) CreatePlan(ctx context.Context, req *dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.BySlug{Slug: req.Slug})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("plan slug already exists")
	}

	plan := &entity.SubscriptionPlan{
		Id:             uuid.New(),
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       req.Currency,
		DurationMonths: req.DurationMonths,
		Features:       req.Features,
		MaxConnections: req.MaxConnections,
		IsMostPopular:  req.IsMostPopular,
		IsActive:       true,
		SortOrder:      req.SortOrder,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uow.SubscriptionRepository().CreatePlan(ctx, plan); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return toPlanResponse(plan), nil
}

func (s *planService) UpdatePlan(ctx context.Context, id uuid.UUID, req *dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	if req.Name != nil {
		plan.Name = *req.Name
	}
	if req.Description != nil {
		plan.Description = *req.Description
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.DurationMonths != nil {
		plan.DurationMonths = *req.DurationMonths
	}
	if req.Features != nil {
		plan.Features = *req.Features
	}
	if req.MaxConnections != nil {
		plan.MaxConnections = *req.MaxConnections
	}
	if req.IsMostPopular != nil {
		plan.IsMostPopular = *req.IsMostPopular
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		plan.SortOrder = *req.SortOrder
	}
	plan.UpdatedAt = time.Now()

	if err := uow.SubscriptionRepository().UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return toPlanResponse(plan), nil
}

func (s *planService) DeactivatePlan(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if plan == nil {
		return errors.New("plan not found")
	}

	plan.IsActive = false
	plan.UpdatedAt = time.Now()
	if err := uow.SubscriptionRepository().UpdatePlan(ctx, plan); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *planService) invalidateCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, planCacheKey).Err(); err != nil {
		s.logger.Warn("PlanService", "Failed to invalidate plan cache", map[string]interface{}{"error": err.Error()})
	}
}

func toPlanResponse(plan *entity.SubscriptionPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		Id:             plan.Id,
		Name:           plan.Name,
		Slug:           plan.Slug,
		Description:    plan.Description,
		Price:          plan.Price,
		Currency:       plan.Currency,
		DurationMonths: plan.DurationMonths,
		Features:       plan.Features,
		MaxConnections: plan.MaxConnections,
		IsMostPopular:  plan.IsMostPopular,
	}
}
