package service

import (
	"context"
	"errors"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/repository/specification"
	"vistratv-be/internal/repository/unitofwork"
	"vistratv-be/pkg/billing"
	"vistratv-be/pkg/paygate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// gracePeriod is how long past the end date playback keeps working while
// a renewal payment settles.
const gracePeriod = 72 * time.Hour

var ErrNoActiveSubscription = errors.New("no active subscription")

type ISubscriptionService interface {
	GetStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error)
	Validate(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionValidationResponse, error)
	Cancel(ctx context.Context, userId uuid.UUID, req *dto.CancelSubscriptionRequest) error
	SwitchPlan(ctx context.Context, userId uuid.UUID, req *dto.SwitchPlanRequest) (*dto.SwitchPlanResponse, error)

	// SwitchPlanForSubscription is the admin back-office entry point; it
	// runs the same proration path against an explicit subscription row.
	SwitchPlanForSubscription(ctx context.Context, sub *entity.Subscription, newPlanId uuid.UUID, force bool) (*dto.SwitchPlanResponse, error)
}

type subscriptionService struct {
	uowFactory    unitofwork.RepositoryFactory
	paygateClient *paygate.Client
	logger        logger.ILogger
	baseURL       string
	clientURL     string
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	paygateClient *paygate.Client,
	log logger.ILogger,
	baseURL, clientURL string,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory:    uowFactory,
		paygateClient: paygateClient,
		logger:        log,
		baseURL:       baseURL,
		clientURL:     clientURL,
	}
}

func (s *subscriptionService) GetStatus(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoActiveSubscription
	}

	res := &dto.SubscriptionResponse{
		Id:        sub.Id,
		PlanId:    sub.PlanId,
		Status:    string(sub.Status),
		StartDate: sub.StartDate,
		EndDate:   sub.EndDate,
		Price:     sub.Price,
		Currency:  sub.Currency,
		AutoRenew: sub.AutoRenew,
	}
	if plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId}); err == nil && plan != nil {
		res.PlanName = plan.Name
	}
	return res, nil
}

// Validate resolves the entitlement state lazily: no cron marks rows
// expired, the check happens on read and the row is flipped here once the
// grace window has passed.
func (s *subscriptionService) Validate(ctx context.Context, userId uuid.UUID) (*dto.SubscriptionValidationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &dto.SubscriptionValidationResponse{Valid: false, State: "none"}, nil
	}

	now := time.Now()
	res := &dto.SubscriptionValidationResponse{EndDate: &sub.EndDate}

	if plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId}); err == nil && plan != nil {
		res.MaxConnections = plan.MaxConnections
	}

	switch {
	case sub.EndDate.After(now):
		res.Valid = true
		res.State = "active"
	case sub.EndDate.Add(gracePeriod).After(now):
		res.Valid = true
		res.State = "grace_period"
	default:
		res.State = "expired"
		sub.Status = entity.SubscriptionStatusExpired
		sub.UpdatedAt = now
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
			s.logger.Warn("SubscriptionService", "Failed to expire lapsed subscription", map[string]interface{}{
				"subscription_id": sub.Id,
				"error":           err.Error(),
			})
		}
	}
	return res, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userId uuid.UUID, req *dto.CancelSubscriptionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userId)
	if err != nil {
		return err
	}
	if sub == nil {
		return ErrNoActiveSubscription
	}

	now := time.Now()
	if req.AtPeriodEnd {
		sub.AutoRenew = false
	} else {
		sub.Status = entity.SubscriptionStatusCancelled
	}
	sub.UpdatedAt = now

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return err
	}

	s.logger.Info("SubscriptionService", "Subscription cancelled", map[string]interface{}{
		"subscription_id": sub.Id,
		"at_period_end":   req.AtPeriodEnd,
		"reason":          req.Reason,
	})
	return nil
}

func (s *subscriptionService) SwitchPlan(ctx context.Context, userId uuid.UUID, req *dto.SwitchPlanRequest) (*dto.SwitchPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoActiveSubscription
	}
	return s.SwitchPlanForSubscription(ctx, sub, req.NewPlanId, false)
}

// SwitchPlanForSubscription prorates the remaining period against the new
// plan. A positive balance becomes a pending payment and nothing changes
// until the webhook confirms it; otherwise the switch applies immediately,
// with any credit converted into extra days on the new plan.
func (s *subscriptionService) SwitchPlanForSubscription(ctx context.Context, sub *entity.Subscription, newPlanId uuid.UUID, force bool) (*dto.SwitchPlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if sub.PlanId == newPlanId {
		return nil, errors.New("already on the requested plan")
	}

	currentPlan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId})
	if err != nil {
		return nil, err
	}
	if currentPlan == nil {
		return nil, errors.New("current plan not found")
	}

	newPlan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: newPlanId}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if newPlan == nil {
		return nil, errors.New("plan not found")
	}

	now := time.Now()
	result := billing.Prorate(
		planTerms(currentPlan),
		planTerms(newPlan),
		billing.Period{StartDate: sub.StartDate, EndDate: sub.EndDate},
		now,
	)

	amountDue, _ := result.AmountDue.Float64()
	credit, _ := result.Credit.Float64()
	res := &dto.SwitchPlanResponse{
		AmountDue:     amountDue,
		Credit:        credit,
		RemainingDays: result.RemainingDays,
	}

	if result.AmountDue.IsPositive() && !force {
		tx := &entity.PaymentTransaction{
			Id:       uuid.New(),
			UserId:   sub.UserId,
			Email:    sub.Email,
			Provider: entity.PaymentProviderPaygate,
			Amount:   amountDue,
			Currency: newPlan.Currency,
			Status:   entity.PaymentStatusPending,
			Metadata: map[string]interface{}{
				entity.MetaSubscriptionPlanId: newPlan.Id.String(),
				entity.MetaSubscriptionId:     sub.Id.String(),
				entity.MetaChangeType:         "plan_switch",
			},
			CreatedAt: now,
			UpdatedAt: now,
		}

		invoice, err := s.paygateClient.CreateInvoice(ctx, &paygate.InvoiceRequest{
			OrderId:     tx.Id.String(),
			Amount:      amountDue,
			Currency:    newPlan.Currency,
			Email:       sub.Email,
			CallbackURL: s.baseURL + "/api/payment/paygate/webhook",
			SuccessURL:  s.clientURL + "/account/plan-change/success",
			CancelURL:   s.clientURL + "/account",
		})
		if err != nil {
			return nil, err
		}
		tx.GatewayTransactionId = invoice.TransactionId

		if err := uow.PaymentRepository().CreateTransaction(ctx, tx); err != nil {
			return nil, err
		}

		res.TransactionId = tx.GatewayTransactionId
		res.PaymentURL = invoice.PaymentURL
		return res, nil
	}

	sub.PlanId = newPlan.Id
	sub.Price = newPlan.Price
	if result.Credit.IsPositive() {
		// The credit covers the days already paid for, so the period keeps
		// its current end and only gains the credit-funded days.
		extension := billing.CreditExtensionDays(result.Credit, planTerms(newPlan))
		sub.EndDate = sub.EndDate.AddDate(0, 0, extension)
		res.ExtensionDays = extension
	} else {
		sub.EndDate = billing.NextEndDate(now, planTerms(newPlan))
	}
	sub.UpdatedAt = now

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	res.Applied = true
	s.logger.Info("SubscriptionService", "Plan switch applied", map[string]interface{}{
		"subscription_id": sub.Id,
		"new_plan":        newPlan.Name,
		"extension_days":  res.ExtensionDays,
	})
	return res, nil
}

func planTerms(plan *entity.SubscriptionPlan) billing.PlanTerms {
	return billing.PlanTerms{
		Price:          decimal.NewFromFloat(plan.Price),
		DurationMonths: plan.DurationMonths,
	}
}
