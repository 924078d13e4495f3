package service

import (
	"context"
	"testing"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubscriptionService(store *fakeStore) ISubscriptionService {
	return NewSubscriptionService(&fakeFactory{store: store}, nil, nopLogger{}, "http://localhost:3000", "http://localhost:5173")
}

func seedActiveSubscription(store *fakeStore, userId uuid.UUID, endDate time.Time) (*entity.Subscription, *entity.SubscriptionPlan) {
	plan := &entity.SubscriptionPlan{
		Id:             uuid.New(),
		Name:           "Standard",
		Price:          14.99,
		DurationMonths: 1,
		MaxConnections: 2,
		IsActive:       true,
	}
	store.plans = append(store.plans, plan)

	sub := &entity.Subscription{
		Id:        uuid.New(),
		UserId:    &userId,
		Email:     "viewer@example.com",
		PlanId:    plan.Id,
		Status:    entity.SubscriptionStatusActive,
		StartDate: endDate.AddDate(0, -1, 0),
		EndDate:   endDate,
		Price:     plan.Price,
		Currency:  "USD",
		AutoRenew: true,
	}
	store.subscriptions = append(store.subscriptions, sub)
	return sub, plan
}

func TestValidateSubscriptionStates(t *testing.T) {
	tests := []struct {
		name      string
		endDate   time.Time
		wantValid bool
		wantState string
	}{
		{"active", time.Now().AddDate(0, 0, 10), true, "active"},
		{"grace period", time.Now().Add(-24 * time.Hour), true, "grace_period"},
		{"expired", time.Now().Add(-96 * time.Hour), false, "expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, store := newFakeFactory()
			svc := newTestSubscriptionService(store)
			userId := uuid.New()
			seedActiveSubscription(store, userId, tt.endDate)

			res, err := svc.Validate(context.Background(), userId)

			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)
			assert.Equal(t, tt.wantState, res.State)
			assert.Equal(t, 2, res.MaxConnections)
		})
	}
}

func TestValidateFlipsLapsedRowToExpired(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestSubscriptionService(store)
	userId := uuid.New()
	sub, _ := seedActiveSubscription(store, userId, time.Now().Add(-96*time.Hour))

	_, err := svc.Validate(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusExpired, sub.Status, "lapsed row is flipped on read")

	res, err := svc.Validate(context.Background(), userId)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "none", res.State, "flipped row no longer resolves as active")
}

func TestValidateWithoutSubscription(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestSubscriptionService(store)

	res, err := svc.Validate(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, "none", res.State)
}

func TestGetStatusNoSubscription(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestSubscriptionService(store)

	_, err := svc.GetStatus(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestCancelAtPeriodEnd(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestSubscriptionService(store)
	userId := uuid.New()
	sub, _ := seedActiveSubscription(store, userId, time.Now().AddDate(0, 0, 10))

	err := svc.Cancel(context.Background(), userId, &dto.CancelSubscriptionRequest{AtPeriodEnd: true})

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status, "access runs out the period")
	assert.False(t, sub.AutoRenew)
}

func TestCancelImmediately(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestSubscriptionService(store)
	userId := uuid.New()
	sub, _ := seedActiveSubscription(store, userId, time.Now().AddDate(0, 0, 10))

	err := svc.Cancel(context.Background(), userId, &dto.CancelSubscriptionRequest{Reason: "moving"})

	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusCancelled, sub.Status)
}

func TestSwitchPlanDowngradeAppliesWithCredit(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestSubscriptionService(store)
	userId := uuid.New()
	sub, _ := seedActiveSubscription(store, userId, time.Now().AddDate(0, 0, 15))

	cheaper := &entity.SubscriptionPlan{
		Id:             uuid.New(),
		Name:           "Basic",
		Price:          9.99,
		DurationMonths: 1,
		IsActive:       true,
	}
	store.plans = append(store.plans, cheaper)
	paidThrough := sub.EndDate

	res, err := svc.SwitchPlan(context.Background(), userId, &dto.SwitchPlanRequest{NewPlanId: cheaper.Id})

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Zero(t, res.AmountDue)
	assert.Greater(t, res.Credit, 0.0)
	assert.Greater(t, res.ExtensionDays, 0)
	assert.Equal(t, cheaper.Id, sub.PlanId)
	assert.Equal(t, cheaper.Price, sub.Price)
	wantEnd := paidThrough.AddDate(0, 0, res.ExtensionDays)
	assert.WithinDuration(t, wantEnd, sub.EndDate, time.Minute,
		"the paid-through date only gains the credit days, not a fresh period")
}

func TestSwitchPlanToSamePlanRejected(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestSubscriptionService(store)
	userId := uuid.New()
	sub, _ := seedActiveSubscription(store, userId, time.Now().AddDate(0, 0, 15))

	_, err := svc.SwitchPlan(context.Background(), userId, &dto.SwitchPlanRequest{NewPlanId: sub.PlanId})
	assert.Error(t, err)
}

func TestSwitchPlanForcedUpgradeSkipsPayment(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestSubscriptionService(store)
	userId := uuid.New()
	sub, _ := seedActiveSubscription(store, userId, time.Now().AddDate(0, 0, 15))

	premium := &entity.SubscriptionPlan{
		Id:             uuid.New(),
		Name:           "Premium",
		Price:          24.99,
		DurationMonths: 1,
		IsActive:       true,
	}
	store.plans = append(store.plans, premium)

	res, err := svc.SwitchPlanForSubscription(context.Background(), sub, premium.Id, true)

	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Greater(t, res.AmountDue, 0.0, "the owed amount is still reported")
	assert.Equal(t, premium.Id, sub.PlanId)
	assert.Empty(t, store.transactions, "forced switches bypass the gateway")
}
