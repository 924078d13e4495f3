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

func seedPromoFixtures(store *fakeStore) (*entity.SubscriptionPlan, *entity.PromoCode) {
	plan := &entity.SubscriptionPlan{
		Id:       uuid.New(),
		Name:     "Standard",
		Slug:     "standard",
		Price:    14.99,
		IsActive: true,
	}
	store.plans = append(store.plans, plan)

	promo := &entity.PromoCode{
		Id:            uuid.New(),
		Code:          "LAUNCH10",
		DiscountType:  entity.DiscountTypePercentage,
		DiscountValue: 10,
		IsActive:      true,
	}
	store.promos = append(store.promos, promo)
	return plan, promo
}

func TestValidatePromoHappyPath(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewPromoService(factory)
	plan, _ := seedPromoFixtures(store)

	res, err := svc.Validate(context.Background(), &dto.ValidatePromoRequest{
		Code:   "  launch10 ",
		PlanId: plan.Id,
	}, nil)

	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "LAUNCH10", res.Code, "code is normalized before lookup")
	assert.InDelta(t, 13.49, res.DiscountedPrice, 0.001)
}

func TestValidatePromoRejections(t *testing.T) {
	userId := uuid.New()

	tests := []struct {
		name   string
		setup  func(store *fakeStore, plan *entity.SubscriptionPlan, promo *entity.PromoCode)
		reason string
	}{
		{
			name:   "unknown code",
			setup:  func(store *fakeStore, plan *entity.SubscriptionPlan, promo *entity.PromoCode) { promo.Code = "OTHER" },
			reason: "promo code not found",
		},
		{
			name:   "inactive",
			setup:  func(store *fakeStore, plan *entity.SubscriptionPlan, promo *entity.PromoCode) { promo.IsActive = false },
			reason: "promo code is not active",
		},
		{
			name: "not yet valid",
			setup: func(store *fakeStore, plan *entity.SubscriptionPlan, promo *entity.PromoCode) {
				future := time.Now().Add(24 * time.Hour)
				promo.StartDate = &future
			},
			reason: "promo code is not yet valid",
		},
		{
			name: "expired",
			setup: func(store *fakeStore, plan *entity.SubscriptionPlan, promo *entity.PromoCode) {
				past := time.Now().Add(-24 * time.Hour)
				promo.EndDate = &past
			},
			reason: "promo code has expired",
		},
		{
			name: "usage limit reached",
			setup: func(store *fakeStore, plan *entity.SubscriptionPlan, promo *entity.PromoCode) {
				promo.MaxUses = 5
				promo.CurrentUses = 5
			},
			reason: "promo code usage limit reached",
		},
		{
			name: "wrong plan",
			setup: func(store *fakeStore, plan *entity.SubscriptionPlan, promo *entity.PromoCode) {
				promo.PlanIds = []uuid.UUID{uuid.New()}
			},
			reason: "promo code does not apply to this plan",
		},
		{
			name: "single use already redeemed",
			setup: func(store *fakeStore, plan *entity.SubscriptionPlan, promo *entity.PromoCode) {
				promo.SingleUse = true
				store.redemptions = append(store.redemptions, &entity.PromoRedemption{
					Id:          uuid.New(),
					PromoCodeId: promo.Id,
					UserId:      &userId,
				})
			},
			reason: "promo code already used",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory, store := newFakeFactory()
			svc := NewPromoService(factory)
			plan, promo := seedPromoFixtures(store)
			tt.setup(store, plan, promo)

			res, err := svc.Validate(context.Background(), &dto.ValidatePromoRequest{
				Code:   "LAUNCH10",
				PlanId: plan.Id,
			}, &userId)

			require.NoError(t, err)
			assert.False(t, res.Valid)
			assert.Equal(t, tt.reason, res.Reason)
		})
	}
}

func TestApplyDiscountFloorsAtZero(t *testing.T) {
	promo := &entity.PromoCode{
		DiscountType:  entity.DiscountTypeFixed,
		DiscountValue: 20,
	}
	assert.Equal(t, 0.0, ApplyDiscount(9.99, promo))

	promo.DiscountValue = 5
	assert.InDelta(t, 4.99, ApplyDiscount(9.99, promo), 0.001)
}
