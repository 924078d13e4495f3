package service

import (
	"context"
	"testing"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyAffiliateCreatesPendingApplication(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewAffiliateService(factory, nopLogger{})
	userId := uuid.New()

	res, err := svc.Apply(context.Background(), userId, &dto.ApplyAffiliateRequest{
		PayoutEmail: "payout@example.com",
		Website:     "https://blog.example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "pending", res.Status)
	assert.Len(t, res.Code, 8)
	assert.Equal(t, defaultCommissionRate, res.CommissionRate)

	require.Len(t, store.affiliates, 1)
	assert.Equal(t, userId, store.affiliates[0].UserId)
	assert.Equal(t, "payout@example.com", store.affiliates[0].PayoutEmail)
}

func TestApplyAffiliateRejectsSecondApplication(t *testing.T) {
	factory, store := newFakeFactory()
	svc := NewAffiliateService(factory, nopLogger{})
	userId := uuid.New()

	store.affiliates = append(store.affiliates, &entity.Affiliate{
		Id:     uuid.New(),
		UserId: userId,
		Code:   "EXISTING1",
		Status: entity.AffiliateStatusPending,
	})

	_, err := svc.Apply(context.Background(), userId, &dto.ApplyAffiliateRequest{PayoutEmail: "payout@example.com"})
	assert.Error(t, err)
	assert.Len(t, store.affiliates, 1)
}

func TestGetDashboardRequiresEnrollment(t *testing.T) {
	factory, _ := newFakeFactory()
	svc := NewAffiliateService(factory, nopLogger{})

	_, err := svc.GetDashboard(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestGenerateAffiliateCodeUsesUnambiguousAlphabet(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := generateAffiliateCode()
		require.NoError(t, err)
		assert.Len(t, code, 8)
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "I")
		assert.NotContains(t, code, "1")
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45, "codes should not collide in practice")
}
