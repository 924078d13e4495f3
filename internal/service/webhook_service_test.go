package service

import (
	"context"
	"crypto/sha512"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"
	"vistratv-be/pkg/paygate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPaygateSecret = "test-secret"

func newTestWebhookService(store *fakeStore) IWebhookService {
	return NewWebhookService(
		&fakeFactory{store: store},
		WebhookConfig{PaygateSecret: testPaygateSecret, MidtransServerKey: "midtrans-key"},
		nil,
		nil,
		nopLogger{},
	)
}

func paygateBody(t *testing.T, transactionId, status string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"transaction_id": transactionId,
		"status":         status,
	})
	require.NoError(t, err)
	return body
}

func seedPendingTransaction(store *fakeStore, metadata map[string]interface{}) *entity.PaymentTransaction {
	tx := &entity.PaymentTransaction{
		Id:                   uuid.New(),
		Email:                "viewer@example.com",
		GatewayTransactionId: "pg-1001",
		Provider:             entity.PaymentProviderPaygate,
		Amount:               14.99,
		Currency:             "USD",
		Status:               entity.PaymentStatusPending,
		Metadata:             metadata,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
	store.transactions = append(store.transactions, tx)
	return tx
}

func TestHandlePaygateRejectsBadSignature(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	body := paygateBody(t, "pg-1001", "completed")
	_, err := svc.HandlePaygate(context.Background(), body, "deadbeef", "1.2.3.4")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, store.webhookLogs, "nothing should be recorded before authentication")
}

func TestHandlePaygateRejectsUnsignedInProduction(t *testing.T) {
	_, store := newFakeFactory()
	svc := NewWebhookService(
		&fakeFactory{store: store},
		WebhookConfig{PaygateSecret: "", AllowUnsigned: true, IsProduction: true},
		nil, nil, nopLogger{},
	)

	body := paygateBody(t, "pg-1001", "completed")
	_, err := svc.HandlePaygate(context.Background(), body, "", "1.2.3.4")

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandlePaygateMalformedPayload(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	body := []byte(`{"status":"completed"}`)
	_, err := svc.HandlePaygate(context.Background(), body, paygate.Sign(testPaygateSecret, body), "1.2.3.4")

	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestHandlePaygateUnknownTransaction(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	body := paygateBody(t, "pg-missing", "paid")
	_, err := svc.HandlePaygate(context.Background(), body, paygate.Sign(testPaygateSecret, body), "1.2.3.4")

	assert.ErrorIs(t, err, ErrUnknownTransaction)
	require.Len(t, store.webhookLogs, 1)
	assert.Equal(t, entity.WebhookStatusFailed, store.webhookLogs[0].Status)
}

func TestHandlePaygateDuplicateDeliveryIsAcked(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)
	tx := seedPendingTransaction(store, nil)

	body := paygateBody(t, tx.GatewayTransactionId, "paid")
	sig := paygate.Sign(testPaygateSecret, body)

	first, err := svc.HandlePaygate(context.Background(), body, sig, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, first.Success)

	subsBefore := len(store.subscriptions)
	updatedBefore := store.transactions[0].UpdatedAt

	second, err := svc.HandlePaygate(context.Background(), body, sig, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, second.Success)

	assert.Len(t, store.webhookLogs, 1, "duplicate delivery must not add an audit row")
	assert.Len(t, store.subscriptions, subsBefore, "duplicate delivery must not repeat side effects")
	assert.Equal(t, updatedBefore, store.transactions[0].UpdatedAt)
}

func TestHandlePaygateRetryAfterFailedDeliverySucceeds(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	// The webhook races the checkout insert: the first delivery finds no
	// transaction and leaves a failed audit row.
	body := paygateBody(t, "pg-late", "paid")
	sig := paygate.Sign(testPaygateSecret, body)

	_, err := svc.HandlePaygate(context.Background(), body, sig, "1.2.3.4")
	assert.ErrorIs(t, err, ErrUnknownTransaction)
	require.Len(t, store.webhookLogs, 1)
	assert.Equal(t, entity.WebhookStatusFailed, store.webhookLogs[0].Status)

	tx := seedPendingTransaction(store, nil)
	tx.GatewayTransactionId = "pg-late"

	// The gateway retries the identical delivery; the failed row must not
	// count as a completed run.
	ack, err := svc.HandlePaygate(context.Background(), body, sig, "1.2.3.4")

	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, entity.PaymentStatusCompleted, store.transactions[0].Status)
	require.Len(t, store.webhookLogs, 1, "the retry reclaims the existing audit row")
	assert.Equal(t, entity.WebhookStatusProcessed, store.webhookLogs[0].Status)
}

func TestHandlePaygateCompletedCreatesSubscription(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	plan := &entity.SubscriptionPlan{
		Id:             uuid.New(),
		Name:           "Standard",
		Slug:           "standard",
		Price:          14.99,
		Currency:       "USD",
		DurationMonths: 1,
		IsActive:       true,
	}
	store.plans = append(store.plans, plan)

	user := &entity.User{Id: uuid.New(), Email: "viewer@example.com"}
	store.users = append(store.users, user)

	promo := &entity.PromoCode{
		Id:           uuid.New(),
		Code:         "LAUNCH10",
		DiscountType: entity.DiscountTypePercentage,
		IsActive:     true,
	}
	store.promos = append(store.promos, promo)

	affiliate := &entity.Affiliate{
		Id:             uuid.New(),
		UserId:         uuid.New(),
		Code:           "AFF1",
		CommissionRate: 20,
		Status:         entity.AffiliateStatusActive,
	}
	store.affiliates = append(store.affiliates, affiliate)

	tx := seedPendingTransaction(store, map[string]interface{}{
		entity.MetaSubscriptionPlanId: plan.Id.String(),
		entity.MetaPromoCode:          "LAUNCH10",
		entity.MetaAffiliateId:        affiliate.Id.String(),
	})

	body := paygateBody(t, tx.GatewayTransactionId, "paid")
	ack, err := svc.HandlePaygate(context.Background(), body, paygate.Sign(testPaygateSecret, body), "1.2.3.4")

	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, "completed", ack.Status)

	assert.Equal(t, entity.PaymentStatusCompleted, store.transactions[0].Status)
	assert.Contains(t, store.transactions[0].GatewayResponse, "last_webhook")

	require.Len(t, store.subscriptions, 1)
	sub := store.subscriptions[0]
	assert.Equal(t, plan.Id, sub.PlanId)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	require.NotNil(t, sub.UserId, "subscription should be matched to the account by email")
	assert.Equal(t, user.Id, *sub.UserId)
	assert.WithinDuration(t, time.Now().AddDate(0, plan.DurationMonths, 0), sub.EndDate, time.Minute)

	assert.Equal(t, 1, promo.CurrentUses)
	require.Len(t, store.redemptions, 1)
	assert.Equal(t, tx.Id, store.redemptions[0].TransactionId)

	require.Len(t, store.referrals, 1)
	assert.InDelta(t, 3.0, store.referrals[0].Commission, 0.001)
	assert.Equal(t, 1, affiliate.TotalReferrals)
	assert.InDelta(t, 3.0, affiliate.PendingEarnings, 0.001)

	require.Len(t, store.webhookLogs, 1)
	assert.Equal(t, entity.WebhookStatusProcessed, store.webhookLogs[0].Status)
}

func TestHandlePaygateSupersedesExistingSubscription(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	plan := &entity.SubscriptionPlan{Id: uuid.New(), Name: "Basic", DurationMonths: 1, IsActive: true}
	store.plans = append(store.plans, plan)

	userId := uuid.New()
	store.users = append(store.users, &entity.User{Id: userId, Email: "viewer@example.com"})

	old := &entity.Subscription{
		Id:     uuid.New(),
		UserId: &userId,
		Email:  "viewer@example.com",
		PlanId: uuid.New(),
		Status: entity.SubscriptionStatusActive,
	}
	store.subscriptions = append(store.subscriptions, old)

	tx := seedPendingTransaction(store, map[string]interface{}{
		entity.MetaSubscriptionPlanId: plan.Id.String(),
	})

	body := paygateBody(t, tx.GatewayTransactionId, "paid")
	_, err := svc.HandlePaygate(context.Background(), body, paygate.Sign(testPaygateSecret, body), "1.2.3.4")
	require.NoError(t, err)

	require.Len(t, store.subscriptions, 2)
	assert.Equal(t, entity.SubscriptionStatusCancelled, store.subscriptions[0].Status)
	assert.Equal(t, entity.SubscriptionStatusActive, store.subscriptions[1].Status)
	assert.Equal(t, plan.Id, store.subscriptions[1].PlanId)

	assert.Equal(t, 1, store.begins, "supersede and insert run in one transaction")
	assert.Equal(t, 1, store.commits)
}

func TestHandlePaygateTerminalStatusIsNeverLeft(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	tx := seedPendingTransaction(store, nil)
	tx.Status = entity.PaymentStatusCompleted

	body := paygateBody(t, tx.GatewayTransactionId, "failed")
	ack, err := svc.HandlePaygate(context.Background(), body, paygate.Sign(testPaygateSecret, body), "1.2.3.4")

	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, entity.PaymentStatusCompleted, store.transactions[0].Status)
	assert.Contains(t, store.transactions[0].GatewayResponse, "last_webhook", "payload is still merged for audit")
	assert.Empty(t, store.subscriptions)
}

func TestHandlePaygateNonCompletedStatusNoFanOut(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	plan := &entity.SubscriptionPlan{Id: uuid.New(), DurationMonths: 1, IsActive: true}
	store.plans = append(store.plans, plan)

	tx := seedPendingTransaction(store, map[string]interface{}{
		entity.MetaSubscriptionPlanId: plan.Id.String(),
	})

	body := paygateBody(t, tx.GatewayTransactionId, "expired")
	ack, err := svc.HandlePaygate(context.Background(), body, paygate.Sign(testPaygateSecret, body), "1.2.3.4")

	require.NoError(t, err)
	assert.Equal(t, "expired", ack.Status)
	assert.Equal(t, entity.PaymentStatusExpired, store.transactions[0].Status)
	assert.Empty(t, store.subscriptions)
	assert.Empty(t, store.redemptions)
}

func TestHandlePaygateFormEncodedBody(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)
	tx := seedPendingTransaction(store, nil)

	body := []byte("transaction_id=" + tx.GatewayTransactionId + "&status=pending&amount=14.99&currency=USD")
	ack, err := svc.HandlePaygate(context.Background(), body, paygate.Sign(testPaygateSecret, body), "1.2.3.4")

	require.NoError(t, err)
	assert.Equal(t, "pending", ack.Status)
	assert.Equal(t, entity.PaymentStatusPending, store.transactions[0].Status)
}

func TestHandlePaygateAppliesPaidPlanSwitch(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	oldPlan := &entity.SubscriptionPlan{Id: uuid.New(), Name: "Basic", Price: 9.99, DurationMonths: 1, IsActive: true}
	newPlan := &entity.SubscriptionPlan{Id: uuid.New(), Name: "Standard", Price: 14.99, DurationMonths: 1, IsActive: true}
	store.plans = append(store.plans, oldPlan, newPlan)

	userId := uuid.New()
	sub := &entity.Subscription{
		Id:      uuid.New(),
		UserId:  &userId,
		Email:   "viewer@example.com",
		PlanId:  oldPlan.Id,
		Status:  entity.SubscriptionStatusActive,
		EndDate: time.Now().AddDate(0, 0, 10),
	}
	store.subscriptions = append(store.subscriptions, sub)

	tx := seedPendingTransaction(store, map[string]interface{}{
		entity.MetaSubscriptionPlanId: newPlan.Id.String(),
		entity.MetaSubscriptionId:     sub.Id.String(),
		entity.MetaChangeType:         "plan_switch",
	})

	body := paygateBody(t, tx.GatewayTransactionId, "paid")
	_, err := svc.HandlePaygate(context.Background(), body, paygate.Sign(testPaygateSecret, body), "1.2.3.4")
	require.NoError(t, err)

	require.Len(t, store.subscriptions, 1, "a plan switch must not create a second subscription")
	assert.Equal(t, newPlan.Id, store.subscriptions[0].PlanId)
	assert.Equal(t, newPlan.Price, store.subscriptions[0].Price)
	assert.WithinDuration(t, time.Now().AddDate(0, 1, 0), store.subscriptions[0].EndDate, time.Minute)
}

func midtransSignature(orderId, statusCode, grossAmount, serverKey string) string {
	return fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+statusCode+grossAmount+serverKey)))
}

func TestHandleMidtransSettlement(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	tx := seedPendingTransaction(store, nil)
	tx.Provider = entity.PaymentProviderMidtrans

	req := &dto.MidtransWebhookRequest{
		TransactionStatus: "settlement",
		OrderId:           tx.GatewayTransactionId,
		StatusCode:        "200",
		GrossAmount:       "14.99",
		SignatureKey:      midtransSignature(tx.GatewayTransactionId, "200", "14.99", "midtrans-key"),
	}

	ack, err := svc.HandleMidtrans(context.Background(), req, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "completed", ack.Status)
	assert.Equal(t, entity.PaymentStatusCompleted, store.transactions[0].Status)
}

func TestHandleMidtransRejectsBadSignature(t *testing.T) {
	_, store := newFakeFactory()
	svc := newTestWebhookService(store)

	req := &dto.MidtransWebhookRequest{
		TransactionStatus: "settlement",
		OrderId:           "pg-1001",
		StatusCode:        "200",
		GrossAmount:       "14.99",
		SignatureKey:      "bogus",
	}

	_, err := svc.HandleMidtrans(context.Background(), req, "1.2.3.4")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestMapMidtransStatus(t *testing.T) {
	tests := []struct {
		in         string
		want       string
		recognized bool
	}{
		{"capture", "completed", true},
		{"settlement", "completed", true},
		{"pending", "pending", true},
		{"deny", "cancelled", true},
		{"cancel", "cancelled", true},
		{"expire", "expired", true},
		{"failure", "failed", true},
		{"refund", "refund", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, recognized := mapMidtransStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.recognized, recognized)
		})
	}
}
