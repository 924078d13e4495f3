package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string
type PaymentProvider string
type WebhookProcessingStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
	PaymentStatusCancelled PaymentStatus = "cancelled"

	PaymentProviderPaygate  PaymentProvider = "paygate"
	PaymentProviderMidtrans PaymentProvider = "midtrans"

	WebhookStatusReceived  WebhookProcessingStatus = "received"
	WebhookStatusProcessed WebhookProcessingStatus = "processed"
	WebhookStatusFailed    WebhookProcessingStatus = "failed"
)

// TerminalPaymentStatuses are never left once entered; the reconciler
// refuses to move a transaction out of any of them.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusExpired, PaymentStatusCancelled:
		return true
	}
	return false
}

// PaymentTransaction is created at checkout and mutated exactly once per
// distinct webhook event. GatewayResponse stashes the raw webhook payloads
// and side-channel metadata (target plan id, promo code, affiliate id).
type PaymentTransaction struct {
	Id                   uuid.UUID
	UserId               *uuid.UUID
	Email                string
	GatewayTransactionId string
	Provider             PaymentProvider
	Amount               float64
	Currency             string
	Status               PaymentStatus
	Metadata             map[string]interface{}
	GatewayResponse      map[string]interface{}
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Metadata keys stashed at checkout time and read back by the reconciler.
const (
	MetaSubscriptionPlanId = "subscription_plan_id"
	MetaSubscriptionId     = "subscription_id"
	MetaChangeType         = "change_type"
	MetaPromoCode          = "promo_code"
	MetaAffiliateId        = "affiliate_id"
)

func (t *PaymentTransaction) MetaString(key string) string {
	if t.Metadata == nil {
		return ""
	}
	if v, ok := t.Metadata[key].(string); ok {
		return v
	}
	return ""
}

// WebhookLog is the append-only audit trail and, through its uniqueness on
// (provider, transaction_id, event_status), the idempotency oracle.
type WebhookLog struct {
	Id            uuid.UUID
	Provider      PaymentProvider
	TransactionId string
	EventStatus   string
	Status        WebhookProcessingStatus
	Payload       map[string]interface{}
	Response      string
	SourceIP      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
