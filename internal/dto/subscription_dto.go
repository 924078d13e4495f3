package dto

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionResponse struct {
	Id        uuid.UUID `json:"id"`
	PlanId    uuid.UUID `json:"plan_id"`
	PlanName  string    `json:"plan_name"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	AutoRenew bool      `json:"auto_renew"`
}

type SwitchPlanRequest struct {
	NewPlanId uuid.UUID `json:"new_plan_id" validate:"required"`
}

// SwitchPlanResponse reports the proration outcome. When PaymentURL is
// set the switch is pending payment and the subscription is untouched.
type SwitchPlanResponse struct {
	Applied       bool    `json:"applied"`
	AmountDue     float64 `json:"amount_due"`
	Credit        float64 `json:"credit"`
	RemainingDays int     `json:"remaining_days"`
	ExtensionDays int     `json:"extension_days,omitempty"`
	TransactionId string  `json:"transaction_id,omitempty"`
	PaymentURL    string  `json:"payment_url,omitempty"`
}

// SubscriptionValidationResponse is what the player app polls before
// starting playback. State is one of "active", "grace_period", "expired"
// or "none".
type SubscriptionValidationResponse struct {
	Valid          bool       `json:"valid"`
	State          string     `json:"state"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	MaxConnections int        `json:"max_connections,omitempty"`
}

type CancelSubscriptionRequest struct {
	// When true the subscription stays active until the period end and
	// only auto renew is cleared.
	AtPeriodEnd bool   `json:"at_period_end"`
	Reason      string `json:"reason"`
}
