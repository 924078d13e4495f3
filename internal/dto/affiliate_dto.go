package dto

import (
	"time"

	"github.com/google/uuid"
)

type ApplyAffiliateRequest struct {
	PayoutEmail string `json:"payout_email" validate:"required,email"`
	Website     string `json:"website"`
}

type AffiliateResponse struct {
	Id              uuid.UUID `json:"id"`
	Code            string    `json:"code"`
	Status          string    `json:"status"`
	CommissionRate  float64   `json:"commission_rate"`
	TotalReferrals  int       `json:"total_referrals"`
	TotalEarnings   float64   `json:"total_earnings"`
	PendingEarnings float64   `json:"pending_earnings"`
	PaidEarnings    float64   `json:"paid_earnings"`
}

type ReferralResponse struct {
	Id            uuid.UUID `json:"id"`
	TransactionId string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Commission    float64   `json:"commission"`
	CreatedAt     time.Time `json:"created_at"`
}
