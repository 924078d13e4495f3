package dto

import (
	"github.com/google/uuid"
)

type OrderSummaryRequest struct {
	PlanId    uuid.UUID `json:"plan_id" validate:"required"`
	PromoCode string    `json:"promo_code"`
	Email     string    `json:"email" validate:"omitempty,email"`
}

type OrderSummaryResponse struct {
	PlanName      string  `json:"plan_name"`
	BillingPeriod string  `json:"billing_period"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	Total         float64 `json:"total"`
	Currency      string  `json:"currency"`
	PromoApplied  bool    `json:"promo_applied"`
}

type CheckoutRequest struct {
	PlanId        uuid.UUID `json:"plan_id" validate:"required"`
	Email         string    `json:"email" validate:"required,email"`
	FullName      string    `json:"full_name" validate:"required"`
	Provider      string    `json:"provider" validate:"omitempty,oneof=paygate midtrans"`
	PromoCode     string    `json:"promo_code"`
	AffiliateCode string    `json:"affiliate_code"`
}

type CheckoutResponse struct {
	TransactionId string  `json:"transaction_id"`
	PaymentURL    string  `json:"payment_url"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}
