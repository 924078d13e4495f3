package dto

import (
	"github.com/google/uuid"
)

type ValidatePromoRequest struct {
	Code   string    `json:"code" validate:"required"`
	PlanId uuid.UUID `json:"plan_id" validate:"required"`
	Email  string    `json:"email" validate:"omitempty,email"`
}

type ValidatePromoResponse struct {
	Valid           bool    `json:"valid"`
	Code            string  `json:"code"`
	DiscountType    string  `json:"discount_type,omitempty"`
	DiscountValue   float64 `json:"discount_value,omitempty"`
	DiscountedPrice float64 `json:"discounted_price,omitempty"`
	Reason          string  `json:"reason,omitempty"`
}

type CreatePromoRequest struct {
	Code          string      `json:"code" validate:"required,min=3"`
	DiscountType  string      `json:"discount_type" validate:"required,oneof=percentage fixed"`
	DiscountValue float64     `json:"discount_value" validate:"required,gt=0"`
	MaxUses       int         `json:"max_uses" validate:"gte=0"`
	SingleUse     bool        `json:"single_use"`
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	PlanIds       []uuid.UUID `json:"plan_ids"`
}

type PromoResponse struct {
	Id            uuid.UUID   `json:"id"`
	Code          string      `json:"code"`
	DiscountType  string      `json:"discount_type"`
	DiscountValue float64     `json:"discount_value"`
	MaxUses       int         `json:"max_uses"`
	CurrentUses   int         `json:"current_uses"`
	SingleUse     bool        `json:"single_use"`
	IsActive      bool        `json:"is_active"`
	PlanIds       []uuid.UUID `json:"plan_ids"`
}
