package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// PromoCode codes are stored upper-cased; lookups normalize first.
type PromoCode struct {
	Id            uuid.UUID
	Code          string
	Description   string
	DiscountType  DiscountType
	DiscountValue float64
	MaxUses       int // 0 = unlimited
	CurrentUses   int
	StartDate     *time.Time
	EndDate       *time.Time
	SingleUse     bool // one redemption per user
	PlanIds       []uuid.UUID
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Exhausted reports whether the usage cap has been reached.
func (p *PromoCode) Exhausted() bool {
	return p.MaxUses > 0 && p.CurrentUses >= p.MaxUses
}

// AppliesTo reports whether the code is valid for the given plan. An empty
// allow-list means every plan qualifies.
func (p *PromoCode) AppliesTo(planId uuid.UUID) bool {
	if len(p.PlanIds) == 0 {
		return true
	}
	for _, id := range p.PlanIds {
		if id == planId {
			return true
		}
	}
	return false
}

// PromoRedemption records a consumed code, keyed by the redeeming identity
// (account id when known, email otherwise) for the single-use check.
type PromoRedemption struct {
	Id            uuid.UUID
	PromoCodeId   uuid.UUID
	UserId        *uuid.UUID
	Email         string
	TransactionId uuid.UUID
	CreatedAt     time.Time
}
