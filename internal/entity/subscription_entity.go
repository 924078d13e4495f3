package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

// SubscriptionPlan is the catalog entry shown on the pricing page.
// Read-only from the billing flow's point of view.
type SubscriptionPlan struct {
	Id             uuid.UUID
	Name           string
	Slug           string
	Description    string
	Price          float64
	Currency       string
	DurationMonths int
	Features       []string
	MaxConnections int
	IsMostPopular  bool
	IsActive       bool
	SortOrder      int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Subscription is created by the webhook reconciler on the first completed
// payment for a plan, or by admin actions. At most one active row per user.
type Subscription struct {
	Id        uuid.UUID
	UserId    *uuid.UUID // nil until matched to an account by email
	Email     string
	PlanId    uuid.UUID
	Status    SubscriptionStatus
	StartDate time.Time
	EndDate   time.Time
	Price     float64
	Currency  string
	AutoRenew bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Subscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.EndDate.After(now)
}
