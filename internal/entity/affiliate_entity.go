package entity

import (
	"time"

	"github.com/google/uuid"
)

type AffiliateStatus string

const (
	AffiliateStatusPending   AffiliateStatus = "pending"
	AffiliateStatusActive    AffiliateStatus = "active"
	AffiliateStatusSuspended AffiliateStatus = "suspended"
	AffiliateStatusRejected  AffiliateStatus = "rejected"
)

type Affiliate struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Code            string
	PayoutEmail     string
	Website         string
	CommissionRate  float64 // percent of the gross payment amount
	Status          AffiliateStatus
	TotalReferrals  int
	TotalEarnings   float64
	PendingEarnings float64
	PaidEarnings    float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AffiliateReferral is one accrued commission, written by the webhook
// reconciler on the first completed payment that carries an affiliate id.
type AffiliateReferral struct {
	Id            uuid.UUID
	AffiliateId   uuid.UUID
	TransactionId uuid.UUID
	Amount        float64
	Commission    float64
	Currency      string
	CreatedAt     time.Time
}
