package model

import (
	"time"

	"github.com/google/uuid"
)

type Affiliate struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Code            string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	PayoutEmail     string    `gorm:"type:varchar(255);not null"`
	Website         string    `gorm:"type:varchar(255)"`
	CommissionRate  float64   `gorm:"type:decimal(5,2);not null;default:10"`
	Status          string    `gorm:"type:varchar(50);not null;default:'pending'"`
	TotalReferrals  int       `gorm:"default:0"`
	TotalEarnings   float64   `gorm:"type:decimal(12,2);default:0"`
	PendingEarnings float64   `gorm:"type:decimal(12,2);default:0"`
	PaidEarnings    float64   `gorm:"type:decimal(12,2);default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Affiliate) TableName() string {
	return "affiliates"
}

type AffiliateReferral struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AffiliateId   uuid.UUID `gorm:"type:uuid;not null;index"`
	TransactionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Amount        float64   `gorm:"type:decimal(10,2);not null"`
	Commission    float64   `gorm:"type:decimal(10,2);not null"`
	Currency      string    `gorm:"type:varchar(3);not null;default:'USD'"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (AffiliateReferral) TableName() string {
	return "affiliate_referrals"
}
