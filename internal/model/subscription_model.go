package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name           string         `gorm:"type:varchar(255);not null"`
	Slug           string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Description    string         `gorm:"type:text"`
	Price          float64        `gorm:"type:decimal(10,2);not null"`
	Currency       string         `gorm:"type:varchar(3);not null;default:'USD'"`
	DurationMonths int            `gorm:"not null;default:1"`
	Features       datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	MaxConnections int            `gorm:"default:1"`
	IsMostPopular  bool           `gorm:"default:false"`
	IsActive       bool           `gorm:"default:true"`
	SortOrder      int            `gorm:"default:0"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// Subscription rows are never physically deleted; status flips instead.
// A partial unique index on (user_id) WHERE status = 'active' is created by
// cmd/migrate to enforce the single-active-subscription invariant.
type Subscription struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    *uuid.UUID `gorm:"type:uuid;index"`
	Email     string     `gorm:"type:varchar(255);not null;index"`
	PlanId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status    string     `gorm:"type:varchar(50);not null;default:'active'"`
	StartDate time.Time  `gorm:"not null"`
	EndDate   time.Time  `gorm:"not null"`
	Price     float64    `gorm:"type:decimal(10,2);not null"`
	Currency  string     `gorm:"type:varchar(3);not null;default:'USD'"`
	AutoRenew bool       `gorm:"default:true"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
