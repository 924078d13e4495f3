package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PromoCode struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code          string         `gorm:"type:varchar(64);uniqueIndex;not null"`
	Description   string         `gorm:"type:text"`
	DiscountType  string         `gorm:"type:varchar(20);not null"`
	DiscountValue float64        `gorm:"type:decimal(10,2);not null"`
	MaxUses       int            `gorm:"default:0"`
	CurrentUses   int            `gorm:"default:0"`
	StartDate     *time.Time     `gorm:"index"`
	EndDate       *time.Time     `gorm:"index"`
	SingleUse     bool           `gorm:"default:false"`
	PlanIds       datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	IsActive      bool           `gorm:"default:true"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (PromoCode) TableName() string {
	return "promo_codes"
}

type PromoRedemption struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PromoCodeId   uuid.UUID  `gorm:"type:uuid;not null;index:idx_promo_redemptions_code_email,priority:1"`
	UserId        *uuid.UUID `gorm:"type:uuid;index"`
	Email         string     `gorm:"type:varchar(255);index:idx_promo_redemptions_code_email,priority:2"`
	TransactionId uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (PromoRedemption) TableName() string {
	return "promo_redemptions"
}
