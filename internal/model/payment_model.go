package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentTransaction struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId               *uuid.UUID     `gorm:"type:uuid;index"`
	Email                string         `gorm:"type:varchar(255);index"`
	GatewayTransactionId string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Provider             string         `gorm:"type:varchar(50);not null;default:'paygate'"`
	Amount               float64        `gorm:"type:decimal(10,2);not null"`
	Currency             string         `gorm:"type:varchar(3);not null;default:'USD'"`
	Status               string         `gorm:"type:varchar(50);not null;default:'pending';index"`
	Metadata             datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	GatewayResponse      datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt            time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

// WebhookLog uniqueness over (provider, transaction_id, event_status) is what
// makes duplicate-delivery suppression safe under concurrent requests: the
// insert either lands or conflicts, there is no check-then-act window.
type WebhookLog struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Provider      string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_webhook_logs_event,priority:1"`
	TransactionId string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_webhook_logs_event,priority:2"`
	EventStatus   string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_webhook_logs_event,priority:3"`
	Status        string         `gorm:"type:varchar(50);not null;default:'received'"`
	Payload       datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	Response      string         `gorm:"type:text"`
	SourceIP      string         `gorm:"type:varchar(64)"`
	CreatedAt     time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
}

func (WebhookLog) TableName() string {
	return "webhook_logs"
}
