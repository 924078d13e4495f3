package repository

import (
	"context"

	"vistratv-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository backs the back-office notification feed. It sits
// outside the unit-of-work because feed writes never join a business
// transaction; a lost notification must not roll back a payment.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	CreateBatch(ctx context.Context, notifications []model.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	TypeByCode(ctx context.Context, code string) (*model.NotificationType, error)
	UsersByRole(ctx context.Context, role string) ([]model.User, error)
}
