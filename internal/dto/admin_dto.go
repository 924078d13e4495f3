package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- User Management ---

type AdminUserListRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Search string `query:"search"`
	Role   string `query:"role"`
	Status string `query:"status"`
}

type UserListResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending blocked"`
	Reason string `json:"reason,omitempty"`
}

// --- Payments ---

type AdminTransactionListRequest struct {
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
	Status   string `query:"status"`
	Provider string `query:"provider"`
	Email    string `query:"email"`
}

type TransactionResponse struct {
	Id                   uuid.UUID `json:"id"`
	GatewayTransactionId string    `json:"gateway_transaction_id"`
	Provider             string    `json:"provider"`
	Email                string    `json:"email"`
	Amount               float64   `json:"amount"`
	Currency             string    `json:"currency"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
}

type WebhookLogResponse struct {
	Id            uuid.UUID `json:"id"`
	Provider      string    `json:"provider"`
	EventStatus   string    `json:"event_status"`
	TransactionId string    `json:"transaction_id"`
	Status        string    `json:"status"`
	ResponseNote  string    `json:"response_note"`
	SourceIP      string    `json:"source_ip"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- Subscription Management ---

type ProcessSubscriptionChangeRequest struct {
	UserId    uuid.UUID `json:"user_id" validate:"required"`
	NewPlanId uuid.UUID `json:"new_plan_id" validate:"required"`
	// Apply the change even when money would be due; amount is recorded
	// but no payment is collected.
	Force bool `json:"force"`
}

type ProcessSubscriptionChangeResponse struct {
	Applied       bool    `json:"applied"`
	AmountDue     float64 `json:"amount_due"`
	Credit        float64 `json:"credit"`
	RemainingDays int     `json:"remaining_days"`
}

type AdminAffiliateActionRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject suspend"`
}

// --- Dashboard ---

type DashboardStatsResponse struct {
	TotalUsers          int64   `json:"total_users"`
	ActiveSubscriptions int64   `json:"active_subscriptions"`
	TotalRevenue        float64 `json:"total_revenue"`
	PendingPayments     int64   `json:"pending_payments"`
}

type PaginatedResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
