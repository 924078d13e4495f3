package dto

import (
	"time"
)

// --- System Log DTOs ---

// LogListResponse uses string for Id because log IDs are MD5 hashes,
// not UUIDs.
type LogListResponse struct {
	Id        string    `json:"id"`
	Level     string    `json:"level"`
	Module    string    `json:"module"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LogDetailResponse struct {
	LogListResponse
	Details map[string]interface{} `json:"details"`
}

// --- Admin Graph DTOs ---

type UserGrowthStats struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// --- OAuth DTOs ---

type OAuthLoginURLResponse struct {
	URL string `json:"url"`
}

type OAuthCallbackRequest struct {
	Code  string `json:"code" validate:"required"`
	State string `json:"state"`
}
