package dto

import (
	"github.com/google/uuid"
)

type PlanResponse struct {
	Id             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	DurationMonths int       `json:"duration_months"`
	Features       []string  `json:"features"`
	MaxConnections int       `json:"max_connections"`
	IsMostPopular  bool      `json:"is_most_popular"`
}

type CreatePlanRequest struct {
	Name           string   `json:"name" validate:"required,min=2"`
	Slug           string   `json:"slug" validate:"required,lowercase"`
	Description    string   `json:"description"`
	Price          float64  `json:"price" validate:"gte=0"`
	Currency       string   `json:"currency" validate:"required,len=3"`
	DurationMonths int      `json:"duration_months" validate:"required,gte=1"`
	Features       []string `json:"features"`
	MaxConnections int      `json:"max_connections" validate:"gte=1"`
	IsMostPopular  bool     `json:"is_most_popular"`
	SortOrder      int      `json:"sort_order"`
}

type UpdatePlanRequest struct {
	Name           *string   `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Price          *float64  `json:"price,omitempty"`
	DurationMonths *int      `json:"duration_months,omitempty"`
	Features       *[]string `json:"features,omitempty"`
	MaxConnections *int      `json:"max_connections,omitempty"`
	IsMostPopular  *bool     `json:"is_most_popular,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
	SortOrder      *int      `json:"sort_order,omitempty"`
}
