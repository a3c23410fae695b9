// Package api holds the request and response bodies of the HTTP API.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type Film struct {
	Id          string   `json:"id"`
	Rating      float64  `json:"rating"`
	Director    string   `json:"director"`
	Tags        []string `json:"tags"`
	Title       string   `json:"title"`
	About       string   `json:"about"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Cover       string   `json:"cover"`
}

type FilmListResponse struct {
	Total int    `json:"total"`
	Items []Film `json:"items"`
}

type Schedule struct {
	Id      string          `json:"id"`
	Daytime time.Time       `json:"daytime"`
	Hall    int             `json:"hall"`
	Rows    int             `json:"rows"`
	Seats   int             `json:"seats"`
	Price   decimal.Decimal `json:"price"`
	Taken   []string        `json:"taken"`
}

type ScheduleListResponse struct {
	Total int        `json:"total"`
	Items []Schedule `json:"items"`
}

type Ticket struct {
	Film    string          `json:"film" validate:"required"`
	Session string          `json:"session" validate:"required"`
	Daytime time.Time       `json:"daytime"`
	Row     int             `json:"row" validate:"min=1"`
	Seat    int             `json:"seat" validate:"min=1"`
	Price   decimal.Decimal `json:"price" validate:"price"`
}

type CreateOrderRequest struct {
	Email   openapi_types.Email `json:"email" validate:"required,email"`
	Phone   string              `json:"phone" validate:"required,phone"`
	Tickets []Ticket            `json:"tickets" validate:"required,min=1,dive"`
}

type OrderItem struct {
	Ticket
	Id string `json:"id"`
}

type OrderResponse struct {
	Total int         `json:"total"`
	Items []OrderItem `json:"items"`
}
