package dto

import "time"

type CreateBookingRequest struct {
	ProviderID  string    `json:"provider_id" binding:"required" validate:"required,uuid4"`
	Category    string    `json:"category" binding:"required" validate:"required,max=60"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required" validate:"required"`
	Address     string    `json:"address" binding:"required" validate:"required,max=200"`
	City        string    `json:"city" binding:"required" validate:"required,max=100"`
	Notes       string    `json:"notes" validate:"max=2000"`
}

// UpdateBookingStatusRequest drives every transition after creation. Amount
// is only read for the COMPLETED transition (gross job price in pesewas).
type UpdateBookingStatusRequest struct {
	Status        string `json:"status" binding:"required" validate:"required,oneof=CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
	AmountPesewas int64  `json:"amount_pesewas" validate:"gte=0"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" binding:"required" validate:"required"`
	Review string `json:"review" validate:"max=2000"`
}

type BookingResponse struct {
	ID            string     `json:"id"`
	CustomerID    string     `json:"customer_id"`
	ProviderID    string     `json:"provider_id"`
	Category      string     `json:"category"`
	ScheduledAt   time.Time  `json:"scheduled_at"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Notes         string     `json:"notes,omitempty"`
	Status        string     `json:"status"`
	AmountPesewas int64      `json:"amount_pesewas,omitempty"`
	Rating        *int       `json:"rating,omitempty"`
	ReviewText    string     `json:"review_text,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}
