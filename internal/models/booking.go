package models

import "time"

// Booking is the canonical record of one service job. Status only moves
// through the transitions in statuses.go; cancelled bookings are kept for
// history, never deleted.
type Booking struct {
	BaseModel
	CustomerID  string        `gorm:"not null;index" json:"customer_id"`
	ProviderID  string        `gorm:"not null;index" json:"provider_id"`
	Category    string        `gorm:"not null" json:"category"`
	ScheduledAt time.Time     `gorm:"not null" json:"scheduled_at"`
	Address     string        `gorm:"not null" json:"address"`
	City        string        `gorm:"not null" json:"city"`
	Notes       string        `json:"notes"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	// Gross amount in pesewas, fixed when the provider marks the job done.
	AmountPesewas int64      `json:"amount_pesewas"`
	Rating        *int       `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"`
	ReviewText    string     `json:"review_text"`
	CompletedAt   *time.Time `json:"completed_at"`
}
