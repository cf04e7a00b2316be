package models

import "time"

// ContactUnlock is the permanent proof that a user already paid for a
// contact. Append-only; the composite unique index makes re-unlocks of the
// same target a structural no-op.
type ContactUnlock struct {
	BaseModel
	UserID   string `gorm:"not null;uniqueIndex:idx_unlock_user_target" json:"user_id"`
	TargetID string `gorm:"not null;uniqueIndex:idx_unlock_user_target" json:"target_id"`
}

// ProcessedPayment records every payment-gateway confirmation the engine has
// applied. The unique reference is what makes ApplySubscription idempotent:
// replaying a confirmation inserts nothing and grants nothing.
type ProcessedPayment struct {
	BaseModel
	Reference   string    `gorm:"uniqueIndex;not null" json:"reference"`
	UserID      string    `gorm:"not null;index" json:"user_id"`
	TierCode    string    `gorm:"not null" json:"tier_code"`
	AmountPaid  int64     `gorm:"not null" json:"amount_paid"`
	ProcessedAt time.Time `gorm:"not null" json:"processed_at"`
}
