package dto

import "time"

// EntitlementStatus answers "may this user unlock another contact right now".
// Remaining is -1 is never used: Unlimited carries that case explicitly.
type EntitlementStatus struct {
	Tier      string     `json:"tier"`
	Allowed   bool       `json:"allowed"`
	Remaining int        `json:"remaining"`
	Unlimited bool       `json:"unlimited"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type UnlockContactRequest struct {
	TargetID string `json:"target_id" binding:"required" validate:"required,uuid4"`
}

type UnlockContactResponse struct {
	Unlocked        bool `json:"unlocked"`
	AlreadyUnlocked bool `json:"already_unlocked"`
	Remaining       int  `json:"remaining"`
	Unlimited       bool `json:"unlimited"`
}

// PaymentCallbackRequest is the gateway's completion callback. The gateway
// itself is an external collaborator; only this confirmation enters the
// engine.
type PaymentCallbackRequest struct {
	Reference  string `json:"reference" binding:"required" validate:"required,min=6,max=64"`
	UserID     string `json:"user_id" binding:"required" validate:"required,uuid4"`
	TierCode   string `json:"tier_code" binding:"required" validate:"required,tier_code"`
	AmountPaid int64  `json:"amount_paid" validate:"gte=0"`
}

type ApplySubscriptionResponse struct {
	Tier      string     `json:"tier"`
	Remaining int        `json:"remaining"`
	Unlimited bool       `json:"unlimited"`
	ExpiresAt *time.Time `json:"expires_at"`
	Replayed  bool       `json:"replayed"`
}
