package models

import "time"

// User accounts are never hard-deleted, only deactivated. Tier, expiry and
// the remaining-contacts counter are owned exclusively by the entitlement
// service; nothing else writes them.
type User struct {
	BaseModel
	Phone             string     `gorm:"uniqueIndex;not null" json:"phone"`
	Name              string     `json:"name"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Role              UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	City              string     `json:"city"`
	TierCode          string     `gorm:"type:varchar(30);not null;default:'FREE'" json:"tier_code"`
	TierExpiresAt     *time.Time `json:"tier_expires_at"`
	ContactsRemaining int        `gorm:"not null;default:0;check:contacts_remaining >= 0" json:"contacts_remaining"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
