package models

import "gorm.io/datatypes"

// SubscriptionTier is the static catalog row for one tier. Seeded at startup,
// read-only at runtime; mobile and web clients fetch it instead of hardcoding
// prices or allowances.
type SubscriptionTier struct {
	BaseModel
	Code     string       `gorm:"uniqueIndex;not null" json:"code"`
	Name     string       `gorm:"not null" json:"name"`
	Audience TierAudience `gorm:"type:varchar(20);not null" json:"audience"`
	// Monthly price in pesewas.
	PricePesewas int64 `gorm:"not null" json:"price_pesewas"`
	// Contact unlocks granted per billing cycle. Ignored when Unlimited.
	ContactAllowance int  `gorm:"not null;default:0" json:"contact_allowance"`
	Unlimited        bool `gorm:"not null;default:false" json:"unlimited"`
	// Provider commission rate in basis points; zero for seeker tiers.
	CommissionBps int            `gorm:"not null;default:0" json:"commission_bps"`
	DurationDays  int            `gorm:"not null;default:30" json:"duration_days"`
	Features      datatypes.JSON `gorm:"type:jsonb" json:"features"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
}
