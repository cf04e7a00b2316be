package models

// CommissionRecord is one immutable ledger entry, created the instant a
// booking completes. The unique booking reference is the structural guarantee
// that a completion is commissioned at most once.
type CommissionRecord struct {
	BaseModel
	BookingID         string `gorm:"uniqueIndex;not null" json:"booking_id"`
	ProviderID        string `gorm:"not null;index" json:"provider_id"`
	GrossPesewas      int64  `gorm:"not null" json:"gross_pesewas"`
	RateBps           int    `gorm:"not null" json:"rate_bps"`
	CommissionPesewas int64  `gorm:"not null" json:"commission_pesewas"`
	PayoutPesewas     int64  `gorm:"not null" json:"payout_pesewas"`
}

// ProviderBalance holds a provider's spendable money. Credited by commission
// posting, debited by withdrawals; the check constraint backs up the
// conditional debit so available can never go negative.
type ProviderBalance struct {
	ProviderID       string `gorm:"type:uuid;primaryKey" json:"provider_id"`
	AvailablePesewas int64  `gorm:"not null;default:0;check:available_pesewas >= 0" json:"available_pesewas"`
	PendingPesewas   int64  `gorm:"not null;default:0" json:"pending_pesewas"`
}

// WithdrawalRequest is handed to the external payout processor once created;
// the engine only debits the balance and records the request.
type WithdrawalRequest struct {
	BaseModel
	ProviderID    string           `gorm:"not null;index" json:"provider_id"`
	AmountPesewas int64            `gorm:"not null" json:"amount_pesewas"`
	Method        PayoutMethod     `gorm:"type:varchar(10);not null" json:"method"`
	AccountRef    string           `gorm:"not null" json:"account_ref"`
	Status        WithdrawalStatus `gorm:"type:varchar(10);not null;default:'PENDING'" json:"status"`
}
