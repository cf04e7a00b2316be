package dto

import "time"

type WalletResponse struct {
	ProviderID       string `json:"provider_id"`
	AvailablePesewas int64  `json:"available_pesewas"`
	PendingPesewas   int64  `json:"pending_pesewas"`
}

type WithdrawRequest struct {
	AmountPesewas int64  `json:"amount_pesewas" binding:"required" validate:"required,gt=0"`
	Method        string `json:"method" binding:"required" validate:"required,payout_method"`
	AccountRef    string `json:"account_ref" binding:"required" validate:"required,min=4,max=64"`
}

type WithdrawalResponse struct {
	ID            string    `json:"withdrawal_id"`
	AmountPesewas int64     `json:"amount_pesewas"`
	Method        string    `json:"method"`
	AccountRef    string    `json:"account_ref"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type CommissionResponse struct {
	ID                string    `json:"id"`
	BookingID         string    `json:"booking_id"`
	GrossPesewas      int64     `json:"gross_pesewas"`
	RateBps           int       `json:"rate_bps"`
	CommissionPesewas int64     `json:"commission_pesewas"`
	PayoutPesewas     int64     `json:"payout_pesewas"`
	CreatedAt         time.Time `json:"created_at"`
}
