package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"homelink_backend/internal/models"
)

var (
	ErrInsufficientFunds  = errors.New("withdrawal exceeds available balance")
	ErrCommissionNotFound = errors.New("commission record not found")
)

// LedgerRepository reads the commission ledger and handles withdrawals.
// Commission records themselves are written inside the booking completion
// transaction (BookingRepository.Complete); this side never creates them.
type LedgerRepository interface {
	GetBalance(ctx context.Context, providerID string) (*models.ProviderBalance, error)
	FindCommissionByBooking(ctx context.Context, bookingID string) (*models.CommissionRecord, error)
	ListCommissions(ctx context.Context, providerID string) ([]models.CommissionRecord, error)
	ListWithdrawals(ctx context.Context, providerID string) ([]models.WithdrawalRequest, error)

	// Withdraw debits the available balance and records the request in one
	// transaction. The debit is conditional on sufficient funds at write
	// time; on failure nothing changes.
	Withdraw(ctx context.Context, request *models.WithdrawalRequest) error
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetBalance(ctx context.Context, providerID string) (*models.ProviderBalance, error) {
	var balance models.ProviderBalance
	err := r.db.WithContext(ctx).First(&balance, "provider_id = ?", providerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A provider with no completions has a zero balance, not an error.
			return &models.ProviderBalance{ProviderID: providerID}, nil
		}
		return nil, err
	}
	return &balance, nil
}

func (r *ledgerRepository) FindCommissionByBooking(ctx context.Context, bookingID string) (*models.CommissionRecord, error) {
	var record models.CommissionRecord
	err := r.db.WithContext(ctx).First(&record, "booking_id = ?", bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommissionNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *ledgerRepository) ListCommissions(ctx context.Context, providerID string) ([]models.CommissionRecord, error) {
	var records []models.CommissionRecord
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

func (r *ledgerRepository) ListWithdrawals(ctx context.Context, providerID string) ([]models.WithdrawalRequest, error) {
	var requests []models.WithdrawalRequest
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *ledgerRepository) Withdraw(ctx context.Context, request *models.WithdrawalRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ProviderBalance{}).
			Where("provider_id = ? AND available_pesewas >= ?", request.ProviderID, request.AmountPesewas).
			UpdateColumn("available_pesewas", gorm.Expr("available_pesewas - ?", request.AmountPesewas))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientFunds
		}

		return tx.Create(request).Error
	})
}
