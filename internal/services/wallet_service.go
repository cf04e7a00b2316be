package services

import (
	"context"
	"errors"

	"homelink_backend/internal/appErrors"
	"homelink_backend/internal/config"
	"homelink_backend/internal/dto"
	"homelink_backend/internal/models"
	"homelink_backend/internal/money"
	"homelink_backend/internal/repositories"
)

// WalletService is the commission ledger: it turns a completed booking's
// gross into commission + payout and manages the provider's spendable
// balance.
type WalletService interface {
	// BuildCommission resolves the provider's current rate and computes the
	// immutable record for one completion. It performs no writes; the record
	// is persisted inside the completion transaction.
	BuildCommission(ctx context.Context, bookingID, providerID string, gross money.Pesewas) (*models.CommissionRecord, error)

	GetWallet(ctx context.Context, providerID string) (*dto.WalletResponse, error)
	Withdraw(ctx context.Context, providerID string, req *dto.WithdrawRequest) (*models.WithdrawalRequest, error)
	ListCommissions(ctx context.Context, providerID string) ([]models.CommissionRecord, error)
	ListWithdrawals(ctx context.Context, providerID string) ([]models.WithdrawalRequest, error)
}

type walletService struct {
	ledgerRepo repositories.LedgerRepository
	userRepo   repositories.UserRepository
	tierRepo   repositories.TierRepository
	cfg        *config.Config
}

func NewWalletService(
	ledgerRepo repositories.LedgerRepository,
	userRepo repositories.UserRepository,
	tierRepo repositories.TierRepository,
	cfg *config.Config,
) WalletService {
	return &walletService{
		ledgerRepo: ledgerRepo,
		userRepo:   userRepo,
		tierRepo:   tierRepo,
		cfg:        cfg,
	}
}

func (s *walletService) BuildCommission(ctx context.Context, bookingID, providerID string, gross money.Pesewas) (*models.CommissionRecord, error) {
	rate, err := s.resolveRate(ctx, providerID)
	if err != nil {
		return nil, err
	}

	commission, payout := money.Split(gross, rate)
	return &models.CommissionRecord{
		BookingID:         bookingID,
		ProviderID:        providerID,
		GrossPesewas:      int64(gross),
		RateBps:           int(rate),
		CommissionPesewas: int64(commission),
		PayoutPesewas:     int64(payout),
	}, nil
}

// resolveRate reads the provider's tier-dependent commission rate; the config
// default covers seeker tiers and catalog rows without a rate.
func (s *walletService) resolveRate(ctx context.Context, providerID string) (money.Bps, error) {
	provider, err := s.userRepo.FindByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return 0, appErrors.ErrUserNotFound
		}
		return 0, err
	}

	tier, err := s.tierRepo.FindByCode(ctx, provider.TierCode)
	if err != nil {
		if errors.Is(err, repositories.ErrTierNotFound) {
			return 0, appErrors.ErrUnknownTier.WithDetails(map[string]string{"tier_code": provider.TierCode})
		}
		return 0, err
	}

	if tier.CommissionBps > 0 {
		return money.Bps(tier.CommissionBps), nil
	}
	return money.Bps(s.cfg.Billing.DefaultCommissionBps), nil
}

func (s *walletService) GetWallet(ctx context.Context, providerID string) (*dto.WalletResponse, error) {
	balance, err := s.ledgerRepo.GetBalance(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return &dto.WalletResponse{
		ProviderID:       balance.ProviderID,
		AvailablePesewas: balance.AvailablePesewas,
		PendingPesewas:   balance.PendingPesewas,
	}, nil
}

func (s *walletService) Withdraw(ctx context.Context, providerID string, req *dto.WithdrawRequest) (*models.WithdrawalRequest, error) {
	if req.AmountPesewas < s.cfg.Billing.MinWithdrawalPesewas {
		return nil, appErrors.ErrWithdrawalTooSmall.WithDetails(map[string]int64{
			"minimum_pesewas": s.cfg.Billing.MinWithdrawalPesewas,
		})
	}

	request := &models.WithdrawalRequest{
		ProviderID:    providerID,
		AmountPesewas: req.AmountPesewas,
		Method:        models.PayoutMethod(req.Method),
		AccountRef:    req.AccountRef,
		Status:        models.WithdrawalStatusPending,
	}

	if err := s.ledgerRepo.Withdraw(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrInsufficientFunds) {
			return nil, appErrors.ErrInsufficientBalance
		}
		return nil, err
	}

	return request, nil
}

func (s *walletService) ListCommissions(ctx context.Context, providerID string) ([]models.CommissionRecord, error) {
	return s.ledgerRepo.ListCommissions(ctx, providerID)
}

func (s *walletService) ListWithdrawals(ctx context.Context, providerID string) ([]models.WithdrawalRequest, error) {
	return s.ledgerRepo.ListWithdrawals(ctx, providerID)
}
