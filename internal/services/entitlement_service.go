package services

import (
	"context"
	"errors"
	"time"

	"homelink_backend/internal/appErrors"
	"homelink_backend/internal/dto"
	"homelink_backend/internal/logger"
	"homelink_backend/internal/models"
	"homelink_backend/internal/repositories"
)

// EntitlementService gates contact-reveal actions behind the subscription
// allowance and records consumption exactly once per (user, target).
type EntitlementService interface {
	CheckAllowance(ctx context.Context, userID string) (*dto.EntitlementStatus, error)
	UnlockContact(ctx context.Context, userID, targetID string) (*dto.UnlockContactResponse, error)
	ApplySubscription(ctx context.Context, req *dto.PaymentCallbackRequest) (*dto.ApplySubscriptionResponse, error)
	ExpireSubscriptions(ctx context.Context) (int64, error)
	ListTiers(ctx context.Context) ([]models.SubscriptionTier, error)
}

type entitlementService struct {
	entitlementRepo repositories.EntitlementRepository
	userRepo        repositories.UserRepository
	tierRepo        repositories.TierRepository
}

func NewEntitlementService(
	entitlementRepo repositories.EntitlementRepository,
	userRepo repositories.UserRepository,
	tierRepo repositories.TierRepository,
) EntitlementService {
	return &entitlementService{
		entitlementRepo: entitlementRepo,
		userRepo:        userRepo,
		tierRepo:        tierRepo,
	}
}

func (s *entitlementService) CheckAllowance(ctx context.Context, userID string) (*dto.EntitlementStatus, error) {
	user, tier, err := s.loadUserAndTier(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.EntitlementStatus{
		Tier:      user.TierCode,
		Allowed:   tier.Unlimited || user.ContactsRemaining > 0,
		Remaining: user.ContactsRemaining,
		Unlimited: tier.Unlimited,
		ExpiresAt: user.TierExpiresAt,
	}, nil
}

func (s *entitlementService) UnlockContact(ctx context.Context, userID, targetID string) (*dto.UnlockContactResponse, error) {
	user, tier, err := s.loadUserAndTier(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, appErrors.ErrUserDeactivated
	}

	res, err := s.entitlementRepo.RecordUnlock(ctx, userID, targetID, !tier.Unlimited)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAllowanceExhausted):
			return nil, appErrors.ErrEntitlementExhausted
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	return &dto.UnlockContactResponse{
		Unlocked:        true,
		AlreadyUnlocked: res.AlreadyUnlocked,
		Remaining:       res.Remaining,
		Unlimited:       tier.Unlimited,
	}, nil
}

func (s *entitlementService) ApplySubscription(ctx context.Context, req *dto.PaymentCallbackRequest) (*dto.ApplySubscriptionResponse, error) {
	tier, err := s.tierRepo.FindByCode(ctx, req.TierCode)
	if err != nil {
		if errors.Is(err, repositories.ErrTierNotFound) {
			return nil, appErrors.ErrUnknownTier.WithDetails(map[string]string{"tier_code": req.TierCode})
		}
		return nil, err
	}

	// The gateway already charged the user; a mismatch is logged for
	// reconciliation, not bounced back to the payer.
	if req.AmountPaid > 0 && req.AmountPaid != tier.PricePesewas {
		logger.CtxWarn(ctx, "payment amount differs from tier price",
			"reference", req.Reference,
			"tier", tier.Code,
			"amount_paid", req.AmountPaid,
			"tier_price", tier.PricePesewas,
		)
	}

	now := time.Now()
	expiresAt := now.AddDate(0, 0, tier.DurationDays)
	payment := &models.ProcessedPayment{
		Reference:   req.Reference,
		UserID:      req.UserID,
		TierCode:    tier.Code,
		AmountPaid:  req.AmountPaid,
		ProcessedAt: now,
	}

	applied, err := s.entitlementRepo.ApplySubscription(ctx, payment, tier.ContactAllowance, expiresAt)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, err
	}

	if !applied {
		// Replayed reference: report the user's current state as success.
		logger.CtxInfo(ctx, "duplicate payment reference ignored", "reference", req.Reference)
		user, userTier, err := s.loadUserAndTier(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		return &dto.ApplySubscriptionResponse{
			Tier:      user.TierCode,
			Remaining: user.ContactsRemaining,
			Unlimited: userTier.Unlimited,
			ExpiresAt: user.TierExpiresAt,
			Replayed:  true,
		}, nil
	}

	return &dto.ApplySubscriptionResponse{
		Tier:      tier.Code,
		Remaining: tier.ContactAllowance,
		Unlimited: tier.Unlimited,
		ExpiresAt: &expiresAt,
	}, nil
}

func (s *entitlementService) ExpireSubscriptions(ctx context.Context) (int64, error) {
	seekerFree, err := s.tierRepo.FindByCode(ctx, models.TierFree)
	if err != nil {
		return 0, err
	}
	providerFree, err := s.tierRepo.FindByCode(ctx, models.TierProviderFree)
	if err != nil {
		return 0, err
	}

	return s.entitlementRepo.ExpireDue(ctx, time.Now(), seekerFree.ContactAllowance, providerFree.ContactAllowance)
}

func (s *entitlementService) ListTiers(ctx context.Context) ([]models.SubscriptionTier, error) {
	return s.tierRepo.FindActive(ctx)
}

func (s *entitlementService) loadUserAndTier(ctx context.Context, userID string) (*models.User, *models.SubscriptionTier, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, nil, appErrors.ErrUserNotFound
		}
		return nil, nil, err
	}

	tier, err := s.tierRepo.FindByCode(ctx, user.TierCode)
	if err != nil {
		if errors.Is(err, repositories.ErrTierNotFound) {
			// A user pointing at a tier the catalog does not know is a
			// configuration bug, not a client mistake.
			return nil, nil, appErrors.ErrUnknownTier.WithDetails(map[string]string{"tier_code": user.TierCode})
		}
		return nil, nil, err
	}

	return user, tier, nil
}
