package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homelink_backend/internal/models"
)

var ErrAllowanceExhausted = errors.New("contact unlock allowance exhausted")

// UnlockResult is what one unlock attempt produced.
type UnlockResult struct {
	AlreadyUnlocked bool
	Remaining       int
}

// EntitlementRepository owns the contact-unlock ledger, the processed-payment
// ledger, and every write to a user's tier fields.
type EntitlementRepository interface {
	HasUnlock(ctx context.Context, userID, targetID string) (bool, error)

	// RecordUnlock runs the check-then-act sequence under a row lock on the
	// user, so two concurrent unlocks cannot both pass the allowance check.
	// decrement is false for unlimited tiers.
	RecordUnlock(ctx context.Context, userID, targetID string, decrement bool) (*UnlockResult, error)

	// ApplySubscription atomically records the payment reference and replaces
	// the user's tier, allowance and expiry. Returns applied=false when the
	// reference was already processed, with no other effect.
	ApplySubscription(ctx context.Context, payment *models.ProcessedPayment, allowance int, expiresAt time.Time) (applied bool, err error)

	// ExpireDue downgrades every user whose expiry has passed at write time
	// back to their role's free tier. The predicate runs against the current
	// row, so a user who renewed mid-sweep is untouched.
	ExpireDue(ctx context.Context, now time.Time, seekerAllowance, providerAllowance int) (int64, error)
}

type entitlementRepository struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: db}
}

func (r *entitlementRepository) HasUnlock(ctx context.Context, userID, targetID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContactUnlock{}).
		Where("user_id = ? AND target_id = ?", userID, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *entitlementRepository) RecordUnlock(ctx context.Context, userID, targetID string, decrement bool) (*UnlockResult, error) {
	var res UnlockResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize per user: everything below happens under this lock.
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.ContactUnlock{}).
			Where("user_id = ? AND target_id = ?", userID, targetID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			res.AlreadyUnlocked = true
			res.Remaining = user.ContactsRemaining
			return nil
		}

		if decrement {
			if user.ContactsRemaining <= 0 {
				return ErrAllowanceExhausted
			}
			result := tx.Model(&models.User{}).
				Where("id = ? AND contacts_remaining > 0", userID).
				UpdateColumn("contacts_remaining", gorm.Expr("contacts_remaining - 1"))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrAllowanceExhausted
			}
			res.Remaining = user.ContactsRemaining - 1
		} else {
			res.Remaining = user.ContactsRemaining
		}

		unlock := &models.ContactUnlock{UserID: userID, TargetID: targetID}
		return tx.Create(unlock).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *entitlementRepository) ApplySubscription(ctx context.Context, payment *models.ProcessedPayment, allowance int, expiresAt time.Time) (bool, error) {
	applied := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Replayed confirmation: success, no re-grant.
				return nil
			}
			return err
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", payment.UserID).
			Updates(map[string]interface{}{
				"tier_code":          payment.TierCode,
				"contacts_remaining": allowance,
				"tier_expires_at":    expiresAt,
				"updated_at":         time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		applied = true
		return nil
	})
	return applied, err
}

func (r *entitlementRepository) ExpireDue(ctx context.Context, now time.Time, seekerAllowance, providerAllowance int) (int64, error) {
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seekers := tx.Model(&models.User{}).
			Where("tier_expires_at IS NOT NULL AND tier_expires_at < ?", now).
			Where("role IN ?", []models.UserRole{models.UserRoleTenant, models.UserRoleLandlord}).
			Updates(map[string]interface{}{
				"tier_code":          models.TierFree,
				"contacts_remaining": seekerAllowance,
				"tier_expires_at":    nil,
				"updated_at":         now,
			})
		if seekers.Error != nil {
			return seekers.Error
		}

		providers := tx.Model(&models.User{}).
			Where("tier_expires_at IS NOT NULL AND tier_expires_at < ?", now).
			Where("role = ?", models.UserRoleProvider).
			Updates(map[string]interface{}{
				"tier_code":          models.TierProviderFree,
				"contacts_remaining": providerAllowance,
				"tier_expires_at":    nil,
				"updated_at":         now,
			})
		if providers.Error != nil {
			return providers.Error
		}

		total = seekers.RowsAffected + providers.RowsAffected
		return nil
	})
	return total, err
}
