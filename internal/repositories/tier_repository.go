package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"homelink_backend/internal/models"
)

var ErrTierNotFound = errors.New("subscription tier not found")

// TierRepository reads the static tier catalog. The catalog is seeded at
// startup and never written on the request path.
type TierRepository interface {
	FindByCode(ctx context.Context, code string) (*models.SubscriptionTier, error)
	FindActive(ctx context.Context) ([]models.SubscriptionTier, error)
}

type tierRepository struct {
	db *gorm.DB
}

func NewTierRepository(db *gorm.DB) TierRepository {
	return &tierRepository{db: db}
}

func (r *tierRepository) FindByCode(ctx context.Context, code string) (*models.SubscriptionTier, error) {
	var tier models.SubscriptionTier
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&tier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}
	return &tier, nil
}

func (r *tierRepository) FindActive(ctx context.Context) ([]models.SubscriptionTier, error) {
	var tiers []models.SubscriptionTier
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("audience ASC, price_pesewas ASC").
		Find(&tiers).Error
	return tiers, err
}
