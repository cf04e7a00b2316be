package database

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homelink_backend/internal/config"
	"homelink_backend/internal/logger"
	"homelink_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens the shared GORM connection using the DSN from config.
// TranslateError is required: the repositories detect duplicate-key conflicts
// via gorm.ErrDuplicatedKey.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate migrates every model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.SubscriptionTier{},
		&models.ContactUnlock{},
		&models.ProcessedPayment{},
		&models.Booking{},
		&models.CommissionRecord{},
		&models.ProviderBalance{},
		&models.WithdrawalRequest{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	logger.Info("database migration complete")
	return nil
}

// SeedTierCatalog upserts the static tier catalog. Idempotent: rows are
// matched by code and refreshed in place, so restarts pick up catalog changes
// without duplicating tiers.
func SeedTierCatalog(db *gorm.DB) error {
	tiers := []models.SubscriptionTier{
		{
			Code:             models.TierFree,
			Name:             "Free",
			Audience:         models.TierAudienceSeeker,
			PricePesewas:     0,
			ContactAllowance: 3,
			DurationDays:     30,
			Features:         datatypes.JSON(`["3 contact unlocks per month"]`),
			IsActive:         true,
		},
		{
			Code:             models.TierBasic,
			Name:             "Basic",
			Audience:         models.TierAudienceSeeker,
			PricePesewas:     1500,
			ContactAllowance: 15,
			DurationDays:     30,
			Features:         datatypes.JSON(`["15 contact unlocks per month"]`),
			IsActive:         true,
		},
		{
			Code:             models.TierRelax,
			Name:             "Relax",
			Audience:         models.TierAudienceSeeker,
			PricePesewas:     4000,
			ContactAllowance: 50,
			DurationDays:     30,
			Features:         datatypes.JSON(`["50 contact unlocks per month","priority support"]`),
			IsActive:         true,
		},
		{
			Code:         models.TierSuperuser,
			Name:         "Superuser",
			Audience:     models.TierAudienceSeeker,
			PricePesewas: 10000,
			Unlimited:    true,
			DurationDays: 30,
			Features:     datatypes.JSON(`["unlimited contact unlocks","priority support"]`),
			IsActive:     true,
		},
		{
			Code:          models.TierProviderFree,
			Name:          "Provider Free",
			Audience:      models.TierAudienceProvider,
			PricePesewas:  0,
			CommissionBps: 1200,
			DurationDays:  30,
			Features:      datatypes.JSON(`["12% commission on completed bookings"]`),
			IsActive:      true,
		},
		{
			Code:          models.TierProviderFeatured,
			Name:          "Provider Featured",
			Audience:      models.TierAudienceProvider,
			PricePesewas:  5000,
			CommissionBps: 1000,
			DurationDays:  30,
			Features:      datatypes.JSON(`["10% commission on completed bookings","featured search placement"]`),
			IsActive:      true,
		},
		{
			Code:          models.TierProviderPremium,
			Name:          "Provider Premium",
			Audience:      models.TierAudienceProvider,
			PricePesewas:  12000,
			CommissionBps: 800,
			DurationDays:  30,
			Features:      datatypes.JSON(`["8% commission on completed bookings","featured search placement","verified badge"]`),
			IsActive:      true,
		},
	}

	for _, tier := range tiers {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "audience", "price_pesewas", "contact_allowance",
				"unlimited", "commission_bps", "duration_days", "features", "is_active",
			}),
		}).Create(&tier).Error
		if err != nil {
			return fmt.Errorf("seed tier %s: %w", tier.Code, err)
		}
	}

	logger.Info("tier catalog seeded", "tiers", len(tiers))
	return nil
}
