package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"homelink_backend/internal/models"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrStatusConflict      = errors.New("booking status changed concurrently")
	ErrDuplicateCommission = errors.New("commission already posted for booking")
	ErrReviewConflict      = errors.New("review conditions no longer hold")
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)

	// UpdateStatusCAS moves a booking from one exact status to another.
	// Returns ErrStatusConflict when the current status is not `from`.
	UpdateStatusCAS(ctx context.Context, id string, from, to models.BookingStatus) error

	// Complete is the terminal transition: CAS to COMPLETED, one commission
	// record, and the provider balance credit in a single transaction. A
	// booking can never end up COMPLETED without its commission record.
	Complete(ctx context.Context, id string, completedAt time.Time, record *models.CommissionRecord) error

	// AttachReview sets the rating iff the booking is COMPLETED and unrated.
	// Returns ErrReviewConflict when a concurrent review won the race.
	AttachReview(ctx context.Context, id string, rating int, reviewText string) error
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) UpdateStatusCAS(ctx context.Context, id string, from, to models.BookingStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *bookingRepository) Complete(ctx context.Context, id string, completedAt time.Time, record *models.CommissionRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ?", id, models.BookingStatusInProgress).
			Updates(map[string]interface{}{
				"status":         models.BookingStatusCompleted,
				"amount_pesewas": record.GrossPesewas,
				"completed_at":   completedAt,
				"updated_at":     completedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStatusConflict
		}

		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateCommission
			}
			return err
		}

		// Credit the payout. The upsert covers a provider's first completion.
		balance := models.ProviderBalance{
			ProviderID:       record.ProviderID,
			AvailablePesewas: record.PayoutPesewas,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "provider_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"available_pesewas": gorm.Expr("provider_balances.available_pesewas + ?", record.PayoutPesewas),
			}),
		}).Create(&balance).Error
	})
}

func (r *bookingRepository) AttachReview(ctx context.Context, id string, rating int, reviewText string) error {
	result := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND status = ? AND rating IS NULL", id, models.BookingStatusCompleted).
		Updates(map[string]interface{}{
			"rating":      rating,
			"review_text": reviewText,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewConflict
	}
	return nil
}
