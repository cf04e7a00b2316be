package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"homelink_backend/internal/appErrors"
	"homelink_backend/internal/dto"
	"homelink_backend/internal/logger"
	"homelink_backend/internal/models"
	"homelink_backend/internal/money"
	"homelink_backend/internal/repositories"
)

// BookingService owns the booking lifecycle. Every status change goes through
// the transition table; completion posts the commission in the same database
// transaction as the status flip.
type BookingService interface {
	Create(ctx context.Context, customerID string, req *dto.CreateBookingRequest) (*models.Booking, error)
	Get(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	ListForUser(ctx context.Context, userID string, role models.UserRole) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, actorID, bookingID string, req *dto.UpdateBookingStatusRequest) (*models.Booking, error)
	AttachReview(ctx context.Context, actorID, bookingID string, req *dto.ReviewRequest) (*models.Booking, error)
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	userRepo    repositories.UserRepository
	walletSvc   WalletService
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	userRepo repositories.UserRepository,
	walletSvc WalletService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		walletSvc:   walletSvc,
	}
}

func (s *bookingService) Create(ctx context.Context, customerID string, req *dto.CreateBookingRequest) (*models.Booking, error) {
	provider, err := s.userRepo.FindByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.NewBadRequestError("Provider does not exist")
		}
		return nil, err
	}
	if provider.Role != models.UserRoleProvider || !provider.IsActive() {
		return nil, appErrors.NewBadRequestError("Provider is not an active service provider")
	}

	if strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.City) == "" {
		return nil, appErrors.NewBadRequestError("Address and city are required")
	}

	// Present-or-future only; a minute of slack absorbs client clock skew.
	if req.ScheduledAt.Before(time.Now().Add(-time.Minute)) {
		return nil, appErrors.NewBadRequestError("Scheduled date must not be in the past")
	}

	booking := &models.Booking{
		CustomerID:  customerID,
		ProviderID:  req.ProviderID,
		Category:    req.Category,
		ScheduledAt: req.ScheduledAt,
		Address:     req.Address,
		City:        req.City,
		Notes:       req.Notes,
		Status:      models.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) Get(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != userID && booking.ProviderID != userID {
		return nil, appErrors.ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) ListForUser(ctx context.Context, userID string, role models.UserRole) ([]models.Booking, error) {
	if role == models.UserRoleProvider {
		return s.bookingRepo.ListByProvider(ctx, userID)
	}
	return s.bookingRepo.ListByCustomer(ctx, userID)
}

func (s *bookingService) UpdateStatus(ctx context.Context, actorID, bookingID string, req *dto.UpdateBookingStatusRequest) (*models.Booking, error) {
	target := models.BookingStatus(req.Status)
	if !target.Valid() || target == models.BookingStatusPending {
		return nil, appErrors.ErrIllegalTransition
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTransition(booking, actorID, target); err != nil {
		return nil, err
	}

	if !models.CanTransition(booking.Status, target) {
		return nil, appErrors.ErrIllegalTransition.WithDetails(map[string]string{
			"from": string(booking.Status),
			"to":   string(target),
		})
	}

	if target == models.BookingStatusCompleted {
		return s.complete(ctx, booking, money.Pesewas(req.AmountPesewas))
	}

	if err := s.bookingRepo.UpdateStatusCAS(ctx, bookingID, booking.Status, target); err != nil {
		if errors.Is(err, repositories.ErrStatusConflict) {
			return nil, s.conflictError(ctx, bookingID, target)
		}
		return nil, err
	}

	booking.Status = target
	return booking, nil
}

// complete flips IN_PROGRESS -> COMPLETED and posts the commission
// atomically. The booking repo runs both writes plus the balance credit in
// one transaction, so either everything lands or nothing does.
func (s *bookingService) complete(ctx context.Context, booking *models.Booking, gross money.Pesewas) (*models.Booking, error) {
	if gross <= 0 {
		return nil, appErrors.NewBadRequestError("A positive gross amount is required to complete a booking")
	}

	record, err := s.walletSvc.BuildCommission(ctx, booking.ID, booking.ProviderID, gross)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now()
	if err := s.bookingRepo.Complete(ctx, booking.ID, completedAt, record); err != nil {
		switch {
		case errors.Is(err, repositories.ErrStatusConflict):
			return nil, s.conflictError(ctx, booking.ID, models.BookingStatusCompleted)
		case errors.Is(err, repositories.ErrDuplicateCommission):
			// Structurally prevented by the status CAS; reaching this means
			// a logic bug upstream.
			logger.CtxError(ctx, "duplicate commission post blocked", "booking_id", booking.ID)
			return nil, appErrors.ErrDuplicateCommission
		}
		return nil, err
	}

	booking.Status = models.BookingStatusCompleted
	booking.AmountPesewas = record.GrossPesewas
	booking.CompletedAt = &completedAt
	return booking, nil
}

func (s *bookingService) AttachReview(ctx context.Context, actorID, bookingID string, req *dto.ReviewRequest) (*models.Booking, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, appErrors.ErrInvalidRating
	}

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != actorID {
		return nil, appErrors.ErrForbidden
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, appErrors.ErrBookingNotCompleted
	}
	if booking.Rating != nil {
		return nil, appErrors.ErrAlreadyReviewed
	}

	if err := s.bookingRepo.AttachReview(ctx, bookingID, req.Rating, req.Review); err != nil {
		if errors.Is(err, repositories.ErrReviewConflict) {
			// A concurrent review got there first.
			return nil, appErrors.ErrAlreadyReviewed
		}
		return nil, err
	}

	rating := req.Rating
	booking.Rating = &rating
	booking.ReviewText = req.Review
	return booking, nil
}

func (s *bookingService) loadBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			return nil, appErrors.ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// authorizeTransition enforces who may trigger what: providers accept, start
// and complete their own jobs; either party may cancel before work starts.
func (s *bookingService) authorizeTransition(booking *models.Booking, actorID string, target models.BookingStatus) error {
	switch target {
	case models.BookingStatusConfirmed, models.BookingStatusInProgress, models.BookingStatusCompleted:
		if booking.ProviderID != actorID {
			return appErrors.ErrForbidden
		}
	case models.BookingStatusCancelled:
		if booking.ProviderID != actorID && booking.CustomerID != actorID {
			return appErrors.ErrForbidden
		}
	}
	return nil
}

// conflictError classifies a lost CAS: if the transition is still legal from
// the current status the caller may retry, otherwise it was illegal all
// along.
func (s *bookingService) conflictError(ctx context.Context, bookingID string, target models.BookingStatus) error {
	current, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return appErrors.ErrConcurrentModification
	}
	if models.CanTransition(current.Status, target) {
		return appErrors.ErrConcurrentModification
	}
	return appErrors.ErrIllegalTransition.WithDetails(map[string]string{
		"from": string(current.Status),
		"to":   string(target),
	})
}
