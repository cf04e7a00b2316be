package services

// In-memory repository fakes. They reproduce the conditional-write semantics
// of the real repositories (allowance decrement, status CAS, conditional
// debit) under a mutex, so the service-level concurrency tests are
// meaningful.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"homelink_backend/internal/config"
	"homelink_backend/internal/models"
	"homelink_backend/internal/repositories"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Billing.DefaultCommissionBps = 1200
	cfg.Billing.MinWithdrawalPesewas = 1000
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	return cfg
}

// --- users ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Phone == user.Phone {
			return repositories.ErrDuplicatePhone
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return repositories.ErrUserNotFound
	}
	user.Status = models.UserStatusDeactivated
	return nil
}

// --- tiers ---

type fakeTierRepo struct {
	mu    sync.Mutex
	tiers map[string]*models.SubscriptionTier
}

func newFakeTierRepo() *fakeTierRepo {
	r := &fakeTierRepo{tiers: make(map[string]*models.SubscriptionTier)}
	for _, tier := range []*models.SubscriptionTier{
		{Code: models.TierFree, Name: "Free", Audience: models.TierAudienceSeeker, ContactAllowance: 3, DurationDays: 30, IsActive: true},
		{Code: models.TierBasic, Name: "Basic", Audience: models.TierAudienceSeeker, PricePesewas: 1500, ContactAllowance: 15, DurationDays: 30, IsActive: true},
		{Code: models.TierSuperuser, Name: "Superuser", Audience: models.TierAudienceSeeker, PricePesewas: 10000, Unlimited: true, DurationDays: 30, IsActive: true},
		{Code: models.TierProviderFree, Name: "Provider Free", Audience: models.TierAudienceProvider, CommissionBps: 1200, DurationDays: 30, IsActive: true},
		{Code: models.TierProviderFeatured, Name: "Provider Featured", Audience: models.TierAudienceProvider, PricePesewas: 5000, CommissionBps: 1000, DurationDays: 30, IsActive: true},
		{Code: models.TierProviderPremium, Name: "Provider Premium", Audience: models.TierAudienceProvider, PricePesewas: 12000, CommissionBps: 800, DurationDays: 30, IsActive: true},
	} {
		tier.ID = uuid.NewString()
		r.tiers[tier.Code] = tier
	}
	return r
}

func (r *fakeTierRepo) FindByCode(_ context.Context, code string) (*models.SubscriptionTier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tier, ok := r.tiers[code]
	if !ok {
		return nil, repositories.ErrTierNotFound
	}
	copied := *tier
	return &copied, nil
}

func (r *fakeTierRepo) FindActive(_ context.Context) ([]models.SubscriptionTier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tiers []models.SubscriptionTier
	for _, tier := range r.tiers {
		if tier.IsActive {
			tiers = append(tiers, *tier)
		}
	}
	return tiers, nil
}

// --- entitlements ---

type fakeEntitlementRepo struct {
	users   *fakeUserRepo
	unlocks map[string]bool
	refs    map[string]bool
}

func newFakeEntitlementRepo(users *fakeUserRepo) *fakeEntitlementRepo {
	return &fakeEntitlementRepo{
		users:   users,
		unlocks: make(map[string]bool),
		refs:    make(map[string]bool),
	}
}

func unlockKey(userID, targetID string) string {
	return userID + "|" + targetID
}

func (r *fakeEntitlementRepo) HasUnlock(_ context.Context, userID, targetID string) (bool, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()
	return r.unlocks[unlockKey(userID, targetID)], nil
}

func (r *fakeEntitlementRepo) RecordUnlock(_ context.Context, userID, targetID string, decrement bool) (*repositories.UnlockResult, error) {
	// The user repo mutex stands in for the row lock.
	r.users.mu.Lock()
	defer r.users.mu.Unlock()

	user, ok := r.users.users[userID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}

	key := unlockKey(userID, targetID)
	if r.unlocks[key] {
		return &repositories.UnlockResult{AlreadyUnlocked: true, Remaining: user.ContactsRemaining}, nil
	}

	if decrement {
		if user.ContactsRemaining <= 0 {
			return nil, repositories.ErrAllowanceExhausted
		}
		user.ContactsRemaining--
	}

	r.unlocks[key] = true
	return &repositories.UnlockResult{Remaining: user.ContactsRemaining}, nil
}

func (r *fakeEntitlementRepo) ApplySubscription(_ context.Context, payment *models.ProcessedPayment, allowance int, expiresAt time.Time) (bool, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()

	if r.refs[payment.Reference] {
		return false, nil
	}

	user, ok := r.users.users[payment.UserID]
	if !ok {
		return false, repositories.ErrUserNotFound
	}

	r.refs[payment.Reference] = true
	user.TierCode = payment.TierCode
	user.ContactsRemaining = allowance
	exp := expiresAt
	user.TierExpiresAt = &exp
	return true, nil
}

func (r *fakeEntitlementRepo) ExpireDue(_ context.Context, now time.Time, seekerAllowance, providerAllowance int) (int64, error) {
	r.users.mu.Lock()
	defer r.users.mu.Unlock()

	var total int64
	for _, user := range r.users.users {
		if user.TierExpiresAt == nil || !user.TierExpiresAt.Before(now) {
			continue
		}
		if user.Role == models.UserRoleProvider {
			user.TierCode = models.TierProviderFree
			user.ContactsRemaining = providerAllowance
		} else {
			user.TierCode = models.TierFree
			user.ContactsRemaining = seekerAllowance
		}
		user.TierExpiresAt = nil
		total++
	}
	return total, nil
}

// --- ledger ---

type fakeLedgerRepo struct {
	mu          sync.Mutex
	balances    map[string]int64
	commissions map[string]*models.CommissionRecord
	withdrawals []models.WithdrawalRequest
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		balances:    make(map[string]int64),
		commissions: make(map[string]*models.CommissionRecord),
	}
}

func (r *fakeLedgerRepo) GetBalance(_ context.Context, providerID string) (*models.ProviderBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &models.ProviderBalance{
		ProviderID:       providerID,
		AvailablePesewas: r.balances[providerID],
	}, nil
}

func (r *fakeLedgerRepo) FindCommissionByBooking(_ context.Context, bookingID string) (*models.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.commissions[bookingID]
	if !ok {
		return nil, repositories.ErrCommissionNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeLedgerRepo) ListCommissions(_ context.Context, providerID string) ([]models.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var records []models.CommissionRecord
	for _, record := range r.commissions {
		if record.ProviderID == providerID {
			records = append(records, *record)
		}
	}
	return records, nil
}

func (r *fakeLedgerRepo) ListWithdrawals(_ context.Context, providerID string) ([]models.WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []models.WithdrawalRequest
	for _, request := range r.withdrawals {
		if request.ProviderID == providerID {
			requests = append(requests, request)
		}
	}
	return requests, nil
}

func (r *fakeLedgerRepo) Withdraw(_ context.Context, request *models.WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.balances[request.ProviderID] < request.AmountPesewas {
		return repositories.ErrInsufficientFunds
	}
	r.balances[request.ProviderID] -= request.AmountPesewas
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	request.CreatedAt = time.Now()
	r.withdrawals = append(r.withdrawals, *request)
	return nil
}

// --- bookings ---

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	ledger   *fakeLedgerRepo
}

func newFakeBookingRepo(ledger *fakeLedgerRepo) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[string]*models.Booking),
		ledger:   ledger,
	}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	booking.CreatedAt = time.Now()
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, repositories.ErrBookingNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []models.Booking
	for _, booking := range r.bookings {
		if booking.CustomerID == customerID {
			bookings = append(bookings, *booking)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) ListByProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var bookings []models.Booking
	for _, booking := range r.bookings {
		if booking.ProviderID == providerID {
			bookings = append(bookings, *booking)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) UpdateStatusCAS(_ context.Context, id string, from, to models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != from {
		return repositories.ErrStatusConflict
	}
	booking.Status = to
	return nil
}

func (r *fakeBookingRepo) Complete(_ context.Context, id string, completedAt time.Time, record *models.CommissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != models.BookingStatusInProgress {
		return repositories.ErrStatusConflict
	}

	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()
	if _, exists := r.ledger.commissions[record.BookingID]; exists {
		return repositories.ErrDuplicateCommission
	}

	booking.Status = models.BookingStatusCompleted
	booking.AmountPesewas = record.GrossPesewas
	done := completedAt
	booking.CompletedAt = &done

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = completedAt
	copied := *record
	r.ledger.commissions[record.BookingID] = &copied
	r.ledger.balances[record.ProviderID] += record.PayoutPesewas
	return nil
}

func (r *fakeBookingRepo) AttachReview(_ context.Context, id string, rating int, reviewText string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok || booking.Status != models.BookingStatusCompleted || booking.Rating != nil {
		return repositories.ErrReviewConflict
	}
	booking.Rating = &rating
	booking.ReviewText = reviewText
	return nil
}
