package models

type UserRole string
type UserStatus string
type BookingStatus string
type WithdrawalStatus string
type PayoutMethod string
type TierAudience string

const (
	UserRoleTenant   UserRole = "TENANT"
	UserRoleLandlord UserRole = "LANDLORD"
	UserRoleProvider UserRole = "SERVICE_PROVIDER"

	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"

	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"

	WithdrawalStatusPending WithdrawalStatus = "PENDING"
	WithdrawalStatusPaid    WithdrawalStatus = "PAID"
	WithdrawalStatusFailed  WithdrawalStatus = "FAILED"

	PayoutMethodMomo PayoutMethod = "momo"
	PayoutMethodBank PayoutMethod = "bank"

	TierAudienceSeeker   TierAudience = "seeker"
	TierAudienceProvider TierAudience = "provider"
)

// Tier codes are seeded reference data; clients never hardcode them.
const (
	TierFree      = "FREE"
	TierBasic     = "BASIC"
	TierRelax     = "RELAX"
	TierSuperuser = "SUPERUSER"

	TierProviderFree     = "PROVIDER_FREE"
	TierProviderFeatured = "PROVIDER_FEATURED"
	TierProviderPremium  = "PROVIDER_PREMIUM"
)

// bookingTransitions is the full transition table. COMPLETED and CANCELLED
// have no outgoing edges: terminal states are fixed points.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

// CanTransition reports whether from -> to is a legal booking transition.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status permits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleTenant, UserRoleLandlord, UserRoleProvider:
		return true
	}
	return false
}

func (m PayoutMethod) Valid() bool {
	return m == PayoutMethodMomo || m == PayoutMethodBank
}
