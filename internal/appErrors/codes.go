package appErrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Resources
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeBookingNotFound    ErrorCode = "BOOKING_NOT_FOUND"
	CodeWithdrawalNotFound ErrorCode = "WITHDRAWAL_NOT_FOUND"

	// Entitlements
	CodeEntitlementExhausted ErrorCode = "ENTITLEMENT_EXHAUSTED"
	CodeUnknownTier          ErrorCode = "UNKNOWN_TIER"

	// Bookings
	CodeIllegalTransition      ErrorCode = "ILLEGAL_TRANSITION"
	CodeConcurrentModification ErrorCode = "CONCURRENT_MODIFICATION"
	CodeAlreadyReviewed        ErrorCode = "ALREADY_REVIEWED"
	CodeInvalidRating          ErrorCode = "INVALID_RATING"
	CodeBookingNotCompleted    ErrorCode = "BOOKING_NOT_COMPLETED"

	// Wallet
	CodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
	CodeWithdrawalTooSmall  ErrorCode = "WITHDRAWAL_TOO_SMALL"
	CodeDuplicateCommission ErrorCode = "DUPLICATE_COMMISSION"

	// Business logic
	CodePhoneAlreadyExists ErrorCode = "PHONE_ALREADY_EXISTS"
	CodeUserDeactivated    ErrorCode = "USER_DEACTIVATED"

	// System errors
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
