package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class across the API surface.
type ErrorCode string

// AppError is the application-wide error shape. Code and Message are what a
// client sees; Err carries the wrapped cause for logs, HTTPCode picks the
// response status.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two AppErrors by code, so sentinel comparisons work
// even after WithDetails/WithError produced a copy.
func (e *AppError) Is(target error) bool {
	var appErr *AppError
	if stderrors.As(target, &appErr) {
		return e.Code == appErr.Code
	}
	return false
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// WithDetails returns a copy carrying extra context for the client; the
// predefined sentinels stay immutable.
func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// WithError returns a copy wrapping a cause.
func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors
var (
	// Authentication
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid phone or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound       = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrPhoneAlreadyExists = New(CodePhoneAlreadyExists, "Phone number already registered", http.StatusConflict)
	ErrUserDeactivated    = New(CodeUserDeactivated, "User account is deactivated", http.StatusForbidden)
	ErrWeakPassword       = New(CodeWeakPassword, "Password must be at least 6 characters", http.StatusBadRequest)
	ErrInvalidUserRole    = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)

	// Validation
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)

	// Entitlements. Exhaustion is a user-actionable condition (upgrade
	// required), not a server error. An unknown tier code is a catalog
	// configuration bug and is treated as fatal.
	ErrEntitlementExhausted = New(CodeEntitlementExhausted, "Contact unlock allowance exhausted, upgrade required", http.StatusForbidden)
	ErrUnknownTier          = New(CodeUnknownTier, "Subscription tier not found in catalog", http.StatusInternalServerError)

	// Bookings
	ErrBookingNotFound         = New(CodeBookingNotFound, "Booking not found", http.StatusNotFound)
	ErrIllegalTransition       = New(CodeIllegalTransition, "Booking status transition not permitted", http.StatusConflict)
	ErrConcurrentModification  = New(CodeConcurrentModification, "Booking was modified concurrently, retry", http.StatusConflict)
	ErrAlreadyReviewed         = New(CodeAlreadyReviewed, "Booking has already been reviewed", http.StatusConflict)
	ErrInvalidRating           = New(CodeInvalidRating, "Rating must be an integer between 1 and 5", http.StatusBadRequest)
	ErrBookingNotCompleted     = New(CodeBookingNotCompleted, "Only completed bookings can be reviewed", http.StatusConflict)

	// Wallet. A duplicate commission post indicates an upstream logic bug:
	// the completion transition is the only caller and posts exactly once.
	ErrInsufficientBalance = New(CodeInsufficientBalance, "Withdrawal amount exceeds available balance", http.StatusBadRequest)
	ErrWithdrawalTooSmall  = New(CodeWithdrawalTooSmall, "Withdrawal amount is below the configured minimum", http.StatusBadRequest)
	ErrDuplicateCommission = New(CodeDuplicateCommission, "Commission already posted for this booking", http.StatusInternalServerError)
	ErrWithdrawalNotFound  = New(CodeWithdrawalNotFound, "Withdrawal request not found", http.StatusNotFound)
)

// Helpers for errors with details

func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeUserNotFound, message, http.StatusNotFound)
}
