package handlers

import (
	"homelink_backend/internal/services"
	"homelink_backend/internal/validator"
)

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	EntitlementHandler *EntitlementHandler
	BookingHandler     *BookingHandler
	WalletHandler      *WalletHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, container.AuthService),
		EntitlementHandler: NewEntitlementHandler(base, container.EntitlementService),
		BookingHandler:     NewBookingHandler(base, container.BookingService),
		WalletHandler:      NewWalletHandler(base, container.WalletService),
	}
}
