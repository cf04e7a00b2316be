package services

// ServiceContainer wires every service for the handlers and workers.
type ServiceContainer struct {
	AuthService        AuthService
	EntitlementService EntitlementService
	BookingService     BookingService
	WalletService      WalletService
}
