package dto

type RegisterRequest struct {
	Phone    string `json:"phone" binding:"required" validate:"required,e164"`
	Name     string `json:"name" validate:"max=100"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
	Role     string `json:"role" binding:"required" validate:"required,oneof=TENANT LANDLORD SERVICE_PROVIDER"`
	City     string `json:"city" validate:"max=100"`
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	City     string `json:"city"`
	TierCode string `json:"tier_code"`
}
