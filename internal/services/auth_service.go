package services

import (
	"context"
	"errors"

	"homelink_backend/internal/appErrors"
	"homelink_backend/internal/auth"
	"homelink_backend/internal/dto"
	"homelink_backend/internal/models"
	"homelink_backend/internal/repositories"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tierRepo repositories.TierRepository
}

func NewAuthService(userRepo repositories.UserRepository, tierRepo repositories.TierRepository) AuthService {
	return &authService{
		userRepo: userRepo,
		tierRepo: tierRepo,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	role := models.UserRole(req.Role)
	if !role.Valid() {
		return nil, appErrors.ErrInvalidUserRole
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// New accounts start on their role's free tier with its full allowance,
	// taken from the catalog rather than hardcoded.
	freeCode := models.TierFree
	if role == models.UserRoleProvider {
		freeCode = models.TierProviderFree
	}
	tier, err := s.tierRepo.FindByCode(ctx, freeCode)
	if err != nil {
		if errors.Is(err, repositories.ErrTierNotFound) {
			return nil, appErrors.ErrUnknownTier.WithError(err)
		}
		return nil, err
	}

	user := &models.User{
		Phone:             req.Phone,
		Name:              req.Name,
		PasswordHash:      hash,
		Role:              role,
		Status:            models.UserStatusActive,
		City:              req.City,
		TierCode:          tier.Code,
		ContactsRemaining: tier.ContactAllowance,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicatePhone) {
			return nil, appErrors.ErrPhoneAlreadyExists
		}
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByPhone(ctx, req.Phone)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, appErrors.ErrUserDeactivated
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		User: dto.UserResponse{
			ID:       user.ID,
			Phone:    user.Phone,
			Name:     user.Name,
			Role:     string(user.Role),
			City:     user.City,
			TierCode: user.TierCode,
		},
	}, nil
}
