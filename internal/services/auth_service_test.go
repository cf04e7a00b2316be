package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homelink_backend/internal/appErrors"
	"homelink_backend/internal/config"
	"homelink_backend/internal/dto"
	"homelink_backend/internal/models"
)

func newAuthHarness() (AuthService, *fakeUserRepo) {
	// Token signing reads the global config.
	config.AppConfig = testConfig()
	users := newFakeUserRepo()
	return NewAuthService(users, newFakeTierRepo()), users
}

func TestRegister_StartsOnFreeTier(t *testing.T) {
	svc, _ := newAuthHarness()

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Phone:    "+233550400001",
		Name:     "Ama",
		Password: "hunter22",
		Role:     string(models.UserRoleTenant),
		City:     "Accra",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, models.TierFree, res.User.TierCode)
}

func TestRegister_ProviderGetsProviderFreeTier(t *testing.T) {
	svc, users := newAuthHarness()

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Phone:    "+233550400002",
		Password: "hunter22",
		Role:     string(models.UserRoleProvider),
	})
	require.NoError(t, err)
	assert.Equal(t, models.TierProviderFree, res.User.TierCode)

	stored, err := users.FindByID(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", stored.PasswordHash)
}

func TestRegister_Rejections(t *testing.T) {
	svc, _ := newAuthHarness()
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Phone: "+233550400003", Password: "hunter22", Role: "ADMIN",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidUserRole)

	_, err = svc.Register(ctx, &dto.RegisterRequest{
		Phone: "+233550400003", Password: "abc", Role: string(models.UserRoleTenant),
	})
	assert.ErrorIs(t, err, appErrors.ErrWeakPassword)

	first := &dto.RegisterRequest{
		Phone: "+233550400004", Password: "hunter22", Role: string(models.UserRoleTenant),
	}
	_, err = svc.Register(ctx, first)
	require.NoError(t, err)
	_, err = svc.Register(ctx, first)
	assert.ErrorIs(t, err, appErrors.ErrPhoneAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, users := newAuthHarness()
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Phone: "+233550400005", Password: "hunter22", Role: string(models.UserRoleTenant),
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, &dto.LoginRequest{Phone: "+233550400005", Password: "hunter22"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, registered.User.ID, res.User.ID)

	_, err = svc.Login(ctx, &dto.LoginRequest{Phone: "+233550400005", Password: "wrong"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Phone: "+233550499999", Password: "hunter22"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	require.NoError(t, users.Deactivate(ctx, registered.User.ID))
	_, err = svc.Login(ctx, &dto.LoginRequest{Phone: "+233550400005", Password: "hunter22"})
	assert.ErrorIs(t, err, appErrors.ErrUserDeactivated)
}
