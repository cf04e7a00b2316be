package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homelink_backend/internal/appErrors"
	"homelink_backend/internal/dto"
	"homelink_backend/internal/models"
	"homelink_backend/internal/money"
)

func newWalletHarness() (WalletService, *fakeUserRepo, *fakeLedgerRepo) {
	users := newFakeUserRepo()
	ledger := newFakeLedgerRepo()
	svc := NewWalletService(ledger, users, newFakeTierRepo(), testConfig())
	return svc, users, ledger
}

func seedProvider(users *fakeUserRepo, phone, tierCode string) *models.User {
	return users.add(&models.User{
		Phone: phone, Role: models.UserRoleProvider, Status: models.UserStatusActive,
		TierCode: tierCode,
	})
}

func TestBuildCommission_RateFollowsTier(t *testing.T) {
	t.Parallel()

	svc, users, _ := newWalletHarness()
	ctx := context.Background()

	cases := []struct {
		tier           string
		wantRate       int
		wantCommission int64
	}{
		{models.TierProviderFree, 1200, 1800},
		{models.TierProviderFeatured, 1000, 1500},
		{models.TierProviderPremium, 800, 1200},
	}

	for i, tc := range cases {
		provider := seedProvider(users, fmt.Sprintf("+2335503000%02d", i), tc.tier)
		record, err := svc.BuildCommission(ctx, "booking-"+tc.tier, provider.ID, money.Cedis(150))
		require.NoError(t, err, tc.tier)
		assert.Equal(t, tc.wantRate, record.RateBps, tc.tier)
		assert.Equal(t, tc.wantCommission, record.CommissionPesewas, tc.tier)
		assert.Equal(t, int64(15000), record.CommissionPesewas+record.PayoutPesewas, tc.tier)
	}
}

func TestBuildCommission_DefaultRateWhenTierHasNone(t *testing.T) {
	t.Parallel()

	svc, users, _ := newWalletHarness()

	// FREE is a seeker tier with no commission rate on the catalog row.
	provider := seedProvider(users, "+233550300009", models.TierFree)
	record, err := svc.BuildCommission(context.Background(), "booking-x", provider.ID, 10000)
	require.NoError(t, err)
	assert.Equal(t, 1200, record.RateBps)
}

func TestBuildCommission_UnknownProvider(t *testing.T) {
	t.Parallel()

	svc, _, _ := newWalletHarness()
	_, err := svc.BuildCommission(context.Background(), "booking-x", "nobody", 10000)
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
}

func TestWithdraw_DebitsBalance(t *testing.T) {
	t.Parallel()

	svc, users, ledger := newWalletHarness()
	ctx := context.Background()
	provider := seedProvider(users, "+233550300001", models.TierProviderFree)
	ledger.balances[provider.ID] = 13200

	request, err := svc.Withdraw(ctx, provider.ID, &dto.WithdrawRequest{
		AmountPesewas: 5000,
		Method:        string(models.PayoutMethodMomo),
		AccountRef:    "0550300001",
	})
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusPending, request.Status)

	wallet, err := svc.GetWallet(ctx, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8200), wallet.AvailablePesewas)

	withdrawals, err := svc.ListWithdrawals(ctx, provider.ID)
	require.NoError(t, err)
	require.Len(t, withdrawals, 1)
	assert.Equal(t, int64(5000), withdrawals[0].AmountPesewas)
}

func TestWithdraw_InsufficientBalanceLeavesLedgerUntouched(t *testing.T) {
	t.Parallel()

	svc, users, ledger := newWalletHarness()
	ctx := context.Background()
	provider := seedProvider(users, "+233550300002", models.TierProviderFree)
	ledger.balances[provider.ID] = 4000

	_, err := svc.Withdraw(ctx, provider.ID, &dto.WithdrawRequest{
		AmountPesewas: 10000,
		Method:        string(models.PayoutMethodBank),
		AccountRef:    "GH00112233",
	})
	assert.ErrorIs(t, err, appErrors.ErrInsufficientBalance)

	wallet, _ := svc.GetWallet(ctx, provider.ID)
	assert.Equal(t, int64(4000), wallet.AvailablePesewas)
	withdrawals, _ := svc.ListWithdrawals(ctx, provider.ID)
	assert.Empty(t, withdrawals)
}

func TestWithdraw_BelowMinimum(t *testing.T) {
	t.Parallel()

	svc, users, ledger := newWalletHarness()
	provider := seedProvider(users, "+233550300003", models.TierProviderFree)
	ledger.balances[provider.ID] = 5000

	_, err := svc.Withdraw(context.Background(), provider.ID, &dto.WithdrawRequest{
		AmountPesewas: 500,
		Method:        string(models.PayoutMethodMomo),
		AccountRef:    "0550300003",
	})
	assert.ErrorIs(t, err, appErrors.ErrWithdrawalTooSmall)
}

func TestGetWallet_NewProviderIsZero(t *testing.T) {
	t.Parallel()

	svc, users, _ := newWalletHarness()
	provider := seedProvider(users, "+233550300004", models.TierProviderFree)

	wallet, err := svc.GetWallet(context.Background(), provider.ID)
	require.NoError(t, err)
	assert.Zero(t, wallet.AvailablePesewas)
	assert.Zero(t, wallet.PendingPesewas)
}
