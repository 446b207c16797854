package repository_test

import (
	"context"
	"errors"
	"testing"

	"multiverse_backend/internal/domain"
	"multiverse_backend/internal/repository"
	"multiverse_backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newUser(email, code string) *domain.User {
	return &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hash",
		Credits:      domain.DefaultCredits,
		PlanType:     domain.DefaultPlanType,
		ReferralCode: code,
	}
}

func TestGormCreateAndLookup(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ctx := context.Background()

	u := newUser("Alice@example.com", "REF-AAAAAA")
	require.NoError(t, store.Create(ctx, u))
	require.False(t, u.CreatedAt.IsZero())

	got, err := store.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice@example.com", got.Email)
	require.Equal(t, domain.DefaultCredits, got.Credits)
	require.Equal(t, "free", got.PlanType)
	require.Equal(t, 0, got.ReferralCount)
	require.False(t, got.IsBanned)
	require.Nil(t, got.ReferredBy)

	got, err = store.GetByEmail(ctx, "Alice@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	// email lookups are case-sensitive
	_, err = store.GetByEmail(ctx, "alice@example.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = store.GetByID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestGormCreateDuplicates(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newUser("a@example.com", "REF-AAAAAA")))

	err := store.Create(ctx, newUser("a@example.com", "REF-BBBBBB"))
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)

	err = store.Create(ctx, newUser("b@example.com", "REF-AAAAAA"))
	require.ErrorIs(t, err, repository.ErrDuplicateCode)
}

func TestGormSetBanned(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ctx := context.Background()

	u := testutil.SeedUser(t, store, "a@example.com", "REF-AAAAAA")
	require.NoError(t, store.SetBanned(ctx, u.ID, true))

	got, err := store.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.IsBanned)

	require.ErrorIs(t, store.SetBanned(ctx, "missing", true), repository.ErrUserNotFound)
}

func TestGormRedeemPassesLockedRowsToCheck(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ctx := context.Background()

	referrer := testutil.SeedUser(t, store, "r@example.com", "REF-RRRRRR")
	redeemer := testutil.SeedUser(t, store, "u@example.com", "REF-UUUUUU")

	var seenRedeemer, seenReferrer *domain.User
	ev, err := store.Redeem(ctx, repository.Redemption{
		RedeemerID:  redeemer.ID,
		Code:        referrer.ReferralCode,
		Bonus:       50,
		ReferrerCap: 10,
	}, func(a, b *domain.User) error {
		seenRedeemer, seenReferrer = a, b
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, redeemer.ID, seenRedeemer.ID)
	require.Equal(t, referrer.ID, seenReferrer.ID)
	require.Equal(t, int64(50), ev.Bonus)

	got, err := store.GetByID(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultCredits+50, got.Credits)
	require.Equal(t, 1, got.ReferralCount)
}

func TestGormRedeemCheckErrorRollsBack(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ctx := context.Background()

	referrer := testutil.SeedUser(t, store, "r@example.com", "REF-RRRRRR")
	redeemer := testutil.SeedUser(t, store, "u@example.com", "REF-UUUUUU")

	stop := errors.New("stop")
	_, err := store.Redeem(ctx, repository.Redemption{
		RedeemerID: redeemer.ID, Code: referrer.ReferralCode, Bonus: 200, ReferrerCap: 100,
	}, func(_, _ *domain.User) error { return stop })
	require.ErrorIs(t, err, stop)

	got, err := store.GetByID(ctx, redeemer.ID)
	require.NoError(t, err)
	require.Nil(t, got.ReferredBy)
	require.Equal(t, domain.DefaultCredits, got.Credits)
}

func TestGormRedeemGuardsAgainstPermissiveCheck(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ctx := context.Background()

	referrer := testutil.SeedUser(t, store, "r@example.com", "REF-RRRRRR")
	redeemer := testutil.SeedUser(t, store, "u@example.com", "REF-UUUUUU")
	allow := func(_, _ *domain.User) error { return nil }

	// cap of zero: the conditional update on the referrer must refuse
	_, err := store.Redeem(ctx, repository.Redemption{
		RedeemerID: redeemer.ID, Code: referrer.ReferralCode, Bonus: 200, ReferrerCap: 0,
	}, allow)
	require.ErrorIs(t, err, repository.ErrConflict)

	// own code: the redeemer update refuses self reference and the referrer
	// increment is rolled back with it
	_, err = store.Redeem(ctx, repository.Redemption{
		RedeemerID: redeemer.ID, Code: redeemer.ReferralCode, Bonus: 200, ReferrerCap: 100,
	}, allow)
	require.ErrorIs(t, err, repository.ErrConflict)

	got, err := store.GetByID(ctx, redeemer.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.ReferralCount)
	require.Equal(t, domain.DefaultCredits, got.Credits)

	// unknown code with a permissive check still writes nothing
	_, err = store.Redeem(ctx, repository.Redemption{
		RedeemerID: redeemer.ID, Code: "REF-NOPE00", Bonus: 200, ReferrerCap: 100,
	}, allow)
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}
