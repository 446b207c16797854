package integration

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"multiverse_backend/internal/domain"
	"multiverse_backend/internal/referral"
	"multiverse_backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "migrations")
	files, err := os.ReadDir(migDir)
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(migDir, name))
		require.NoError(t, err)
		_, err = db.Exec(context.Background(), string(b))
		require.NoError(t, err, "apply migration %s", name)
	}
}

func connect(t *testing.T) *repository.UserRepository {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return repository.NewUserRepository(db)
}

// seed creates a user with unique email and code so reruns against the same
// database do not collide.
func seed(t *testing.T, repo *repository.UserRepository) *domain.User {
	t.Helper()
	suffix := uuid.NewString()
	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         "it",
		Email:        "it-" + suffix + "@example.com",
		PasswordHash: "x",
		Credits:      domain.DefaultCredits,
		PlanType:     domain.DefaultPlanType,
		ReferralCode: "IT-" + suffix,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestPostgresUserRepository_Duplicates(t *testing.T) {
	repo := connect(t)
	ctx := context.Background()
	u := seed(t, repo)

	dupEmail := *u
	dupEmail.ID = uuid.NewString()
	dupEmail.ReferralCode = "IT-" + uuid.NewString()
	require.ErrorIs(t, repo.Create(ctx, &dupEmail), repository.ErrDuplicateEmail)

	dupCode := *u
	dupCode.ID = uuid.NewString()
	dupCode.Email = "it-" + uuid.NewString() + "@example.com"
	require.ErrorIs(t, repo.Create(ctx, &dupCode), repository.ErrDuplicateCode)

	_, err := repo.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestPostgresRedeem_ConcurrentAtCap(t *testing.T) {
	repo := connect(t)
	ctx := context.Background()
	engine := referral.NewEngine(repo, referral.Policy{Bonus: 200, ReferrerCap: 1})

	referrer := seed(t, repo)
	const n = 10
	redeemers := make([]*domain.User, n)
	for i := range redeemers {
		redeemers[i] = seed(t, repo)
	}

	results := make([]referral.Result, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := range redeemers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Redeem(ctx, redeemers[i].ID, referrer.ReferralCode)
		}(i)
	}
	wg.Wait()

	successes := 0
	for i := range results {
		require.NoError(t, errs[i])
		if results[i].OK() {
			successes++
		} else {
			require.Equal(t, referral.ReferrerLimitReached, results[i].Outcome)
		}
	}
	require.Equal(t, 1, successes)

	got, err := repo.GetByID(ctx, referrer.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.ReferralCount)
	require.Equal(t, domain.DefaultCredits+200, got.Credits)
}

func TestPostgresRedeem_CrossReferralDoesNotDeadlock(t *testing.T) {
	repo := connect(t)
	ctx := context.Background()
	engine := referral.NewEngine(repo, referral.DefaultPolicy())

	a := seed(t, repo)
	b := seed(t, repo)

	var wg sync.WaitGroup
	var resA, resB referral.Result
	var errA, errB error
	wg.Add(2)
	go func() { defer wg.Done(); resA, errA = engine.Redeem(ctx, a.ID, b.ReferralCode) }()
	go func() { defer wg.Done(); resB, errB = engine.Redeem(ctx, b.ID, a.ReferralCode) }()
	wg.Wait()

	require.NoError(t, errA)
	require.NoError(t, errB)
	require.True(t, resA.OK())
	require.True(t, resB.OK())
}
